package service

import (
	"context"
	"encoding/json"

	"student-analyzer-be/internal/dto"
	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber   message.Subscriber
	topicName    string
	usageService IUsageService
	logger       logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	usageService IUsageService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		usageService: usageService,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishUsageMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("USAGE", "Failed to unmarshal usage message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid messages are never retried
		return
	}

	var err error
	switch payload.Kind {
	case dto.UsageDocumentAnalyzed:
		err = cs.usageService.LogDocument(ctx, payload.UserEmail, payload.DocumentName, payload.FileType, payload.FileSize, payload.Language)
	case dto.UsageCounterIncrement:
		err = cs.usageService.Increment(ctx, payload.UserEmail, entity.UsageCounter(payload.Counter))
	case dto.UsageQuizSubmitted:
		err = cs.usageService.RecordQuiz(ctx, payload.UserEmail, payload.QuizScore, payload.QuizDetail)
	default:
		cs.logger.Warn("USAGE", "Unknown usage message", map[string]interface{}{
			"kind": string(payload.Kind),
		})
	}

	// Usage tracking is best effort; a failed write is logged, not redelivered
	if err != nil {
		cs.logger.Error("USAGE", "Failed to apply usage message", map[string]interface{}{
			"kind":  string(payload.Kind),
			"user":  payload.UserEmail,
			"error": err.Error(),
		})
	}
	msg.Ack()
}
