package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"student-analyzer-be/internal/dto"
	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageService_Flow(t *testing.T) {
	factory := newFakeFactory()
	svc := NewUsageService(factory, logger.NewNopLogger())
	ctx := context.Background()

	// No row yet: counters are ignored
	require.NoError(t, svc.Increment(ctx, "a@b.com", entity.CounterDoubtSessions))

	require.NoError(t, svc.LogDocument(ctx, "a@b.com", "notes.pdf", "PDF", 2048, ""))
	require.NoError(t, svc.Increment(ctx, "a@b.com", entity.CounterDoubtSessions))
	require.NoError(t, svc.Increment(ctx, "a@b.com", entity.CounterDoubtSessions))
	require.NoError(t, svc.RecordQuiz(ctx, "a@b.com", 50, map[string]int{"score": 1}))

	summary, err := svc.Latest(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, "notes.pdf", summary.DocumentName)
	assert.Equal(t, "English", summary.LanguageUsed)
	assert.Equal(t, 2, summary.DoubtSessions)
	assert.Equal(t, 1, summary.AssessmentsTaken)
	require.NotNil(t, summary.QuizScore)
	assert.Equal(t, 50.0, *summary.QuizScore)
	assert.JSONEq(t, `{"score":1}`, string(factory.db.interactions[0].QuizDetail))
}

func TestUsageService_UnknownCounter(t *testing.T) {
	svc := NewUsageService(newFakeFactory(), logger.NewNopLogger())
	err := svc.Increment(context.Background(), "a@b.com", entity.UsageCounter("password"))
	assert.Error(t, err)
}

func TestUsageService_UpdatesLatestRowOnly(t *testing.T) {
	factory := newFakeFactory()
	svc := NewUsageService(factory, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, svc.LogDocument(ctx, "a@b.com", "first.pdf", "PDF", 1, "English"))
	require.NoError(t, svc.LogDocument(ctx, "a@b.com", "second.pptx", "PowerPoint", 1, "Hindi"))
	require.NoError(t, svc.Increment(ctx, "a@b.com", entity.CounterPdfsGenerated))

	assert.Equal(t, 0, factory.db.interactions[0].PdfsGenerated)
	assert.Equal(t, 1, factory.db.interactions[1].PdfsGenerated)
}

func TestUsageService_History(t *testing.T) {
	svc := NewUsageService(newFakeFactory(), logger.NewNopLogger())
	ctx := context.Background()

	for _, name := range []string{"one.pdf", "two.pdf", "three.pdf"} {
		require.NoError(t, svc.LogDocument(ctx, "a@b.com", name, "PDF", 1, ""))
	}
	require.NoError(t, svc.LogDocument(ctx, "other@b.com", "theirs.pdf", "PDF", 1, ""))

	history, err := svc.History(ctx, "a@b.com", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), history.Total)
	require.Len(t, history.Items, 2)
	assert.Equal(t, "three.pdf", history.Items[0].DocumentName)
	assert.Equal(t, "two.pdf", history.Items[1].DocumentName)

	history, err = svc.History(ctx, "a@b.com", 2, 2)
	require.NoError(t, err)
	require.Len(t, history.Items, 1)
	assert.Equal(t, "one.pdf", history.Items[0].DocumentName)

	// Out of range limits fall back to the default page size
	history, err = svc.History(ctx, "a@b.com", 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, history.Page)
	assert.Equal(t, 20, history.Limit)
	assert.Len(t, history.Items, 3)
}

func TestConsumerService_AppliesUsageMessages(t *testing.T) {
	factory := newFakeFactory()
	log := logger.NewNopLogger()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, "usage", NewUsageService(factory, log), log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("usage", pubSub)
	publish := func(msg dto.PublishUsageMessage) {
		payload, err := json.Marshal(msg)
		require.NoError(t, err)
		require.NoError(t, publisher.Publish(ctx, payload))
	}

	publish(dto.PublishUsageMessage{Kind: dto.UsageDocumentAnalyzed, UserEmail: "a@b.com", DocumentName: "deck.pptx", FileType: "PowerPoint"})
	require.Eventually(t, func() bool {
		n, _ := factory.NewUnitOfWork(ctx).InteractionRepository().Count(ctx)
		return n == 1
	}, time.Second, 10*time.Millisecond)

	publish(dto.PublishUsageMessage{Kind: dto.UsageCounterIncrement, UserEmail: "a@b.com", Counter: string(entity.CounterVideoScriptsGenerated)})
	require.Eventually(t, func() bool {
		row, _ := factory.NewUnitOfWork(ctx).InteractionRepository().FindOne(ctx)
		return row != nil && row.VideoScriptsGenerated == 1
	}, time.Second, 10*time.Millisecond)

	// Garbage is acknowledged and skipped
	require.NoError(t, publisher.Publish(ctx, []byte("not json")))
	publish(dto.PublishUsageMessage{Kind: dto.UsageQuizSubmitted, UserEmail: "a@b.com", QuizScore: 100})
	require.Eventually(t, func() bool {
		row, _ := factory.NewUnitOfWork(ctx).InteractionRepository().FindOne(ctx)
		return row != nil && row.QuizScore != nil && *row.QuizScore == 100
	}, time.Second, 10*time.Millisecond)
}
