package contract

import (
	"context"

	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/repository/specification"
)

type InteractionRepository interface {
	Create(ctx context.Context, interaction *entity.Interaction) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	IncrementCounter(ctx context.Context, sNo int64, counter entity.UsageCounter) error
	UpdateQuiz(ctx context.Context, sNo int64, score float64, detail []byte) error
}
