package contract

import (
	"context"
	"time"

	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/repository/specification"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// RecordLogin bumps the login counter and stamps the login time
	RecordLogin(ctx context.Context, email string, at time.Time) error
}
