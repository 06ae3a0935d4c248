package unitofwork

import (
	"context"

	"student-analyzer-be/internal/repository/contract"
)

// UnitOfWork groups repository calls that must commit together
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
	InTransaction() bool

	AccountRepository() contract.AccountRepository
	InteractionRepository() contract.InteractionRepository
}
