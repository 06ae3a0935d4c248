package implementation

import (
	"context"
	"errors"
	"time"

	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/mapper"
	"student-analyzer-be/internal/model"
	"student-analyzer-be/internal/repository/contract"
	"student-analyzer-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AccountRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AccountMapper
}

func NewAccountRepository(db *gorm.DB) contract.AccountRepository {
	return &AccountRepositoryImpl{
		db:     db,
		mapper: mapper.NewAccountMapper(),
	}
}

func (r *AccountRepositoryImpl) Create(ctx context.Context, account *entity.Account) error {
	m := r.mapper.ToModel(account)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*account = *r.mapper.ToEntity(m)
	return nil
}

func (r *AccountRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Account, error) {
	var m model.Login
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AccountRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Login{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AccountRepositoryImpl) RecordLogin(ctx context.Context, email string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Login{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"no_of_time_logged_in":    gorm.Expr("no_of_time_logged_in + 1"),
			"latest_login_time_stamp": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
