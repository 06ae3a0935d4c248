package implementation

import (
	"context"
	"errors"
	"fmt"

	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/mapper"
	"student-analyzer-be/internal/model"
	"student-analyzer-be/internal/repository/contract"
	"student-analyzer-be/internal/repository/specification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InteractionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InteractionMapper
}

func NewInteractionRepository(db *gorm.DB) contract.InteractionRepository {
	return &InteractionRepositoryImpl{
		db:     db,
		mapper: mapper.NewInteractionMapper(),
	}
}

func (r *InteractionRepositoryImpl) Create(ctx context.Context, interaction *entity.Interaction) error {
	m := r.mapper.ToModel(interaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*interaction = *r.mapper.ToEntity(m)
	return nil
}

func (r *InteractionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interaction, error) {
	var m model.UiInteraction
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InteractionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interaction, error) {
	var items []*model.UiInteraction
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(items), nil
}

func (r *InteractionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.UiInteraction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *InteractionRepositoryImpl) IncrementCounter(ctx context.Context, sNo int64, counter entity.UsageCounter) error {
	if !counter.Valid() {
		return fmt.Errorf("unknown usage counter %q", counter)
	}
	column := string(counter)
	return r.db.WithContext(ctx).Model(&model.UiInteraction{}).
		Where("s_no = ?", sNo).
		Update(column, gorm.Expr(column+" + 1")).Error
}

func (r *InteractionRepositoryImpl) UpdateQuiz(ctx context.Context, sNo int64, score float64, detail []byte) error {
	return r.db.WithContext(ctx).Model(&model.UiInteraction{}).
		Where("s_no = ?", sNo).
		Updates(map[string]interface{}{
			"quiz_score":  score,
			"quiz_detail": datatypes.JSON(detail),
		}).Error
}
