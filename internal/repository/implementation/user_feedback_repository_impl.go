package implementation

import (
	"context"

	"support-chatbot-be/internal/entity"
	"support-chatbot-be/internal/mapper"
	"support-chatbot-be/internal/model"
	"support-chatbot-be/internal/repository/contract"
	"support-chatbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UserFeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewUserFeedbackRepository(db *gorm.DB) contract.UserFeedbackRepository {
	return &UserFeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *UserFeedbackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserFeedbackRepositoryImpl) Create(ctx context.Context, feedback *entity.UserFeedback) error {
	m := r.mapper.UserFeedbackToModel(feedback)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feedback = *r.mapper.UserFeedbackToEntity(m)
	return nil
}

func (r *UserFeedbackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserFeedback, error) {
	var models []*model.UserFeedback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.UserFeedbacksToEntities(models), nil
}

func (r *UserFeedbackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UserFeedback{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserFeedbackRepositoryImpl) CountBySession(ctx context.Context) (map[string]int64, error) {
	return countGroupedBySession(ctx, r.db, &model.UserFeedback{})
}
