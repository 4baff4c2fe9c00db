package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"footfall-service/internal/model"
)

type TrafficEventRepository struct {
	db *gorm.DB
}

func NewTrafficEventRepository(db *gorm.DB) *TrafficEventRepository {
	return &TrafficEventRepository{db: db}
}

func (r *TrafficEventRepository) Create(ctx context.Context, event *model.TrafficEvent) error {
	return translate(r.db.WithContext(ctx).Create(event).Error)
}

func (r *TrafficEventRepository) List(ctx context.Context, filter TrafficFilter) ([]model.TrafficEvent, error) {
	var events []model.TrafficEvent
	query := r.db.WithContext(ctx).Model(&model.TrafficEvent{})

	if len(filter.BranchIDs) > 0 {
		query = query.Where("branch_id IN ?", filter.BranchIDs)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if filter.Period != nil {
		query = query.Where("period = ?", *filter.Period)
	}
	if filter.Slot != nil {
		query = query.Where("slot = ?", *filter.Slot)
	}

	if err := query.Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *TrafficEventRepository) Latest(ctx context.Context, branchID, date string) (*model.TrafficEvent, error) {
	var event model.TrafficEvent
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND date = ?", branchID, date).
		Order("created_at DESC").
		First(&event).Error
	if err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *TrafficEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TrafficEvent{}))
}
