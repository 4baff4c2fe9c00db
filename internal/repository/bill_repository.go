package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"footfall-service/internal/model"
)

type BillRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Create(ctx context.Context, bill *model.BillRecord) error {
	return translate(r.db.WithContext(ctx).Create(bill).Error)
}

func (r *BillRepository) List(ctx context.Context, filter BillFilter) ([]model.BillRecord, error) {
	var bills []model.BillRecord
	query := r.db.WithContext(ctx).Model(&model.BillRecord{})

	if len(filter.BranchIDs) > 0 {
		query = query.Where("branch_id IN ?", filter.BranchIDs)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if filter.Period != nil {
		query = query.Where("period = ?", *filter.Period)
	}

	if err := query.Order("created_at ASC").Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *BillRepository) Latest(ctx context.Context, branchID, date string) (*model.BillRecord, error) {
	var bill model.BillRecord
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND date = ?", branchID, date).
		Order("created_at DESC").
		First(&bill).Error
	if err != nil {
		return nil, translate(err)
	}
	return &bill, nil
}

func (r *BillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BillRecord{}))
}
