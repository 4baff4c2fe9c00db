package repository

import (
	"context"

	"gorm.io/gorm"

	"footfall-service/internal/model"
)

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) Create(ctx context.Context, branch *model.Branch) error {
	return translate(r.db.WithContext(ctx).Create(branch).Error)
}

func (r *BranchRepository) GetByID(ctx context.Context, id string) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&branch).Error; err != nil {
		return nil, translate(err)
	}
	return &branch, nil
}

// Update replaces the branch stored under id; the key itself may change.
func (r *BranchRepository) Update(ctx context.Context, id string, branch *model.Branch) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Branch{}).Where("id = ?", id).Updates(map[string]interface{}{
			"id":            branch.ID,
			"name":          branch.Name,
			"province":      branch.Province,
			"district":      branch.District,
			"competitor":    branch.Competitor,
			"competitor_id": branch.CompetitorID,
			"staff":         branch.Staff,
		})
		if err := affected(res); err != nil {
			return err
		}
		return tx.Where("id = ?", branch.ID).First(branch).Error
	}))
}

func (r *BranchRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Branch{}))
}

func (r *BranchRepository) List(ctx context.Context) ([]model.Branch, error) {
	var branches []model.Branch
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}
