package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"footfall-service/internal/model"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) Get(ctx context.Context, id string) (*model.DashboardFigures, error) {
	var figures model.DashboardFigures
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&figures).Error; err != nil {
		return nil, translate(err)
	}
	return &figures, nil
}

// Save upserts the row; the last writer wins.
func (r *DashboardRepository) Save(ctx context.Context, figures *model.DashboardFigures) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(figures).Error
}
