package model

import "time"

type Branch struct {
	ID           string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Province     string    `gorm:"type:varchar(255)" json:"province"`
	District     string    `gorm:"type:varchar(255)" json:"district"`
	Competitor   string    `gorm:"type:varchar(255)" json:"competitor"`
	CompetitorID string    `gorm:"type:varchar(64)" json:"competitor_id"`
	Staff        string    `gorm:"type:varchar(255)" json:"staff"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Branch) TableName() string {
	return "branches"
}
