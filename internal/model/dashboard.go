package model

import "time"

const DefaultDashboardID = "default"

// DashboardFigures are the headline numbers on the home screen, edited by hand.
type DashboardFigures struct {
	ID        string    `gorm:"type:varchar(32);primaryKey" json:"id"`
	AsOf      string    `gorm:"type:varchar(32)" json:"as_of"`
	AvgStores int       `gorm:"not null;default:0" json:"avg_stores"`
	CompareTo string    `gorm:"type:varchar(32)" json:"compare_to"`
	TC7       int       `gorm:"column:tc7;not null;default:0" json:"tc7"`
	TC7Delta  int       `gorm:"column:tc7_delta;not null;default:0" json:"tc7_delta"`
	TCCJ      int       `gorm:"column:tccj;not null;default:0" json:"tccj"`
	TCCJDelta int       `gorm:"column:tccj_delta;not null;default:0" json:"tccj_delta"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DashboardFigures) TableName() string {
	return "dashboard_figures"
}

// Diff is own bill count minus competitor bill count.
func (d DashboardFigures) Diff() int {
	return d.TC7 - d.TCCJ
}
