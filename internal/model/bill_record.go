package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	BranchID  string    `gorm:"type:varchar(64);not null;index" json:"branch_id"`
	Date      string    `gorm:"type:varchar(10);not null;index" json:"date"`
	Period    string    `gorm:"type:varchar(20);not null" json:"period"`
	Slot      string    `gorm:"type:varchar(20);not null" json:"slot"`
	BillCount int       `gorm:"not null;check:bill_count >= 0" json:"bill_count"`
	Note      *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedBy string    `gorm:"type:varchar(64);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (BillRecord) TableName() string {
	return "bill_records"
}

func (b *BillRecord) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b BillRecord) Field(name string) any {
	if name == "billCount" {
		return b.BillCount
	}
	return nil
}
