package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventGroup string

const (
	GroupCustomer EventGroup = "customer"
	GroupVehicle  EventGroup = "vehicle"
	GroupProduct  EventGroup = "product"
)

const (
	TypeMale    = "male"
	TypeFemale  = "female"
	TypeCar     = "car"
	TypeMoto    = "moto"
	TypeWalk    = "walk"
	TypeFood    = "food"
	TypeNonFood = "nonfood"
	TypeDrink   = "drink"
)

const (
	DirectionLeft  = "left"
	DirectionRight = "right"
)

var groupTypes = map[EventGroup][]string{
	GroupCustomer: {TypeMale, TypeFemale},
	GroupVehicle:  {TypeCar, TypeMoto, TypeWalk},
	GroupProduct:  {TypeFood, TypeNonFood, TypeDrink},
}

// ValidEventType reports whether typ belongs to group.
func ValidEventType(group EventGroup, typ string) bool {
	for _, t := range groupTypes[group] {
		if t == typ {
			return true
		}
	}
	return false
}

type TrafficEvent struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	BranchID  string     `gorm:"type:varchar(64);not null;index" json:"branch_id"`
	Date      string     `gorm:"type:varchar(10);not null;index" json:"date"`
	Period    string     `gorm:"type:varchar(20);not null" json:"period"`
	Slot      string     `gorm:"type:varchar(20);not null" json:"slot"`
	Group     EventGroup `gorm:"column:type_group;type:varchar(20);not null" json:"group"`
	Type      string     `gorm:"type:varchar(20);not null" json:"type"`
	Direction *string    `gorm:"type:varchar(10)" json:"direction,omitempty"`
	Cups      int        `gorm:"not null;default:0" json:"cups"`
	Age       string     `gorm:"type:varchar(32)" json:"age,omitempty"`
	Career    string     `gorm:"type:varchar(100)" json:"career,omitempty"`
	CreatedBy string     `gorm:"type:varchar(64);not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (TrafficEvent) TableName() string {
	return "traffic_events"
}

func (e *TrafficEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Field exposes numeric-ish columns by name for lenient totals.
func (e TrafficEvent) Field(name string) any {
	switch name {
	case "cups":
		return e.Cups
	case "age":
		return e.Age
	}
	return nil
}
