package model

import "time"

type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSupervisor Role = "Supervisor"
	RoleStaff      Role = "Staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleStaff:
		return true
	}
	return false
}

type User struct {
	Username     string    `gorm:"type:varchar(64);primaryKey" json:"username"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	Branch       *string   `gorm:"type:varchar(64)" json:"branch"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	IsFirstLogin bool      `gorm:"not null;default:true" json:"is_first_login"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
