package models

import "time"

type UserRole string

const (
	RoleTeacher    UserRole = "TEACHER"
	RoleDispatcher UserRole = "DISPATCHER"
	RoleAdmin      UserRole = "ADMIN"
)

type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Email        string   `gorm:"column:email;size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"column:password_hash;size:100;not null" json:"-"`
	FirstName    string   `gorm:"column:first_name;size:50;not null" json:"firstName"`
	LastName     string   `gorm:"column:last_name;size:50;not null" json:"lastName"`
	Phone        string   `gorm:"column:phone;size:20" json:"phone,omitempty"`
	Role         UserRole `gorm:"column:role;size:20;not null;default:TEACHER" json:"role"`
	IsActive     bool     `gorm:"column:is_active;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
