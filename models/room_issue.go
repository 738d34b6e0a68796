package models

import "time"

// RoomIssue is a problem report filed by a teacher against a room. The
// dispatcher works the unresolved queue; resolution records who closed it.
type RoomIssue struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"column:user_id;index;not null" json:"userId"`
	RoomID uint `gorm:"column:room_id;index;not null" json:"roomId"`
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Room   Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	Issues      string `gorm:"column:issues;size:500;not null" json:"issues"`
	Description string `gorm:"column:description;size:1000" json:"description,omitempty"`
	ImagePath   string `gorm:"column:image_path;size:255" json:"imagePath,omitempty"`

	IsResolved   bool       `gorm:"column:is_resolved;default:false" json:"isResolved"`
	ResolvedAt   *time.Time `gorm:"column:resolved_at" json:"resolvedAt,omitempty"`
	ResolvedByID uint       `gorm:"column:resolved_by_id" json:"resolvedById,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
