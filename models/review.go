package models

import "time"

type Review struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"column:user_id;uniqueIndex:idx_reviews_user_room;not null" json:"userId"`
	RoomID uint `gorm:"column:room_id;uniqueIndex:idx_reviews_user_room;not null" json:"roomId"`
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Rating  int    `gorm:"column:rating;not null" json:"rating"`
	Comment string `gorm:"column:comment;size:1000" json:"comment,omitempty"`
	Issues  string `gorm:"column:issues;size:1000" json:"issues,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
