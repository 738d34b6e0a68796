package models

import "time"

type Favorite struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"column:user_id;uniqueIndex:idx_favorites_user_room;not null" json:"userId"`
	RoomID uint `gorm:"column:room_id;uniqueIndex:idx_favorites_user_room;not null" json:"roomId"`
	Room   Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
