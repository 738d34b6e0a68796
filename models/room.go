package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

type RoomType string

const (
	RoomTypeLecture    RoomType = "LECTURE"
	RoomTypeComputer   RoomType = "COMPUTER"
	RoomTypeLab        RoomType = "LAB"
	RoomTypeSeminar    RoomType = "SEMINAR"
	RoomTypeConference RoomType = "CONFERENCE"
)

var roomTypeDisplayNames = map[RoomType]string{
	RoomTypeLecture:    "Lecture Hall",
	RoomTypeComputer:   "Computer Lab",
	RoomTypeLab:        "Laboratory",
	RoomTypeSeminar:    "Seminar Room",
	RoomTypeConference: "Conference Room",
}

func (t RoomType) Valid() bool {
	_, ok := roomTypeDisplayNames[t]
	return ok
}

func (t RoomType) DisplayName() string {
	if name, ok := roomTypeDisplayNames[t]; ok {
		return name
	}
	return string(t)
}

type Room struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Number        string   `gorm:"column:number;size:20;uniqueIndex;not null" json:"number"`
	RoomType      RoomType `gorm:"column:room_type;size:20;not null" json:"roomType"`
	Building      string   `gorm:"column:building;size:10" json:"building"`
	Floor         int      `gorm:"column:floor" json:"floor"`
	Capacity      int      `gorm:"column:capacity;not null;default:0" json:"capacity"`
	HasComputers  bool     `gorm:"column:has_computers;default:false" json:"hasComputers"`
	HasProjector  bool     `gorm:"column:has_projector;default:false" json:"hasProjector"`
	HasWhiteboard bool     `gorm:"column:has_whiteboard;default:false" json:"hasWhiteboard"`
	Description   string   `gorm:"column:description;size:500" json:"description,omitempty"`
	ImagePath     string   `gorm:"column:image_path;size:255" json:"imagePath,omitempty"`
	IsActive      bool     `gorm:"column:is_active;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Bookings are owned by the room and go away with it; reviews,
	// favorites and issue reports likewise.
	Bookings  []Booking   `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews   []Review    `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
	Favorites []Favorite  `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
	Issues    []RoomIssue `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeSave derives building and floor from the room number (first
// character is the building code, second the floor digit). Runs on every
// save so a renumbered room moves with its number.
func (r *Room) BeforeSave(_ *gorm.DB) error {
	if len(r.Number) >= 2 {
		r.Building = r.Number[:1]
		if floor, err := strconv.Atoi(r.Number[1:2]); err == nil {
			r.Floor = floor
		}
	}
	return nil
}

func (r *Room) DisplayName() string {
	return "Room " + r.Number + " (" + r.RoomType.DisplayName() + ")"
}
