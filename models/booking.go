package models

import (
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	StatusCreated   BookingStatus = "CREATED"
	StatusPending   BookingStatus = "PENDING"
	StatusApproved  BookingStatus = "APPROVED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCancelled BookingStatus = "CANCELLED"
)

var bookingStatusDisplayNames = map[BookingStatus]string{
	StatusCreated:   "Created",
	StatusPending:   "Pending Review",
	StatusApproved:  "Approved",
	StatusRejected:  "Rejected",
	StatusCancelled: "Cancelled",
}

var bookingStatusDescriptions = map[BookingStatus]string{
	StatusCreated:   "The booking has been created and is awaiting automatic processing",
	StatusPending:   "The booking is awaiting dispatcher review",
	StatusApproved:  "The booking has been approved and the room is reserved",
	StatusRejected:  "The booking has been rejected",
	StatusCancelled: "The booking has been cancelled by the teacher",
}

// ActiveStatuses are the statuses that occupy a slot. A room is free for a
// date and period only when no booking in one of these statuses holds it.
var ActiveStatuses = []BookingStatus{StatusCreated, StatusPending, StatusApproved}

func (s BookingStatus) DisplayName() string {
	if name, ok := bookingStatusDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

func (s BookingStatus) Description() string {
	return bookingStatusDescriptions[s]
}

// Active reports whether the status occupies its slot.
func (s BookingStatus) Active() bool {
	return s == StatusCreated || s == StatusPending || s == StatusApproved
}

// Cancellable reports whether a teacher may still cancel the booking.
// Any slot-occupying booking can be withdrawn.
func (s BookingStatus) Cancellable() bool {
	return s.Active()
}

// Rejectable reports whether a dispatcher may still reject the booking.
func (s BookingStatus) Rejectable() bool {
	return s == StatusCreated || s == StatusPending
}

type Booking struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	TeacherID uint `gorm:"column:teacher_id;index;not null" json:"teacherId"`
	RoomID    uint `gorm:"column:room_id;index:idx_bookings_slot,priority:1;not null" json:"roomId"`
	Room      Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	BookingDate  datatypes.Date `gorm:"column:booking_date;index:idx_bookings_slot,priority:2;not null" json:"bookingDate"`
	PeriodNumber int            `gorm:"column:period_number;index:idx_bookings_slot,priority:3;not null" json:"periodNumber"`
	StartTime    string         `gorm:"column:start_time;size:5;not null" json:"startTime"`
	EndTime      string         `gorm:"column:end_time;size:5;not null" json:"endTime"`

	Purpose string `gorm:"column:purpose;size:500;not null" json:"purpose"`
	Notes   string `gorm:"column:notes;size:1000" json:"notes,omitempty"`

	Status          BookingStatus `gorm:"column:status;size:20;index;not null;default:CREATED" json:"status"`
	RejectionReason string        `gorm:"column:rejection_reason;size:500" json:"rejectionReason,omitempty"`
	ProcessedBy     string        `gorm:"column:processed_by;size:100" json:"processedBy,omitempty"`
	ProcessedAt     *time.Time    `gorm:"column:processed_at" json:"processedAt,omitempty"`

	ReferenceCode string `gorm:"column:reference_code;size:36;uniqueIndex" json:"referenceCode"`

	DocumentPath        string     `gorm:"column:document_path;size:255" json:"documentPath,omitempty"`
	DocumentGeneratedAt *time.Time `gorm:"column:document_generated_at" json:"documentGeneratedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetPeriod assigns the period and copies its time bounds onto the booking.
// The copies are what calendar queries order by; they are never edited
// independently of the period number.
func (b *Booking) SetPeriod(p Period) {
	b.PeriodNumber = p.Number
	b.StartTime = p.StartTime
	b.EndTime = p.EndTime
}

// Period resolves the booking's period from the catalog.
func (b *Booking) Period() (Period, error) {
	return PeriodByNumber(b.PeriodNumber)
}

// DateOnly converts a timestamp to the date-only form stored in
// booking_date, anchored at midnight UTC.
func DateOnly(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// Today returns the current date in date-only form.
func Today() datatypes.Date {
	return DateOnly(time.Now())
}

// FormatDate renders a date-only value as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}
