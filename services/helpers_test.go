package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"classroom-backend/config"
	"classroom-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func seedTeacher(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "Teacher",
		Role:         models.RoleTeacher,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedRoom(t *testing.T, db *gorm.DB, number string, roomType models.RoomType, capacity int) models.Room {
	t.Helper()
	room := models.Room{
		Number:   number,
		RoomType: roomType,
		Capacity: capacity,
		IsActive: true,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func futureDate(days int) datatypes.Date {
	return models.DateOnly(time.Now().AddDate(0, 0, days))
}

// fakeConfirmations records generation calls instead of writing files.
type fakeConfirmations struct {
	calls []uint
	err   error
}

func (f *fakeConfirmations) GenerateConfirmation(b *models.Booking) (string, error) {
	f.calls = append(f.calls, b.ID)
	if f.err != nil {
		return "", f.err
	}
	return "/tmp/confirmation-" + b.ReferenceCode + ".xlsx", nil
}

type fixture struct {
	db        *gorm.DB
	rooms     *RoomService
	reviews   *ReviewService
	favorites *FavoriteService
	bookings  *BookingService
	issues    *IssueService
	docs      *fakeConfirmations
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	reviews := NewReviewService(db)
	rooms := NewRoomService(db, reviews)
	docs := &fakeConfirmations{}
	bookings := NewBookingService(db, rooms, docs, zerolog.Nop())
	return &fixture{
		db:        db,
		rooms:     rooms,
		reviews:   reviews,
		favorites: NewFavoriteService(db),
		bookings:  bookings,
		issues:    NewIssueService(db),
		docs:      docs,
	}
}
