package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classroom-backend/metrics"
	"classroom-backend/models"
)

const systemActor = "SYSTEM"

// ConfirmationGenerator produces a confirmation document for an approved
// booking and returns its path. Failures never revoke the approval.
type ConfirmationGenerator interface {
	GenerateConfirmation(booking *models.Booking) (string, error)
}

// BookingService runs the reservation workflow: create with conflict
// detection, the double-checked auto-approval, dispatcher rejection and
// teacher cancellation, plus the query suite behind the list endpoints.
type BookingService struct {
	db     *gorm.DB
	rooms  *RoomService
	docs   ConfirmationGenerator
	logger zerolog.Logger
}

func NewBookingService(db *gorm.DB, rooms *RoomService, docs ConfirmationGenerator, logger zerolog.Logger) *BookingService {
	return &BookingService{db: db, rooms: rooms, docs: docs, logger: logger}
}

// lockForUpdate adds a row lock to the query. SQLite has no FOR UPDATE;
// its writes serialize on the database lock instead, so the clause is
// skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

type CreateBookingRequest struct {
	TeacherID    uint
	RoomID       uint
	BookingDate  datatypes.Date
	PeriodNumber int
	Purpose      string
	Notes        string
}

func (r *CreateBookingRequest) validate() error {
	if len(r.Purpose) < 5 || len(r.Purpose) > 500 {
		return errors.New("purpose must be between 5 and 500 characters")
	}
	if len(r.Notes) > 1000 {
		return errors.New("notes must not exceed 1000 characters")
	}
	if time.Time(r.BookingDate).Before(time.Time(models.Today())) {
		return errors.New("booking date must not be in the past")
	}
	return nil
}

// CreateBooking validates the request, refuses taken slots with a
// ConflictError, inserts the booking as CREATED and immediately runs
// auto-approval. The returned booking carries its settled status.
func (s *BookingService) CreateBooking(req CreateBookingRequest) (*models.Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	period, err := models.PeriodByNumber(req.PeriodNumber)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetRoomByID(req.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, fmt.Errorf("room %s is not available for booking", room.Number)
	}

	var teacher models.User
	if err := s.db.First(&teacher, req.TeacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("teacher %d: %w", req.TeacherID, models.ErrNotFound)
		}
		return nil, err
	}

	booked, err := s.rooms.IsRoomBooked(req.RoomID, req.BookingDate, req.PeriodNumber)
	if err != nil {
		return nil, err
	}
	if booked {
		metrics.BookingConflicts.Inc()
		return nil, &models.ConflictError{
			RoomNumber: room.Number,
			Date:       models.FormatDate(req.BookingDate),
			TimeRange:  period.TimeRange(),
		}
	}

	booking := &models.Booking{
		TeacherID:     req.TeacherID,
		RoomID:        req.RoomID,
		BookingDate:   req.BookingDate,
		Purpose:       req.Purpose,
		Notes:         req.Notes,
		Status:        models.StatusCreated,
		ReferenceCode: uuid.NewString(),
	}
	booking.SetPeriod(period)

	if err := s.db.Create(booking).Error; err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("booking_id", booking.ID).
		Uint("room_id", booking.RoomID).
		Str("date", models.FormatDate(booking.BookingDate)).
		Int("period", booking.PeriodNumber).
		Msg("booking created")

	if err := s.AutoApprove(booking.ID); err != nil {
		return nil, err
	}
	return s.GetBookingByID(booking.ID)
}

// AutoApprove settles a CREATED booking. Inside a transaction it locks the
// booking row and re-checks the slot excluding the booking itself; when a
// competitor already holds the slot the booking is rejected with a system
// reason, otherwise it is approved. Losing the race is a valid outcome of
// a successful create, not an error. Calling it on an already settled
// booking changes nothing.
func (s *BookingService) AutoApprove(bookingID uint) error {
	var settled models.Booking
	alreadySettled := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %d: %w", bookingID, models.ErrNotFound)
			}
			return err
		}
		if booking.Status != models.StatusCreated {
			alreadySettled = true
			return nil
		}

		// A competitor is an approved holder of the slot, or an earlier
		// unsettled one (smaller id). The precedence rule makes the race
		// outcome deterministic: of any number of concurrent rechecks the
		// earliest-created booking is the only one that counts zero
		// competitors, so exactly one approves.
		var competitors int64
		err := slotHolders(tx, booking.RoomID, booking.BookingDate, booking.PeriodNumber).
			Where("id <> ?", booking.ID).
			Where("status = ? OR id < ?", models.StatusApproved, booking.ID).
			Count(&competitors).Error
		if err != nil {
			return err
		}

		now := time.Now()
		if competitors > 0 {
			booking.Status = models.StatusRejected
			booking.RejectionReason = "Room became unavailable"
		} else {
			booking.Status = models.StatusApproved
		}
		booking.ProcessedBy = systemActor
		booking.ProcessedAt = &now

		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		settled = booking
		return nil
	})
	if err != nil {
		return err
	}
	if alreadySettled {
		return nil
	}

	metrics.BookingsCreated.WithLabelValues(string(settled.Status)).Inc()
	s.logger.Info().
		Uint("booking_id", settled.ID).
		Str("status", string(settled.Status)).
		Msg("booking settled")

	if settled.Status == models.StatusApproved {
		s.generateConfirmation(settled.ID)
	}
	return nil
}

// generateConfirmation is best effort; a failure is logged and the
// approval stands.
func (s *BookingService) generateConfirmation(bookingID uint) {
	if s.docs == nil {
		return
	}
	booking, err := s.GetBookingByID(bookingID)
	if err != nil {
		s.logger.Error().Err(err).Uint("booking_id", bookingID).Msg("confirmation skipped, booking reload failed")
		return
	}

	path, err := s.docs.GenerateConfirmation(booking)
	if err != nil {
		metrics.DocumentsGenerated.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Uint("booking_id", bookingID).Msg("confirmation generation failed")
		return
	}

	now := time.Now()
	err = s.db.Model(&models.Booking{}).Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"document_path":         path,
			"document_generated_at": now,
		}).Error
	if err != nil {
		s.logger.Error().Err(err).Uint("booking_id", bookingID).Msg("confirmation path not stored")
		return
	}
	metrics.DocumentsGenerated.WithLabelValues("ok").Inc()
}

// RejectBooking is the dispatcher's manual decision. Only CREATED and
// PENDING bookings can be rejected.
func (s *BookingService) RejectBooking(bookingID uint, reason, processedBy string) (*models.Booking, error) {
	if reason == "" {
		return nil, errors.New("rejection reason is required")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %d: %w", bookingID, models.ErrNotFound)
			}
			return err
		}
		if !booking.Status.Rejectable() {
			return fmt.Errorf("booking %d is %s: %w", bookingID, booking.Status, models.ErrInvalidState)
		}

		now := time.Now()
		booking.Status = models.StatusRejected
		booking.RejectionReason = reason
		booking.ProcessedBy = processedBy
		booking.ProcessedAt = &now
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.DispatcherDecisions.WithLabelValues("rejected").Inc()
	s.logger.Info().Uint("booking_id", bookingID).Str("by", processedBy).Msg("booking rejected")
	return s.GetBookingByID(bookingID)
}

// CancelBooking lets the owning teacher withdraw a CREATED or APPROVED
// booking whose date has not passed. The comparison is date-only; a
// same-day booking stays cancellable regardless of the time of day.
func (s *BookingService) CancelBooking(bookingID, userID uint) (*models.Booking, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("booking %d: %w", bookingID, models.ErrNotFound)
			}
			return err
		}
		if booking.TeacherID != userID {
			return fmt.Errorf("booking %d belongs to another teacher: %w", bookingID, models.ErrForbidden)
		}
		if !booking.Status.Cancellable() {
			return fmt.Errorf("booking %d is %s: %w", bookingID, booking.Status, models.ErrInvalidState)
		}
		if time.Time(booking.BookingDate).Before(time.Time(models.Today())) {
			return fmt.Errorf("booking %d is in the past: %w", bookingID, models.ErrInvalidState)
		}

		now := time.Now()
		booking.Status = models.StatusCancelled
		booking.ProcessedAt = &now
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCancelled.Inc()
	s.logger.Info().Uint("booking_id", bookingID).Uint("user_id", userID).Msg("booking cancelled")
	return s.GetBookingByID(bookingID)
}

func (s *BookingService) GetBookingByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Room").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking %d: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) GetBookingsByTeacher(teacherID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Room").
		Where("teacher_id = ?", teacherID).
		Order("booking_date DESC, created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetBookingsByRoom(roomID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Room").
		Where("room_id = ?", roomID).
		Order("booking_date DESC, period_number").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetBookingsByStatus(status models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Room").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetAllBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Room").Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

// BookingFilter narrows the dispatcher's booking list. Zero values leave a
// dimension unconstrained.
type BookingFilter struct {
	Status    models.BookingStatus
	RoomID    uint
	TeacherID uint
	From      *datatypes.Date
	To        *datatypes.Date
}

func (s *BookingService) FilterBookings(f BookingFilter) ([]models.Booking, error) {
	q := s.db.Preload("Room")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.TeacherID != 0 {
		q = q.Where("teacher_id = ?", f.TeacherID)
	}
	if f.From != nil {
		q = q.Where("booking_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("booking_date <= ?", *f.To)
	}
	var bookings []models.Booking
	err := q.Order("booking_date DESC, created_at DESC").Find(&bookings).Error
	return bookings, err
}

// CountByStatus returns booking counts per status for the dispatcher
// dashboard, zero-filled for statuses with no rows.
func (s *BookingService) CountByStatus() (map[models.BookingStatus]int64, error) {
	type row struct {
		Status models.BookingStatus
		Count  int64
	}
	var rows []row
	err := s.db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[models.BookingStatus]int64{
		models.StatusCreated:   0,
		models.StatusPending:   0,
		models.StatusApproved:  0,
		models.StatusRejected:  0,
		models.StatusCancelled: 0,
	}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// CalendarEvents lists active bookings in a date range, ordered by date
// and start time, optionally for one room.
func (s *BookingService) CalendarEvents(from, to datatypes.Date, roomID uint) ([]models.Booking, error) {
	q := s.db.Preload("Room").
		Where("booking_date BETWEEN ? AND ?", from, to).
		Where("status IN ?", models.ActiveStatuses)
	if roomID != 0 {
		q = q.Where("room_id = ?", roomID)
	}
	var bookings []models.Booking
	err := q.Order("booking_date, start_time").Find(&bookings).Error
	return bookings, err
}

// ActiveBookingsForRoomDate lists the slot-occupying bookings of a room on
// one date, in period order.
func (s *BookingService) ActiveBookingsForRoomDate(roomID uint, date datatypes.Date) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Where("room_id = ? AND booking_date = ? AND status IN ?", roomID, date, models.ActiveStatuses).
		Order("period_number").
		Find(&bookings).Error
	return bookings, err
}
