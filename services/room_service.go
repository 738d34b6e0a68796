package services

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"classroom-backend/models"
)

// RoomService answers availability questions and manages the room catalog.
// IsRoomBooked is the single availability primitive; every other query
// iterates it or applies the same active-status predicate.
type RoomService struct {
	db      *gorm.DB
	reviews *ReviewService
}

func NewRoomService(db *gorm.DB, reviews *ReviewService) *RoomService {
	return &RoomService{db: db, reviews: reviews}
}

func (s *RoomService) GetRoomByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("room %d: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) GetAllRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.Order("number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetActiveRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.Where("is_active = ?", true).Order("number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) CreateRoom(room *models.Room) error {
	if !room.RoomType.Valid() {
		return fmt.Errorf("unknown room type %q", room.RoomType)
	}
	if room.Capacity < 0 {
		return errors.New("capacity must not be negative")
	}
	return s.db.Create(room).Error
}

// UpdateRoom saves through GORM's Save so the BeforeSave hook re-derives
// building and floor when the number changed.
func (s *RoomService) UpdateRoom(room *models.Room) error {
	if !room.RoomType.Valid() {
		return fmt.Errorf("unknown room type %q", room.RoomType)
	}
	if room.Capacity < 0 {
		return errors.New("capacity must not be negative")
	}
	return s.db.Save(room).Error
}

// DeactivateRoom hides a room from availability and suggestions. Existing
// bookings are left untouched.
func (s *RoomService) DeactivateRoom(id uint) error {
	res := s.db.Model(&models.Room{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("room %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// slotHolders narrows a booking query to the active-status rows occupying
// a slot. Every occupancy check, including the transaction-scoped
// auto-approval recheck, builds on this one scope so the semantics cannot
// drift apart.
func slotHolders(db *gorm.DB, roomID uint, date datatypes.Date, periodNumber int) *gorm.DB {
	return db.Model(&models.Booking{}).
		Where("room_id = ? AND booking_date = ? AND period_number = ? AND status IN ?",
			roomID, date, periodNumber, models.ActiveStatuses)
}

// IsRoomBooked reports whether an active-status booking holds the exact
// room, date and period.
func (s *RoomService) IsRoomBooked(roomID uint, date datatypes.Date, periodNumber int) (bool, error) {
	var count int64
	err := slotHolders(s.db, roomID, date, periodNumber).Count(&count).Error
	return count > 0, err
}

// IsRoomBookedExcluding is IsRoomBooked minus one booking id, so a booking
// never conflicts with itself.
func (s *RoomService) IsRoomBookedExcluding(roomID uint, date datatypes.Date, periodNumber int, excludeID uint) (bool, error) {
	var count int64
	err := slotHolders(s.db, roomID, date, periodNumber).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count > 0, err
}

// AvailablePeriods returns the free periods of a room on a date, in
// catalog order. Walks the catalog against IsRoomBooked so occupancy
// semantics never drift from the conflict check.
func (s *RoomService) AvailablePeriods(roomID uint, date datatypes.Date) ([]models.Period, error) {
	if _, err := s.GetRoomByID(roomID); err != nil {
		return nil, err
	}

	free := make([]models.Period, 0, 8)
	for _, p := range models.AllPeriods() {
		booked, err := s.IsRoomBooked(roomID, date, p.Number)
		if err != nil {
			return nil, err
		}
		if !booked {
			free = append(free, p)
		}
	}
	return free, nil
}

// AvailableRooms returns the active rooms free for a date and period.
func (s *RoomService) AvailableRooms(date datatypes.Date, periodNumber int) ([]models.Room, error) {
	if _, err := models.PeriodByNumber(periodNumber); err != nil {
		return nil, err
	}

	rooms, err := s.GetActiveRooms()
	if err != nil {
		return nil, err
	}

	out := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		booked, err := s.IsRoomBooked(room.ID, date, periodNumber)
		if err != nil {
			return nil, err
		}
		if !booked {
			out = append(out, room)
		}
	}
	return out, nil
}

// FilterRooms narrows active rooms by building and floor. Empty building or
// a negative floor leaves that dimension unconstrained.
func (s *RoomService) FilterRooms(building string, floor int) ([]models.Room, error) {
	q := s.db.Where("is_active = ?", true)
	if building != "" {
		q = q.Where("building = ?", building)
	}
	if floor >= 0 {
		q = q.Where("floor = ?", floor)
	}
	var rooms []models.Room
	err := q.Order("number").Find(&rooms).Error
	return rooms, err
}

// FilterRoomsWithAvailability combines the building/floor filter with a
// slot check. date and period are both optional: with both set, rooms free
// for that exact slot; with only date, rooms with any free period that day;
// with only period, rooms free today at that period.
func (s *RoomService) FilterRoomsWithAvailability(building string, floor int, date *datatypes.Date, periodNumber *int) ([]models.Room, error) {
	rooms, err := s.FilterRooms(building, floor)
	if err != nil {
		return nil, err
	}
	if date == nil && periodNumber == nil {
		return rooms, nil
	}

	if periodNumber != nil {
		if _, err := models.PeriodByNumber(*periodNumber); err != nil {
			return nil, err
		}
	}

	checkDate := models.Today()
	if date != nil {
		checkDate = *date
	}

	out := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		var keep bool
		if periodNumber != nil {
			booked, err := s.IsRoomBooked(room.ID, checkDate, *periodNumber)
			if err != nil {
				return nil, err
			}
			keep = !booked
		} else {
			free, err := s.AvailablePeriods(room.ID, checkDate)
			if err != nil {
				return nil, err
			}
			keep = len(free) > 0
		}
		if keep {
			out = append(out, room)
		}
	}
	return out, nil
}

// Buildings lists the distinct building codes of active rooms, sorted.
func (s *RoomService) Buildings() ([]string, error) {
	var buildings []string
	err := s.db.Model(&models.Room{}).
		Where("is_active = ?", true).
		Distinct("building").
		Order("building").
		Pluck("building", &buildings).Error
	return buildings, err
}

// Floors lists the distinct floors of active rooms, optionally within one
// building.
func (s *RoomService) Floors(building string) ([]int, error) {
	q := s.db.Model(&models.Room{}).Where("is_active = ?", true)
	if building != "" {
		q = q.Where("building = ?", building)
	}
	var floors []int
	err := q.Distinct("floor").Order("floor").Pluck("floor", &floors).Error
	if err != nil {
		return nil, err
	}
	sort.Ints(floors)
	return floors, nil
}

// SimilarRooms ranks alternative rooms for the given one. With date and
// period supplied the slot check feeds the score; without them similarity
// comes from features and ratings alone.
func (s *RoomService) SimilarRooms(roomID uint, date *datatypes.Date, periodNumber *int, offset, limit int) ([]RankedRoom, error) {
	ref, err := s.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if periodNumber != nil {
		if _, err := models.PeriodByNumber(*periodNumber); err != nil {
			return nil, err
		}
	}

	candidates, err := s.GetActiveRooms()
	if err != nil {
		return nil, err
	}

	slotKnown := date != nil && periodNumber != nil
	slotFree := make(map[uint]bool, len(candidates))
	ratings := make(map[uint]float64, len(candidates))
	for _, c := range candidates {
		if c.ID == ref.ID {
			continue
		}
		if slotKnown {
			booked, err := s.IsRoomBooked(c.ID, *date, *periodNumber)
			if err != nil {
				return nil, err
			}
			slotFree[c.ID] = !booked
		}
		rating, err := s.reviews.AverageRating(c.ID)
		if err != nil {
			return nil, err
		}
		ratings[c.ID] = rating
	}

	return RankRooms(*ref, candidates,
		func(r models.Room) SlotAvailability {
			return SlotAvailability{Known: slotKnown, Free: slotFree[r.ID]}
		},
		func(r models.Room) float64 { return ratings[r.ID] },
		offset, limit), nil
}
