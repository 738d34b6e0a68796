package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classroom-backend/models"
)

func TestIsRoomBookedFollowsStatus(t *testing.T) {
	fx := newFixture(t)
	teacher := seedTeacher(t, fx.db, "teacher@test.edu")
	room := seedRoom(t, fx.db, "1101", models.RoomTypeLecture, 100)
	date := futureDate(2)

	booked, err := fx.rooms.IsRoomBooked(room.ID, date, 2)
	require.NoError(t, err)
	assert.False(t, booked)

	booking, err := fx.bookings.CreateBooking(CreateBookingRequest{
		TeacherID: teacher.ID, RoomID: room.ID, BookingDate: date,
		PeriodNumber: 2, Purpose: "Linear algebra lecture",
	})
	require.NoError(t, err)

	booked, err = fx.rooms.IsRoomBooked(room.ID, date, 2)
	require.NoError(t, err)
	assert.True(t, booked)

	// other periods and dates stay free
	booked, err = fx.rooms.IsRoomBooked(room.ID, date, 3)
	require.NoError(t, err)
	assert.False(t, booked)
	booked, err = fx.rooms.IsRoomBooked(room.ID, futureDate(3), 2)
	require.NoError(t, err)
	assert.False(t, booked)

	// a cancelled booking releases the slot
	_, err = fx.bookings.CancelBooking(booking.ID, teacher.ID)
	require.NoError(t, err)
	booked, err = fx.rooms.IsRoomBooked(room.ID, date, 2)
	require.NoError(t, err)
	assert.False(t, booked)
}

func TestIsRoomBookedExcluding(t *testing.T) {
	fx := newFixture(t)
	teacher := seedTeacher(t, fx.db, "teacher@test.edu")
	room := seedRoom(t, fx.db, "1101", models.RoomTypeLecture, 100)
	date := futureDate(2)

	booking, err := fx.bookings.CreateBooking(CreateBookingRequest{
		TeacherID: teacher.ID, RoomID: room.ID, BookingDate: date,
		PeriodNumber: 2, Purpose: "Linear algebra lecture",
	})
	require.NoError(t, err)

	// a booking never conflicts with itself
	booked, err := fx.rooms.IsRoomBookedExcluding(room.ID, date, 2, booking.ID)
	require.NoError(t, err)
	assert.False(t, booked)

	booked, err = fx.rooms.IsRoomBookedExcluding(room.ID, date, 2, booking.ID+100)
	require.NoError(t, err)
	assert.True(t, booked)
}

func TestAvailablePeriods(t *testing.T) {
	fx := newFixture(t)
	teacher := seedTeacher(t, fx.db, "teacher@test.edu")
	room := seedRoom(t, fx.db, "1101", models.RoomTypeLecture, 100)
	date := futureDate(2)

	for _, period := range []int{2, 5} {
		_, err := fx.bookings.CreateBooking(CreateBookingRequest{
			TeacherID: teacher.ID, RoomID: room.ID, BookingDate: date,
			PeriodNumber: period, Purpose: "Scheduled class",
		})
		require.NoError(t, err)
	}

	free, err := fx.rooms.AvailablePeriods(room.ID, date)
	require.NoError(t, err)
	require.Len(t, free, 6)
	got := make([]int, 0, len(free))
	for _, p := range free {
		got = append(got, p.Number)
	}
	assert.Equal(t, []int{1, 3, 4, 6, 7, 8}, got)

	// repeated reads with no intervening writes are identical
	again, err := fx.rooms.AvailablePeriods(room.ID, date)
	require.NoError(t, err)
	assert.Equal(t, free, again)

	_, err = fx.rooms.AvailablePeriods(999, date)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAvailableRooms(t *testing.T) {
	fx := newFixture(t)
	teacher := seedTeacher(t, fx.db, "teacher@test.edu")
	free := seedRoom(t, fx.db, "1101", models.RoomTypeLecture, 100)
	taken := seedRoom(t, fx.db, "1102", models.RoomTypeLecture, 80)
	inactive := seedRoom(t, fx.db, "1103", models.RoomTypeLecture, 60)
	require.NoError(t, fx.rooms.DeactivateRoom(inactive.ID))
	date := futureDate(2)

	_, err := fx.bookings.CreateBooking(CreateBookingRequest{
		TeacherID: teacher.ID, RoomID: taken.ID, BookingDate: date,
		PeriodNumber: 4, Purpose: "Scheduled class",
	})
	require.NoError(t, err)

	rooms, err := fx.rooms.AvailableRooms(date, 4)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, free.ID, rooms[0].ID)

	// other periods still offer both active rooms
	rooms, err = fx.rooms.AvailableRooms(date, 5)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	_, err = fx.rooms.AvailableRooms(date, 0)
	assert.ErrorIs(t, err, models.ErrInvalidPeriod)
}

func TestFilterRooms(t *testing.T) {
	fx := newFixture(t)
	seedRoom(t, fx.db, "1101", models.RoomTypeLecture, 100)
	seedRoom(t, fx.db, "1201", models.RoomTypeSeminar, 30)
	seedRoom(t, fx.db, "2101", models.RoomTypeComputer, 25)

	all, err := fx.rooms.FilterRooms("", -1)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	building1, err := fx.rooms.FilterRooms("1", -1)
	require.NoError(t, err)
	assert.Len(t, building1, 2)

	floor2, err := fx.rooms.FilterRooms("1", 2)
	require.NoError(t, err)
	require.Len(t, floor2, 1)
	assert.Equal(t, "1201", floor2[0].Number)
}

func TestFilterRoomsWithAvailability(t *testing.T) {
	fx := newFixture(t)
	teacher := seedTeacher(t, fx.db, "teacher@test.edu")
	roomA := seedRoom(t, fx.db, "1101", models.RoomTypeLecture, 100)
	roomB := seedRoom(t, fx.db, "1102", models.RoomTypeLecture, 80)
	date := futureDate(2)
	period := 3

	_, err := fx.bookings.CreateBooking(CreateBookingRequest{
		TeacherID: teacher.ID, RoomID: roomA.ID, BookingDate: date,
		PeriodNumber: period, Purpose: "Scheduled class",
	})
	require.NoError(t, err)

	// date + period: the booked room disappears
	rooms, err := fx.rooms.FilterRoomsWithAvailability("", -1, &date, &period)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, roomB.ID, rooms[0].ID)

	// date only: one taken period still leaves free ones that day
	rooms, err = fx.rooms.FilterRoomsWithAvailability("", -1, &date, nil)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	// fully booked day drops the room
	for _, p := range []int{1, 2, 4, 5, 6, 7, 8} {
		_, err := fx.bookings.CreateBooking(CreateBookingRequest{
			TeacherID: teacher.ID, RoomID: roomA.ID, BookingDate: date,
			PeriodNumber: p, Purpose: "Scheduled class",
		})
		require.NoError(t, err)
	}
	rooms, err = fx.rooms.FilterRoomsWithAvailability("", -1, &date, nil)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, roomB.ID, rooms[0].ID)

	badPeriod := 9
	_, err = fx.rooms.FilterRoomsWithAvailability("", -1, &date, &badPeriod)
	assert.ErrorIs(t, err, models.ErrInvalidPeriod)
}

func TestBuildingsAndFloors(t *testing.T) {
	fx := newFixture(t)
	seedRoom(t, fx.db, "1101", models.RoomTypeLecture, 100)
	seedRoom(t, fx.db, "1201", models.RoomTypeSeminar, 30)
	seedRoom(t, fx.db, "3102", models.RoomTypeLab, 16)

	buildings, err := fx.rooms.Buildings()
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, buildings)

	floors, err := fx.rooms.Floors("1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, floors)

	allFloors, err := fx.rooms.Floors("")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, allFloors)
}

func TestSimilarRooms(t *testing.T) {
	fx := newFixture(t)
	teacher := seedTeacher(t, fx.db, "teacher@test.edu")
	ref := seedRoom(t, fx.db, "2101", models.RoomTypeComputer, 25)
	twin := seedRoom(t, fx.db, "2102", models.RoomTypeComputer, 25)
	other := seedRoom(t, fx.db, "3201", models.RoomTypeLecture, 80)
	date := futureDate(2)
	period := 2

	ranked, err := fx.rooms.SimilarRooms(ref.ID, &date, &period, 0, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, twin.ID, ranked[0].Room.ID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)

	// booking the twin's slot drags it below the free room
	_, err = fx.bookings.CreateBooking(CreateBookingRequest{
		TeacherID: teacher.ID, RoomID: twin.ID, BookingDate: date,
		PeriodNumber: period, Purpose: "Scheduled class",
	})
	require.NoError(t, err)

	ranked, err = fx.rooms.SimilarRooms(ref.ID, &date, &period, 0, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, other.ID, ranked[0].Room.ID)

	// limit applies after ordering
	top, err := fx.rooms.SimilarRooms(ref.ID, &date, &period, 0, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, other.ID, top[0].Room.ID)

	_, err = fx.rooms.SimilarRooms(999, nil, nil, 0, 10)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSimilarRoomsUsesRatings(t *testing.T) {
	fx := newFixture(t)
	alice := seedTeacher(t, fx.db, "alice@test.edu")
	bob := seedTeacher(t, fx.db, "bob@test.edu")
	ref := seedRoom(t, fx.db, "2101", models.RoomTypeComputer, 25)
	plain := seedRoom(t, fx.db, "2102", models.RoomTypeComputer, 25)
	rated := seedRoom(t, fx.db, "2103", models.RoomTypeComputer, 25)

	for _, userID := range []uint{alice.ID, bob.ID} {
		_, err := fx.reviews.CreateReview(CreateReviewRequest{
			UserID: userID, RoomID: rated.ID, Rating: 5, Comment: "Great projector",
		})
		require.NoError(t, err)
	}

	ranked, err := fx.rooms.SimilarRooms(ref.ID, nil, nil, 0, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, rated.ID, ranked[0].Room.ID)
	assert.Equal(t, plain.ID, ranked[1].Room.ID)
	assert.Equal(t, ranked[1].Score+30, ranked[0].Score)
}

func TestDeactivateRoomHidesFromSuggestions(t *testing.T) {
	fx := newFixture(t)
	ref := seedRoom(t, fx.db, "2101", models.RoomTypeComputer, 25)
	hidden := seedRoom(t, fx.db, "2102", models.RoomTypeComputer, 25)
	require.NoError(t, fx.rooms.DeactivateRoom(hidden.ID))

	ranked, err := fx.rooms.SimilarRooms(ref.ID, nil, nil, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, ranked)

	assert.ErrorIs(t, fx.rooms.DeactivateRoom(999), models.ErrNotFound)
}

func TestUpdateRoomRederivesLocation(t *testing.T) {
	fx := newFixture(t)
	room := seedRoom(t, fx.db, "1101", models.RoomTypeLecture, 100)
	assert.Equal(t, "1", room.Building)
	assert.Equal(t, 1, room.Floor)

	room.Number = "3205"
	require.NoError(t, fx.rooms.UpdateRoom(&room))

	reloaded, err := fx.rooms.GetRoomByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, "3", reloaded.Building)
	assert.Equal(t, 2, reloaded.Floor)
}
