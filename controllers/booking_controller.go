package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"classroom-backend/models"
	"classroom-backend/services"
	"classroom-backend/utils"
)

type CreateBookingPayload struct {
	RoomID       uint   `json:"roomId" binding:"required"`
	BookingDate  string `json:"bookingDate" binding:"required"`
	PeriodNumber int    `json:"periodNumber" binding:"required"`
	Purpose      string `json:"purpose" binding:"required"`
	Notes        string `json:"notes"`
}

type RejectBookingPayload struct {
	Reason      string `json:"reason" binding:"required"`
	ProcessedBy string `json:"processedBy" binding:"required"`
}

type BookingController struct {
	BookingSvc *services.BookingService
	ExportSvc  *services.ExportService
}

func NewBookingController(bookingSvc *services.BookingService, exportSvc *services.ExportService) *BookingController {
	return &BookingController{BookingSvc: bookingSvc, ExportSvc: exportSvc}
}

// CreateBooking handles POST /api/bookings. A taken slot answers 409 with
// the conflict details; a booking that loses the auto-approval race is
// still a 201 whose body shows status REJECTED.
func (ctl *BookingController) CreateBooking(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}

	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(payload.BookingDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "bookingDate must be YYYY-MM-DD")
		return
	}

	booking, err := ctl.BookingSvc.CreateBooking(services.CreateBookingRequest{
		TeacherID:    userID,
		RoomID:       payload.RoomID,
		BookingDate:  date,
		PeriodNumber: payload.PeriodNumber,
		Purpose:      payload.Purpose,
		Notes:        payload.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/:id.
func (ctl *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	booking, err := ctl.BookingSvc.GetBookingByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// ListBookings handles GET /api/bookings with optional status, roomId,
// teacherId, from and to query filters.
func (ctl *BookingController) ListBookings(c *gin.Context) {
	filter, err := bookingFilterFromQuery(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	bookings, err := ctl.BookingSvc.FilterBookings(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// MyBookings handles GET /api/bookings/my.
func (ctl *BookingController) MyBookings(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	bookings, err := ctl.BookingSvc.GetBookingsByTeacher(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// RoomBookings handles GET /api/rooms/:id/bookings.
func (ctl *BookingController) RoomBookings(c *gin.Context) {
	roomID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	bookings, err := ctl.BookingSvc.GetBookingsByRoom(roomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (ctl *BookingController) CancelBooking(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	booking, err := ctl.BookingSvc.CancelBooking(id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// RejectBooking handles POST /api/bookings/:id/reject (dispatcher).
func (ctl *BookingController) RejectBooking(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payload RejectBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	booking, err := ctl.BookingSvc.RejectBooking(id, payload.Reason, payload.ProcessedBy)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// BookingCounts handles GET /api/bookings/counts for the dispatcher
// dashboard.
func (ctl *BookingController) BookingCounts(c *gin.Context) {
	counts, err := ctl.BookingSvc.CountByStatus()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, counts)
}

// Calendar handles GET /api/bookings/calendar?from=..&to=..&roomId=..
func (ctl *BookingController) Calendar(c *gin.Context) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "from must be YYYY-MM-DD")
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "to must be YYYY-MM-DD")
		return
	}
	var roomID uint
	if raw := c.Query("roomId"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid roomId")
			return
		}
		roomID = uint(v)
	}

	bookings, err := ctl.BookingSvc.CalendarEvents(from, to, roomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// ExportBookings handles GET /api/bookings/export, streaming the filtered
// list as an xlsx download.
func (ctl *BookingController) ExportBookings(c *gin.Context) {
	filter, err := bookingFilterFromQuery(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	buf, err := ctl.ExportSvc.ExportBookings(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

func bookingFilterFromQuery(c *gin.Context) (services.BookingFilter, error) {
	var filter services.BookingFilter

	if raw := c.Query("status"); raw != "" {
		filter.Status = models.BookingStatus(raw)
	}
	if raw := c.Query("roomId"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid roomId")
		}
		filter.RoomID = uint(v)
	}
	if raw := c.Query("teacherId"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid teacherId")
		}
		filter.TeacherID = uint(v)
	}
	if raw := c.Query("from"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			return filter, fmt.Errorf("from must be YYYY-MM-DD")
		}
		filter.From = &d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			return filter, fmt.Errorf("to must be YYYY-MM-DD")
		}
		filter.To = &d
	}

	return filter, nil
}
