package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"classroom-backend/models"
	"classroom-backend/services"
	"classroom-backend/utils"
)

type RoomPayload struct {
	Number        string          `json:"number" binding:"required"`
	RoomType      models.RoomType `json:"roomType" binding:"required"`
	Capacity      int             `json:"capacity"`
	HasComputers  bool            `json:"hasComputers"`
	HasProjector  bool            `json:"hasProjector"`
	HasWhiteboard bool            `json:"hasWhiteboard"`
	Description   string          `json:"description"`
	ImagePath     string          `json:"imagePath"`
}

type RoomController struct {
	RoomSvc     *services.RoomService
	FavoriteSvc *services.FavoriteService
}

func NewRoomController(roomSvc *services.RoomService, favoriteSvc *services.FavoriteService) *RoomController {
	return &RoomController{RoomSvc: roomSvc, FavoriteSvc: favoriteSvc}
}

// ListRooms handles GET /api/rooms with optional building, floor, date and
// period filters. date and period narrow the list to rooms with matching
// availability.
func (ctl *RoomController) ListRooms(c *gin.Context) {
	building := c.Query("building")
	floor := -1
	if raw := c.Query("floor"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid floor")
			return
		}
		floor = v
	}

	var date *datatypes.Date
	if raw := c.Query("date"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = &d
	}
	var period *int
	if raw := c.Query("period"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid period")
			return
		}
		period = &v
	}

	rooms, err := ctl.RoomSvc.FilterRoomsWithAvailability(building, floor, date, period)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id. When the caller identifies
// themselves the payload carries their favorite flag.
func (ctl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	room, err := ctl.RoomSvc.GetRoomByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	favorited := false
	if raw := c.GetHeader("X-User-ID"); raw != "" {
		if userID, err := strconv.ParseUint(raw, 10, 64); err == nil && userID > 0 {
			favorited, err = ctl.FavoriteSvc.IsFavorite(uint(userID), id)
			if err != nil {
				respondServiceError(c, err)
				return
			}
		}
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"room": room, "favorited": favorited})
}

// CreateRoom handles POST /api/rooms (admin).
func (ctl *RoomController) CreateRoom(c *gin.Context) {
	var payload RoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	room := models.Room{
		Number:        payload.Number,
		RoomType:      payload.RoomType,
		Capacity:      payload.Capacity,
		HasComputers:  payload.HasComputers,
		HasProjector:  payload.HasProjector,
		HasWhiteboard: payload.HasWhiteboard,
		Description:   payload.Description,
		ImagePath:     payload.ImagePath,
		IsActive:      true,
	}
	if err := ctl.RoomSvc.CreateRoom(&room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// UpdateRoom handles PUT /api/rooms/:id (admin). Building and floor are
// re-derived from the number by the model hook.
func (ctl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	room, err := ctl.RoomSvc.GetRoomByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var payload RoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	room.Number = payload.Number
	room.RoomType = payload.RoomType
	room.Capacity = payload.Capacity
	room.HasComputers = payload.HasComputers
	room.HasProjector = payload.HasProjector
	room.HasWhiteboard = payload.HasWhiteboard
	room.Description = payload.Description
	room.ImagePath = payload.ImagePath

	if err := ctl.RoomSvc.UpdateRoom(room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DeactivateRoom handles DELETE /api/rooms/:id (admin).
func (ctl *RoomController) DeactivateRoom(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.RoomSvc.DeactivateRoom(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deactivated": id})
}

// AvailablePeriods handles GET /api/rooms/:id/periods?date=YYYY-MM-DD.
func (ctl *RoomController) AvailablePeriods(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	periods, err := ctl.RoomSvc.AvailablePeriods(id, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, periods)
}

// AvailableRooms handles GET /api/rooms/available?date=..&period=N.
func (ctl *RoomController) AvailableRooms(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	period, err := strconv.Atoi(c.Query("period"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid period")
		return
	}
	rooms, err := ctl.RoomSvc.AvailableRooms(date, period)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// Buildings handles GET /api/rooms/buildings.
func (ctl *RoomController) Buildings(c *gin.Context) {
	buildings, err := ctl.RoomSvc.Buildings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, buildings)
}

// Floors handles GET /api/rooms/floors?building=X.
func (ctl *RoomController) Floors(c *gin.Context) {
	floors, err := ctl.RoomSvc.Floors(c.Query("building"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, floors)
}

// SimilarRooms handles GET /api/rooms/:id/similar with optional date,
// period, offset and limit.
func (ctl *RoomController) SimilarRooms(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var date *datatypes.Date
	if raw := c.Query("date"); raw != "" {
		d, err := parseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = &d
	}
	var period *int
	if raw := c.Query("period"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid period")
			return
		}
		period = &v
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid offset")
			return
		}
		offset = v
	}
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	ranked, err := ctl.RoomSvc.SimilarRooms(id, date, period, offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, ranked)
}

// Periods handles GET /api/periods, the fixed catalog.
func (ctl *RoomController) Periods(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, models.AllPeriods())
}
