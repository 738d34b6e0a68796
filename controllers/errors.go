package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"classroom-backend/models"
	"classroom-backend/utils"
)

// respondServiceError maps the service error taxonomy to HTTP. Anything
// unmatched is treated as a bad request rather than leaking as a 500,
// matching how validation errors surface from the services.
func respondServiceError(c *gin.Context, err error) {
	var conflict *models.ConflictError
	switch {
	case errors.As(err, &conflict):
		utils.JSONErrorCode(c, http.StatusConflict, "error.bookingConflict", conflict.Error())
	case errors.Is(err, models.ErrInvalidState):
		utils.JSONErrorCode(c, http.StatusConflict, "error.invalidState", err.Error())
	case errors.Is(err, models.ErrForbidden):
		utils.JSONErrorCode(c, http.StatusForbidden, "error.forbidden", err.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.notFound", err.Error())
	case errors.Is(err, models.ErrInvalidPeriod):
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPeriod", err.Error())
	default:
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

func parseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return datatypes.Date{}, err
	}
	return models.DateOnly(t), nil
}

// userIDFrom resolves the acting user. Authentication lives upstream; the
// gateway forwards the identity in the X-User-ID header, with a userId
// query fallback for tooling.
func userIDFrom(c *gin.Context) (uint, bool) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		raw = c.Query("userId")
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		utils.JSONError(c, http.StatusBadRequest, "missing or invalid user id")
		return 0, false
	}
	return uint(v), true
}
