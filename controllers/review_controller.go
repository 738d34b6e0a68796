package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"classroom-backend/services"
	"classroom-backend/utils"
)

type CreateReviewPayload struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
	Issues  string `json:"issues"`
}

type ReviewController struct {
	ReviewSvc *services.ReviewService
}

func NewReviewController(reviewSvc *services.ReviewService) *ReviewController {
	return &ReviewController{ReviewSvc: reviewSvc}
}

// CreateReview handles POST /api/rooms/:id/reviews.
func (ctl *ReviewController) CreateReview(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	roomID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payload CreateReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	review, err := ctl.ReviewSvc.CreateReview(services.CreateReviewRequest{
		UserID:  userID,
		RoomID:  roomID,
		Rating:  payload.Rating,
		Comment: payload.Comment,
		Issues:  payload.Issues,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, review)
}

// ListReviews handles GET /api/rooms/:id/reviews with optional rating and
// sort query params.
func (ctl *ReviewController) ListReviews(c *gin.Context) {
	roomID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	rating := 0
	if raw := c.Query("rating"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 5 {
			utils.JSONError(c, http.StatusBadRequest, "rating must be between 1 and 5")
			return
		}
		rating = v
	}

	reviews, err := ctl.ReviewSvc.GetReviewsByRoom(roomID, rating, services.ReviewSort(c.Query("sort")))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	avg, err := ctl.ReviewSvc.AverageRating(roomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"reviews":       reviews,
		"averageRating": avg,
	})
}

// DeleteReview handles DELETE /api/reviews/:id.
func (ctl *ReviewController) DeleteReview(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	reviewID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.ReviewSvc.DeleteReview(reviewID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": reviewID})
}
