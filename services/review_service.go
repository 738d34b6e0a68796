package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"classroom-backend/models"
)

const mysqlDuplicateEntry = 1062

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type CreateReviewRequest struct {
	UserID  uint
	RoomID  uint
	Rating  int
	Comment string
	Issues  string
}

// CreateReview stores a rating for a room. A user reviews each room at
// most once.
func (s *ReviewService) CreateReview(req CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	if len(req.Comment) > 1000 {
		return nil, errors.New("comment must not exceed 1000 characters")
	}

	var room models.Room
	if err := s.db.First(&room, req.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("room %d: %w", req.RoomID, models.ErrNotFound)
		}
		return nil, err
	}

	var existing int64
	err := s.db.Model(&models.Review{}).
		Where("user_id = ? AND room_id = ?", req.UserID, req.RoomID).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("room %d already reviewed by user %d: %w", req.RoomID, req.UserID, models.ErrInvalidState)
	}

	review := &models.Review{
		UserID:  req.UserID,
		RoomID:  req.RoomID,
		Rating:  req.Rating,
		Comment: req.Comment,
		Issues:  req.Issues,
	}
	if err := s.db.Create(review).Error; err != nil {
		// two concurrent first reviews race past the count check and meet
		// the unique (user, room) index instead
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, fmt.Errorf("room %d already reviewed by user %d: %w", req.RoomID, req.UserID, models.ErrInvalidState)
		}
		return nil, err
	}
	return review, nil
}

type ReviewSort string

const (
	ReviewSortNewest  ReviewSort = "newest"
	ReviewSortOldest  ReviewSort = "oldest"
	ReviewSortHighest ReviewSort = "highest"
	ReviewSortLowest  ReviewSort = "lowest"
)

// GetReviewsByRoom lists a room's reviews, optionally filtered to one
// rating value (0 means all), in the requested order.
func (s *ReviewService) GetReviewsByRoom(roomID uint, rating int, sortBy ReviewSort) ([]models.Review, error) {
	q := s.db.Preload("User").Where("room_id = ?", roomID)
	if rating > 0 {
		q = q.Where("rating = ?", rating)
	}

	switch sortBy {
	case ReviewSortOldest:
		q = q.Order("created_at")
	case ReviewSortHighest:
		q = q.Order("rating DESC, created_at DESC")
	case ReviewSortLowest:
		q = q.Order("rating, created_at DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var reviews []models.Review
	err := q.Find(&reviews).Error
	return reviews, err
}

// AverageRating returns a room's mean rating rounded to one decimal, 0.0
// when the room has no reviews.
func (s *ReviewService) AverageRating(roomID uint) (float64, error) {
	var avg *float64
	err := s.db.Model(&models.Review{}).
		Where("room_id = ?", roomID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return math.Round(*avg*10) / 10, nil
}

// DeleteReview removes the user's own review.
func (s *ReviewService) DeleteReview(reviewID, userID uint) error {
	var review models.Review
	if err := s.db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("review %d: %w", reviewID, models.ErrNotFound)
		}
		return err
	}
	if review.UserID != userID {
		return fmt.Errorf("review %d belongs to another user: %w", reviewID, models.ErrForbidden)
	}
	return s.db.Delete(&review).Error
}
