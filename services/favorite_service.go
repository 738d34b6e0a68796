package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"classroom-backend/models"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// ToggleFavorite adds the room to the user's favorites, or removes it when
// already present. Returns true when the room ends up favorited.
func (s *FavoriteService) ToggleFavorite(userID, roomID uint) (bool, error) {
	var room models.Room
	if err := s.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("room %d: %w", roomID, models.ErrNotFound)
		}
		return false, err
	}

	var existing models.Favorite
	err := s.db.Where("user_id = ? AND room_id = ?", userID, roomID).First(&existing).Error
	switch {
	case err == nil:
		if err := s.db.Delete(&existing).Error; err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		fav := models.Favorite{UserID: userID, RoomID: roomID}
		if err := s.db.Create(&fav).Error; err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

func (s *FavoriteService) GetFavorites(userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := s.db.Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

// IsFavorite reports whether the user has favorited the room.
func (s *FavoriteService) IsFavorite(userID, roomID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).Error
	return count > 0, err
}
