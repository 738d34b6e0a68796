package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"classroom-backend/services"
	"classroom-backend/utils"
)

type FavoriteController struct {
	FavoriteSvc *services.FavoriteService
}

func NewFavoriteController(favoriteSvc *services.FavoriteService) *FavoriteController {
	return &FavoriteController{FavoriteSvc: favoriteSvc}
}

// ToggleFavorite handles POST /api/rooms/:id/favorite.
func (ctl *FavoriteController) ToggleFavorite(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	roomID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	favorited, err := ctl.FavoriteSvc.ToggleFavorite(userID, roomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"roomId": roomID, "favorited": favorited})
}

// ListFavorites handles GET /api/favorites.
func (ctl *FavoriteController) ListFavorites(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		return
	}
	favorites, err := ctl.FavoriteSvc.GetFavorites(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, favorites)
}
