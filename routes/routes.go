package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"classroom-backend/controllers"
	"classroom-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers into the gin engine.
func SetupRouter(
	bc *controllers.BookingController,
	rc *controllers.RoomController,
	rvc *controllers.ReviewController,
	fc *controllers.FavoriteController,
	ic *controllers.IssueController,
	documentsDir string,
	logger zerolog.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Static("/documents", documentsDir)

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/periods", rc.Periods)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.ListRooms)

			// static segments before /:id
			rooms.GET("/available", rc.AvailableRooms)
			rooms.GET("/buildings", rc.Buildings)
			rooms.GET("/floors", rc.Floors)

			rooms.GET("/:id", rc.GetRoom)
			rooms.POST("", rc.CreateRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeactivateRoom)

			rooms.GET("/:id/periods", rc.AvailablePeriods)
			rooms.GET("/:id/similar", rc.SimilarRooms)
			rooms.GET("/:id/bookings", bc.RoomBookings)

			rooms.GET("/:id/reviews", rvc.ListReviews)
			rooms.POST("/:id/reviews", rvc.CreateReview)
			rooms.POST("/:id/favorite", fc.ToggleFavorite)
			rooms.POST("/:id/issues", ic.CreateIssue)
		}

		issues := api.Group("/issues")
		{
			issues.GET("", ic.ListIssues)

			// static segments before /:id
			issues.GET("/my", ic.MyIssues)

			issues.GET("/:id", ic.GetIssue)
			issues.POST("/:id/resolve", ic.ResolveIssue)
			issues.DELETE("/:id", ic.DeleteIssue)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.ListBookings)

			// static segments before /:id
			bookings.GET("/my", bc.MyBookings)
			bookings.GET("/counts", bc.BookingCounts)
			bookings.GET("/calendar", bc.Calendar)
			bookings.GET("/export", bc.ExportBookings)

			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
			bookings.POST("/:id/reject", bc.RejectBooking)
		}

		api.GET("/favorites", fc.ListFavorites)
		api.DELETE("/reviews/:id", rvc.DeleteReview)
	}

	return r
}
