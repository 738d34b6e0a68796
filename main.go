package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"classroom-backend/config"
	"classroom-backend/controllers"
	"classroom-backend/metrics"
	"classroom-backend/routes"
	"classroom-backend/services"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg(".env not found, continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		logger.Fatal().Err(err).Msg("database connect failed")
	}
	db := config.DB
	logger.Info().Msg("database connection established")

	metrics.Register()

	documentsDir := os.Getenv("DOCUMENTS_DIR")
	if documentsDir == "" {
		documentsDir = "./documents"
	}

	reviewService := services.NewReviewService(db)
	roomService := services.NewRoomService(db, reviewService)
	favoriteService := services.NewFavoriteService(db)
	issueService := services.NewIssueService(db)
	confirmations := services.NewExcelConfirmationService(documentsDir)
	bookingService := services.NewBookingService(db, roomService, confirmations, logger)
	exportService := services.NewExportService(bookingService)

	bookingController := controllers.NewBookingController(bookingService, exportService)
	roomController := controllers.NewRoomController(roomService, favoriteService)
	reviewController := controllers.NewReviewController(reviewService)
	favoriteController := controllers.NewFavoriteController(favoriteService)
	issueController := controllers.NewIssueController(issueService)

	router := routes.SetupRouter(bookingController, roomController, reviewController, favoriteController, issueController, documentsDir, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server stopped")
}
