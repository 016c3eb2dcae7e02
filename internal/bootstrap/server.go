package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/agencydesk/api"
	"github.com/Domenick1991/agencydesk/config"
	"github.com/Domenick1991/agencydesk/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, bookings store.BookingAccess, inventory store.InventoryAccess, settings store.SettingsAccess) error {
	router := NewRouter(logger, bookings, inventory, settings)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	logger.Info("http server started", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires every handler group onto a fresh gin engine.
func NewRouter(logger *zap.Logger, bookings store.BookingAccess, inventory store.InventoryAccess, settings store.SettingsAccess) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(logger))

	api.NewAuthHandler(bookings).Register(router.Group("/auth"))
	api.NewBookingHandler(bookings).Register(router.Group("/bookings"))
	api.NewInventoryHandler(inventory).Register(router.Group("/inventory"))
	api.NewReportHandler(bookings).Register(router.Group("/reports"))
	api.NewSettingsHandler(settings).Register(router.Group("/settings"))

	return router
}
