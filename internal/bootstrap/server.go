package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avelora/airdesk/api"
	"github.com/avelora/airdesk/config"
	"github.com/avelora/airdesk/internal/auth"
	"github.com/avelora/airdesk/internal/domain"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Flights    *api.FlightHandler
	Bookings   *api.BookingHandler
	Payments   *api.PaymentHandler
	Passengers *api.PassengerHandler
}

// NewRouter assembles the gin engine: public flight search, an
// authenticated group for customer operations and an admin group layered
// on top of it.
func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	router := gin.Default()

	h.Flights.Register(router.Group("/flights"))

	authed := router.Group("/", auth.Middleware(cfg.Auth.JWTSecret))
	h.Bookings.Register(authed.Group("/bookings"))
	h.Payments.Register(authed.Group("/payments"))
	h.Passengers.Register(authed.Group("/passengers"))

	admin := authed.Group("/", auth.RequireRole(domain.RoleAdmin))
	h.Flights.RegisterAdmin(admin.Group("/flights"))
	h.Bookings.RegisterAdmin(admin.Group("/bookings"))
	h.Payments.RegisterAdmin(admin.Group("/payments"))

	if cfg.HTTP.SwaggerURL != "" {
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(cfg.HTTP.SwaggerURL))))
	}

	return router
}

// Run serves the router and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, router *gin.Engine) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
