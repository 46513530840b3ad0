package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/basel-ax/storyteller/internal/domain"
	"github.com/basel-ax/storyteller/internal/lib/sl"
	"github.com/basel-ax/storyteller/internal/web"
)

// LegacyRelayPath is the path the first version of the form posted to
const LegacyRelayPath = "/api/storyteller"

// Storyteller is what the relay forwards requests to
type Storyteller interface {
	Tell(ctx context.Context, req domain.StoryRequest) (*domain.StoryResponse, error)
}

// Server is the HTTP relay together with the embedded client form
type Server struct {
	e           *echo.Echo
	storyteller Storyteller
	log         *slog.Logger
}

// New builds the router: request ids, access log and panic recovery,
// the relay on both paths and the form at "/".
func New(storyteller Storyteller, log *slog.Logger) *Server {
	s := &Server{
		e:           echo.New(),
		storyteller: storyteller,
		log:         log.With(sl.Module("http")),
	}
	s.e.HideBanner = true
	s.e.HidePort = true

	s.e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogStatus:     true,
		LogLatency:    true,
		LogRequestID:  true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: s.logRequest,
	}))
	s.e.Use(middleware.Recover())

	s.e.Any(domain.RelayPath, s.Relay)
	s.e.Any(LegacyRelayPath, s.Relay)
	s.e.StaticFS("/", web.Assets())

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start blocks until the server stops. A shutdown is not reported as an error.
func (s *Server) Start(addr string) error {
	s.log.Info("listening", slog.String("addr", addr))
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) logRequest(_ echo.Context, v middleware.RequestLoggerValues) error {
	log := s.log.With(
		slog.String("method", v.Method),
		slog.String("uri", v.URI),
		slog.Int("status", v.Status),
		slog.Duration("latency", v.Latency),
		slog.String("request_id", v.RequestID),
	)
	if v.Error != nil {
		log.Error("request", sl.Err(v.Error))
		return nil
	}
	log.Info("request")
	return nil
}
