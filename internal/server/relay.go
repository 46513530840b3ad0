package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/basel-ax/storyteller/internal/domain"
	"github.com/basel-ax/storyteller/internal/lib/sl"
)

// Relay accepts {imageBase64, vibeKeyword}, forwards it to the storyteller and
// answers with {output} or a {message} envelope.
func (s *Server) Relay(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		c.Response().Header().Set(echo.HeaderAllow, http.MethodPost)
		return c.JSON(http.StatusMethodNotAllowed, domain.ErrorResponse{Message: domain.MessageMethodNotAllowed})
	}

	req := domain.StoryRequest{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		s.log.Debug("undecodable relay body", sl.Err(err))
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Message: domain.MessageMissingInput})
	}

	resp, err := s.storyteller.Tell(c.Request().Context(), req)
	if err != nil {
		return c.JSON(statusFor(err), domain.ErrorResponse{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}

func statusFor(err error) int {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
