package web

import (
	"errors"

	"github.com/Nick-Wu5/ceeps/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type errorResponse struct {
	Success    bool       `json:"success"`
	Error      string     `json:"error"`
	Constraint string     `json:"constraint,omitempty"`
	Errors     []string   `json:"errors,omitempty"`
	GameID     *uuid.UUID `json:"game_id,omitempty"`
}

type multierr interface {
	Unwrap() []error
}

func unwrap(err error) []error {
	var merr multierr
	if errors.As(err, &merr) {
		var errs []error
		for _, err := range merr.Unwrap() {
			errs = append(errs, unwrap(err)...)
		}
		return errs
	}
	return []error{err}
}

// newErrorResponse maps err to a status code and a response body. Validation
// errors win over not found, which wins over everything else.
func newErrorResponse(err error) (int, errorResponse) {
	resp := errorResponse{Error: err.Error()}
	if errs := unwrap(err); len(errs) > 1 {
		for _, e := range errs {
			resp.Errors = append(resp.Errors, e.Error())
		}
	}

	var verr *domain.ValidationError
	var ferr *fiber.Error
	switch {
	case errors.As(err, &verr):
		resp.Constraint = verr.Constraint
		return fiber.StatusBadRequest, resp
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, resp
	case errors.As(err, &ferr):
		resp.Error = ferr.Message
		return ferr.Code, resp
	}
	return fiber.StatusInternalServerError, resp
}
