package web

import (
	"errors"

	"github.com/Nick-Wu5/ceeps/internal/domain"
	"github.com/Nick-Wu5/ceeps/internal/normalize"

	"github.com/google/uuid"
)

type gameResponse struct {
	Success bool      `json:"success"`
	GameID  uuid.UUID `json:"game_id"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type createPlayer struct {
	Name string `json:"name"`
}

var ErrEmptyName = errors.New("player name must not be empty")

func (c createPlayer) Validate() error {
	if normalize.Trim(c.Name) == "" {
		return domain.NewValidationError(domain.ConstraintPlayerName, "%s", ErrEmptyName)
	}
	return nil
}

type playerResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
}

type recompute struct {
	Players []string `json:"players"`
}

func (r recompute) Validate() error {
	var err error
	for _, p := range r.Players {
		if normalize.Trim(p) == "" {
			err = errors.Join(err, domain.NewValidationError(domain.ConstraintPlayerName, "%s", ErrEmptyName))
		}
	}
	return err
}
