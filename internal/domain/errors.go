package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConsistency = errors.New("inconsistent aggregate")
	ErrStorage     = errors.New("storage failure")
)

// Validation constraints reported by ValidationError.
const (
	ConstraintMissingField    = "missing_field"
	ConstraintTeamSize        = "team_size"
	ConstraintDuplicatePlayer = "duplicate_player"
	ConstraintGuestLimit      = "guest_limit"
	ConstraintUnknownPlayer   = "unknown_player"
	ConstraintMissingStats    = "missing_stats"
	ConstraintNegativeStat    = "negative_stat"
	ConstraintTie             = "tie"
	ConstraintMinimumScore    = "minimum_score"
	ConstraintWinner          = "winner_mismatch"
	ConstraintScore           = "score_mismatch"
	ConstraintScorecard       = "scorecard"
	ConstraintPlayerName      = "player_name"
	ConstraintSortKey         = "sort_key"
	ConstraintPagination      = "pagination"
	ConstraintRatingSystem    = "rating_system"
)

type ValidationError struct {
	Constraint string
	Detail     string
}

func NewValidationError(constraint string, format string, args ...any) *ValidationError {
	return &ValidationError{
		Constraint: constraint,
		Detail:     fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	return e.Constraint + ": " + e.Detail
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type NotFoundError struct {
	Kind string
	Key  string
}

func GameNotFound(id uuid.UUID) *NotFoundError {
	return &NotFoundError{Kind: "game", Key: id.String()}
}

func PlayerNotFound(name string) *NotFoundError {
	return &NotFoundError{Kind: "player", Key: name}
}

func (e *NotFoundError) Error() string {
	return e.Kind + " " + e.Key + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConsistencyError describes a game id in an aggregate that no longer
// supports the player. Recompute logs it and drops the id.
type ConsistencyError struct {
	Player string
	GameID uuid.UUID
	Reason string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("player %s, game %s: %s", e.Player, e.GameID, e.Reason)
}

func (e *ConsistencyError) Is(target error) bool {
	return target == ErrConsistency
}

type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
