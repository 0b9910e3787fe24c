package web

import (
	"errors"
	"strconv"

	"github.com/Nick-Wu5/ceeps/internal/domain"

	"github.com/gofiber/fiber/v2"
)

type listGamesRequest struct {
	limit        int
	offset       int
	includeTotal bool
}

func parseListGamesRequest(ctx *fiber.Ctx) (listGamesRequest, error) {
	var err error
	limit, lerr := queryInt(ctx, "limit")
	err = errors.Join(err, lerr)
	offset, oerr := queryInt(ctx, "offset")
	err = errors.Join(err, oerr)
	includeTotal, terr := queryBool(ctx, "include_total")
	err = errors.Join(err, terr)
	if err != nil {
		return listGamesRequest{}, err
	}
	return listGamesRequest{
		limit:        limit,
		offset:       offset,
		includeTotal: includeTotal,
	}, nil
}

type leaderboardRequest struct {
	sortBy string
	limit  int
}

func parseLeaderboardRequest(ctx *fiber.Ctx) (leaderboardRequest, error) {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return leaderboardRequest{}, err
	}
	return leaderboardRequest{
		sortBy: ctx.Query("sort_by"),
		limit:  limit,
	}, nil
}

func queryInt(ctx *fiber.Ctx, key string) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, domain.NewValidationError(domain.ConstraintPagination, "%s must be a non-negative integer, got %q", key, raw)
	}
	return v, nil
}

func queryBool(ctx *fiber.Ctx, key string) (bool, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.NewValidationError(domain.ConstraintPagination, "%s must be a boolean, got %q", key, raw)
	}
	return v, nil
}
