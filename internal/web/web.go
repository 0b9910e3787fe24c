package web

import (
	"context"
	"time"

	"github.com/Nick-Wu5/ceeps/internal/config"
	"github.com/Nick-Wu5/ceeps/internal/domain"
	"github.com/Nick-Wu5/ceeps/internal/metrics"
	"github.com/Nick-Wu5/ceeps/internal/service"
	"github.com/Nick-Wu5/ceeps/internal/web/webpath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Server struct {
	league  *service.LeagueService
	app     *fiber.App
	cfg     config.Server
	log     *logrus.Entry
	metrics *metrics.Recorder
}

func New(league *service.LeagueService, cfg config.Server, l *logrus.Logger, m *metrics.Recorder) *Server {
	server := Server{
		league:  league,
		cfg:     cfg,
		log:     l.WithField("from", "web"),
		metrics: m,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: !cfg.Debug,
		UnescapePath:          true,
		ErrorHandler:          server.handleError,
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Debug}))
	app.Use(server.logRequest)

	app.Get(webpath.Health, func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok", "routes": webpath.Path()})
	})
	app.Get(webpath.Metrics, adaptor.HTTPHandler(m.Handler()))

	app.Use(webpath.Api, server.withTimeout)
	app.Post(webpath.ApiGames, server.handleSubmitGame)
	app.Get(webpath.ApiGames, server.handleRecentGames)
	app.Get(webpath.ApiGame, server.handleGetGame)
	app.Put(webpath.ApiGame, server.handleUpdateGame)
	app.Delete(webpath.ApiGame, server.handleDeleteGame)
	app.Get(webpath.ApiPlayers, server.handleListPlayers)
	app.Post(webpath.ApiPlayers, server.handleAddPlayer)
	app.Delete(webpath.ApiPlayer, server.handleRemovePlayer)
	app.Get(webpath.ApiPlayerStats, server.handlePlayerStats)
	app.Get(webpath.ApiLeaderboard, server.handleLeaderboard)
	app.Get(webpath.ApiRatings, server.handleRatings)
	app.Post(webpath.ApiRecompute, server.handleRecompute)

	server.app = app
	return &server
}

func (s *Server) Serve() error {
	s.log.WithField("addr", s.cfg.Addr).Info("listening")
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

// logRequest runs the error handler itself so the logged status is the one
// the client sees.
func (s *Server) logRequest(ctx *fiber.Ctx) error {
	start := time.Now()
	if err := ctx.Next(); err != nil {
		if herr := s.handleError(ctx, err); herr != nil {
			_ = ctx.SendStatus(fiber.StatusInternalServerError)
		}
	}
	duration := time.Since(start)
	status := ctx.Response().StatusCode()

	s.metrics.RecordRequest(ctx.Method(), ctx.Route().Path, status, duration)
	entry := s.log.WithFields(logrus.Fields{
		"method":   ctx.Method(),
		"path":     ctx.Path(),
		"status":   status,
		"duration": duration,
	})
	if status >= fiber.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request")
	}
	return nil
}

func (s *Server) withTimeout(ctx *fiber.Ctx) error {
	if s.cfg.RequestTimeout <= 0 {
		return ctx.Next()
	}
	c, cancel := context.WithTimeout(ctx.UserContext(), s.cfg.RequestTimeout)
	defer cancel()
	ctx.SetUserContext(c)
	return ctx.Next()
}

func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	status, resp := newErrorResponse(err)
	if status >= fiber.StatusInternalServerError {
		s.log.WithError(err).WithField("path", ctx.Path()).Error("request error")
	}
	return ctx.Status(status).JSON(resp)
}

func parseGameID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid game id "+ctx.Params("id"))
	}
	return id, nil
}

func parseGameInput(ctx *fiber.Ctx) (domain.GameInput, error) {
	var in domain.GameInput
	if err := ctx.BodyParser(&in); err != nil {
		return domain.GameInput{}, fiber.NewError(fiber.StatusBadRequest, "malformed game: "+err.Error())
	}
	return in, nil
}

// gameWriteFailed answers a write whose game was stored but whose
// aggregates were not all updated.
func (s *Server) gameWriteFailed(ctx *fiber.Ctx, game domain.Game, err error) error {
	if game.ID == uuid.Nil {
		return err
	}
	status, resp := newErrorResponse(err)
	resp.GameID = &game.ID
	s.log.WithError(err).WithField("game", game.ID).Error("game stored but aggregates are stale")
	return ctx.Status(status).JSON(resp)
}

func (s *Server) handleSubmitGame(ctx *fiber.Ctx) error {
	in, err := parseGameInput(ctx)
	if err != nil {
		return err
	}
	game, err := s.league.SubmitGame(ctx.UserContext(), in)
	if err != nil {
		return s.gameWriteFailed(ctx, game, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(gameResponse{Success: true, GameID: game.ID})
}

func (s *Server) handleRecentGames(ctx *fiber.Ctx) error {
	req, err := parseListGamesRequest(ctx)
	if err != nil {
		return err
	}
	page, err := s.league.RecentGames(ctx.UserContext(), req.limit, req.offset, req.includeTotal)
	if err != nil {
		return err
	}
	if page.Games == nil {
		page.Games = []domain.Game{}
	}
	if req.includeTotal {
		return ctx.JSON(page)
	}
	return ctx.JSON(page.Games)
}

func (s *Server) handleGetGame(ctx *fiber.Ctx) error {
	id, err := parseGameID(ctx)
	if err != nil {
		return err
	}
	game, err := s.league.GetGame(ctx.UserContext(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(game)
}

func (s *Server) handleUpdateGame(ctx *fiber.Ctx) error {
	id, err := parseGameID(ctx)
	if err != nil {
		return err
	}
	in, err := parseGameInput(ctx)
	if err != nil {
		return err
	}
	game, err := s.league.UpdateGame(ctx.UserContext(), id, in)
	if err != nil {
		return s.gameWriteFailed(ctx, game, err)
	}
	return ctx.JSON(gameResponse{Success: true, GameID: game.ID})
}

func (s *Server) handleDeleteGame(ctx *fiber.Ctx) error {
	id, err := parseGameID(ctx)
	if err != nil {
		return err
	}
	if err := s.league.DeleteGame(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(successResponse{Success: true})
}

func (s *Server) handleListPlayers(ctx *fiber.Ctx) error {
	players, err := s.league.GetAllPlayers(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(players)
}

func (s *Server) handleAddPlayer(ctx *fiber.Ctx) error {
	var req createPlayer
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed player: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return err
	}
	name, err := s.league.AddPlayer(ctx.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(playerResponse{Success: true, Name: name})
}

func (s *Server) handleRemovePlayer(ctx *fiber.Ctx) error {
	if err := s.league.RemovePlayer(ctx.UserContext(), ctx.Params("name")); err != nil {
		return err
	}
	return ctx.JSON(successResponse{Success: true})
}

func (s *Server) handlePlayerStats(ctx *fiber.Ctx) error {
	agg, err := s.league.GetPlayerStats(ctx.UserContext(), ctx.Params("name"))
	if err != nil {
		return err
	}
	return ctx.JSON(agg)
}

func (s *Server) handleLeaderboard(ctx *fiber.Ctx) error {
	req, err := parseLeaderboardRequest(ctx)
	if err != nil {
		return err
	}
	rows, err := s.league.GetLeaderboard(ctx.UserContext(), req.sortBy, req.limit)
	if err != nil {
		return err
	}
	return ctx.JSON(rows)
}

func (s *Server) handleRatings(ctx *fiber.Ctx) error {
	rows, err := s.league.GetRatings(ctx.UserContext(), ctx.Query("system"))
	if err != nil {
		return err
	}
	return ctx.JSON(rows)
}

func (s *Server) handleRecompute(ctx *fiber.Ctx) error {
	var req recompute
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed recompute request: "+err.Error())
		}
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := s.league.Recompute(ctx.UserContext(), req.Players...); err != nil {
		return err
	}
	return ctx.JSON(successResponse{Success: true})
}
