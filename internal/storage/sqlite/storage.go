package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/Nick-Wu5/ceeps/gen/sqlite/model"
	"github.com/Nick-Wu5/ceeps/gen/sqlite/table"
	"github.com/Nick-Wu5/ceeps/internal/config"
	"github.com/Nick-Wu5/ceeps/internal/domain"
	"github.com/Nick-Wu5/ceeps/internal/migrate"
	"github.com/Nick-Wu5/ceeps/internal/storage"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
	now func() time.Time
}

var _ storage.Storage = (*Storage)(nil)

func New(l *logrus.Logger, cfg config.Storage) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "sqlite-storage",
	})
	db, err := sql.Open("sqlite3", buildSource(cfg.SqliteFile))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = migrate.UpSQLite(db)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	err = db.Ping()
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	log.WithField("file", cfg.SqliteFile).Info("storage connected")
	return &Storage{
		db:  db,
		log: log,
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}, nil
}

// buildSource makes every transaction take the write lock up front, so a
// read-modify-write of an aggregate row cannot interleave with another.
func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared&_txlock=immediate&_foreign_keys=1"
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) CreateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	if game.ID == uuid.Nil {
		game.ID = uuid.New()
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = s.now()
	}
	game.UpdatedAt = game.CreatedAt
	err := inTxSimple(ctx, s.db, func(tx *sql.Tx) error {
		dbGame, players := convertGameFromDomain(game)
		_, err := table.Games.
			INSERT(table.Games.AllColumns).
			MODEL(dbGame).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
		return insertPlayers(ctx, tx, players)
	})
	if err != nil {
		return domain.Game{}, domain.NewStorageError("create game", err)
	}
	return game, nil
}

func insertPlayers(ctx context.Context, tx *sql.Tx, players []model.GamePlayers) error {
	if len(players) == 0 {
		return nil
	}
	_, err := table.GamePlayers.
		INSERT(table.GamePlayers.AllColumns).
		MODELS(players).
		ExecContext(ctx, tx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id uuid.UUID) (domain.Game, error) {
	game, err := inTx(ctx, s.db, func(tx *sql.Tx) (domain.Game, error) {
		return getGame(ctx, tx, id)
	})
	return game, wrapNotFound("get game", err)
}

func getGame(ctx context.Context, tx *sql.Tx, id uuid.UUID) (domain.Game, error) {
	var dbGame model.Games
	err := table.Games.
		SELECT(table.Games.AllColumns).
		WHERE(table.Games.ID.EQ(sqlite.String(id.String()))).
		QueryContext(ctx, tx, &dbGame)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Game{}, domain.GameNotFound(id)
		}
		return domain.Game{}, err
	}
	players, err := listPlayers(ctx, tx, []string{dbGame.ID})
	if err != nil {
		return domain.Game{}, err
	}
	return convertGameToDomain(dbGame, players[dbGame.ID])
}

func listPlayers(ctx context.Context, tx *sql.Tx, gameIDs []string) (map[string][]model.GamePlayers, error) {
	byGame := make(map[string][]model.GamePlayers, len(gameIDs))
	if len(gameIDs) == 0 {
		return byGame, nil
	}
	ids := make([]sqlite.Expression, 0, len(gameIDs))
	for _, id := range gameIDs {
		ids = append(ids, sqlite.String(id))
	}
	var players []model.GamePlayers
	err := table.GamePlayers.
		SELECT(table.GamePlayers.AllColumns).
		WHERE(table.GamePlayers.GameID.IN(ids...)).
		ORDER_BY(table.GamePlayers.GameID.ASC(), table.GamePlayers.Team.ASC(), table.GamePlayers.Slot.ASC()).
		QueryContext(ctx, tx, &players)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		byGame[p.GameID] = append(byGame[p.GameID], p)
	}
	return byGame, nil
}

func (s *Storage) UpdateGame(ctx context.Context, game domain.Game) (domain.Game, error) {
	game.UpdatedAt = s.now()
	updated, err := inTx(ctx, s.db, func(tx *sql.Tx) (domain.Game, error) {
		old, err := getGame(ctx, tx, game.ID)
		if err != nil {
			return domain.Game{}, err
		}
		game.CreatedAt = old.CreatedAt
		dbGame, players := convertGameFromDomain(game)
		_, err = table.Games.
			UPDATE(table.Games.MutableColumns.Except(table.Games.CreatedAt)).
			MODEL(dbGame).
			WHERE(table.Games.ID.EQ(sqlite.String(dbGame.ID))).
			ExecContext(ctx, tx)
		if err != nil {
			return domain.Game{}, err
		}
		_, err = table.GamePlayers.
			DELETE().
			WHERE(table.GamePlayers.GameID.EQ(sqlite.String(dbGame.ID))).
			ExecContext(ctx, tx)
		if err != nil {
			return domain.Game{}, err
		}
		if err := insertPlayers(ctx, tx, players); err != nil {
			return domain.Game{}, err
		}
		return game, nil
	})
	return updated, wrapNotFound("update game", err)
}

func (s *Storage) DeleteGame(ctx context.Context, id uuid.UUID) (domain.Game, error) {
	deleted, err := inTx(ctx, s.db, func(tx *sql.Tx) (domain.Game, error) {
		game, err := getGame(ctx, tx, id)
		if err != nil {
			return domain.Game{}, err
		}
		_, err = table.GamePlayers.
			DELETE().
			WHERE(table.GamePlayers.GameID.EQ(sqlite.String(id.String()))).
			ExecContext(ctx, tx)
		if err != nil {
			return domain.Game{}, err
		}
		_, err = table.Games.
			DELETE().
			WHERE(table.Games.ID.EQ(sqlite.String(id.String()))).
			ExecContext(ctx, tx)
		if err != nil {
			return domain.Game{}, err
		}
		return game, nil
	})
	return deleted, wrapNotFound("delete game", err)
}

func (s *Storage) ListGames(ctx context.Context, limit, offset int) ([]domain.Game, error) {
	games, err := inTx(ctx, s.db, func(tx *sql.Tx) ([]domain.Game, error) {
		stmt := table.Games.
			SELECT(table.Games.AllColumns).
			ORDER_BY(table.Games.Date.DESC(), table.Games.CreatedAt.DESC(), table.Games.ID.DESC())
		switch {
		case limit > 0:
			stmt = stmt.LIMIT(int64(limit)).OFFSET(int64(offset))
		case offset > 0:
			stmt = stmt.LIMIT(math.MaxInt32).OFFSET(int64(offset))
		}
		var dbGames []model.Games
		if err := stmt.QueryContext(ctx, tx, &dbGames); err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(dbGames))
		for _, g := range dbGames {
			ids = append(ids, g.ID)
		}
		players, err := listPlayers(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		converted := make([]domain.Game, 0, len(dbGames))
		for _, g := range dbGames {
			game, err := convertGameToDomain(g, players[g.ID])
			if err != nil {
				return nil, err
			}
			converted = append(converted, game)
		}
		return converted, nil
	})
	if err != nil {
		return nil, domain.NewStorageError("list games", err)
	}
	return games, nil
}

func (s *Storage) CountGames(ctx context.Context) (int, error) {
	query, args := table.Games.
		SELECT(sqlite.COUNT(sqlite.STAR)).
		Sql()
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, domain.NewStorageError("count games", err)
	}
	return n, nil
}

func (s *Storage) GetAggregate(ctx context.Context, name string) (domain.PlayerAggregate, error) {
	agg, err := inTx(ctx, s.db, func(tx *sql.Tx) (domain.PlayerAggregate, error) {
		return getAggregate(ctx, tx, name)
	})
	return agg, wrapNotFound("get aggregate", err)
}

func getAggregate(ctx context.Context, tx *sql.Tx, name string) (domain.PlayerAggregate, error) {
	var stats model.PlayerStats
	err := table.PlayerStats.
		SELECT(table.PlayerStats.AllColumns).
		WHERE(table.PlayerStats.PlayerName.EQ(sqlite.String(name))).
		QueryContext(ctx, tx, &stats)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.PlayerAggregate{}, domain.PlayerNotFound(name)
		}
		return domain.PlayerAggregate{}, err
	}
	var games []model.PlayerStatGames
	err = table.PlayerStatGames.
		SELECT(table.PlayerStatGames.AllColumns).
		WHERE(table.PlayerStatGames.PlayerName.EQ(sqlite.String(name))).
		QueryContext(ctx, tx, &games)
	if err != nil {
		return domain.PlayerAggregate{}, err
	}
	return convertAggregateToDomain(stats, games)
}

func (s *Storage) UpdateAggregate(ctx context.Context, name string, fn storage.UpdateFunc) (domain.PlayerAggregate, error) {
	var fnErr error
	agg, err := inTx(ctx, s.db, func(tx *sql.Tx) (domain.PlayerAggregate, error) {
		agg, err := getAggregate(ctx, tx, name)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			agg = domain.NewPlayerAggregate(name)
		case err != nil:
			return domain.PlayerAggregate{}, err
		}
		if fnErr = fn(&agg); fnErr != nil {
			return domain.PlayerAggregate{}, fnErr
		}
		agg.PlayerName = name
		agg.LastUpdated = s.now()
		if err := writeAggregate(ctx, tx, agg); err != nil {
			return domain.PlayerAggregate{}, err
		}
		return agg, nil
	})
	if err != nil {
		if fnErr != nil {
			return domain.PlayerAggregate{}, err
		}
		return domain.PlayerAggregate{}, domain.NewStorageError("update aggregate", err)
	}
	return agg, nil
}

func writeAggregate(ctx context.Context, tx *sql.Tx, agg domain.PlayerAggregate) error {
	stats, games := convertAggregateFromDomain(agg)
	_, err := table.PlayerStats.
		INSERT(table.PlayerStats.AllColumns).
		MODEL(stats).
		ON_CONFLICT(table.PlayerStats.PlayerName).
		DO_UPDATE(sqlite.SET(
			table.PlayerStats.GamesPlayed.SET(table.PlayerStats.EXCLUDED.GamesPlayed),
			table.PlayerStats.GamesWon.SET(table.PlayerStats.EXCLUDED.GamesWon),
			table.PlayerStats.WinRatio.SET(table.PlayerStats.EXCLUDED.WinRatio),
			table.PlayerStats.TotalCupsHit.SET(table.PlayerStats.EXCLUDED.TotalCupsHit),
			table.PlayerStats.CupsHitAvg.SET(table.PlayerStats.EXCLUDED.CupsHitAvg),
			table.PlayerStats.NumberOfScorecards.SET(table.PlayerStats.EXCLUDED.NumberOfScorecards),
			table.PlayerStats.NakedLapsRun.SET(table.PlayerStats.EXCLUDED.NakedLapsRun),
			table.PlayerStats.TotalErrors.SET(table.PlayerStats.EXCLUDED.TotalErrors),
			table.PlayerStats.LastUpdated.SET(table.PlayerStats.EXCLUDED.LastUpdated),
		)).
		ExecContext(ctx, tx)
	if err != nil {
		return err
	}
	_, err = table.PlayerStatGames.
		DELETE().
		WHERE(table.PlayerStatGames.PlayerName.EQ(sqlite.String(agg.PlayerName))).
		ExecContext(ctx, tx)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return nil
	}
	_, err = table.PlayerStatGames.
		INSERT(table.PlayerStatGames.AllColumns).
		MODELS(games).
		ExecContext(ctx, tx)
	return err
}

func (s *Storage) ListAggregates(ctx context.Context) ([]domain.PlayerAggregate, error) {
	aggs, err := inTx(ctx, s.db, func(tx *sql.Tx) ([]domain.PlayerAggregate, error) {
		var stats []model.PlayerStats
		err := table.PlayerStats.
			SELECT(table.PlayerStats.AllColumns).
			ORDER_BY(table.PlayerStats.PlayerName.ASC()).
			QueryContext(ctx, tx, &stats)
		if err != nil {
			return nil, err
		}
		var games []model.PlayerStatGames
		err = table.PlayerStatGames.
			SELECT(table.PlayerStatGames.AllColumns).
			QueryContext(ctx, tx, &games)
		if err != nil {
			return nil, err
		}
		byPlayer := make(map[string][]model.PlayerStatGames, len(stats))
		for _, g := range games {
			byPlayer[g.PlayerName] = append(byPlayer[g.PlayerName], g)
		}
		converted := make([]domain.PlayerAggregate, 0, len(stats))
		for _, st := range stats {
			agg, err := convertAggregateToDomain(st, byPlayer[st.PlayerName])
			if err != nil {
				return nil, err
			}
			converted = append(converted, agg)
		}
		return converted, nil
	})
	if err != nil {
		return nil, domain.NewStorageError("list aggregates", err)
	}
	return aggs, nil
}

func (s *Storage) ListRoster(ctx context.Context) ([]string, error) {
	var players []model.Roster
	err := table.Roster.
		SELECT(table.Roster.AllColumns).
		ORDER_BY(table.Roster.Name.ASC()).
		QueryContext(ctx, s.db, &players)
	if err != nil {
		return nil, domain.NewStorageError("list roster", err)
	}
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	return names, nil
}

func (s *Storage) AddToRoster(ctx context.Context, name string) error {
	res, err := table.Roster.
		INSERT(table.Roster.AllColumns).
		MODEL(model.Roster{Name: name, CreatedAt: s.now()}).
		ON_CONFLICT(table.Roster.Name).
		DO_NOTHING().
		ExecContext(ctx, s.db)
	if err != nil {
		return domain.NewStorageError("add to roster", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewValidationError(domain.ConstraintPlayerName, "%s is already on the roster", name)
	}
	return nil
}

func (s *Storage) RemoveFromRoster(ctx context.Context, name string) error {
	res, err := table.Roster.
		DELETE().
		WHERE(table.Roster.Name.EQ(sqlite.String(name))).
		ExecContext(ctx, s.db)
	if err != nil {
		return domain.NewStorageError("remove from roster", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.PlayerNotFound(name)
	}
	return nil
}

// wrapNotFound wraps err as a storage error unless it is a not found error.
func wrapNotFound(op string, err error) error {
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return domain.NewStorageError(op, err)
}

func inTx[T any](ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) (T, error)) (T, error) {
	var zero T
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	value, err := fn(tx)
	if err != nil {
		return zero, errors.Join(err, tx.Rollback())
	}
	return value, tx.Commit()
}

func inTxSimple(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	_, err := inTx(ctx, db, func(tx *sql.Tx) (struct{}, error) { return struct{}{}, fn(tx) })
	return err
}
