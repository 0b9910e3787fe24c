package postgres

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/Nick-Wu5/ceeps/gen/ceeps/public/model"
	"github.com/Nick-Wu5/ceeps/gen/ceeps/public/table"
	"github.com/Nick-Wu5/ceeps/internal/config"
	"github.com/Nick-Wu5/ceeps/internal/domain"
	"github.com/Nick-Wu5/ceeps/internal/migrate"
	"github.com/Nick-Wu5/ceeps/internal/storage"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	_ "github.com/lib/pq" // postgresql driver
	"github.com/sirupsen/logrus"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
	now func() time.Time
}

var _ storage.Storage = (*Storage)(nil)

func New(ctx context.Context, l *logrus.Logger, cfg config.Storage) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "postgres-storage",
	})
	dsn := cfg.PostgresDSN
	if dsn == "" {
		dsn = NewURLConnectionString(
			"postgres",
			cfg.Postgres.Host+":"+strconv.Itoa(cfg.Postgres.Port),
			cfg.Postgres.DBName,
			cfg.Postgres.Username,
			cfg.Postgres.Password,
			cfg.Postgres.SSLMode,
		)
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	if err := migrate.UpPostgres(db); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	log.Info("storage connected")
	return &Storage{
		db:  db,
		log: log,
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}, nil
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
		return getGame(ctx, tx, id, false)
	})
	return game, wrapNotFound("get game", err)
}

func getGame(ctx context.Context, tx *sql.Tx, id uuid.UUID, lock bool) (domain.Game, error) {
	stmt := table.Games.
		SELECT(table.Games.AllColumns).
		WHERE(table.Games.ID.EQ(postgres.UUID(id)))
	if lock {
		stmt = stmt.FOR(postgres.UPDATE())
	}
	var dbGame model.Games
	if err := stmt.QueryContext(ctx, tx, &dbGame); err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Game{}, domain.GameNotFound(id)
		}
		return domain.Game{}, err
	}
	players, err := listPlayers(ctx, tx, []uuid.UUID{dbGame.ID})
	if err != nil {
		return domain.Game{}, err
	}
	return convertGameToDomain(dbGame, players[dbGame.ID]), nil
}

func listPlayers(ctx context.Context, tx *sql.Tx, gameIDs []uuid.UUID) (map[uuid.UUID][]model.GamePlayers, error) {
	byGame := make(map[uuid.UUID][]model.GamePlayers, len(gameIDs))
	if len(gameIDs) == 0 {
		return byGame, nil
	}
	ids := make([]postgres.Expression, 0, len(gameIDs))
	for _, id := range gameIDs {
		ids = append(ids, postgres.UUID(id))
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
		old, err := getGame(ctx, tx, game.ID, true)
		if err != nil {
			return domain.Game{}, err
		}
		game.CreatedAt = old.CreatedAt
		dbGame, players := convertGameFromDomain(game)
		_, err = table.Games.
			UPDATE(table.Games.MutableColumns.Except(table.Games.CreatedAt)).
			MODEL(dbGame).
			WHERE(table.Games.ID.EQ(postgres.UUID(game.ID))).
			ExecContext(ctx, tx)
		if err != nil {
			return domain.Game{}, err
		}
		_, err = table.GamePlayers.
			DELETE().
			WHERE(table.GamePlayers.GameID.EQ(postgres.UUID(game.ID))).
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
		game, err := getGame(ctx, tx, id, true)
		if err != nil {
			return domain.Game{}, err
		}
		_, err = table.Games.
			DELETE().
			WHERE(table.Games.ID.EQ(postgres.UUID(id))).
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
		if limit > 0 {
			stmt = stmt.LIMIT(int64(limit))
		}
		if offset > 0 {
			stmt = stmt.OFFSET(int64(offset))
		}
		var dbGames []model.Games
		if err := stmt.QueryContext(ctx, tx, &dbGames); err != nil {
			return nil, err
		}
		ids := make([]uuid.UUID, 0, len(dbGames))
		for _, g := range dbGames {
			ids = append(ids, g.ID)
		}
		players, err := listPlayers(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		converted := make([]domain.Game, 0, len(dbGames))
		for _, g := range dbGames {
			converted = append(converted, convertGameToDomain(g, players[g.ID]))
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
		SELECT(postgres.COUNT(postgres.STAR)).
		Sql()
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, domain.NewStorageError("count games", err)
	}
	return n, nil
}

func (s *Storage) GetAggregate(ctx context.Context, name string) (domain.PlayerAggregate, error) {
	agg, err := inTx(ctx, s.db, func(tx *sql.Tx) (domain.PlayerAggregate, error) {
		return getAggregate(ctx, tx, name, false)
	})
	return agg, wrapNotFound("get aggregate", err)
}

func getAggregate(ctx context.Context, tx *sql.Tx, name string, lock bool) (domain.PlayerAggregate, error) {
	stmt := table.PlayerStats.
		SELECT(table.PlayerStats.AllColumns).
		WHERE(table.PlayerStats.PlayerName.EQ(postgres.String(name)))
	if lock {
		stmt = stmt.FOR(postgres.UPDATE())
	}
	var stats model.PlayerStats
	if err := stmt.QueryContext(ctx, tx, &stats); err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.PlayerAggregate{}, domain.PlayerNotFound(name)
		}
		return domain.PlayerAggregate{}, err
	}
	var games []model.PlayerStatGames
	err := table.PlayerStatGames.
		SELECT(table.PlayerStatGames.AllColumns).
		WHERE(table.PlayerStatGames.PlayerName.EQ(postgres.String(name))).
		QueryContext(ctx, tx, &games)
	if err != nil {
		return domain.PlayerAggregate{}, err
	}
	return convertAggregateToDomain(stats, games), nil
}

// UpdateAggregate inserts an empty row when none exists and then locks it,
// so concurrent writers of one player queue on the row lock.
func (s *Storage) UpdateAggregate(ctx context.Context, name string, fn storage.UpdateFunc) (domain.PlayerAggregate, error) {
	var fnErr error
	agg, err := inTx(ctx, s.db, func(tx *sql.Tx) (domain.PlayerAggregate, error) {
		empty, _ := convertAggregateFromDomain(domain.PlayerAggregate{PlayerName: name, LastUpdated: s.now()})
		_, err := table.PlayerStats.
			INSERT(table.PlayerStats.AllColumns).
			MODEL(empty).
			ON_CONFLICT(table.PlayerStats.PlayerName).
			DO_NOTHING().
			ExecContext(ctx, tx)
		if err != nil {
			return domain.PlayerAggregate{}, err
		}
		agg, err := getAggregate(ctx, tx, name, true)
		if err != nil {
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
		UPDATE(table.PlayerStats.MutableColumns).
		MODEL(stats).
		WHERE(table.PlayerStats.PlayerName.EQ(postgres.String(agg.PlayerName))).
		ExecContext(ctx, tx)
	if err != nil {
		return err
	}
	_, err = table.PlayerStatGames.
		DELETE().
		WHERE(table.PlayerStatGames.PlayerName.EQ(postgres.String(agg.PlayerName))).
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
			converted = append(converted, convertAggregateToDomain(st, byPlayer[st.PlayerName]))
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
		WHERE(table.Roster.Name.EQ(postgres.String(name))).
		ExecContext(ctx, s.db)
	if err != nil {
		return domain.NewStorageError("remove from roster", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.PlayerNotFound(name)
	}
	return nil
}

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

func NewURLConnectionString(protocol, host, dbName, username, password, sslMode string) string {
	v := make(url.Values)
	if sslMode != "" {
		v.Set("sslmode", sslMode)
	}
	u := url.URL{
		Scheme:   protocol,
		Host:     host,
		Path:     dbName,
		User:     url.UserPassword(username, password),
		RawQuery: v.Encode(),
	}
	return u.String()
}
