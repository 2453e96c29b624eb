package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PGRepository - message archive on PostgreSQL
type PGRepository struct {
	pool *pgxpool.Pool
}

// InitPGRepository - ...
func InitPGRepository(cfg Config) (MessageRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.ConnectConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}
	return &PGRepository{
		pool: pool,
	}, nil
}

// Save - archive one received message. A message redelivered by the
// queue keeps a single row.
func (repo *PGRepository) Save(record *Record) error {
	query := `insert into t_message(message_id, method, params, received_dt) values ($1, $2, $3, localtimestamp)`
	_, err := repo.pool.Exec(context.Background(), query, record.MessageID, record.Method, record.Params)
	if err != nil {
		if err.Error() == `ERROR: duplicate key value violates unique constraint "t_message_message_id_key" (SQLSTATE 23505)` {
			return errors.New("duplicated message")
		}
		return err
	}
	return nil
}

// DeleteExpired - drop archived rows older than expiration seconds.
func (repo *PGRepository) DeleteExpired(expiration int) (int, error) {
	var tag pgconn.CommandTag
	query := `
	delete from t_message
	where received_dt < localtimestamp - concat($1::int, ' seconds')::INTERVAL;
	`
	tag, err := repo.pool.Exec(context.Background(), query, expiration)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
