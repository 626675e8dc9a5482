package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/naderabdullah/cardforge/db/sqldb"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Client struct {
	Conf *sqldb.Conf

	pool *pgxpool.Pool
	dsn  string
}

// Ensure pgsql.Client implements sqldb.Client interface
var _ sqldb.Client = (*Client)(nil)

func Register() {
	sqldb.RegisterFactory("pgsql", func(conf *sqldb.Conf) (sqldb.Client, error) {
		return &Client{Conf: conf}, nil
	})
}

func (c *Client) Init() error {
	if c.Conf.DSN != "" {
		c.dsn = c.Conf.DSN
	} else {
		c.dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?timezone=%s",
			c.Conf.User,
			c.Conf.PW,
			c.Conf.Host,
			c.Conf.Port,
			c.Conf.DB,
			c.Conf.TZ,
		)
	}
	pconf, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return err
	}
	pconf.MaxConns = 10
	pconf.MinConns = 2
	pconf.MaxConnLifetime = time.Minute * 3
	if c.pool, err = pgxpool.NewWithConfig(context.Background(), pconf); err != nil {
		return err
	}
	if err = c.pool.Ping(context.Background()); err != nil {
		return err
	}
	log.Println("[INFO] pgsql client initialized")
	return nil
}

func (c *Client) Close() error {
	if c.pool == nil {
		return nil
	}
	log.Println("[INFO] closing pgsql client")
	c.pool.Close()
	log.Println("[INFO] pgsql client closed")
	return nil
}

func (c *Client) GetHandle() sqldb.Handle { return c }
func (c *Client) GetConf() *sqldb.Conf    { return c.Conf }
func (c *Client) GetDSN() string          { return c.dsn }

func (c *Client) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

//---- Handle ----

func (c *Client) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	tag, err := c.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return Result{tag: tag}, nil
}

func (c *Client) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Rows{rows: rows}, nil
}

func (c *Client) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	return c.pool.QueryRow(ctx, query, args...)
}

//---- Tx ----

func (c *Client) BeginTx(ctx context.Context) (sqldb.Tx, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx}, nil
}

type Tx struct {
	tx pgx.Tx
}

// Ensure pgsql.Tx implements sqldb.Tx interface
var _ sqldb.Tx = (*Tx)(nil)

func (t *Tx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *Tx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return Result{tag: tag}, nil
}

func (t *Tx) Query(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Rows{rows: rows}, nil
}

//---- Adapters ----

// Rows adapts pgx.Rows, whose Close returns nothing
type Rows struct {
	rows pgx.Rows
}

var _ sqldb.Rows = (*Rows)(nil)

func (r *Rows) Next() bool             { return r.rows.Next() }
func (r *Rows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *Rows) Err() error             { return r.rows.Err() }
func (r *Rows) Close() error           { r.rows.Close(); return nil }

type Result struct {
	tag pgconn.CommandTag
}

var _ sqldb.Result = Result{}

func (r Result) RowsAffected() (int64, error) { return r.tag.RowsAffected(), nil }

func (r Result) LastInsertId() (int64, error) {
	return 0, errors.New("pgsql: LastInsertId is not supported, use RETURNING")
}
