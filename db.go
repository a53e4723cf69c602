package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const DB_TABLE = "areagraph_samples"

var DB_DRIVERS = []string{"sqlite", "pgx"}

func is_db_driver_valid(driver string) bool {
	for _, d := range DB_DRIVERS {
		if d == driver {
			return true
		}
	}
	return false
}

// db_dsn turns the configured path into a data source name. For pgx the
// path is a connection string and passed as is.
func db_dsn(driver, path_db string) string {
	if driver == "sqlite" {
		return fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path_db)
	}
	return path_db
}

// db_rebind rewrites ? placeholders into the numbered form pgx wants.
func db_rebind(driver, q string) string {
	if driver != "pgx" {
		return q
	}
	b := strings.Builder{}
	n := 0
	for _, c := range q {
		if c == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func db_init(ctx context.Context, driver, path_db string) (*sql.DB, error) {
	if !is_db_driver_valid(driver) {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := sql.Open(driver, db_dsn(driver, path_db))
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	err = retry.Do(
		func() error { return db.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(DEFAULT_DB_CONNECT_TRY),
		retry.Delay(DEFAULT_DB_CONNECT_WAIT),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("database not reachable yet (try %d): %v\n", n+1, err)
		}))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot reach database: %w", err)
	}

	q := "SELECT sqlite_version()"
	if driver == "pgx" {
		q = "SELECT version()"
	}
	var db_version string
	if err := db.QueryRowContext(ctx, q).Scan(&db_version); err != nil {
		log.Println("warning: unable to get database version: ", err)
	} else {
		log.Println("database version: ", db_version)
	}
	return db, nil
}

func db_migrate(ctx context.Context, db *sql.DB, driver string) error {
	id_type, created_type := "INTEGER PRIMARY KEY", "DATETIME DEFAULT CURRENT_TIMESTAMP"
	if driver == "pgx" {
		id_type, created_type = "BIGSERIAL PRIMARY KEY", "TIMESTAMPTZ DEFAULT NOW()"
	}
	statements := []string{
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    id %s,
    x DOUBLE PRECISION NOT NULL,
    y DOUBLE PRECISION NOT NULL,
    r DOUBLE PRECISION NOT NULL,
    inside BOOLEAN NOT NULL,
    created %s)`, DB_TABLE, id_type, created_type),
		fmt.Sprintf(`
CREATE INDEX IF NOT EXISTS index_%s_r
    ON %s (r, created)`, DB_TABLE, DB_TABLE),
	}
	log.Println("Maybe creating tables and indices for ", DB_TABLE)
	in_err := false
	for _, st := range statements {
		if _, err := db.ExecContext(ctx, st); err != nil {
			log.Printf("migration statement failed: %v", err)
			in_err = true
		}
	}
	if in_err {
		return errors.New("database migration encountered errors")
	}
	return nil
}

// db_time accepts both the time values pgx returns and the text sqlite
// keeps for CURRENT_TIMESTAMP.
type db_time struct {
	t time.Time
}

var DB_TIME_LAYOUTS = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

func (dt *db_time) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		dt.t = time.Time{}
		return nil
	case time.Time:
		dt.t = v
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into a timestamp", src)
	}
	for _, layout := range DB_TIME_LAYOUTS {
		if t, err := time.Parse(layout, s); err == nil {
			dt.t = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func db_sample_insert(ctx context.Context, db *sql.DB, driver string, s *sample) error {
	q := db_rebind(driver, fmt.Sprintf(
		`INSERT INTO %s (x, y, r, inside) VALUES (?, ?, ?, ?) RETURNING id, created`,
		DB_TABLE))
	var created db_time
	if err := db.QueryRowContext(ctx, q, s.x, s.y, s.r, s.inside).Scan(&s.id, &created); err != nil {
		return err
	}
	s.created = created.t
	return nil
}

func db_samples_get(ctx context.Context, db *sql.DB) ([]sample, error) {
	q := fmt.Sprintf(
		`SELECT id, x, y, r, inside, created FROM %s ORDER BY id ASC`, DB_TABLE)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		log.Println("db_samples_get: unable to select rows: ", err)
		return nil, err
	}
	defer rows.Close()
	samples := []sample{}
	for rows.Next() {
		var s sample
		var created db_time
		if err := rows.Scan(&s.id, &s.x, &s.y, &s.r, &s.inside, &created); err != nil {
			log.Println("db_samples_get: row scan failed: ", err)
			return nil, err
		}
		s.created = created.t
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

func db_prune(ctx context.Context, db *sql.DB, driver string, retention_period time.Duration) (int64, error) {
	template_prune := `DELETE FROM %s WHERE created < DATETIME('now', '-%d seconds')`
	if driver == "pgx" {
		template_prune = `DELETE FROM %s WHERE created < NOW() - INTERVAL '%d seconds'`
	}
	res, err := db.ExecContext(ctx, fmt.Sprintf(
		template_prune, DB_TABLE, int64(retention_period/time.Second)))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// db_writer serializes every write to the database.
func db_writer(ctx context.Context, db *sql.DB, driver string, tasks <-chan db_task) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-tasks:
			var err error
			switch task.kind {
			case DB_TASK_INSERT:
				s := task.insert_sample
				err = db_sample_insert(ctx, db, driver, s)
				if err != nil {
					log.Printf(
						"sample insert failed for (%f, %f, %f): %v\n",
						s.x, s.y, s.r, err)
				}
			case DB_TASK_PRUNE:
				log.Printf(
					"Pruning samples older than %s.\n",
					task.prune_retention_period)
				var n int64
				n, err = db_prune(ctx, db, driver, task.prune_retention_period)
				if err != nil {
					log.Println("Pruning failed: ", err)
				} else {
					log.Printf("Pruned %d samples.\n", n)
				}
			default:
				panic(fmt.Sprintf("This is a bug: db_task.kind == %d", task.kind))
			}
			if task.reply != nil {
				task.reply <- err
			}
		}
	}
}

func db_pruner(ctx context.Context, tasks chan<- db_task,
	retention_period, prune_period time.Duration) {

	if retention_period <= 0 {
		log.Println("Sample retention not set, pruning disabled")
		return
	}
	log.Println("Entering pruning loop with period of ", prune_period)
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(prune_period):
			select {
			case <-ctx.Done():
				return
			case tasks <- db_task{
				kind:                   DB_TASK_PRUNE,
				prune_retention_period: retention_period,
			}:
			}
		}
	}
}
