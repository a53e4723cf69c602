package main

import (
	"context"
	"database/sql"
)

// sample_source is where samples come from and where new ones go. A
// submission comes back with its inside flag already decided.
type sample_source interface {
	retrieve_samples(ctx context.Context) ([]sample, error)
	submit_sample(ctx context.Context, x, y, r float64) (sample, error)
}

type db_source struct {
	db    *sql.DB
	tasks chan db_task
}

// db_source_start launches the writer goroutine; it stops with ctx.
func db_source_start(ctx context.Context, db *sql.DB, driver string) *db_source {
	tasks := make(chan db_task)
	go db_writer(ctx, db, driver, tasks)
	return &db_source{db: db, tasks: tasks}
}

func (s *db_source) retrieve_samples(ctx context.Context) ([]sample, error) {
	return db_samples_get(ctx, s.db)
}

func (s *db_source) submit_sample(ctx context.Context, x, y, r float64) (sample, error) {
	if !is_finite(x, y, r) {
		return sample{}, ErrInvalidCoordinate
	}
	smp := &sample{x: x, y: y, r: r, inside: area_check(x, y, r)}
	reply := make(chan error, 1)
	select {
	case s.tasks <- db_task{kind: DB_TASK_INSERT, insert_sample: smp, reply: reply}:
	case <-ctx.Done():
		return sample{}, ctx.Err()
	}
	select {
	case err := <-reply:
		if err != nil {
			return sample{}, err
		}
		return *smp, nil
	case <-ctx.Done():
		return sample{}, ctx.Err()
	}
}
