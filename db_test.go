package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"
	"time"
)

func db_test_source(t *testing.T) (*db_source, context.Context) {
	t.Helper()
	ctx, cf := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cf)

	db, err := db_init(ctx, "sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal("cannot open database:", err)
	}
	t.Cleanup(func() { db.Close() })
	err = db_migrate(ctx, db, "sqlite")
	assert(t, err == nil, "cannot migrate:", err)
	return db_source_start(ctx, db, "sqlite"), ctx
}

func TestDatabaseSmoke(t *testing.T) {
	time_start := time.Now().Add(-time.Minute)
	src, ctx := db_test_source(t)

	s, err := src.submit_sample(ctx, 0.2, 0.2, 2)
	if err != nil {
		t.Fatal("cannot submit:", err)
	}
	assert(t, s.id == 1, "unexpected id", s.id)
	assert(t, s.inside, "sample should be classified inside")
	assert(t, s.created.After(time_start), "unexpected created", s.created)

	s, err = src.submit_sample(ctx, 1, 1, 1)
	if err != nil {
		t.Fatal("cannot submit:", err)
	}
	assert(t, s.id == 2 && !s.inside, "unexpected second sample", s)

	samples, err := src.retrieve_samples(ctx)
	assert(t, err == nil, "cannot get samples:", err)
	assert(t, len(samples) == 2, "unexpected amount of samples:", len(samples))
	assert(t, almost_equals(samples[0].x, 0.2) && almost_equals(samples[0].y, 0.2) && samples[0].r == 2,
		"unexpected first sample:", samples[0])
	assert(t, samples[0].inside && !samples[1].inside, "inside flags not stored")
	assert(t, !samples[1].created.IsZero(), "created not read back")
}

func TestDatabaseRejectsNonFinite(t *testing.T) {
	src, ctx := db_test_source(t)
	for _, v := range []float64{math.NaN(), math.Inf(1)} {
		_, err := src.submit_sample(ctx, v, 0, 1)
		assert(t, errors.Is(err, ErrInvalidCoordinate), "wanted ErrInvalidCoordinate, got", err)
	}
	samples, err := src.retrieve_samples(ctx)
	assert(t, err == nil && len(samples) == 0, "nothing should be stored", samples, err)
}

func TestDatabasePrune(t *testing.T) {
	src, ctx := db_test_source(t)
	for i := 0; i < 3; i++ {
		if _, err := src.submit_sample(ctx, 0, float64(i), 1); err != nil {
			t.Fatal(err)
		}
	}
	_, err := src.db.ExecContext(ctx, fmt.Sprintf(
		`UPDATE %s SET created = DATETIME('now', '-2 hours') WHERE id = 1`, DB_TABLE))
	if err != nil {
		t.Fatal(err)
	}

	reply := make(chan error, 1)
	src.tasks <- db_task{kind: DB_TASK_PRUNE, prune_retention_period: time.Hour, reply: reply}
	assert(t, <-reply == nil, "pruning failed")

	samples, err := src.retrieve_samples(ctx)
	assert(t, err == nil, "cannot get samples:", err)
	assert(t, len(samples) == 2, "unexpected amount of samples after pruning:", len(samples))
	assert(t, samples[0].id == 2, "the oldest sample should be gone", samples[0].id)
}

func TestDatabaseSubmitCancelled(t *testing.T) {
	src, _ := db_test_source(t)
	ctx, cf := context.WithCancel(context.Background())
	cf()
	// The writer may win the race, so only a cancelled context error is
	// acceptable as a failure.
	if _, err := src.submit_sample(ctx, 0, 0, 1); err != nil {
		assert(t, errors.Is(err, context.Canceled), "unexpected error", err)
	}
}

func TestDbRebind(t *testing.T) {
	q := "INSERT INTO t (a, b, c) VALUES (?, ?, ?)"
	assert(t, db_rebind("sqlite", q) == q, "sqlite query should stay as is")
	got := db_rebind("pgx", q)
	assert(t, got == "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)", "unexpected rebind", got)
}

func TestDbTimeScan(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	table := []struct {
		give interface{}
		want time.Time
		fail bool
	}{
		{give: now, want: now},
		{give: "2024-05-06 07:08:09", want: now},
		{give: []byte("2024-05-06T07:08:09Z"), want: now},
		{give: nil, want: time.Time{}},
		{give: "yesterday", fail: true},
		{give: 12, fail: true},
	}
	for n, entry := range table {
		t.Run(fmt.Sprint(n+1), func(t *testing.T) {
			var dt db_time
			err := dt.Scan(entry.give)
			if entry.fail {
				assert(t, err != nil, "should have failed but did not")
				return
			}
			assert(t, err == nil, "unexpected error", err)
			assert(t, dt.t.Equal(entry.want), "unexpected time", dt.t)
		})
	}
}

func TestDbDrivers(t *testing.T) {
	assert(t, is_db_driver_valid("sqlite") && is_db_driver_valid("pgx"), "known drivers rejected")
	assert(t, !is_db_driver_valid("mysql"), "unknown driver accepted")
	_, err := db_init(context.Background(), "mysql", "whatever")
	assert(t, err != nil, "unknown driver should fail")
	assert(t, db_dsn("pgx", "postgres://x") == "postgres://x", "pgx dsn should be passed as is")
}
