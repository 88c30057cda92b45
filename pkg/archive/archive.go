// Package archive keeps a sqlite history of pipeline runs and their scored topics
package archive

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/umputun/ainews/pkg/domain"
	"github.com/umputun/ainews/pkg/report"
)

//go:embed schema.sql
var schemaFS embed.FS

// errCritical marks errors repeater should not retry
var errCritical = errors.New("critical")

// Archive stores run history in sqlite
type Archive struct {
	db *sqlx.DB
}

// Run is a stored pipeline run with its statistics
type Run struct {
	ID        int64     `db:"id" json:"id"`
	RunAt     time.Time `db:"run_at" json:"runAt"`
	Total     int       `db:"total" json:"total"`
	Excellent int       `db:"excellent" json:"excellent"`
	Good      int       `db:"good" json:"good"`
	Normal    int       `db:"normal" json:"normal"`
	AvgScore  float64   `db:"avg_score" json:"avgScore"`
}

// TopicRecord is a stored topic joined with its run time
type TopicRecord struct {
	RunID           int64     `db:"run_id" json:"runId"`
	RunAt           time.Time `db:"run_at" json:"runAt"`
	Title           string    `db:"title" json:"title"`
	Source          string    `db:"source" json:"source"`
	URL             string    `db:"url" json:"url"`
	Date            string    `db:"date" json:"date"`
	Interestingness int       `db:"interestingness" json:"interestingness"`
	Usefulness      int       `db:"usefulness" json:"usefulness"`
	TotalScore      int       `db:"total_score" json:"totalScore"`
	Tier            string    `db:"tier" json:"tier"`
}

// Open opens or creates the archive database and applies the schema
func Open(ctx context.Context, dsn string) (*Archive, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveRun stores the run and all its topics in one transaction, retrying on lock errors
func (a *Archive) SaveRun(ctx context.Context, runAt time.Time, topics []domain.ScoredTopic) (int64, error) {
	stats := report.Statistics(topics)
	var runID int64

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		id, err := a.saveRun(ctx, runAt.UTC().Truncate(time.Second), stats, topics)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return fmt.Errorf("%w: %w", errCritical, err)
		}
		runID = id
		return nil
	}, errCritical)
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}
	return runID, nil
}

func (a *Archive) saveRun(ctx context.Context, runAt time.Time, stats domain.Stats, topics []domain.ScoredTopic) (int64, error) {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_at, total, excellent, good, normal, avg_score) VALUES (?, ?, ?, ?, ?, ?)`,
		runAt, stats.Total, stats.Excellent, stats.Good, stats.Normal, stats.AvgScore)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get run id: %w", err)
	}

	if len(topics) > 0 {
		insert := sq.Insert("topics").Columns("run_id", "title", "source", "url", "date",
			"interestingness", "usefulness", "total_score", "tier", "analysis")
		for _, t := range topics {
			insert = insert.Values(runID, t.Title, t.Source, t.URL, t.Date,
				t.Interestingness, t.Usefulness, t.TotalScore, string(t.Tier()), t.Analysis)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return 0, fmt.Errorf("build topics insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("insert topics: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// Recent returns the last runs, newest first
func (a *Archive) Recent(ctx context.Context, limit int) ([]Run, error) {
	query, args, err := sq.Select("id", "run_at", "total", "excellent", "good", "normal", "avg_score").
		From("runs").OrderBy("run_at DESC", "id DESC").Limit(uint64(max(limit, 0))).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent query: %w", err)
	}

	runs := []Run{}
	if err := a.db.SelectContext(ctx, &runs, query, args...); err != nil {
		return nil, fmt.Errorf("get recent runs: %w", err)
	}
	return runs, nil
}

// Top returns the best scored topics of runs since the given time
func (a *Archive) Top(ctx context.Context, since time.Time, limit int) ([]TopicRecord, error) {
	query, args, err := sq.Select("t.run_id", "r.run_at", "t.title", "t.source", "t.url", "t.date",
		"t.interestingness", "t.usefulness", "t.total_score", "t.tier").
		From("topics t").
		Join("runs r ON r.id = t.run_id").
		Where(sq.GtOrEq{"r.run_at": since.UTC()}).
		OrderBy("t.total_score DESC", "r.run_at DESC", "t.id").
		Limit(uint64(max(limit, 0))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top query: %w", err)
	}

	records := []TopicRecord{}
	if err := a.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("get top topics: %w", err)
	}
	return records, nil
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
