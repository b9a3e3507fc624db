package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"levelminds/internal/logging"
	"levelminds/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const advisoryLockKey int64 = 746295114

// goose keeps its FS, dialect and logger in package globals.
var gooseMu sync.Mutex

type Runner struct {
	// FS defaults to the embedded migrations.
	FS     fs.FS
	Dir    string
	Logger *zap.Logger
}

// Run applies pending migrations while holding a session advisory lock, so
// concurrently starting instances migrate one at a time.
func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("pin connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockKey); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockKey)
	}()

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := r.configure(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, r.dir()); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Version reports the latest applied migration version.
func (r Runner) Version(ctx context.Context, db *sql.DB) (int64, error) {
	if db == nil {
		return 0, errors.New("nil db")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := r.configure(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}

func (r Runner) configure() error {
	fsys := r.FS
	if fsys == nil {
		fsys = migrations.FS
	}
	goose.SetBaseFS(fsys)
	goose.SetLogger(gooseLogger{l: logging.OrNop(r.Logger).Sugar()})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}

func (r Runner) dir() string {
	if d := strings.TrimSpace(r.Dir); d != "" {
		return d
	}
	return "."
}

type gooseLogger struct {
	l *zap.SugaredLogger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Infof(strings.TrimSpace(format), v...)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Fatalf(format, v...)
}
