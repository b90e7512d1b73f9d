package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical events to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.Logger
	now func() time.Time
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.Logger) (*SQLiteRecorder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log, now: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS step_completions (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id  TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			step      INTEGER,
			next_step INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_step_ts ON step_completions(timestamp)`,

		`CREATE TABLE IF NOT EXISTS onboarding_completions (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id       TEXT NOT NULL,
			timestamp      INTEGER NOT NULL,
			step           INTEGER,
			goals          TEXT,
			literacy_level INTEGER,
			trait          TEXT,
			skipped        INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_onboarding_ts ON onboarding_completions(timestamp)`,

		`CREATE TABLE IF NOT EXISTS level_ups (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id     TEXT NOT NULL,
			timestamp    INTEGER NOT NULL,
			from_level   INTEGER,
			to_level     INTEGER,
			coins_earned INTEGER,
			source       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_level_ts ON level_ups(timestamp)`,

		`CREATE TABLE IF NOT EXISTS redemptions (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id      TEXT NOT NULL,
			timestamp     INTEGER NOT NULL,
			redemption_id TEXT,
			reward_id     TEXT,
			cost          INTEGER,
			coins_after   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_redemption_ts ON redemptions(timestamp)`,

		`CREATE TABLE IF NOT EXISTS challenge_completions (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			event_id     TEXT NOT NULL,
			timestamp    INTEGER NOT NULL,
			challenge_id INTEGER,
			xp           INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_challenge_ts ON challenge_completions(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordStepCompleted(evt *StepCompletedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO step_completions
		(event_id, timestamp, step, next_step) VALUES (?,?,?,?)`,
		uuid.NewString(), r.now().Unix(), evt.Step, evt.NextStep,
	)
	return err
}

func (r *SQLiteRecorder) RecordOnboardingCompleted(evt *OnboardingCompletedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	skipped := 0
	if evt.Skipped {
		skipped = 1
	}
	_, err := r.db.Exec(`INSERT INTO onboarding_completions
		(event_id, timestamp, step, goals, literacy_level, trait, skipped)
		VALUES (?,?,?,?,?,?,?)`,
		uuid.NewString(), r.now().Unix(), evt.Step, strings.Join(evt.Goals, ","),
		evt.LiteracyLevel, evt.Trait, skipped,
	)
	return err
}

func (r *SQLiteRecorder) RecordLevelUp(evt *LevelUpEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO level_ups
		(event_id, timestamp, from_level, to_level, coins_earned, source)
		VALUES (?,?,?,?,?,?)`,
		uuid.NewString(), r.now().Unix(), evt.FromLevel, evt.ToLevel, evt.CoinsEarned, evt.Source,
	)
	return err
}

func (r *SQLiteRecorder) RecordRedemption(evt *RedemptionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO redemptions
		(event_id, timestamp, redemption_id, reward_id, cost, coins_after)
		VALUES (?,?,?,?,?,?)`,
		uuid.NewString(), r.now().Unix(), evt.RedemptionID, evt.RewardID, evt.Cost, evt.CoinsAfter,
	)
	return err
}

func (r *SQLiteRecorder) RecordChallenge(evt *ChallengeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO challenge_completions
		(event_id, timestamp, challenge_id, xp) VALUES (?,?,?,?)`,
		uuid.NewString(), r.now().Unix(), evt.ChallengeID, evt.XP,
	)
	return err
}

// Count returns the number of rows in one of the event tables.
func (r *SQLiteRecorder) Count(table string) (int, error) {
	switch table {
	case "step_completions", "onboarding_completions", "level_ups", "redemptions", "challenge_completions":
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
