package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// timeLayout has fixed width so recorded_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	entropy     *rand.Rand
	entropyLock sync.Mutex
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID(t time.Time) string {
	s.entropyLock.Lock()
	defer s.entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id          TEXT PRIMARY KEY,
		recorded_at TEXT NOT NULL,
		player      TEXT NOT NULL,
		beatmap_id  INTEGER NOT NULL,
		beatmap_md5 TEXT NOT NULL,
		artist      TEXT NOT NULL,
		title       TEXT NOT NULL,
		difficulty  TEXT NOT NULL,
		mods        TEXT NOT NULL,
		mods_num    INTEGER NOT NULL,
		score       INTEGER NOT NULL,
		max_combo   INTEGER NOT NULL,
		accuracy    REAL NOT NULL,
		pp          INTEGER NOT NULL,
		n300        INTEGER NOT NULL,
		geki        INTEGER NOT NULL,
		n100        INTEGER NOT NULL,
		katu        INTEGER NOT NULL,
		n50         INTEGER NOT NULL,
		miss        INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_results_recorded ON results(recorded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_results_beatmap ON results(beatmap_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Insert(ctx context.Context, r *Result) error {
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now().UTC()
	}
	if r.ID == "" {
		r.ID = s.newID(r.RecordedAt)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (id, recorded_at, player, beatmap_id, beatmap_md5, artist, title, difficulty,
			mods, mods_num, score, max_combo, accuracy, pp, n300, geki, n100, katu, n50, miss)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.RecordedAt.UTC().Format(timeLayout), r.Player, r.BeatmapID, r.BeatmapMD5,
		r.Artist, r.Title, r.Difficulty, r.Mods, r.ModsNum, r.Score, r.MaxCombo, r.Accuracy, r.PP,
		r.N300, r.Geki, r.N100, r.Katu, r.N50, r.Miss,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]Result, error) {
	query := `SELECT id, recorded_at, player, beatmap_id, beatmap_md5, artist, title, difficulty,
		mods, mods_num, score, max_combo, accuracy, pp, n300, geki, n100, katu, n50, miss
		FROM results`
	var args []any

	if p.BeatmapID != 0 {
		query += " WHERE beatmap_id = ?"
		args = append(args, p.BeatmapID)
	}
	query += " ORDER BY recorded_at DESC, id DESC"
	if p.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, p.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var recordedAt string
		if err := rows.Scan(&r.ID, &recordedAt, &r.Player, &r.BeatmapID, &r.BeatmapMD5,
			&r.Artist, &r.Title, &r.Difficulty, &r.Mods, &r.ModsNum, &r.Score, &r.MaxCombo,
			&r.Accuracy, &r.PP, &r.N300, &r.Geki, &r.N100, &r.Katu, &r.N50, &r.Miss); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.RecordedAt, err = time.Parse(timeLayout, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
