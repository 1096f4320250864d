// Package store records finished plays from the results screen.
package store

import (
	"context"
	"time"
)

// Result is one finished play as shown on the results screen.
type Result struct {
	ID         string    `json:"id"`
	RecordedAt time.Time `json:"recorded_at"`
	Player     string    `json:"player"`
	BeatmapID  int       `json:"beatmap_id"`
	BeatmapMD5 string    `json:"beatmap_md5"`
	Artist     string    `json:"artist"`
	Title      string    `json:"title"`
	Difficulty string    `json:"difficulty"`
	Mods       string    `json:"mods"`
	ModsNum    int       `json:"mods_num"`
	Score      int64     `json:"score"`
	MaxCombo   int       `json:"max_combo"`
	Accuracy   float64   `json:"accuracy"`
	PP         int       `json:"pp"`
	N300       int       `json:"n300"`
	Geki       int       `json:"geki"`
	N100       int       `json:"n100"`
	Katu       int       `json:"katu"`
	N50        int       `json:"n50"`
	Miss       int       `json:"miss"`
}

// ListParams filters List. Zero values mean no filter.
type ListParams struct {
	BeatmapID int
	Limit     int
}

type Store interface {
	// Insert stores r, assigning ID and RecordedAt when empty.
	Insert(ctx context.Context, r *Result) error

	// List returns results newest first.
	List(ctx context.Context, p ListParams) ([]Result, error)

	Close() error
}
