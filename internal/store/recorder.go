package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Bestfast/gosumemory-helper/internal/message"
)

// Recorder turns a stream of states into stored results. A result is saved
// each time menu.state changes into the results screen; the first state
// seen only sets the baseline, so connecting while a results screen is
// already open records nothing.
type Recorder struct {
	store  Store
	logger *slog.Logger

	prev    message.State
	started bool
	lock    sync.Mutex
}

func NewRecorder(s Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: s, logger: logger}
}

// Observe feeds one state to the recorder and returns the stored result, or
// nil when the state did not finish a play.
func (r *Recorder) Observe(ctx context.Context, state *message.GosuMemoryState) (*Result, error) {
	r.lock.Lock()
	entered := r.started && r.prev != message.StateResults && state.Menu.State == message.StateResults
	r.prev = state.Menu.State
	r.started = true
	r.lock.Unlock()

	if !entered {
		return nil, nil
	}

	res := ResultFromState(state)
	if err := r.store.Insert(ctx, &res); err != nil {
		return nil, err
	}

	r.logger.Info("recorded result",
		slog.String("id", res.ID),
		slog.String("title", res.Title),
		slog.String("difficulty", res.Difficulty),
		slog.Int64("score", res.Score),
	)
	return &res, nil
}

// ResultFromState copies the results screen and the beatmap it belongs to.
func ResultFromState(state *message.GosuMemoryState) Result {
	rs := &state.ResultsScreen
	bm := &state.Menu.Beatmap

	return Result{
		Player:     rs.Name,
		BeatmapID:  bm.ID,
		BeatmapMD5: bm.MD5,
		Artist:     bm.Metadata.Artist,
		Title:      bm.Metadata.Title,
		Difficulty: bm.Metadata.Difficulty,
		Mods:       rs.Mods.Str,
		ModsNum:    rs.Mods.Num,
		Score:      rs.Score,
		MaxCombo:   rs.MaxCombo,
		Accuracy:   state.Gameplay.Accuracy,
		PP:         state.Gameplay.PP.Current,
		N300:       rs.N300,
		Geki:       rs.Geki,
		N100:       rs.N100,
		Katu:       rs.Katu,
		N50:        rs.N50,
		Miss:       rs.Miss,
	}
}
