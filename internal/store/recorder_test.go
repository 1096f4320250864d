package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Bestfast/gosumemory-helper/internal/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateAt(st message.State, score int64) *message.GosuMemoryState {
	s := &message.GosuMemoryState{}
	s.Menu.State = st
	s.Menu.Beatmap.ID = 1860169
	s.Menu.Beatmap.MD5 = "e0a5f576e7a69cbcbe4ba8d0397a2f8a"
	s.Menu.Beatmap.Metadata.Title = "FREEDOM DiVE"
	s.Menu.Beatmap.Metadata.Difficulty = "FOUR DIMENSIONS"
	s.Gameplay.Accuracy = 97.43
	s.Gameplay.PP.Current = 402
	s.ResultsScreen.Name = "player"
	s.ResultsScreen.Score = score
	s.ResultsScreen.Mods = message.Mods{Num: 8, Str: "HD"}
	s.ResultsScreen.N100 = 42
	return s
}

func TestRecorder_RecordsOnResultsTransition(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	rec := NewRecorder(s, slog.New(slog.NewTextHandler(io.Discard, nil)))

	steps := []struct {
		state  message.State
		record bool
	}{
		{message.StateSelectPlay, false},
		{message.StatePlay, false},
		{message.StateResults, true},
		{message.StateResults, false},
		{message.StateSelectPlay, false},
		{message.StatePlay, false},
		{message.StateResults, true},
	}

	for i, step := range steps {
		res, err := rec.Observe(ctx, stateAt(step.state, int64(1000*(i+1))))
		require.NoError(t, err)
		if step.record {
			require.NotNil(t, res, "step %d", i)
			assert.Equal(t, int64(1000*(i+1)), res.Score)
		} else {
			assert.Nil(t, res, "step %d", i)
		}
	}

	got, err := s.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 42, got[0].N100)
	assert.Equal(t, "HD", got[0].Mods)
}

func TestRecorder_IgnoresInitialResultsScreen(t *testing.T) {
	rec := NewRecorder(newTestStore(t), nil)

	res, err := rec.Observe(context.Background(), stateAt(message.StateResults, 1))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResultFromState(t *testing.T) {
	r := ResultFromState(stateAt(message.StateResults, 998120))

	assert.Equal(t, Result{
		Player:     "player",
		BeatmapID:  1860169,
		BeatmapMD5: "e0a5f576e7a69cbcbe4ba8d0397a2f8a",
		Title:      "FREEDOM DiVE",
		Difficulty: "FOUR DIMENSIONS",
		Mods:       "HD",
		ModsNum:    8,
		Score:      998120,
		Accuracy:   97.43,
		PP:         402,
		N100:       42,
	}, r)
}
