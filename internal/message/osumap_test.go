package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOsuMap(t *testing.T) {
	m, err := ParseOsuMap([]byte(loadFixture(t)))
	require.NoError(t, err)

	assert.Equal(t, MapMetadata{
		Title:  "FREEDOM DiVE",
		Diff:   "FOUR DIMENSIONS",
		Artist: "xi",
		Mapper: "Nakagawa-Kanon",
	}, m.Metadata)
	assert.Equal(t, MapStats{OD: 8.5, HP: 7.2, SR: 6.10, BPMMin: 170, BPMMax: 178}, m.Stats)
	assert.Equal(t, MapPath{
		Folder: "890271 xi - FREEDOM DiVE",
		File:   "xi - FREEDOM DiVE (Nakagawa-Kanon) [FOUR DIMENSIONS].osu",
		BG:     "bg.jpg",
		Audio:  "audio.mp3",
	}, m.Path)
}

func TestParseOsuMap_PropagatesError(t *testing.T) {
	doc := mustDelete(t, loadFixture(t), "menu.bm.stats.memoryHP")

	m, err := ParseOsuMap([]byte(doc))
	requireParseError(t, err, SchemaMismatch, "menu.bm.stats.memoryHP")
	assert.Equal(t, OsuMap{}, m)
}

func TestNewOsuMap_EmptyState(t *testing.T) {
	assert.Equal(t, OsuMap{}, NewOsuMap(&GosuMemoryState{}))
}
