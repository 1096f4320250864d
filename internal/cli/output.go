package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Bestfast/gosumemory-helper/internal/message"
	"github.com/Bestfast/gosumemory-helper/internal/store"
)

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeState(w io.Writer, format string, s *message.GosuMemoryState) error {
	if format == "json" {
		return writeJSON(w, s)
	}

	bm := &s.Menu.Beatmap
	gp := &s.Gameplay
	fmt.Fprintf(w, "state:    %s (%s)\n", s.Menu.State, s.Menu.GameMode)
	fmt.Fprintf(w, "beatmap:  %s - %s [%s] (%s)\n", bm.Metadata.Artist, bm.Metadata.Title, bm.Metadata.Difficulty, bm.Metadata.Mapper)
	fmt.Fprintf(w, "stats:    AR %g  CS %g  OD %g  HP %g  SR %.2f  BPM %s\n",
		bm.Stats.MemoryAR, bm.Stats.MemoryCS, bm.Stats.MemoryOD, bm.Stats.MemoryHP, bm.Stats.FullSR, bpm(bm.Stats.BPM.Min, bm.Stats.BPM.Max))
	fmt.Fprintf(w, "mods:     %s\n", modsOrNone(s.Menu.Mods.Str))

	switch s.Menu.State {
	case message.StatePlay:
		fmt.Fprintf(w, "play:     %d  %.2f%%  %dx/%dx  300:%d 100:%d 50:%d miss:%d  %dpp (fc %dpp)\n",
			gp.Score, gp.Accuracy, gp.Combo.Current, gp.Combo.Max,
			gp.Hits.N300, gp.Hits.N100, gp.Hits.N50, gp.Hits.Miss, gp.PP.Current, gp.PP.FC)
	case message.StateResults:
		rs := &s.ResultsScreen
		fmt.Fprintf(w, "results:  %s  %d  %dx  300:%d 100:%d 50:%d miss:%d  %s\n",
			rs.Name, rs.Score, rs.MaxCombo, rs.N300, rs.N100, rs.N50, rs.Miss, modsOrNone(rs.Mods.Str))
	}
	return nil
}

func writeOsuMap(w io.Writer, format string, m message.OsuMap) error {
	if format == "json" {
		return writeJSON(w, m)
	}

	fmt.Fprintf(w, "%s - %s [%s] (%s)\n", m.Metadata.Artist, m.Metadata.Title, m.Metadata.Diff, m.Metadata.Mapper)
	fmt.Fprintf(w, "OD %g  HP %g  SR %.2f  BPM %s\n", m.Stats.OD, m.Stats.HP, m.Stats.SR, bpm(m.Stats.BPMMin, m.Stats.BPMMax))
	fmt.Fprintf(w, "%s/%s\n", m.Path.Folder, m.Path.File)
	return nil
}

func writeResults(w io.Writer, format string, results []store.Result) error {
	if format == "json" {
		if results == nil {
			results = []store.Result{}
		}
		return writeJSON(w, results)
	}

	for _, r := range results {
		fmt.Fprintf(w, "%s  %s - %s [%s]  %d  %.2f%%  %dx  %dpp  %s\n",
			r.RecordedAt.Local().Format("2006-01-02 15:04"), r.Artist, r.Title, r.Difficulty,
			r.Score, r.Accuracy, r.MaxCombo, r.PP, modsOrNone(r.Mods))
	}
	return nil
}

func bpm(lo, hi int) string {
	if lo == hi {
		return fmt.Sprint(lo)
	}
	return fmt.Sprintf("%d-%d", lo, hi)
}

func modsOrNone(mods string) string {
	if strings.TrimSpace(mods) == "" {
		return "NM"
	}
	return mods
}
