package message

// OsuMap is the reduced beatmap view of earlier versions of this tool. It
// is derived from a full state rather than parsed separately.
type OsuMap struct {
	Metadata MapMetadata `json:"metadata"`
	Stats    MapStats    `json:"stats"`
	Path     MapPath     `json:"path"`
}

type MapMetadata struct {
	Title  string `json:"title"`
	Diff   string `json:"diff"`
	Artist string `json:"artist"`
	Mapper string `json:"mapper"`
}

// MapStats uses the live mod-adjusted OD and HP and the full star rating.
type MapStats struct {
	OD     float64 `json:"od"`
	HP     float64 `json:"hp"`
	SR     float64 `json:"sr"`
	BPMMin int     `json:"bpmmin"`
	BPMMax int     `json:"bpmmax"`
}

type MapPath struct {
	Folder string `json:"folder"`
	File   string `json:"file"`
	BG     string `json:"bg"`
	Audio  string `json:"audio"`
}

func NewOsuMap(state *GosuMemoryState) OsuMap {
	bm := &state.Menu.Beatmap

	return OsuMap{
		Metadata: MapMetadata{
			Title:  bm.Metadata.Title,
			Diff:   bm.Metadata.Difficulty,
			Artist: bm.Metadata.Artist,
			Mapper: bm.Metadata.Mapper,
		},
		Stats: MapStats{
			OD:     bm.Stats.MemoryOD,
			HP:     bm.Stats.MemoryHP,
			SR:     bm.Stats.FullSR,
			BPMMin: bm.Stats.BPM.Min,
			BPMMax: bm.Stats.BPM.Max,
		},
		Path: MapPath{
			Folder: bm.Path.Folder,
			File:   bm.Path.File,
			BG:     bm.Path.Background,
			Audio:  bm.Path.Audio,
		},
	}
}

// ParseOsuMap parses a full document and returns its reduced view.
func ParseOsuMap(document []byte) (OsuMap, error) {
	state, err := Parse(document)
	if err != nil {
		return OsuMap{}, err
	}
	return NewOsuMap(state), nil
}
