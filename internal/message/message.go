// Package message models the gosumemory websocket document and parses it
// strictly into typed values.
package message

// GosuMemoryState is one full gosumemory update. Every message replaces the
// previous state wholesale.
//
// Fields tagged gosu:"optional" may be missing from the wire; every other
// field is required. Optional slices stay nil when absent and are non-nil
// (possibly empty) when present.
type GosuMemoryState struct {
	Settings      Settings      `json:"settings"`
	Menu          Menu          `json:"menu"`
	Gameplay      Gameplay      `json:"gameplay"`
	ResultsScreen ResultsScreen `json:"resultsScreen"`
}

type Settings struct {
	ShowInterface bool    `json:"showInterface"`
	Folders       Folders `json:"folders"`
}

type Folders struct {
	Game  string `json:"game"`
	Skin  string `json:"skin"`
	Songs string `json:"songs"`
}

type Menu struct {
	MainMenu      MainMenu `json:"mainMenu"`
	State         State    `json:"state"`
	GameMode      GameMode `json:"gameMode"`
	IsChatEnabled WireBool `json:"isChatEnabled"`
	Beatmap       Beatmap  `json:"bm"`
	Mods          Mods     `json:"mods"`
	PP            MenuPP   `json:"pp"`
}

type MainMenu struct {
	BassDensity float64 `json:"bassDensity"`
}

// Beatmap is the currently selected beatmap.
type Beatmap struct {
	Time         BeatmapTime  `json:"time"`
	ID           int          `json:"id"`
	Set          int          `json:"set"`
	MD5          string       `json:"md5"`
	RankedStatus int          `json:"rankedStatus"`
	Metadata     Metadata     `json:"metadata"`
	Stats        BeatmapStats `json:"stats"`
	Path         BeatmapPath  `json:"path"`
}

// BeatmapTime holds offsets in milliseconds.
type BeatmapTime struct {
	FirstObject int `json:"firstObj"`
	Current     int `json:"current"`
	Full        int `json:"full"`
	MP3         int `json:"mp3"`
}

type Metadata struct {
	Artist         string `json:"artist"`
	ArtistOriginal string `json:"artistOriginal"`
	Title          string `json:"title"`
	TitleOriginal  string `json:"titleOriginal"`
	Mapper         string `json:"mapper"`
	Difficulty     string `json:"difficulty"`
}

// BeatmapStats carries the nominal difficulty values and the "memory"
// values read live from the client, which include mod adjustments.
type BeatmapStats struct {
	AR       float64 `json:"AR"`
	CS       float64 `json:"CS"`
	OD       float64 `json:"OD"`
	HP       float64 `json:"HP"`
	SR       float64 `json:"SR"`
	BPM      BPM     `json:"BPM"`
	FullSR   float64 `json:"fullSR"`
	MemoryAR float64 `json:"memoryAR"`
	MemoryCS float64 `json:"memoryCS"`
	MemoryOD float64 `json:"memoryOD"`
	MemoryHP float64 `json:"memoryHP"`
}

type BPM struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// BeatmapPath fields are opaque strings as the client reports them.
type BeatmapPath struct {
	Full       string `json:"full"`
	Folder     string `json:"folder"`
	File       string `json:"file"`
	Background string `json:"bg"`
	Audio      string `json:"audio"`
}

type Mods struct {
	Num int    `json:"num"`
	Str string `json:"str"`
}

// MenuPP holds precomputed pp for accuracy thresholds and the optional
// strain graph of the selected beatmap.
type MenuPP struct {
	PP100   int       `json:"100"`
	PP99    int       `json:"99"`
	PP98    int       `json:"98"`
	PP97    int       `json:"97"`
	PP96    int       `json:"96"`
	PP95    int       `json:"95"`
	Strains []float64 `json:"strains" gosu:"optional"`
}

type Gameplay struct {
	GameMode    GameMode    `json:"gameMode"`
	Name        string      `json:"name" gosu:"optional"`
	Score       int64       `json:"score"`
	Accuracy    float64     `json:"accuracy"`
	Combo       Combo       `json:"combo"`
	HP          HP          `json:"hp"`
	Hits        Hits        `json:"hits"`
	PP          GameplayPP  `json:"pp"`
	KeyOverlay  KeyOverlay  `json:"keyOverlay"`
	Leaderboard Leaderboard `json:"leaderboard"`
}

type Combo struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

type HP struct {
	Normal float64 `json:"normal"`
	Smooth float64 `json:"smooth"`
}

// Hits counts judgements of the current play.
type Hits struct {
	N300          int     `json:"300"`
	Geki          int     `json:"geki"`
	N100          int     `json:"100"`
	Katu          int     `json:"katu"`
	N50           int     `json:"50"`
	Miss          int     `json:"0"`
	SliderBreaks  int     `json:"sliderBreaks"`
	Grade         Grade   `json:"grade"`
	UnstableRate  float64 `json:"unstableRate"`
	HitErrorArray []int   `json:"hitErrorArray" gosu:"optional"`
}

type Grade struct {
	Current     string `json:"current"`
	MaxThisPlay string `json:"maxThisPlay"`
}

type GameplayPP struct {
	Current     int `json:"current"`
	FC          int `json:"fc"`
	MaxThisPlay int `json:"maxThisPlay"`
}

type KeyOverlay struct {
	K1 Key `json:"k1"`
	K2 Key `json:"k2"`
	M1 Key `json:"m1"`
	M2 Key `json:"m2"`
}

type Key struct {
	IsPressed bool `json:"isPressed"`
	Count     int  `json:"count"`
}

type Leaderboard struct {
	HasLeaderboard bool        `json:"hasLeaderboard"`
	IsVisible      bool        `json:"isVisible"`
	OurPlayer      Ourplayer   `json:"ourplayer"`
	Slots          []Ourplayer `json:"slots" gosu:"optional"`
}

// Ourplayer is one leaderboard entry, the local player or an opponent.
type Ourplayer struct {
	Name      string   `json:"name"`
	Score     int64    `json:"score"`
	Combo     int      `json:"combo"`
	MaxCombo  int      `json:"maxCombo"`
	Mods      string   `json:"mods"`
	H300      int      `json:"h300"`
	H100      int      `json:"h100"`
	H50       int      `json:"h50"`
	H0        int      `json:"h0"`
	Team      int      `json:"team"`
	Position  int      `json:"position"`
	IsPassing WireBool `json:"isPassing"`
}

type ResultsScreen struct {
	Name     string `json:"name"`
	Score    int64  `json:"score"`
	MaxCombo int    `json:"maxCombo"`
	Mods     Mods   `json:"mods"`
	N300     int    `json:"300"`
	Geki     int    `json:"geki"`
	N100     int    `json:"100"`
	Katu     int    `json:"katu"`
	N50      int    `json:"50"`
	Miss     int    `json:"0"`
}
