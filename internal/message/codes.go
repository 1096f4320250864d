package message

import "strconv"

// State is the osu! client mode reported in menu.state.
type State int

const (
	StateMenu State = iota
	StateEdit
	StatePlay
	StateExit
	StateSelectEdit
	StateSelectPlay
	StateSelectDrawings
	StateResults
	StateUpdate
	StateBusy
	StateUnknown
	StateLobby
	StateMatchSetup
	StateSelectMulti
	StateRankingVs
	StateOnlineSelection
	StateOptionsOffsetWizard
	StateRankingTagCoop
	StateRankingTeam
	StateBeatmapImport
	StatePackageUpdater
	StateBenchmark
	StateTourney
	StateCharts
)

var stateNames = [...]string{
	StateMenu:                "menu",
	StateEdit:                "edit",
	StatePlay:                "play",
	StateExit:                "exit",
	StateSelectEdit:          "select-edit",
	StateSelectPlay:          "select-play",
	StateSelectDrawings:      "select-drawings",
	StateResults:             "results",
	StateUpdate:              "update",
	StateBusy:                "busy",
	StateUnknown:             "unknown",
	StateLobby:               "lobby",
	StateMatchSetup:          "match-setup",
	StateSelectMulti:         "select-multi",
	StateRankingVs:           "ranking-vs",
	StateOnlineSelection:     "online-selection",
	StateOptionsOffsetWizard: "options-offset-wizard",
	StateRankingTagCoop:      "ranking-tag-coop",
	StateRankingTeam:         "ranking-team",
	StateBeatmapImport:       "beatmap-import",
	StatePackageUpdater:      "package-updater",
	StateBenchmark:           "benchmark",
	StateTourney:             "tourney",
	StateCharts:              "charts",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// GameMode is the ruleset code used by menu.gameMode and gameplay.gameMode.
type GameMode int

const (
	ModeOsu GameMode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

func (m GameMode) String() string {
	switch m {
	case ModeOsu:
		return "osu"
	case ModeTaiko:
		return "taiko"
	case ModeCatch:
		return "fruits"
	case ModeMania:
		return "mania"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}
