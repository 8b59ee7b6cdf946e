package menus

import (
	"fmt"

	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

const (
	ConfigChannel        = "channel"
	ConfigMode           = "mode"
	ConfigEdition        = "edition"
	ConfigBacktrace      = "backtrace"
	ConfigOrientation    = "orientation"
	ConfigPairCharacters = "pair-characters"
)

var (
	channels     = []types.Channel{types.ChannelStable, types.ChannelBeta, types.ChannelNightly}
	modes        = []types.Mode{types.ModeDebug, types.ModeRelease}
	editions     = []types.Edition{types.Edition2015, types.Edition2018, types.Edition2021}
	backtraces   = []types.Backtrace{types.BacktraceDisabled, types.BacktraceEnabled}
	orientations = []types.Orientation{types.OrientationAutomatic, types.OrientationHorizontal, types.OrientationVertical}
	pairings     = []types.PairCharacters{types.PairCharactersEnabled, types.PairCharactersDisabled}
)

// Config lists the build and editor settings. Picking an item steps it to
// its next value; the menu stays open.
func Config() *Menu {
	return newMenu("Configuration", "enter: change  esc: close", func(s store.State) []Item {
		c := s.Configuration
		return []Item{
			{ID: ConfigChannel, Label: fmt.Sprintf("%-16s%s", "Channel", c.Channel)},
			{ID: ConfigMode, Label: fmt.Sprintf("%-16s%s", "Mode", c.Mode)},
			{ID: ConfigEdition, Label: fmt.Sprintf("%-16s%s", "Edition", c.Edition)},
			{ID: ConfigBacktrace, Label: fmt.Sprintf("%-16s%s", "Backtrace", c.Backtrace)},
			{ID: ConfigOrientation, Label: fmt.Sprintf("%-16s%s", "Orientation", c.Orientation)},
			{ID: ConfigPairCharacters, Label: fmt.Sprintf("%-16s%s", "Pair characters", c.PairCharacters)},
		}
	})
}

// ConfigChange returns the action that steps setting id past its value in s.
func ConfigChange(id string, s store.State) (store.Action, bool) {
	c := s.Configuration
	switch id {
	case ConfigChannel:
		return store.ChangeChannel{Channel: next(channels, c.Channel)}, true
	case ConfigMode:
		return store.ChangeMode{Mode: next(modes, c.Mode)}, true
	case ConfigEdition:
		return store.ChangeEdition{Edition: next(editions, c.Edition)}, true
	case ConfigBacktrace:
		return store.ChangeBacktrace{Backtrace: next(backtraces, c.Backtrace)}, true
	case ConfigOrientation:
		return store.ChangeOrientation{Orientation: next(orientations, c.Orientation)}, true
	case ConfigPairCharacters:
		return store.ChangePairCharacters{PairCharacters: next(pairings, c.PairCharacters)}, true
	}
	return nil, false
}

func next[T comparable](vals []T, cur T) T {
	for i, v := range vals {
		if v == cur {
			return vals[(i+1)%len(vals)]
		}
	}
	return vals[0]
}
