// Package store holds the application state tree, the closed set of actions
// that transform it, and the reducers that apply them.
package store

import (
	"github.com/interpretive-systems/playpen/internal/diffview"
	"github.com/interpretive-systems/playpen/internal/types"
)

// DefaultCode is the buffer a fresh session starts with.
const DefaultCode = "fn main() {\n    println!(\"Hello, world!\");\n}"

// State is one immutable snapshot of the whole application.
type State struct {
	Page                types.Page
	Code                string
	Configuration       Configuration
	GlobalConfiguration GlobalConfiguration
	Notifications       Notifications
	Output              Output
	Position            types.Position
	Selection           types.Selection
	Crates              CrateList
	Versions            VersionSet
}

// Configuration is the user-editable editor and build setup.
type Configuration struct {
	Editor         types.Editor
	Keybinding     string
	Theme          string
	PairCharacters types.PairCharacters
	Orientation    types.Orientation
	PrimaryAction  types.PrimaryAction
	Channel        types.Channel
	Mode           types.Mode
	Edition        types.Edition
	Backtrace      types.Backtrace
}

// GlobalConfiguration is environment data fixed at startup.
type GlobalConfiguration struct {
	BaseURL string
}

// Notifications is the append-only set of acknowledged notices.
type Notifications map[types.Notification]bool

// Seen reports whether n was acknowledged.
func (n Notifications) Seen(id types.Notification) bool {
	return n[id]
}

func (n Notifications) with(id types.Notification) Notifications {
	out := make(Notifications, len(n)+1)
	for k, v := range n {
		out[k] = v
	}
	out[id] = true
	return out
}

// Meta tracks which single output pane is visible. A nil Focus hides output.
type Meta struct {
	Focus *types.Focus
}

// Focused returns the focus target and whether one is set.
func (m Meta) Focused() (types.Focus, bool) {
	if m.Focus == nil {
		return "", false
	}
	return *m.Focus, true
}

// Slot is the output record of one operation kind.
type Slot struct {
	RequestsInProgress int
	Body               []byte
	Stdout             string
	Stderr             string
	Error              string
	IsAutoBuild        bool
	Rows               []diffview.Row
	LatestSeq          uint64
}

// InFlight reports whether at least one request of this kind is outstanding.
func (s Slot) InFlight() bool { return s.RequestsInProgress > 0 }

// GistSlot is the output record of gist load and save.
type GistSlot struct {
	RequestsInProgress int
	ID                 string
	URL                string
	Code               string
	Stdout             string
	Stderr             string
	Error              string
}

// Output groups the per-operation slots with the focus meta.
type Output struct {
	Meta           Meta
	Execute        Slot
	Compile        Slot
	Format         Slot
	Clippy         Slot
	Miri           Slot
	MacroExpansion Slot
	Gist           GistSlot
}

// Slot returns the slot owned by op.
func (o Output) Slot(op types.Operation) Slot {
	switch op {
	case types.OpCompile:
		return o.Compile
	case types.OpFormat:
		return o.Format
	case types.OpClippy:
		return o.Clippy
	case types.OpMiri:
		return o.Miri
	case types.OpMacroExpansion:
		return o.MacroExpansion
	default:
		return o.Execute
	}
}

func (o Output) withSlot(op types.Operation, s Slot) Output {
	switch op {
	case types.OpCompile:
		o.Compile = s
	case types.OpFormat:
		o.Format = s
	case types.OpClippy:
		o.Clippy = s
	case types.OpMiri:
		o.Miri = s
	case types.OpMacroExpansion:
		o.MacroExpansion = s
	default:
		o.Execute = s
	}
	return o
}

// CrateList is the backend's crate catalogue and its load status.
type CrateList struct {
	Items              []types.Crate
	RequestsInProgress int
	Error              string
}

// VersionSet holds toolchain component versions.
type VersionSet struct {
	Stable             types.Version
	Beta               types.Version
	Nightly            types.Version
	Rustfmt            types.Version
	Clippy             types.Version
	Miri               types.Version
	Loaded             bool
	RequestsInProgress int
	Error              string
}

// Versions is the payload of a successful version batch.
type Versions struct {
	Stable  types.Version
	Beta    types.Version
	Nightly types.Version
	Rustfmt types.Version
	Clippy  types.Version
	Miri    types.Version
}

// DefaultConfiguration returns the configuration a fresh session starts with.
func DefaultConfiguration() Configuration {
	return Configuration{
		Editor:         types.EditorAdvanced,
		Keybinding:     "ace",
		Theme:          "github",
		PairCharacters: types.PairCharactersEnabled,
		Orientation:    types.OrientationAutomatic,
		PrimaryAction:  types.PrimaryActionAuto,
		Channel:        types.ChannelStable,
		Mode:           types.ModeDebug,
		Edition:        types.Edition2018,
		Backtrace:      types.BacktraceDisabled,
	}
}

// Initial returns the starting snapshot.
func Initial() State {
	return State{
		Page:          types.PageIndex,
		Code:          DefaultCode,
		Configuration: DefaultConfiguration(),
		Notifications: Notifications{},
	}
}
