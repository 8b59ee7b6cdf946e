package store

import (
	"github.com/interpretive-systems/playpen/internal/diffview"
	"github.com/interpretive-systems/playpen/internal/types"
)

// Action is a single state transition. The set is closed: only types in
// this package implement it.
type Action interface {
	action()
}

type (
	SetPage              struct{ Page types.Page }
	ChangeEditor         struct{ Editor types.Editor }
	ChangeKeybinding     struct{ Keybinding string }
	ChangeTheme          struct{ Theme string }
	ChangePairCharacters struct{ PairCharacters types.PairCharacters }
	ChangeOrientation    struct{ Orientation types.Orientation }
	ChangePrimaryAction  struct{ PrimaryAction types.PrimaryAction }
	ChangeChannel        struct{ Channel types.Channel }
	ChangeMode           struct{ Mode types.Mode }
	ChangeEdition        struct{ Edition types.Edition }
	ChangeBacktrace      struct{ Backtrace types.Backtrace }

	// ChangeFocus selects the visible pane; a nil Focus closes the output.
	ChangeFocus struct{ Focus *types.Focus }

	EditCode          struct{ Code string }
	AddMainFunction   struct{}
	AddImport         struct{ Code string }
	EnableFeatureGate struct{ FeatureGate string }
	GotoPosition      struct{ Position types.Position }
	SelectText        struct{ Selection types.Selection }
	NotificationSeen  struct{ Notification types.Notification }
)

// OperationRequested marks the issue of one request of kind Op.
type OperationRequested struct {
	Op  types.Operation
	Seq uint64
}

// OperationSucceeded resolves a request with a backend answer. A compile
// failure also lands here, with a nil Body and the diagnostics in Stderr.
type OperationSucceeded struct {
	Op          types.Operation
	Seq         uint64
	Body        []byte
	Stdout      string
	Stderr      string
	IsAutoBuild bool
}

// OperationFailed resolves a request that never produced a backend answer.
type OperationFailed struct {
	Op          types.Operation
	Seq         uint64
	Error       string
	IsAutoBuild bool
}

// FormatSucceeded replaces the buffer with formatted code.
type FormatSucceeded struct {
	Seq    uint64
	Code   string
	Stdout string
	Stderr string
	Rows   []diffview.Row
}

type (
	GistLoadRequested struct{ ID string }
	GistSaveRequested struct{}

	GistLoadSucceeded struct {
		ID     string
		URL    string
		Code   string
		Stdout string
		Stderr string
	}

	GistSaveSucceeded struct {
		ID     string
		URL    string
		Code   string
		Stdout string
		Stderr string
	}

	GistFailed struct{ Error string }
)

type (
	CratesRequested struct{}
	CratesLoaded    struct{ Crates []types.Crate }
	CratesFailed    struct{ Error string }

	VersionsRequested struct{}
	VersionsLoaded    struct{ Versions Versions }
	VersionsFailed    struct{ Error string }
)

// Batch applies several actions as one transition. Subscribers observe only
// the state after the last one.
type Batch struct {
	Actions []Action
}

func (SetPage) action()              {}
func (ChangeEditor) action()         {}
func (ChangeKeybinding) action()     {}
func (ChangeTheme) action()          {}
func (ChangePairCharacters) action() {}
func (ChangeOrientation) action()    {}
func (ChangePrimaryAction) action()  {}
func (ChangeChannel) action()        {}
func (ChangeMode) action()           {}
func (ChangeEdition) action()        {}
func (ChangeBacktrace) action()      {}
func (ChangeFocus) action()          {}
func (EditCode) action()             {}
func (AddMainFunction) action()      {}
func (AddImport) action()            {}
func (EnableFeatureGate) action()    {}
func (GotoPosition) action()         {}
func (SelectText) action()           {}
func (NotificationSeen) action()     {}
func (OperationRequested) action()   {}
func (OperationSucceeded) action()   {}
func (OperationFailed) action()      {}
func (FormatSucceeded) action()      {}
func (GistLoadRequested) action()    {}
func (GistSaveRequested) action()    {}
func (GistLoadSucceeded) action()    {}
func (GistSaveSucceeded) action()    {}
func (GistFailed) action()           {}
func (CratesRequested) action()      {}
func (CratesLoaded) action()         {}
func (CratesFailed) action()         {}
func (VersionsRequested) action()    {}
func (VersionsLoaded) action()       {}
func (VersionsFailed) action()       {}
func (Batch) action()                {}

// FocusOf is a convenience for building ChangeFocus.
func FocusOf(f types.Focus) *types.Focus {
	return &f
}
