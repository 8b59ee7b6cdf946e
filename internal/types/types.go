// Package types holds the closed vocabulary shared by the playground core:
// pages, focus targets, editor options, operations and cursor positions.
package types

// Page identifies the top-level screen.
type Page string

const (
	PageIndex Page = "index"
	PageHelp  Page = "help"
)

// Valid reports whether p is a known page.
func (p Page) Valid() bool {
	return p == PageIndex || p == PageHelp
}

// Focus identifies which output pane is visible.
type Focus string

const (
	FocusClippy         Focus = "clippy"
	FocusMiri           Focus = "miri"
	FocusMacroExpansion Focus = "macro-expansion"
	FocusLlvmIr         Focus = "llvm-ir"
	FocusMir            Focus = "mir"
	FocusWasm           Focus = "wasm"
	FocusAsm            Focus = "asm"
	FocusExecute        Focus = "execute"
	FocusFormat         Focus = "format"
	FocusGist           Focus = "gist"
)

// Editor selects the editing widget.
type Editor string

const (
	EditorSimple   Editor = "simple"
	EditorAdvanced Editor = "advanced"
)

// PairCharacters toggles automatic bracket pairing.
type PairCharacters string

const (
	PairCharactersEnabled  PairCharacters = "enabled"
	PairCharactersDisabled PairCharacters = "disabled"
)

// Orientation controls how editor and output panes are split.
type Orientation string

const (
	OrientationAutomatic  Orientation = "automatic"
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// PrimaryAction is what the run button does. It is either one of the core
// actions or PrimaryActionAuto.
type PrimaryAction string

// PrimaryActionCore is a concrete operation the run button can resolve to.
type PrimaryActionCore = PrimaryAction

const (
	PrimaryActionAuto    PrimaryAction     = "auto"
	PrimaryActionExecute PrimaryActionCore = "execute"
	PrimaryActionCompile PrimaryActionCore = "compile"
)

// Core reports whether a is a concrete operation rather than auto.
func (a PrimaryAction) Core() bool {
	return a == PrimaryActionExecute || a == PrimaryActionCompile
}

// Valid reports whether a is a known primary action.
func (a PrimaryAction) Valid() bool {
	return a == PrimaryActionAuto || a.Core()
}

// Operation names a backend capability that owns an output slot.
type Operation string

const (
	OpExecute        Operation = "execute"
	OpCompile        Operation = "compile"
	OpFormat         Operation = "format"
	OpClippy         Operation = "clippy"
	OpMiri           Operation = "miri"
	OpMacroExpansion Operation = "macro-expansion"
)

// Operations lists every slot-owning operation in display order.
func Operations() []Operation {
	return []Operation{OpExecute, OpCompile, OpFormat, OpClippy, OpMiri, OpMacroExpansion}
}

// Focus returns the output pane an operation reports into.
func (o Operation) Focus() Focus {
	switch o {
	case OpCompile:
		return FocusWasm
	case OpFormat:
		return FocusFormat
	case OpClippy:
		return FocusClippy
	case OpMiri:
		return FocusMiri
	case OpMacroExpansion:
		return FocusMacroExpansion
	default:
		return FocusExecute
	}
}

// OperationForFocus maps a focus target back to the operation that fills it.
func OperationForFocus(f Focus) (Operation, bool) {
	for _, op := range Operations() {
		if op.Focus() == f {
			return op, true
		}
	}
	return "", false
}

// Channel is the toolchain release channel.
type Channel string

const (
	ChannelStable  Channel = "stable"
	ChannelBeta    Channel = "beta"
	ChannelNightly Channel = "nightly"
)

// Mode is the optimization profile.
type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

// Edition is the language edition.
type Edition string

const (
	Edition2015 Edition = "2015"
	Edition2018 Edition = "2018"
	Edition2021 Edition = "2021"
)

// Backtrace toggles RUST_BACKTRACE on execution.
type Backtrace string

const (
	BacktraceDisabled Backtrace = "disabled"
	BacktraceEnabled  Backtrace = "enabled"
)

// Notification identifies a one-time notice.
type Notification string

const (
	NotificationRust2018IsDefault Notification = "rust-2018-is-default"
)

// Crate is an entry of the backend's available crate list.
type Crate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Version describes one toolchain component.
type Version struct {
	Version string `json:"version"`
	Hash    string `json:"hash"`
	Date    string `json:"date"`
}

func (f Focus) String() string     { return string(f) }
func (o Operation) String() string { return string(o) }
func (c Channel) String() string   { return string(c) }
func (m Mode) String() string      { return string(m) }
func (e Edition) String() string   { return string(e) }

// Valid reports whether f is a known focus target.
func (f Focus) Valid() bool {
	switch f {
	case FocusClippy, FocusMiri, FocusMacroExpansion, FocusLlvmIr, FocusMir,
		FocusWasm, FocusAsm, FocusExecute, FocusFormat, FocusGist:
		return true
	}
	return false
}

func (e Editor) Valid() bool { return e == EditorSimple || e == EditorAdvanced }

func (p PairCharacters) Valid() bool {
	return p == PairCharactersEnabled || p == PairCharactersDisabled
}

func (o Orientation) Valid() bool {
	switch o {
	case OrientationAutomatic, OrientationHorizontal, OrientationVertical:
		return true
	}
	return false
}

func (c Channel) Valid() bool {
	return c == ChannelStable || c == ChannelBeta || c == ChannelNightly
}

func (m Mode) Valid() bool { return m == ModeDebug || m == ModeRelease }

func (e Edition) Valid() bool {
	return e == Edition2015 || e == Edition2018 || e == Edition2021
}

func (b Backtrace) Valid() bool { return b == BacktraceDisabled || b == BacktraceEnabled }
