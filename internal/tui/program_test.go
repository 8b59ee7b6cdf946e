package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/playpen/internal/dispatch"
	"github.com/interpretive-systems/playpen/internal/gateway"
	"github.com/interpretive-systems/playpen/internal/router"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

type stubGateway struct{}

func (stubGateway) Post(context.Context, string, any) gateway.Result { return gateway.Success{} }
func (stubGateway) Get(context.Context, string) gateway.Result       { return gateway.Success{} }

func baseProgramForTest(t *testing.T) (*Program, *store.Store, *router.MemoryHistory) {
	t.Helper()
	st := store.New()
	history := router.NewMemoryHistory(router.Location{Path: router.IndexPath})
	p := New(Options{
		Context:    context.Background(),
		Store:      st,
		Dispatcher: dispatch.New(context.Background(), stubGateway{}),
		History:    history,
	})
	p.Init()
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return p, st, history
}

func press(p *Program, msg tea.KeyMsg) tea.Cmd {
	_, cmd := p.Update(msg)
	return cmd
}

func plainView(p *Program) string {
	return ansi.Strip(p.View())
}

func TestView_InitialRender(t *testing.T) {
	p, _, _ := baseProgramForTest(t)
	plain := plainView(p)

	if !strings.HasPrefix(plain, "playpen  Run · Stable") {
		t.Fatalf("unexpected header: %q", strings.SplitN(plain, "\n", 2)[0])
	}
	if !strings.Contains(plain, `println!("Hello, world!");`) {
		t.Fatalf("expected default code in editor, got: %q", plain)
	}
	if !strings.Contains(plain, "ctrl+r: Run") || !strings.Contains(plain, "Stable · Debug · 2018") {
		t.Fatalf("expected status bar labels, got: %q", plain)
	}
	if got := len(strings.Split(plain, "\n")); got != 30 {
		t.Fatalf("expected 30 rows, got %d", got)
	}
}

func TestPrimaryActionShowsProgressThenOutput(t *testing.T) {
	p, st, _ := baseProgramForTest(t)

	if cmd := press(p, tea.KeyMsg{Type: tea.KeyCtrlR}); cmd == nil {
		t.Fatalf("expected a request command")
	}
	s := st.State()
	if !s.Output.Execute.InFlight() {
		t.Fatalf("execute should be in flight")
	}
	plain := plainView(p)
	if !strings.Contains(plain, "[Execute •]") || !strings.Contains(plain, "Progress…") {
		t.Fatalf("expected busy execute tab, got: %q", plain)
	}

	p.Update(store.OperationSucceeded{Op: types.OpExecute, Seq: 1, Stdout: "hello from the backend"})
	plain = plainView(p)
	if !strings.Contains(plain, "Standard Output") || !strings.Contains(plain, "hello from the backend") {
		t.Fatalf("expected stdout in output pane, got: %q", plain)
	}
}

func TestTabCyclesAndEscCloses(t *testing.T) {
	p, st, _ := baseProgramForTest(t)

	press(p, tea.KeyMsg{Type: tea.KeyTab})
	if f, _ := st.State().Output.Meta.Focused(); f != types.FocusExecute {
		t.Fatalf("first tab should open execute, got %q", f)
	}
	press(p, tea.KeyMsg{Type: tea.KeyTab})
	if f, _ := st.State().Output.Meta.Focused(); f != types.FocusWasm {
		t.Fatalf("second tab should move to build, got %q", f)
	}
	if !strings.Contains(plainView(p), "[Build]") {
		t.Fatalf("expected build tab highlighted")
	}
	press(p, tea.KeyMsg{Type: tea.KeyShiftTab})
	press(p, tea.KeyMsg{Type: tea.KeyShiftTab})
	if f, _ := st.State().Output.Meta.Focused(); f != types.FocusGist {
		t.Fatalf("shift+tab should wrap to gist, got %q", f)
	}
	press(p, tea.KeyMsg{Type: tea.KeyEsc})
	if _, open := st.State().Output.Meta.Focused(); open {
		t.Fatalf("esc should close the output")
	}
}

func TestTypingUpdatesStore(t *testing.T) {
	p, st, _ := baseProgramForTest(t)

	press(p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	s := st.State()
	if !strings.HasPrefix(s.Code, "xfn main") {
		t.Fatalf("expected typed rune at cursor, got %q", s.Code)
	}
	if s.Position.Line != 1 || s.Position.Column != 2 {
		t.Fatalf("unexpected position %+v", s.Position)
	}
}

func TestStoreCodeReachesEditor(t *testing.T) {
	p, _, _ := baseProgramForTest(t)

	p.Update(store.FormatSucceeded{Seq: 1, Code: "fn main() {}\n"})
	if got := p.editor.Value(); got != "fn main() {}\n" {
		t.Fatalf("editor should follow the store, got %q", got)
	}
}

func TestHelpPageAndHistory(t *testing.T) {
	p, st, history := baseProgramForTest(t)

	press(p, tea.KeyMsg{Type: tea.KeyF1})
	if st.State().Page != types.PageHelp {
		t.Fatalf("f1 should open help")
	}
	if history.Location().Path != router.HelpPath {
		t.Fatalf("history should follow, got %q", history.Location().String())
	}
	if !strings.Contains(plainView(p), "Playground Help") {
		t.Fatalf("expected help view")
	}

	press(p, tea.KeyMsg{Type: tea.KeyEsc})
	if st.State().Page != types.PageIndex || history.Location().Path != router.IndexPath {
		t.Fatalf("esc should return to index, page=%q location=%q", st.State().Page, history.Location().String())
	}

	press(p, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if st.State().Page != types.PageHelp {
		t.Fatalf("history back should reopen help")
	}
	if history.Len() != 3 {
		t.Fatalf("navigating history must not push entries, len=%d", history.Len())
	}
}

func TestHelpExampleLoadsCode(t *testing.T) {
	p, st, _ := baseProgramForTest(t)

	press(p, tea.KeyMsg{Type: tea.KeyF1})
	press(p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	s := st.State()
	if s.Page != types.PageIndex || !strings.Contains(s.Code, "#[test]") {
		t.Fatalf("expected test example on index page, page=%q code=%q", s.Page, s.Code)
	}
	if !strings.Contains(p.editor.Value(), "fn adds()") {
		t.Fatalf("editor should show the example, got %q", p.editor.Value())
	}
}

func TestConfigMenuChangesChannel(t *testing.T) {
	p, st, _ := baseProgramForTest(t)

	press(p, tea.KeyMsg{Type: tea.KeyCtrlO})
	if !strings.Contains(plainView(p), "Configuration") {
		t.Fatalf("expected config overlay")
	}
	press(p, tea.KeyMsg{Type: tea.KeyEnter})
	if st.State().Configuration.Channel != types.ChannelBeta {
		t.Fatalf("enter should step channel to beta, got %q", st.State().Configuration.Channel)
	}
	plain := plainView(p)
	if !strings.Contains(plain, "beta") || !strings.Contains(plain, "Beta · Debug") {
		t.Fatalf("menu and status should show beta, got: %q", plain)
	}
	press(p, tea.KeyMsg{Type: tea.KeyEsc})
	if p.menu != nil {
		t.Fatalf("esc should close the menu")
	}
}

func TestBuildMenuCompileIsExplicit(t *testing.T) {
	p, st, _ := baseProgramForTest(t)

	press(p, tea.KeyMsg{Type: tea.KeyCtrlB})
	if cmd := press(p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")}); cmd == nil {
		t.Fatalf("expected a compile request")
	}
	s := st.State()
	if s.Configuration.PrimaryAction != types.PrimaryActionCompile {
		t.Fatalf("explicit build should set primary action, got %q", s.Configuration.PrimaryAction)
	}
	if !s.Output.Compile.InFlight() {
		t.Fatalf("compile should be in flight")
	}
	if f, _ := s.Output.Meta.Focused(); f != types.FocusWasm {
		t.Fatalf("compile should focus the build pane, got %q", f)
	}
}

func TestCompileArtifactWithoutWasmHeader(t *testing.T) {
	p, _, _ := baseProgramForTest(t)

	press(p, tea.KeyMsg{Type: tea.KeyCtrlB})
	press(p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	_, cmd := p.Update(store.OperationSucceeded{Op: types.OpCompile, Seq: 1, Body: []byte("not wasm")})
	if cmd != nil {
		t.Fatalf("non-wasm artifacts must not be run")
	}
	if !strings.Contains(plainView(p), "Build artifact: 8 bytes") {
		t.Fatalf("expected artifact summary")
	}
}

func TestLayoutOrientation(t *testing.T) {
	l := NewLayout()
	l.SetSize(100, 30)
	if l.SideBySide(types.OrientationAutomatic) {
		t.Fatalf("100 columns should stack under automatic orientation")
	}
	edW, edH, outW, outH := l.Panes(types.OrientationAutomatic, true, 0)
	if edW != 100 || outW != 100 || edH+outH+1 != l.ContentHeight(0) {
		t.Fatalf("unexpected stacked panes %d %d %d %d", edW, edH, outW, outH)
	}
	edW, edH, outW, outH = l.Panes(types.OrientationHorizontal, true, 0)
	if edW+outW+1 != 100 || edH != outH {
		t.Fatalf("unexpected side-by-side panes %d %d %d %d", edW, edH, outW, outH)
	}
	l.SetSize(140, 30)
	if !l.SideBySide(types.OrientationAutomatic) {
		t.Fatalf("140 columns should be side by side under automatic orientation")
	}
	if edW, _, outW, _ := l.Panes(types.OrientationVertical, false, 0); edW != 140 || outW != 0 {
		t.Fatalf("closed output should leave the editor the full width")
	}
}
