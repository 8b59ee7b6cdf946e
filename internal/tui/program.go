// Package tui is the terminal rendering layer. It owns widget state only;
// everything else lives in the store and changes through dispatched actions.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/playpen/internal/dispatch"
	"github.com/interpretive-systems/playpen/internal/logx"
	"github.com/interpretive-systems/playpen/internal/router"
	"github.com/interpretive-systems/playpen/internal/selectors"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/tui/components"
	"github.com/interpretive-systems/playpen/internal/tui/menus"
	"github.com/interpretive-systems/playpen/internal/tui/theme"
	"github.com/interpretive-systems/playpen/internal/types"
	"github.com/interpretive-systems/playpen/internal/wasmrun"
)

// Options wires a Program to the core.
type Options struct {
	Context     context.Context
	Store       *store.Store
	Dispatcher  *dispatch.Dispatcher
	History     *router.MemoryHistory
	WasmTimeout time.Duration
}

type menuKind int

const (
	menuNone menuKind = iota
	menuBuild
	menuTools
	menuConfig
)

// Program is the bubbletea model.
type Program struct {
	ctx     context.Context
	st      *store.Store
	d       *dispatch.Dispatcher
	history *router.MemoryHistory
	syncer  *router.Synchronizer

	layout *Layout
	keys   *KeyHandler
	theme  theme.Theme

	editor  *components.Editor
	output  *components.OutputPane
	status  *components.StatusBar
	spinner spinner.Model
	spin    bool

	menu     *menus.Menu
	menuKind menuKind

	wasmTimeout time.Duration
	wasmSeq     uint64
}

// New builds a Program. History defaults to a fresh one at the index page.
func New(opts Options) *Program {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	history := opts.History
	if history == nil {
		history = router.NewMemoryHistory(router.Location{Path: router.IndexPath})
	}
	th := theme.ForEditorTheme(opts.Store.State().Configuration.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	p := &Program{
		ctx:         ctx,
		st:          opts.Store,
		d:           opts.Dispatcher,
		history:     history,
		syncer:      router.NewSynchronizer(ctx, opts.Store, opts.Dispatcher, history),
		layout:      NewLayout(),
		keys:        NewKeyHandler(),
		theme:       th,
		editor:      components.NewEditor(th),
		output:      components.NewOutputPane(th),
		status:      components.NewStatusBar(),
		spinner:     sp,
		wasmTimeout: opts.WasmTimeout,
	}
	p.refresh()
	return p
}

// Run instantiates and runs the Bubble Tea program.
func Run(opts Options) error {
	p := New(opts)
	defer p.syncer.Stop()
	prog := tea.NewProgram(p, tea.WithAltScreen(), tea.WithContext(p.ctx))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

// Init applies the starting location and loads backend metadata.
func (p *Program) Init() tea.Cmd {
	return tea.Batch(
		p.run(p.syncer.Start()),
		p.runThunk(p.d.LoadVersions()),
		p.runThunk(p.d.LoadCrates()),
		textarea.Blink,
	)
}

func (p *Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.layout.SetSize(msg.Width, msg.Height)
		p.refresh()
		return p, nil
	case store.Action:
		return p, p.apply(msg)
	case wasmRunMsg:
		if msg.seq == p.wasmSeq {
			w := components.WasmOutput{Lines: msg.result.Output}
			if msg.err != nil {
				w.Error = msg.err.Error()
			}
			p.output.SetWasmOutput(w)
			p.refresh()
		}
		return p, nil
	case spinner.TickMsg:
		if !p.status.Busy() {
			p.spin = false
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		p.status.SetSpinner(p.spinner.View())
		return p, cmd
	case tea.KeyMsg:
		return p, p.handleKey(msg)
	}
	return p, p.editor.Update(msg)
}

// apply feeds a resolution message into the store.
func (p *Program) apply(a store.Action) tea.Cmd {
	p.st.Dispatch(a)
	cmd := p.afterDispatch(a)
	p.refresh()
	return cmd
}

// afterDispatch starts side work a transition calls for. Today that is
// running a fresh wasm build artifact.
func (p *Program) afterDispatch(a store.Action) tea.Cmd {
	switch a := a.(type) {
	case store.OperationRequested:
		if a.Op == types.OpCompile {
			p.output.SetWasmOutput(components.WasmOutput{})
		}
	case store.OperationSucceeded:
		if a.Op != types.OpCompile || !wasmrun.IsModule(a.Body) {
			return nil
		}
		if !bytes.Equal(p.st.State().Output.Compile.Body, a.Body) {
			return nil
		}
		p.wasmSeq = a.Seq
		return runArtifact(p.ctx, a.Seq, a.Body, p.wasmTimeout)
	}
	return nil
}

func (p *Program) runThunk(th dispatch.Thunk) tea.Cmd {
	return p.run(dispatch.Run(p.st, th))
}

// run refreshes widgets after a thunk dispatched synchronously and keeps
// the spinner going while anything is in flight.
func (p *Program) run(cmd tea.Cmd) tea.Cmd {
	p.refresh()
	if p.status.Busy() && !p.spin {
		p.spin = true
		return tea.Batch(cmd, p.spinner.Tick)
	}
	return cmd
}

func (p *Program) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.menu != nil {
		return p.handleMenuKey(msg)
	}
	s := p.st.State()
	action := p.keys.Handle(msg)
	if s.Page == types.PageHelp {
		return p.handleHelpKey(msg, action)
	}

	switch action {
	case ActionQuit:
		return tea.Quit
	case ActionPrimary:
		return p.runThunk(p.d.PerformPrimaryAction())
	case ActionOpenBuild:
		p.openMenu(menus.Build(), menuBuild)
	case ActionOpenTools:
		p.openMenu(menus.Tools(), menuTools)
	case ActionOpenConfig:
		p.openMenu(menus.Config(), menuConfig)
	case ActionShare:
		return p.runThunk(p.d.PerformGistSave())
	case ActionNextTab, ActionPrevTab:
		delta := 1
		if action == ActionPrevTab {
			delta = -1
		}
		next := components.MoveFocus(s.Output.Meta.Focus, delta)
		return p.apply(store.ChangeFocus{Focus: store.FocusOf(next)})
	case ActionCloseOutput:
		return p.apply(store.ChangeFocus{})
	case ActionToggleHelp:
		return p.runThunk(p.d.HelpPageLoad())
	case ActionHistoryBack, ActionHistoryForward:
		return p.travel(action == ActionHistoryBack)
	case ActionPageDown, ActionPageUp:
		return p.output.Update(msg)
	case ActionToggleSideBySide:
		p.output.Diff().SetSideBySide(!p.output.Diff().SideBySide())
	default:
		return p.editKey(msg)
	}
	p.refresh()
	return nil
}

// editKey forwards a key to the editor and mirrors the buffer and cursor
// into the store.
func (p *Program) editKey(msg tea.KeyMsg) tea.Cmd {
	cmd := p.editor.Update(msg)
	s := p.st.State()
	if code := p.editor.Value(); code != s.Code {
		p.st.Dispatch(store.EditCode{Code: code})
	}
	if pos := p.editor.Position(); pos != s.Position {
		p.st.Dispatch(store.GotoPosition{Position: pos})
	}
	p.refresh()
	return cmd
}

func (p *Program) handleHelpKey(msg tea.KeyMsg, action KeyAction) tea.Cmd {
	switch action {
	case ActionQuit:
		return tea.Quit
	case ActionToggleHelp, ActionCloseOutput:
		return p.apply(store.SetPage{Page: types.PageIndex})
	case ActionHistoryBack, ActionHistoryForward:
		return p.travel(action == ActionHistoryBack)
	}
	k := msg.String()
	if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		if i := int(k[0] - '1'); i < len(examples) {
			return p.runThunk(p.d.ShowExample(examples[i].code))
		}
	}
	if k == "q" {
		return p.apply(store.SetPage{Page: types.PageIndex})
	}
	return nil
}

// travel moves through history and lets the store follow.
func (p *Program) travel(back bool) tea.Cmd {
	var (
		loc router.Location
		ok  bool
	)
	if back {
		loc, ok = p.history.Back()
	} else {
		loc, ok = p.history.Forward()
	}
	if !ok {
		return nil
	}
	return p.run(p.syncer.Navigate(loc))
}

func (p *Program) openMenu(m *menus.Menu, kind menuKind) {
	m.Refresh(p.st.State())
	p.menu = m
	p.menuKind = kind
}

func (p *Program) closeMenu() {
	p.menu = nil
	p.menuKind = menuNone
}

func (p *Program) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	if p.keys.Handle(msg) == ActionQuit {
		return tea.Quit
	}
	act, item := p.menu.HandleKey(msg)
	switch act {
	case menus.ActionClose:
		p.closeMenu()
		p.refresh()
	case menus.ActionChoose:
		logx.Ctx(p.ctx).Debug("menu choice", "menu", p.menu.Title(), "item", item.ID)
		return p.choose(item)
	}
	return nil
}

func (p *Program) choose(item menus.Item) tea.Cmd {
	kind := p.menuKind
	if kind != menuConfig {
		p.closeMenu()
	}
	switch kind {
	case menuBuild:
		switch types.Operation(item.ID) {
		case types.OpExecute:
			return p.runThunk(p.d.PerformExecute())
		case types.OpCompile:
			return p.runThunk(p.d.PerformCompile())
		}
		p.st.Dispatch(store.ChangePrimaryAction{PrimaryAction: types.PrimaryActionAuto})
		return p.runThunk(p.d.PerformPrimaryAction())
	case menuTools:
		if item.ID == menus.AddMainID {
			return p.apply(store.AddMainFunction{})
		}
		return p.runThunk(p.d.ForOperation(types.Operation(item.ID)))
	case menuConfig:
		if a, ok := menus.ConfigChange(item.ID, p.st.State()); ok {
			p.st.Dispatch(a)
		}
		p.menu.Refresh(p.st.State())
	}
	p.refresh()
	return nil
}

// refresh copies the current snapshot into the widgets and resizes them.
func (p *Program) refresh() {
	s := p.st.State()
	if p.editor.Value() != s.Code {
		p.editor.SetValue(s.Code)
	}
	p.status.Sync(s)

	_, open := s.Output.Meta.Focused()
	edW, edH, outW, outH := p.layout.Panes(s.Configuration.Orientation, open, p.overlayHeight())
	p.editor.SetSize(edW, edH)
	if open {
		p.output.SetSize(outW, outH-1)
	}
	p.output.Show(s)
}

func (p *Program) overlayLines() []string {
	if p.menu == nil {
		return nil
	}
	return p.menu.RenderOverlay(p.layout.Width(), p.theme)
}

func (p *Program) overlayHeight() int {
	if p.menu == nil {
		return 0
	}
	// rule + title + items
	return 2 + len(p.menu.Items())
}

func (p *Program) View() string {
	if p.layout.Width() == 0 || p.layout.Height() == 0 {
		return "Loading..."
	}
	s := p.st.State()
	if s.Page == types.PageHelp {
		return p.viewHelp(s)
	}

	overlay := p.overlayLines()
	_, open := s.Output.Meta.Focused()
	_, edH, outW, outH := p.layout.Panes(s.Configuration.Orientation, open, len(overlay))

	editorLines := fitLines(strings.Split(p.editor.View(), "\n"), edH)
	var outputLines []string
	if open {
		outputLines = append(outputLines, components.RenderTabs(s, p.theme, outW))
		outputLines = append(outputLines, fitLines(strings.Split(p.output.View(), "\n"), outH-1)...)
	}

	pos := s.Position
	topLeft := p.theme.Bold("playpen") + "  " + p.theme.Faint(selectors.ExecutionLabel(s)+" · "+selectors.ChannelLabel(s))
	topRight := p.theme.Faint(fmt.Sprintf("%s  Ln %d, Col %d", p.history.Location().String(), pos.Line, pos.Column))

	return p.layout.RenderFrame(
		topLeft, topRight,
		editorLines, outputLines,
		p.layout.SideBySide(s.Configuration.Orientation),
		overlay,
		p.status.Render(p.layout.Width()),
		p.theme,
	)
}

// fitLines pads or cuts lines to exactly h entries.
func fitLines(lines []string, h int) []string {
	if h < 0 {
		h = 0
	}
	if len(lines) > h {
		return lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return lines
}
