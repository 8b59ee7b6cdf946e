package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/playpen/internal/diffview"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/tui/theme"
	"github.com/interpretive-systems/playpen/internal/types"
)

func TestTabLabels(t *testing.T) {
	cases := map[types.Focus]string{
		types.FocusExecute:        "Execute",
		types.FocusWasm:           "Build",
		types.FocusMacroExpansion: "Macro Expansion",
		types.FocusLlvmIr:         "Llvm Ir",
	}
	for f, want := range cases {
		if got := TabLabel(f); got != want {
			t.Fatalf("TabLabel(%q) = %q, want %q", f, got, want)
		}
	}
}

func TestMoveFocusWraps(t *testing.T) {
	if got := MoveFocus(nil, -1); got != types.FocusExecute {
		t.Fatalf("closed output should start at execute, got %q", got)
	}
	gist := types.FocusGist
	if got := MoveFocus(&gist, 1); got != types.FocusExecute {
		t.Fatalf("gist +1 should wrap to execute, got %q", got)
	}
	exec := types.FocusExecute
	if got := MoveFocus(&exec, -1); got != types.FocusGist {
		t.Fatalf("execute -1 should wrap to gist, got %q", got)
	}
	asm := types.FocusAsm
	if got := MoveFocus(&asm, 1); got != types.FocusExecute {
		t.Fatalf("untabbed focus should restart at execute, got %q", got)
	}
}

func showFor(s store.State, f types.Focus) string {
	s.Output.Meta = store.Meta{Focus: store.FocusOf(f)}
	o := NewOutputPane(theme.Default())
	o.SetSize(60, 40)
	o.Show(s)
	return ansi.Strip(strings.Join(o.Lines(), "\n"))
}

func TestOutputSections(t *testing.T) {
	s := store.Initial()
	s.Output.Clippy = store.Slot{Stderr: "warning: unused", Stdout: "ok"}
	out := showFor(s, types.FocusClippy)
	if !strings.Contains(out, "Standard Error\nwarning: unused") {
		t.Fatalf("missing stderr section: %q", out)
	}
	if strings.Index(out, "Standard Error") > strings.Index(out, "Standard Output") {
		t.Fatalf("stderr should come before stdout: %q", out)
	}

	s.Output.Miri = store.Slot{Error: "Network error: connection reset"}
	if out := showFor(s, types.FocusMiri); !strings.HasPrefix(out, "Error\nNetwork error") {
		t.Fatalf("missing error section: %q", out)
	}
	if out := showFor(s, types.FocusMacroExpansion); out != "No output" {
		t.Fatalf("empty slot: %q", out)
	}
	if out := showFor(s, types.FocusMir); !strings.Contains(out, "not available") {
		t.Fatalf("untabbed focus: %q", out)
	}
}

func TestOutputGist(t *testing.T) {
	s := store.Initial()
	s.GlobalConfiguration.BaseURL = "https://play.example.org/"
	if out := showFor(s, types.FocusGist); out != "Nothing shared yet" {
		t.Fatalf("unexpected empty gist pane: %q", out)
	}
	s.Output.Gist = store.GistSlot{ID: "abc", URL: "https://gist.example.org/abc"}
	out := showFor(s, types.FocusGist)
	if !strings.Contains(out, "gist=abc") || !strings.Contains(out, "https://gist.example.org/abc") {
		t.Fatalf("expected permalink and gist url: %q", out)
	}
}

func TestOutputFormatDiff(t *testing.T) {
	s := store.Initial()
	s.Output.Format = store.Slot{Rows: diffview.BuildRows("a\nb\n", "a\nc\n", diffview.DefaultOptions())}
	out := showFor(s, types.FocusFormat)
	if !strings.Contains(out, "+1 -1") {
		t.Fatalf("expected stats line: %q", out)
	}
	if !strings.Contains(out, "- b") || !strings.Contains(out, "+ c") {
		t.Fatalf("expected side-by-side cells: %q", out)
	}
}

func TestDiffViewInline(t *testing.T) {
	d := NewDiffView(theme.Default())
	d.SetSideBySide(false)
	d.SetRows(diffview.BuildRows("x\n", "y\n", diffview.DefaultOptions()))
	out := ansi.Strip(strings.Join(d.Render(40), "\n"))
	if out != "+1 -1\n- x\n+ y" {
		t.Fatalf("unexpected inline diff: %q", out)
	}
	d.SetRows(nil)
	if out := ansi.Strip(strings.Join(d.Render(40), "\n")); out != "No changes" {
		t.Fatalf("unexpected empty diff: %q", out)
	}
}

func TestStatusBarKeepsRightVisible(t *testing.T) {
	s := store.Initial()
	s.Output.Gist.ID = "abc"
	s.GlobalConfiguration.BaseURL = "https://play.example.org/"
	sb := NewStatusBar()
	sb.Sync(s)
	out := ansi.Strip(sb.Render(50))
	if !strings.HasSuffix(out, "Stable · Debug · 2018") {
		t.Fatalf("right side cut: %q", out)
	}
	if ansi.StringWidth(out) != 50 {
		t.Fatalf("width = %d", ansi.StringWidth(out))
	}
	if !strings.HasPrefix(out, "ctrl+r: Run") {
		t.Fatalf("unexpected left side: %q", out)
	}
}
