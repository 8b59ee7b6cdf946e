package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/playpen/internal/store"
)

type example struct {
	title string
	code  string
}

var examples = []example{
	{
		title: "Hello, world",
		code:  store.DefaultCode,
	},
	{
		title: "Unit tests",
		code: `fn add(a: i32, b: i32) -> i32 {
    a + b
}

#[test]
fn adds() {
    assert_eq!(add(2, 2), 4);
}`,
	},
	{
		title: "Library crate",
		code: `#![crate_type = "lib"]

pub fn greet(name: &str) -> String {
    format!("Hello, {}!", name)
}`,
	},
}

var helpKeys = []string{
	"ctrl+r          Run the primary action",
	"ctrl+b          Build menu (run / build / automatic)",
	"ctrl+t          Tools menu (rustfmt, clippy, miri, macros)",
	"ctrl+o          Configuration menu",
	"ctrl+s          Share as a gist",
	"tab / shift+tab Cycle output tabs",
	"pgup / pgdown   Scroll output",
	"f2              Toggle side-by-side format diff",
	"esc             Close output",
	"alt+left/right  History back / forward",
	"f1              Toggle this help",
	"ctrl+c          Quit",
}

func (p *Program) viewHelp(s store.State) string {
	var b strings.Builder
	title := lipgloss.NewStyle().Bold(true).Render("Playground Help")

	lines := append([]string{""}, helpKeys...)
	lines = append(lines, "", lipgloss.NewStyle().Bold(true).Render("Examples"))
	for i, ex := range examples {
		lines = append(lines, fmt.Sprintf("%d               %s", i+1, ex.title))
	}
	if n := len(s.Crates.Items); n > 0 {
		names := make([]string, 0, 5)
		for _, c := range s.Crates.Items {
			if len(names) == cap(names) {
				break
			}
			names = append(names, c.Name)
		}
		lines = append(lines, "", fmt.Sprintf("%d crates available: %s", n, strings.Join(names, ", ")))
	} else if s.Crates.Error != "" {
		lines = append(lines, "", p.theme.ErrorText("crates: "+s.Crates.Error))
	}
	lines = append(lines, "", "Press f1, q or Esc to close.")

	pad := 4
	if p.layout.Width() > 70 {
		pad = (p.layout.Width() - 70) / 2
	}
	leftPad := strings.Repeat(" ", pad)
	fmt.Fprintln(&b, leftPad+title)
	for _, l := range lines {
		fmt.Fprintln(&b, padToWidth(leftPad+l, p.layout.Width()))
	}
	fmt.Fprint(&b, p.status.Render(p.layout.Width()))
	return b.String()
}
