package selectors

import (
	"testing"
	"time"

	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

func TestHasMainFunction(t *testing.T) {
	cases := map[string]bool{
		"fn main() { }":                  true,
		"fn main(x: i32) { }":            false,
		"pub async fn main() { }":        true,
		"pub const fn main ( ) {}":       true,
		"  fn main() {}":                 true,
		"// fn main() {}":                false,
		"fn mainly() {}":                 false,
		"use std::io;\n\nfn main() {}\n": true,
	}
	for code, want := range cases {
		if got := HasMainFunction(code); got != want {
			t.Fatalf("HasMainFunction(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestHasTests(t *testing.T) {
	cases := map[string]bool{
		"#[test]\nfn it_works() {}":              true,
		"// #[test]":                             false,
		"mod t {\n    #[test]\n    fn a() {}\n}": true,
		"# [ test ]\nfn a() {}":                  true,
		"fn main() {}":                           false,
	}
	for code, want := range cases {
		if got := HasTests(code); got != want {
			t.Fatalf("HasTests(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestCrateType(t *testing.T) {
	ct, ok := CrateType("#![crate_type = \"lib\"]\npub fn f() {}")
	if !ok || ct != "lib" {
		t.Fatalf("CrateType = %q, %v", ct, ok)
	}
	if _, ok := CrateType("fn main() {}"); ok {
		t.Fatalf("no crate type declared")
	}

	s := store.Initial()
	if got := RequestCrateType(s); got != "bin" {
		t.Fatalf("RequestCrateType default = %q", got)
	}
	s.Code = "#![crate_type=\"proc-macro\"]"
	if got := RequestCrateType(s); got != "proc-macro" {
		t.Fatalf("RequestCrateType = %q", got)
	}
}

func TestEffectiveOperation(t *testing.T) {
	codes := []string{
		"",
		"fn main() {}",
		"#[test]\nfn t() {}",
		"#![crate_type = \"lib\"]\n#[test]\nfn t() {}\nfn main() {}",
	}
	for _, code := range codes {
		s := store.Initial()
		s.Code = code
		if !IsAutoBuild(s) {
			t.Fatalf("default configuration must be auto")
		}
		if got := EffectiveOperation(s); got != types.PrimaryActionExecute {
			t.Fatalf("auto on %q resolved to %q", code, got)
		}
		if ExecutionLabel(s) != "Run" {
			t.Fatalf("label = %q", ExecutionLabel(s))
		}

		s.Configuration.PrimaryAction = types.PrimaryActionCompile
		if got := EffectiveOperation(s); got != types.PrimaryActionCompile {
			t.Fatalf("explicit compile on %q resolved to %q", code, got)
		}
		if ExecutionLabel(s) != "Build" {
			t.Fatalf("label = %q", ExecutionLabel(s))
		}
	}
}

func TestSomethingToShow(t *testing.T) {
	s := store.Initial()
	if SomethingToShow(s) {
		t.Fatalf("fresh state has nothing to show")
	}
	s = store.Reduce(s, store.OperationRequested{Op: types.OpMacroExpansion})
	if !SomethingToShow(s) {
		t.Fatalf("in-flight request should count as content")
	}
	g := store.Reduce(store.Initial(), store.GistSaveRequested{})
	if !SomethingToShow(g) {
		t.Fatalf("gist slot should count as content")
	}
	if HasAnyContent(store.Slot{}) {
		t.Fatalf("empty slot has no content")
	}
	if !HasAnyContent(store.Slot{Error: "x"}) {
		t.Fatalf("error counts as content")
	}
}

func TestPermalink(t *testing.T) {
	s := store.Initial()
	s.GlobalConfiguration.BaseURL = "https://play.example.org/"
	if got := Permalink(s); got != "https://play.example.org/" {
		t.Fatalf("Permalink without gist = %q", got)
	}
	s = store.Reduce(s, store.GistSaveSucceeded{ID: "abc123"})
	want := "https://play.example.org/?edition=2018&gist=abc123&mode=debug&version=stable"
	if got := Permalink(s); got != want {
		t.Fatalf("Permalink = %q, want %q", got, want)
	}
	s.Code = "a b"
	if got := CodeURL(s); got != "https://play.example.org/?code=a+b" {
		t.Fatalf("CodeURL = %q", got)
	}
}

func TestLabelsAndNotifications(t *testing.T) {
	s := store.Initial()
	if ChannelLabel(s) != "Stable" || ModeLabel(s) != "Debug" {
		t.Fatalf("labels = %q %q", ChannelLabel(s), ModeLabel(s))
	}
	if AdvancedOptionsSet(s) {
		t.Fatalf("defaults are not advanced")
	}
	s.Configuration.Backtrace = types.BacktraceEnabled
	if !AdvancedOptionsSet(s) {
		t.Fatalf("backtrace enabled is advanced")
	}

	before := time.Date(2018, 12, 1, 0, 0, 0, 0, time.UTC)
	after := time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC)
	if !AnyNotificationsToShow(s, before) {
		t.Fatalf("notice should show before cutoff")
	}
	if AnyNotificationsToShow(s, after) {
		t.Fatalf("notice should expire")
	}
	s = store.Reduce(s, store.NotificationSeen{Notification: types.NotificationRust2018IsDefault})
	if ShowRust2018IsDefault(s, before) {
		t.Fatalf("seen notice should not show")
	}
}

func TestMemo_RecomputesOnlyOnChange(t *testing.T) {
	m := newMemo(func(s string) int { return len(s) })
	m.get("abc")
	m.get("abc")
	m.get("abcd")
	m.get("abcd")
	if m.calls != 2 {
		t.Fatalf("calls = %d, want 2", m.calls)
	}
}
