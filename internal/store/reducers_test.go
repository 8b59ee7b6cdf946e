package store

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/interpretive-systems/playpen/internal/types"
)

func TestRequestsInProgress_NeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := Initial()
	issued, resolved := 0, 0
	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			s = Reduce(s, OperationRequested{Op: types.OpExecute})
			issued++
		case 1:
			s = Reduce(s, OperationSucceeded{Op: types.OpExecute, Stdout: "ok"})
			resolved++
		default:
			s = Reduce(s, OperationFailed{Op: types.OpExecute, Error: "boom"})
			resolved++
		}
		got := s.Output.Execute.RequestsInProgress
		if got < 0 {
			t.Fatalf("step %d: counter went negative: %d", i, got)
		}
		if resolved > issued {
			// Extra resolutions are clamped; re-base the ledger.
			resolved = issued
		}
		if want := issued - resolved; got != want {
			t.Fatalf("step %d: counter = %d, want %d", i, got, want)
		}
	}
}

func TestRequest_BlanksPaneAndForcesFocus(t *testing.T) {
	s := Initial()
	s = Reduce(s, OperationSucceeded{Op: types.OpClippy, Stdout: "lint ok", Stderr: "warning"})
	s = Reduce(s, ChangeFocus{Focus: FocusOf(types.FocusExecute)})

	s = Reduce(s, OperationRequested{Op: types.OpClippy})
	if f, ok := s.Output.Meta.Focused(); !ok || f != types.FocusClippy {
		t.Fatalf("focus = %v, want clippy", s.Output.Meta.Focus)
	}
	sl := s.Output.Clippy
	if sl.Stdout != "" || sl.Stderr != "" || sl.RequestsInProgress != 1 {
		t.Fatalf("pane not blanked on issue: %+v", sl)
	}
}

func TestCompileRequest_FocusesWasm(t *testing.T) {
	s := Reduce(Initial(), OperationRequested{Op: types.OpCompile})
	if f, _ := s.Output.Meta.Focused(); f != types.FocusWasm {
		t.Fatalf("focus = %q, want wasm", f)
	}
}

func TestSameKindRace_LastArrivalWins(t *testing.T) {
	s := Initial()
	s = Reduce(s, OperationRequested{Op: types.OpExecute, Seq: 1})
	s = Reduce(s, OperationSucceeded{Op: types.OpExecute, Seq: 1, Stdout: "first"})
	s = Reduce(s, OperationRequested{Op: types.OpExecute, Seq: 2})
	if s.Output.Execute.Stdout != "" {
		t.Fatalf("second issue must blank the pane, got %q", s.Output.Execute.Stdout)
	}

	// Overlapping: issue 3 and 4, resolve 4 then 3.
	s = Reduce(s, OperationSucceeded{Op: types.OpExecute, Seq: 2, Stdout: "second"})
	s = Reduce(s, OperationRequested{Op: types.OpExecute, Seq: 3})
	s = Reduce(s, OperationRequested{Op: types.OpExecute, Seq: 4})
	s = Reduce(s, OperationSucceeded{Op: types.OpExecute, Seq: 4, Stdout: "newer"})
	if s.Output.Execute.RequestsInProgress != 1 {
		t.Fatalf("counter = %d, want 1", s.Output.Execute.RequestsInProgress)
	}
	s = Reduce(s, OperationSucceeded{Op: types.OpExecute, Seq: 3, Stdout: "older"})
	if got := s.Output.Execute.Stdout; got != "older" {
		t.Fatalf("stdout = %q, want the last arrival %q", got, "older")
	}
	if s.Output.Execute.RequestsInProgress != 0 {
		t.Fatalf("counter = %d, want 0", s.Output.Execute.RequestsInProgress)
	}
}

func TestSameKindRace_StaleGuardKeepsNewest(t *testing.T) {
	r := Reducer{DropStale: true}
	s := Initial()
	s = r.Reduce(s, OperationRequested{Op: types.OpExecute, Seq: 1})
	s = r.Reduce(s, OperationRequested{Op: types.OpExecute, Seq: 2})
	s = r.Reduce(s, OperationSucceeded{Op: types.OpExecute, Seq: 2, Stdout: "newer"})
	s = r.Reduce(s, OperationFailed{Op: types.OpExecute, Seq: 1, Error: "older"})
	sl := s.Output.Execute
	if sl.Stdout != "newer" || sl.Error != "" {
		t.Fatalf("stale resolution leaked into the pane: %+v", sl)
	}
	if sl.RequestsInProgress != 0 {
		t.Fatalf("stale resolution must still decrement, got %d", sl.RequestsInProgress)
	}
}

func TestFailure_LeavesStderrUntouched(t *testing.T) {
	s := Initial()
	s = Reduce(s, OperationSucceeded{Op: types.OpExecute, Stderr: "warning: unused"})
	s = Reduce(s, OperationFailed{Op: types.OpExecute, Error: "Network error: reset"})
	if s.Output.Execute.Stderr != "warning: unused" {
		t.Fatalf("stderr changed on failure: %q", s.Output.Execute.Stderr)
	}
	if s.Output.Execute.Error != "Network error: reset" {
		t.Fatalf("error = %q", s.Output.Execute.Error)
	}
}

func TestCodeReducers(t *testing.T) {
	s := Reduce(Initial(), EditCode{Code: "let x = 1;"})
	s = Reduce(s, AddImport{Code: "use std::io;\n"})
	if s.Code != "use std::io;\nlet x = 1;" {
		t.Fatalf("AddImport: %q", s.Code)
	}
	s = Reduce(s, EnableFeatureGate{FeatureGate: "never_type"})
	if !strings.HasPrefix(s.Code, "#![feature(never_type)]\nuse std::io;") {
		t.Fatalf("EnableFeatureGate: %q", s.Code)
	}
	s = Reduce(s, AddMainFunction{})
	if !strings.HasSuffix(s.Code, "let x = 1;\n\n"+DefaultCode) {
		t.Fatalf("AddMainFunction: %q", s.Code)
	}
}

func TestFormatSucceeded_ReplacesBuffer(t *testing.T) {
	s := Reduce(Initial(), EditCode{Code: "fn main(){}"})
	s = Reduce(s, OperationRequested{Op: types.OpFormat, Seq: 1})
	s = Reduce(s, FormatSucceeded{Seq: 1, Code: "fn main() {}\n"})
	if s.Code != "fn main() {}\n" {
		t.Fatalf("code = %q", s.Code)
	}
	if s.Output.Format.RequestsInProgress != 0 {
		t.Fatalf("format counter = %d", s.Output.Format.RequestsInProgress)
	}
}

func TestGistLifecycle(t *testing.T) {
	s := Reduce(Initial(), GistSaveRequested{})
	if f, _ := s.Output.Meta.Focused(); f != types.FocusGist {
		t.Fatalf("focus = %q, want gist", f)
	}
	s = Reduce(s, GistSaveSucceeded{ID: "abc", URL: "https://gist/abc", Code: s.Code})
	if s.Output.Gist.ID != "abc" || s.Output.Gist.RequestsInProgress != 0 {
		t.Fatalf("gist slot = %+v", s.Output.Gist)
	}

	s = Reduce(s, GistLoadRequested{ID: "zzz"})
	if s.Output.Gist.ID != "" || s.Output.Gist.RequestsInProgress != 1 {
		t.Fatalf("gist load must blank the slot: %+v", s.Output.Gist)
	}
	s = Reduce(s, GistFailed{Error: "Unexpected response: 404"})
	if s.Output.Gist.Error == "" || s.Output.Gist.RequestsInProgress != 0 {
		t.Fatalf("gist failure: %+v", s.Output.Gist)
	}
}

func TestBatch_AppliesAsOneTransition(t *testing.T) {
	st := New()
	st.Dispatch(SetPage{Page: types.PageHelp})
	calls := 0
	st.Subscribe(func(prev, next State) {
		calls++
		if next.Page != types.PageIndex || next.Code != "fn x() {}" {
			t.Fatalf("listener saw partial batch: %+v", next)
		}
	})
	st.Dispatch(Batch{Actions: []Action{SetPage{Page: types.PageIndex}, EditCode{Code: "fn x() {}"}}})
	if calls != 1 {
		t.Fatalf("listener called %d times, want 1", calls)
	}
}

func TestNotifications_CopyOnWrite(t *testing.T) {
	s0 := Initial()
	s1 := Reduce(s0, NotificationSeen{Notification: types.NotificationRust2018IsDefault})
	if s0.Notifications.Seen(types.NotificationRust2018IsDefault) {
		t.Fatalf("previous snapshot mutated")
	}
	if !s1.Notifications.Seen(types.NotificationRust2018IsDefault) {
		t.Fatalf("notification not recorded")
	}
}

func TestVersions_AllOrNothing(t *testing.T) {
	s := Reduce(Initial(), VersionsRequested{})
	s = Reduce(s, VersionsFailed{Error: "Network error: refused"})
	if s.Versions.Loaded || s.Versions.Error == "" || s.Versions.RequestsInProgress != 0 {
		t.Fatalf("versions = %+v", s.Versions)
	}
	s = Reduce(s, VersionsRequested{})
	s = Reduce(s, VersionsLoaded{Versions: Versions{Stable: types.Version{Version: "1.31.0"}}})
	if !s.Versions.Loaded || s.Versions.Stable.Version != "1.31.0" || s.Versions.Error != "" {
		t.Fatalf("versions = %+v", s.Versions)
	}
}
