// Package selectors derives flags and labels from a store snapshot. Every
// function is pure; the code-scanning ones cache their last input.
package selectors

import (
	"net/url"
	"regexp"
	"time"

	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

var (
	hasTestsRe     = regexp.MustCompile(`(?m)^\s*#\s*\[\s*test\s*([^"]*)]`)
	hasMainRe      = regexp.MustCompile(`(?m)^\s*(pub\s+)?\s*(const\s+)?\s*(async\s+)?\s*fn\s+main\s*\(\s*\)`)
	crateTypeRe    = regexp.MustCompile(`(?m)^\s*#!\s*\[\s*crate_type\s*=\s*"([^"]*)"\s*]`)
	rust2018Cutoff = time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
)

type crateTypeResult struct {
	value string
	ok    bool
}

var (
	hasTestsMemo  = newMemo(func(code string) bool { return hasTestsRe.MatchString(code) })
	hasMainMemo   = newMemo(func(code string) bool { return hasMainRe.MatchString(code) })
	crateTypeMemo = newMemo(func(code string) crateTypeResult {
		m := crateTypeRe.FindStringSubmatch(code)
		if m == nil {
			return crateTypeResult{}
		}
		return crateTypeResult{value: m[1], ok: true}
	})
)

// HasTests reports whether a line starts with a #[test] attribute.
func HasTests(code string) bool { return hasTestsMemo.get(code) }

// HasMainFunction reports whether code declares a parameterless main.
func HasMainFunction(code string) bool { return hasMainMemo.get(code) }

// CrateType returns the declared #![crate_type = "..."] value, if any.
func CrateType(code string) (string, bool) {
	r := crateTypeMemo.get(code)
	return r.value, r.ok
}

// ResolveAutoOperation decides what "run" means when the user did not pick
// an operation explicitly.
func ResolveAutoOperation(crateType string, hasTests, hasMainFunction bool) types.PrimaryActionCore {
	return types.PrimaryActionExecute
}

// IsAutoBuild reports whether the primary action is inferred from code.
func IsAutoBuild(s store.State) bool {
	return s.Configuration.PrimaryAction == types.PrimaryActionAuto
}

// EffectiveOperation is the concrete operation the primary action runs.
func EffectiveOperation(s store.State) types.PrimaryActionCore {
	if pa := s.Configuration.PrimaryAction; pa.Core() {
		return pa
	}
	ct, _ := CrateType(s.Code)
	return ResolveAutoOperation(ct, HasTests(s.Code), HasMainFunction(s.Code))
}

var executionLabels = map[types.PrimaryActionCore]string{
	types.PrimaryActionExecute: "Run",
	types.PrimaryActionCompile: "Build",
}

// ExecutionLabel is the caption of the primary-action button.
func ExecutionLabel(s store.State) string {
	return executionLabels[EffectiveOperation(s)]
}

// RequestCrateType is the crate type sent to the backend.
func RequestCrateType(s store.State) string {
	if ct, ok := CrateType(s.Code); ok {
		return ct
	}
	return "bin"
}

// RunTests reports whether an execute request should run the test harness.
func RunTests(s store.State) bool {
	return HasTests(s.Code) && !HasMainFunction(s.Code)
}

// HasAnyContent reports whether any field of slot is set.
func HasAnyContent(slot store.Slot) bool {
	return slot.RequestsInProgress > 0 || len(slot.Body) > 0 || slot.Stdout != "" ||
		slot.Stderr != "" || slot.Error != "" || slot.IsAutoBuild || len(slot.Rows) > 0
}

func gistHasContent(g store.GistSlot) bool {
	return g.RequestsInProgress > 0 || g.ID != "" || g.URL != "" || g.Code != "" ||
		g.Stdout != "" || g.Stderr != "" || g.Error != ""
}

// SomethingToShow reports whether any output slot has content.
func SomethingToShow(s store.State) bool {
	for _, op := range types.Operations() {
		if HasAnyContent(s.Output.Slot(op)) {
			return true
		}
	}
	return gistHasContent(s.Output.Gist)
}

// Permalink is the share URL for the saved gist, or the bare base URL.
func Permalink(s store.State) string {
	base := s.GlobalConfiguration.BaseURL
	if s.Output.Gist.ID == "" {
		return base
	}
	q := url.Values{}
	q.Set("version", string(s.Configuration.Channel))
	q.Set("mode", string(s.Configuration.Mode))
	q.Set("edition", string(s.Configuration.Edition))
	q.Set("gist", s.Output.Gist.ID)
	return withQuery(base, q)
}

// CodeURL embeds the current buffer in a share URL.
func CodeURL(s store.State) string {
	q := url.Values{}
	q.Set("code", s.Code)
	return withQuery(s.GlobalConfiguration.BaseURL, q)
}

// GistURL links to the stored gist itself.
func GistURL(s store.State) string {
	return s.Output.Gist.URL
}

func withQuery(base string, q url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + q.Encode()
	}
	u.RawQuery = q.Encode()
	return u.String()
}

var channelLabels = map[types.Channel]string{
	types.ChannelStable:  "Stable",
	types.ChannelBeta:    "Beta",
	types.ChannelNightly: "Nightly",
}

// ChannelLabel is the display name of the configured channel.
func ChannelLabel(s store.State) string {
	if l, ok := channelLabels[s.Configuration.Channel]; ok {
		return l
	}
	return string(s.Configuration.Channel)
}

// ModeLabel is the display name of the configured build mode.
func ModeLabel(s store.State) string {
	if s.Configuration.Mode == types.ModeRelease {
		return "Release"
	}
	return "Debug"
}

// AdvancedOptionsSet reports whether any non-default advanced option is on.
func AdvancedOptionsSet(s store.State) bool {
	return s.Configuration.Edition != types.Edition2018 ||
		s.Configuration.Backtrace != types.BacktraceDisabled
}

// ShowRust2018IsDefault reports whether the 2018-edition notice is due.
func ShowRust2018IsDefault(s store.State, now time.Time) bool {
	return now.Before(rust2018Cutoff) &&
		!s.Notifications.Seen(types.NotificationRust2018IsDefault)
}

// AnyNotificationsToShow reports whether any notice is pending.
func AnyNotificationsToShow(s store.State, now time.Time) bool {
	return ShowRust2018IsDefault(s, now)
}
