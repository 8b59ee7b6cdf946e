package dispatch

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/playpen/internal/diffview"
	"github.com/interpretive-systems/playpen/internal/gateway"
	"github.com/interpretive-systems/playpen/internal/selectors"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

type executeRequest struct {
	Channel   types.Channel `json:"channel"`
	Mode      types.Mode    `json:"mode"`
	Edition   types.Edition `json:"edition"`
	CrateType string        `json:"crateType"`
	Tests     bool          `json:"tests"`
	Code      string        `json:"code"`
	Backtrace bool          `json:"backtrace"`
	Target    string        `json:"target,omitempty"`
}

type formatRequest struct {
	Code    string        `json:"code"`
	Edition types.Edition `json:"edition"`
}

type clippyRequest struct {
	Code      string        `json:"code"`
	Edition   types.Edition `json:"edition"`
	CrateType string        `json:"crateType"`
}

type outputResponse struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

type formatResponse struct {
	Code   string `json:"code"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// Endpoint returns the backend path of op.
func Endpoint(op types.Operation) string {
	return "/" + string(op)
}

func requestBody(op types.Operation, s store.State) any {
	c := s.Configuration
	switch op {
	case types.OpExecute, types.OpCompile:
		req := executeRequest{
			Channel:   c.Channel,
			Mode:      c.Mode,
			Edition:   c.Edition,
			CrateType: selectors.RequestCrateType(s),
			Tests:     selectors.RunTests(s),
			Code:      s.Code,
			Backtrace: c.Backtrace == types.BacktraceEnabled,
		}
		if op == types.OpCompile {
			req.Target = "wasm"
		}
		return req
	case types.OpClippy:
		return clippyRequest{Code: s.Code, Edition: c.Edition, CrateType: selectors.RequestCrateType(s)}
	default:
		return formatRequest{Code: s.Code, Edition: c.Edition}
	}
}

// PerformPrimaryAction runs whatever the primary action resolves to.
func (d *Dispatcher) PerformPrimaryAction() Thunk {
	return func(st *store.Store) tea.Cmd {
		if selectors.EffectiveOperation(st.State()) == types.PrimaryActionCompile {
			return d.perform(types.OpCompile)(st)
		}
		return d.perform(types.OpExecute)(st)
	}
}

// PerformExecute records execute as the chosen primary action and runs it.
func (d *Dispatcher) PerformExecute() Thunk {
	return d.explicit(types.PrimaryActionExecute, types.OpExecute)
}

// PerformCompile records compile as the chosen primary action and runs it.
func (d *Dispatcher) PerformCompile() Thunk {
	return d.explicit(types.PrimaryActionCompile, types.OpCompile)
}

func (d *Dispatcher) explicit(pa types.PrimaryActionCore, op types.Operation) Thunk {
	return func(st *store.Store) tea.Cmd {
		st.Dispatch(store.ChangePrimaryAction{PrimaryAction: pa})
		return d.perform(op)(st)
	}
}

// PerformFormat formats the buffer and replaces it with the result.
func (d *Dispatcher) PerformFormat() Thunk { return d.perform(types.OpFormat) }

// PerformClippy lints the buffer.
func (d *Dispatcher) PerformClippy() Thunk { return d.perform(types.OpClippy) }

// PerformMiri runs the buffer under the interpreter.
func (d *Dispatcher) PerformMiri() Thunk { return d.perform(types.OpMiri) }

// PerformMacroExpansion shows the buffer with macros expanded.
func (d *Dispatcher) PerformMacroExpansion() Thunk { return d.perform(types.OpMacroExpansion) }

// perform issues one request of kind op. The request is tagged with a
// per-kind sequence number so a store with the stale guard can tell
// overtaken resolutions apart.
func (d *Dispatcher) perform(op types.Operation) Thunk {
	return func(st *store.Store) tea.Cmd {
		s := st.State()
		seq := s.Output.Slot(op).LatestSeq + 1
		body := requestBody(op, s)
		auto := selectors.IsAutoBuild(s)
		code := s.Code

		st.Dispatch(store.OperationRequested{Op: op, Seq: seq})
		log := d.opLogger(op)
		log.Debug("operation requested", "seq", seq, "in_flight", st.State().Output.Slot(op).RequestsInProgress)

		path := Endpoint(op)
		return func() tea.Msg {
			res := d.gw.Post(d.ctx, path, body)
			action := d.resolve(op, seq, auto, code, res)
			log.Debug("operation resolved", "seq", seq, "outcome", outcome(res))
			return action
		}
	}
}

func (d *Dispatcher) resolve(op types.Operation, seq uint64, auto bool, code string, res gateway.Result) store.Action {
	switch r := res.(type) {
	case gateway.Success:
		if op == types.OpFormat {
			return d.formatted(seq, code, r)
		}
		ok := store.OperationSucceeded{Op: op, Seq: seq, Stderr: r.Diagnostics, IsAutoBuild: auto}
		if isJSON(r.ContentType) {
			var out outputResponse
			if err := gateway.DecodeJSON(r, &out); err != nil {
				return store.OperationFailed{Op: op, Seq: seq, Error: err.Error(), IsAutoBuild: auto}
			}
			ok.Stdout = out.Stdout
			ok.Stderr = joinOutput(r.Diagnostics, out.Stderr)
		} else {
			ok.Body = r.Body
		}
		return ok
	case gateway.CompileFailure:
		return store.OperationSucceeded{Op: op, Seq: seq, Stderr: r.Diagnostics, IsAutoBuild: auto}
	case gateway.TransportFailure:
		return store.OperationFailed{Op: op, Seq: seq, Error: r.Message, IsAutoBuild: auto}
	}
	return store.OperationFailed{Op: op, Seq: seq, Error: "unknown gateway result", IsAutoBuild: auto}
}

func (d *Dispatcher) formatted(seq uint64, before string, r gateway.Success) store.Action {
	out := formatResponse{Code: string(r.Body)}
	if isJSON(r.ContentType) {
		if err := gateway.DecodeJSON(r, &out); err != nil {
			return store.OperationFailed{Op: types.OpFormat, Seq: seq, Error: err.Error()}
		}
	}
	return store.FormatSucceeded{
		Seq:    seq,
		Code:   out.Code,
		Stdout: out.Stdout,
		Stderr: joinOutput(r.Diagnostics, out.Stderr),
		Rows:   diffview.BuildRows(before, out.Code, d.diffOpts),
	}
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}

func joinOutput(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

func outcome(res gateway.Result) string {
	switch res.(type) {
	case gateway.Success:
		return "success"
	case gateway.CompileFailure:
		return "compile_failure"
	default:
		return "transport_failure"
	}
}
