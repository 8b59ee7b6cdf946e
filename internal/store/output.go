package store

import "github.com/interpretive-systems/playpen/internal/types"

// start registers one more outstanding request and blanks the pane.
func start(def, prev Slot, seq uint64) Slot {
	next := def
	next.RequestsInProgress = prev.RequestsInProgress + 1
	next.LatestSeq = max(prev.LatestSeq, seq)
	return next
}

// finish retires one outstanding request and merges its result.
func finish(prev Slot, merge func(*Slot)) Slot {
	next := prev
	next.RequestsInProgress = max(prev.RequestsInProgress-1, 0)
	if merge != nil {
		merge(&next)
	}
	return next
}

func startGist(prev GistSlot) GistSlot {
	return GistSlot{RequestsInProgress: prev.RequestsInProgress + 1}
}

func finishGist(prev GistSlot, merge func(*GistSlot)) GistSlot {
	next := prev
	next.RequestsInProgress = max(prev.RequestsInProgress-1, 0)
	if merge != nil {
		merge(&next)
	}
	return next
}

// stale reports whether a resolution tagged seq was overtaken by a newer
// request of the same kind. Untagged resolutions are never stale.
func (r Reducer) stale(prev Slot, seq uint64) bool {
	return r.DropStale && seq != 0 && seq < prev.LatestSeq
}

func (r Reducer) reduceOutput(s State, a Action) State {
	out := s.Output
	switch a := a.(type) {
	case OperationRequested:
		out = out.withSlot(a.Op, start(Slot{}, out.Slot(a.Op), a.Seq))
		out.Meta = Meta{Focus: FocusOf(a.Op.Focus())}
	case OperationSucceeded:
		prev := out.Slot(a.Op)
		if r.stale(prev, a.Seq) {
			out = out.withSlot(a.Op, finish(prev, nil))
			break
		}
		out = out.withSlot(a.Op, finish(prev, func(sl *Slot) {
			sl.Body = cloneBytes(a.Body)
			sl.Stdout = a.Stdout
			sl.Stderr = a.Stderr
			sl.IsAutoBuild = a.IsAutoBuild
		}))
	case OperationFailed:
		prev := out.Slot(a.Op)
		if r.stale(prev, a.Seq) {
			out = out.withSlot(a.Op, finish(prev, nil))
			break
		}
		out = out.withSlot(a.Op, finish(prev, func(sl *Slot) {
			sl.Error = a.Error
			sl.IsAutoBuild = a.IsAutoBuild
		}))
	case FormatSucceeded:
		prev := out.Format
		if r.stale(prev, a.Seq) {
			out.Format = finish(prev, nil)
			break
		}
		out.Format = finish(prev, func(sl *Slot) {
			sl.Stdout = a.Stdout
			sl.Stderr = a.Stderr
			sl.Rows = append(sl.Rows[:0:0], a.Rows...)
		})
	case ChangeFocus:
		if a.Focus == nil {
			out.Meta = Meta{}
		} else {
			out.Meta = Meta{Focus: FocusOf(*a.Focus)}
		}
	case GistLoadRequested:
		out.Gist = startGist(out.Gist)
	case GistSaveRequested:
		out.Gist = startGist(out.Gist)
		out.Meta = Meta{Focus: FocusOf(types.FocusGist)}
	case GistLoadSucceeded:
		out.Gist = finishGist(out.Gist, func(g *GistSlot) {
			g.ID, g.URL, g.Code = a.ID, a.URL, a.Code
			g.Stdout, g.Stderr = a.Stdout, a.Stderr
		})
	case GistSaveSucceeded:
		out.Gist = finishGist(out.Gist, func(g *GistSlot) {
			g.ID, g.URL, g.Code = a.ID, a.URL, a.Code
			g.Stdout, g.Stderr = a.Stdout, a.Stderr
		})
	case GistFailed:
		out.Gist = finishGist(out.Gist, func(g *GistSlot) {
			g.Error = a.Error
		})
	default:
		return s
	}
	s.Output = out
	return s
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
