package store

import (
	"fmt"

	"github.com/interpretive-systems/playpen/internal/types"
)

// Reducer applies actions to snapshots. The zero value applies every
// resolution in arrival order; DropStale ignores the content of resolutions
// overtaken by a newer request of the same kind.
type Reducer struct {
	DropStale bool
}

// Reduce applies a with arrival-order semantics.
func Reduce(s State, a Action) State {
	return Reducer{}.Reduce(s, a)
}

// Reduce returns the state after a. It never mutates s.
func (r Reducer) Reduce(s State, a Action) State {
	if b, ok := a.(Batch); ok {
		for _, inner := range b.Actions {
			s = r.Reduce(s, inner)
		}
		return s
	}
	s = reducePage(s, a)
	s = reduceConfiguration(s, a)
	s = r.reduceCode(s, a)
	s = reducePosition(s, a)
	s = reduceNotifications(s, a)
	s = r.reduceOutput(s, a)
	s = reduceMetadata(s, a)
	return s
}

func reducePage(s State, a Action) State {
	if p, ok := a.(SetPage); ok {
		s.Page = p.Page
	}
	return s
}

func reduceConfiguration(s State, a Action) State {
	c := s.Configuration
	switch a := a.(type) {
	case ChangeEditor:
		c.Editor = a.Editor
	case ChangeKeybinding:
		c.Keybinding = a.Keybinding
	case ChangeTheme:
		c.Theme = a.Theme
	case ChangePairCharacters:
		c.PairCharacters = a.PairCharacters
	case ChangeOrientation:
		c.Orientation = a.Orientation
	case ChangePrimaryAction:
		c.PrimaryAction = a.PrimaryAction
	case ChangeChannel:
		c.Channel = a.Channel
	case ChangeMode:
		c.Mode = a.Mode
	case ChangeEdition:
		c.Edition = a.Edition
	case ChangeBacktrace:
		c.Backtrace = a.Backtrace
	default:
		return s
	}
	s.Configuration = c
	return s
}

func (r Reducer) reduceCode(s State, a Action) State {
	switch a := a.(type) {
	case EditCode:
		s.Code = a.Code
	case AddMainFunction:
		s.Code = s.Code + "\n\n" + DefaultCode
	case AddImport:
		s.Code = a.Code + s.Code
	case EnableFeatureGate:
		s.Code = fmt.Sprintf("#![feature(%s)]\n%s", a.FeatureGate, s.Code)
	case FormatSucceeded:
		if !r.stale(s.Output.Format, a.Seq) {
			s.Code = a.Code
		}
	case GistLoadSucceeded:
		s.Code = a.Code
	}
	return s
}

func reducePosition(s State, a Action) State {
	switch a := a.(type) {
	case GotoPosition:
		s.Position = a.Position
	case SelectText:
		s.Selection = types.Selection{
			Start: clonePosition(a.Selection.Start),
			End:   clonePosition(a.Selection.End),
		}
	}
	return s
}

func reduceNotifications(s State, a Action) State {
	if n, ok := a.(NotificationSeen); ok {
		s.Notifications = s.Notifications.with(n.Notification)
	}
	return s
}

func clonePosition(p *types.Position) *types.Position {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
