// Package router keeps a location history and the store in step.
package router

import (
	"errors"
	"net/url"
	"strings"

	"github.com/interpretive-systems/playpen/internal/dispatch"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

var (
	// ErrUnmatchedRoute marks a location no page handles.
	ErrUnmatchedRoute = errors.New("unmatched route")
)

const (
	IndexPath = "/"
	HelpPath  = "/help"
)

// Location is an address-bar value.
type Location struct {
	Path  string
	Query url.Values
}

// ParseLocation reads a path with an optional query string. Full URLs are
// accepted; their scheme and host are dropped.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{Path: IndexPath, Query: url.Values{}}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, err
	}
	path := u.Path
	if path == "" {
		path = IndexPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return Location{Path: path, Query: u.Query()}, nil
}

// String renders the location as path?query.
func (l Location) String() string {
	path := l.Path
	if path == "" {
		path = IndexPath
	}
	if len(l.Query) == 0 {
		return path
	}
	return path + "?" + l.Query.Encode()
}

// SamePath reports whether two locations address the same page.
func (l Location) SamePath(other Location) bool {
	return normalize(l.Path) == normalize(other.Path)
}

func normalize(p string) string {
	if p == "" {
		return IndexPath
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

// StateToLocation derives the location a snapshot should be displayed at.
func StateToLocation(s store.State) Location {
	if s.Page == types.PageHelp {
		return Location{Path: HelpPath, Query: url.Values{}}
	}
	return Location{Path: IndexPath, Query: url.Values{}}
}

// LocationToThunk maps a location to its navigation intent. Unmatched
// locations return nil.
func LocationToThunk(d *dispatch.Dispatcher, loc Location) dispatch.Thunk {
	th, err := match(d, loc)
	if err != nil {
		return nil
	}
	return th
}

func match(d *dispatch.Dispatcher, loc Location) (dispatch.Thunk, error) {
	switch normalize(loc.Path) {
	case HelpPath:
		return d.HelpPageLoad(), nil
	case IndexPath:
		q := loc.Query
		if q == nil {
			q = url.Values{}
		}
		return d.IndexPageLoad(q), nil
	}
	return nil, ErrUnmatchedRoute
}
