package catalog

import (
	"fmt"
	"sort"
)

type redirectKey struct {
	location string
	oldName  string
}

// RedirectTable resolves deprecated record names. It is immutable after
// construction and safe for concurrent use; swapping in new data means
// building a new table.
type RedirectTable struct {
	entries map[redirectKey]RedirectionEntry
}

// NewRedirectTable builds a table from a list of entries. Two entries with
// the same (location, old name) key are a content bug and fail construction
// with ErrDuplicateRedirect.
func NewRedirectTable(entries []RedirectionEntry) (*RedirectTable, error) {
	t := &RedirectTable{entries: make(map[redirectKey]RedirectionEntry, len(entries))}
	for _, e := range entries {
		key := redirectKey{location: e.Location, oldName: e.OldName}
		if _, dup := t.entries[key]; dup {
			return nil, fmt.Errorf("%w: %q at %q", ErrDuplicateRedirect, e.OldName, e.Location)
		}
		t.entries[key] = e
	}
	return t, nil
}

func emptyRedirectTable() *RedirectTable {
	return &RedirectTable{entries: map[redirectKey]RedirectionEntry{}}
}

// Resolve looks up the redirection for oldName at location. Absence is a
// valid outcome (ResolvedNone), not an error.
func (t *RedirectTable) Resolve(location, oldName string) Resolution {
	e, ok := t.entries[redirectKey{location: location, oldName: oldName}]
	if !ok {
		return Resolution{Kind: ResolvedNone}
	}
	switch e.Action {
	case RedirectReplace:
		return Resolution{Kind: ResolvedReplacement, Target: e.Target()}
	case RedirectIgnore:
		return Resolution{Kind: ResolvedIgnored}
	default:
		return Resolution{Kind: ResolvedPending}
	}
}

// Entries returns all entries ordered by location then old name, for
// listings and dumps.
func (t *RedirectTable) Entries() []RedirectionEntry {
	out := make([]RedirectionEntry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Location != out[j].Location {
			return out[i].Location < out[j].Location
		}
		return out[i].OldName < out[j].OldName
	})
	return out
}

// Len returns the number of entries in the table.
func (t *RedirectTable) Len() int {
	return len(t.entries)
}
