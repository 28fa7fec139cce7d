package links

import (
	"fmt"

	"github.com/linkdecklabs/linkdeck/pkg/types"
)

// Filter returns the displayed subsequence: links whose title, description
// or URL contains the search text (case-insensitive), gated by the active
// flag unless showInactive is set. Filtering is local and synchronous;
// the whole collection is filtered client-side.
func Filter(links []types.Link, query string, showInactive bool) []types.Link {
	out := make([]types.Link, 0, len(links))
	for _, l := range links {
		if !l.Matches(query) {
			continue
		}
		if !showInactive && !l.IsActive {
			continue
		}
		out = append(out, l)
	}
	return out
}

// CandidateOrder computes the id list to submit after a drag: the item at
// from is removed and re-inserted at to within the currently displayed
// subsequence. Indexes outside the displayed range are an error.
func CandidateOrder(displayed []types.Link, from, to int) ([]string, error) {
	n := len(displayed)
	if from < 0 || from >= n {
		return nil, fmt.Errorf("source index %d out of range [0,%d)", from, n)
	}
	if to < 0 || to >= n {
		return nil, fmt.Errorf("destination index %d out of range [0,%d)", to, n)
	}

	ids := make([]string, 0, n)
	for _, l := range displayed {
		ids = append(ids, l.ID)
	}

	moved := ids[from]
	ids = append(ids[:from], ids[from+1:]...)

	rest := make([]string, 0, n)
	rest = append(rest, ids[:to]...)
	rest = append(rest, moved)
	rest = append(rest, ids[to:]...)
	return rest, nil
}
