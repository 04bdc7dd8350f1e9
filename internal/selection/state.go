// Package selection holds the point search filter a user builds up on the
// client and keeps the displayed result set consistent with it.
package selection

import (
	"slices"

	"github.com/vbonduro/ecoleta/internal/client"
	"github.com/vbonduro/ecoleta/internal/domain"
)

type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// RefList is reference data from the geographic provider.
type RefList struct {
	Status Status
	Values []string
}

// State is never mutated in place; Reduce returns a new value.
type State struct {
	Region   string
	City     string
	Selected []int64
	Points   []*domain.Point

	Regions RefList
	Cities  RefList

	// Issued is the sequence number of the latest points fetch; Applied is
	// the sequence number of the response currently shown.
	Issued  uint64
	Applied uint64
	Err     error
}

// IsSelected reports whether item id is part of the filter.
func (s State) IsSelected(id int64) bool {
	return slices.Contains(s.Selected, id)
}

// Query is the listPoints request the state currently describes.
func (s State) Query() client.Query {
	q := client.Query{Region: s.Region, City: s.City}
	if len(s.Selected) > 0 {
		q.Items = append([]int64(nil), s.Selected...)
	}
	return q
}
