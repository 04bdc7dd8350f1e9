package selection

import (
	"slices"

	"github.com/vbonduro/ecoleta/internal/client"
	"github.com/vbonduro/ecoleta/internal/domain"
)

type Action interface{ isAction() }

// Enter starts a search screen with region and city pre-filled.
type Enter struct {
	Region string
	City   string
}

type ToggleItem struct{ ID int64 }

type SetRegion struct{ Code string }

type SetCity struct{ Name string }

type PointsLoaded struct {
	Seq    uint64
	Points []*domain.Point
}

type PointsFailed struct {
	Seq uint64
	Err error
}

type RegionsLoaded struct {
	Regions []string
	Err     error
}

type CitiesLoaded struct {
	Region string
	Cities []string
	Err    error
}

func (Enter) isAction()         {}
func (ToggleItem) isAction()    {}
func (SetRegion) isAction()     {}
func (SetCity) isAction()       {}
func (PointsLoaded) isAction()  {}
func (PointsFailed) isAction()  {}
func (RegionsLoaded) isAction() {}
func (CitiesLoaded) isAction()  {}

// Effect is work the caller must perform after a transition.
type Effect interface{ isEffect() }

type FetchPoints struct {
	Seq   uint64
	Query client.Query
}

type FetchRegions struct{}

type FetchCities struct{ Region string }

func (FetchPoints) isEffect()  {}
func (FetchRegions) isEffect() {}
func (FetchCities) isEffect()  {}

// Reduce applies a to s and returns the next state with the effects the
// transition requires.
func Reduce(s State, a Action) (State, []Effect) {
	switch a := a.(type) {
	case Enter:
		next := State{
			Region:   a.Region,
			City:     a.City,
			Selected: []int64{},
			Regions:  RefList{Status: StatusLoading},
			Cities:   RefList{Status: StatusReady},
			Issued:   s.Issued,
			Applied:  s.Applied,
		}
		effects := []Effect{FetchRegions{}}
		if a.Region != "" {
			next.Cities = RefList{Status: StatusLoading}
			effects = append(effects, FetchCities{Region: a.Region})
		}
		next, fetch := issueFetch(next)
		return next, append([]Effect{fetch}, effects...)

	case ToggleItem:
		next := s
		if s.IsSelected(a.ID) {
			next.Selected = slices.DeleteFunc(slices.Clone(s.Selected), func(id int64) bool { return id == a.ID })
		} else {
			next.Selected = append(slices.Clone(s.Selected), a.ID)
		}
		next, fetch := issueFetch(next)
		return next, []Effect{fetch}

	case SetRegion:
		next := s
		next.Region = a.Code
		next.City = ""
		if a.Code == "" {
			next.Cities = RefList{Status: StatusReady}
			return next, nil
		}
		next.Cities = RefList{Status: StatusLoading}
		return next, []Effect{FetchCities{Region: a.Code}}

	case SetCity:
		next := s
		next.City = a.Name
		return next, nil

	case PointsLoaded:
		if a.Seq <= s.Applied {
			return s, nil
		}
		next := s
		next.Points = a.Points
		next.Applied = a.Seq
		next.Err = nil
		return next, nil

	case PointsFailed:
		if a.Seq <= s.Applied {
			return s, nil
		}
		next := s
		next.Err = a.Err
		return next, nil

	case RegionsLoaded:
		next := s
		next.Regions = loaded(a.Regions, a.Err)
		return next, nil

	case CitiesLoaded:
		if a.Region != s.Region {
			return s, nil
		}
		next := s
		next.Cities = loaded(a.Cities, a.Err)
		return next, nil
	}
	return s, nil
}

func issueFetch(s State) (State, FetchPoints) {
	s.Issued++
	return s, FetchPoints{Seq: s.Issued, Query: s.Query()}
}

func loaded(values []string, err error) RefList {
	if err != nil {
		return RefList{Status: StatusUnavailable}
	}
	return RefList{Status: StatusReady, Values: values}
}
