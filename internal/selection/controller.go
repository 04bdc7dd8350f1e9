package selection

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/vbonduro/ecoleta/internal/client"
	"github.com/vbonduro/ecoleta/internal/domain"
)

// PointsFinder is the subset of client.Client the controller requires.
type PointsFinder interface {
	ListPoints(ctx context.Context, q client.Query) ([]*domain.Point, error)
}

// GeoReference supplies region codes and per-region city names.
type GeoReference interface {
	Regions(ctx context.Context) ([]string, error)
	Cities(ctx context.Context, region string) ([]string, error)
}

type Controller struct {
	mu        sync.Mutex
	state     State
	observers []func(State)

	points PointsFinder
	geo    GeoReference
	run    func(func())
	logger *slog.Logger
}

type Option func(*Controller)

// WithExecutor sets how effects are run. The default starts a goroutine per
// effect.
func WithExecutor(run func(func())) Option {
	return func(c *Controller) { c.run = run }
}

func NewController(points PointsFinder, geo GeoReference, logger *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		points: points,
		geo:    geo,
		run:    func(f func()) { go f() },
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn to be called after every transition. fn runs on the
// dispatching goroutine and must not block.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies a and starts the resulting effects.
func (c *Controller) Dispatch(a Action) {
	c.mu.Lock()
	next, effects := Reduce(c.state, a)
	c.state = next
	observers := slices.Clone(c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}
	for _, e := range effects {
		c.run(func() { c.perform(e) })
	}
}

func (c *Controller) perform(e Effect) {
	ctx := context.Background()

	switch e := e.(type) {
	case FetchPoints:
		points, err := c.points.ListPoints(ctx, e.Query)
		if err != nil {
			c.logger.Error("failed to fetch points", "seq", e.Seq, "error", err)
			c.Dispatch(PointsFailed{Seq: e.Seq, Err: err})
			return
		}
		c.Dispatch(PointsLoaded{Seq: e.Seq, Points: points})

	case FetchRegions:
		regions, err := c.geo.Regions(ctx)
		if err != nil {
			c.logger.Warn("region list unavailable", "error", err)
		}
		c.Dispatch(RegionsLoaded{Regions: regions, Err: err})

	case FetchCities:
		cities, err := c.geo.Cities(ctx, e.Region)
		if err != nil {
			c.logger.Warn("city list unavailable", "region", e.Region, "error", err)
		}
		c.Dispatch(CitiesLoaded{Region: e.Region, Cities: cities, Err: err})
	}
}
