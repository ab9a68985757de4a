package nav

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Pathfinder is the pathfinding collaborator consumed by the simulation.
// RequestPath must not block; onComplete may run on another goroutine and
// receives nil when no path exists.
type Pathfinder interface {
	RequestPath(startCol, startRow, goalCol, goalRow int, onComplete func(*Waypoint))
	ToOrderedSequence(head *Waypoint) []Cell
	CellToWorld(col, row int) Vec2
}

// ServiceConfig tunes the asynchronous path service.
type ServiceConfig struct {
	Workers       int
	QueueSize     int
	MaxIterations int
}

type request struct {
	start, goal Cell
	onComplete  func(*Waypoint)
}

// Service resolves path requests on a fixed pool of worker goroutines.
type Service struct {
	mesh          *Mesh
	queue         chan request
	workers       int
	maxIterations int

	inFlight  atomic.Int32
	completed atomic.Uint64
}

// NewService creates a path service over mesh. Run must be called for queued
// requests to be served.
func NewService(mesh *Mesh, cfg ServiceConfig) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	return &Service{
		mesh:          mesh,
		queue:         make(chan request, cfg.QueueSize),
		workers:       cfg.Workers,
		maxIterations: cfg.MaxIterations,
	}
}

// RequestPath enqueues a search from start to goal. When the queue is full the
// search runs on its own goroutine instead of blocking the caller.
func (s *Service) RequestPath(startCol, startRow, goalCol, goalRow int, onComplete func(*Waypoint)) {
	req := request{
		start:      Cell{Column: startCol, Row: startRow},
		goal:       Cell{Column: goalCol, Row: goalRow},
		onComplete: onComplete,
	}
	s.inFlight.Add(1)

	select {
	case s.queue <- req:
	default:
		slog.Debug("path queue full, resolving inline goroutine",
			"start", req.start,
			"goal", req.goal)
		go s.resolve(req)
	}
}

// ToOrderedSequence converts a result chain into start-to-goal order.
func (s *Service) ToOrderedSequence(head *Waypoint) []Cell {
	return ToOrderedSequence(head)
}

// CellToWorld maps a grid cell to simulation space.
func (s *Service) CellToWorld(col, row int) Vec2 {
	return s.mesh.CellToWorld(col, row)
}

// Run serves queued requests until ctx is canceled (blocks).
func (s *Service) Run(ctx context.Context) error {
	slog.Info("path service started", "workers", s.workers, "maxIterations", s.maxIterations)

	g, gctx := errgroup.WithContext(ctx)
	for range s.workers {
		g.Go(func() error {
			return s.work(gctx)
		})
	}

	err := g.Wait()
	slog.Info("path service stopped", "completed", s.completed.Load(), "inFlight", s.inFlight.Load())
	return err
}

func (s *Service) work(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-s.queue:
			s.resolve(req)
		}
	}
}

func (s *Service) resolve(req request) {
	head := s.mesh.FindPath(req.start, req.goal, s.maxIterations)
	s.inFlight.Add(-1)
	s.completed.Add(1)

	if head == nil {
		slog.Debug("no path found", "start", req.start, "goal", req.goal)
	}
	if req.onComplete != nil {
		req.onComplete(head)
	}
}

// InFlight returns the number of requests not yet completed.
func (s *Service) InFlight() int {
	return int(s.inFlight.Load())
}

// Completed returns the number of requests resolved so far.
func (s *Service) Completed() uint64 {
	return s.completed.Load()
}
