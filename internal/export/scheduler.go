package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alfredjeanlab/listings/internal/events"
)

// Destination is a place a snapshot can be written to.
type Destination interface {
	Write(ctx context.Context, data []byte) error
}

// Result summarises one export run.
type Result struct {
	Listings int
	Bytes    int
	Failed   int
}

// Scheduler exports to one or more destinations, optionally on an interval.
type Scheduler struct {
	exporter     *Exporter
	destinations []Destination
	interval     time.Duration
	publisher    events.Publisher
	logger       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler returns a Scheduler. A nil publisher or logger is replaced
// with a no-op publisher or slog.Default.
func NewScheduler(e *Exporter, destinations []Destination, interval time.Duration, pub events.Publisher, logger *slog.Logger) *Scheduler {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		exporter:     e,
		destinations: destinations,
		interval:     interval,
		publisher:    pub,
		logger:       logger,
	}
}

// Start runs an export immediately and then on each tick until Stop.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for a running export to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	_, _ = s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.RunOnce(ctx)
		}
	}
}

// RunOnce exports a single snapshot to every destination. A failing
// destination does not stop the others; the error reports how many failed.
func (s *Scheduler) RunOnce(ctx context.Context) (Result, error) {
	var buf bytes.Buffer
	n, err := s.exporter.WriteJSONL(ctx, &buf)
	if err != nil {
		s.logger.Error("export failed", "err", err)
		return Result{}, err
	}
	res := Result{Listings: n, Bytes: buf.Len()}

	for _, dest := range s.destinations {
		if err := dest.Write(ctx, buf.Bytes()); err != nil {
			res.Failed++
			s.logger.Error("export destination write failed", "destination", fmt.Sprint(dest), "err", err)
		}
	}

	s.logger.Info("export completed",
		"listings", res.Listings, "bytes", res.Bytes,
		"destinations", len(s.destinations), "failed", res.Failed)

	if err := s.publisher.Publish(ctx, events.TopicExportCompleted, events.ExportCompleted{
		Listings:     res.Listings,
		Bytes:        res.Bytes,
		Destinations: len(s.destinations),
		Failed:       res.Failed,
	}); err != nil {
		s.logger.Warn("publish export event failed", "err", err)
	}

	if res.Failed > 0 {
		return res, fmt.Errorf("%d of %d destinations failed", res.Failed, len(s.destinations))
	}
	return res, nil
}
