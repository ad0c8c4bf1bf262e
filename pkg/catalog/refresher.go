package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Invalidator drops cached catalog entries.
type Invalidator interface {
	Invalidate(tables ...string)
}

// Refresher invalidates cached catalogs on a cron schedule so long-lived
// resolvers pick up catalog edits.
type Refresher struct {
	target Invalidator
	tables []string
	logger logrus.FieldLogger

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
}

// NewRefresher validates schedule (standard five-field cron syntax or a
// descriptor such as "@every 10m") and binds it to target.
func NewRefresher(target Invalidator, schedule string, logger logrus.FieldLogger, tables ...string) (*Refresher, error) {
	if target == nil {
		return nil, fmt.Errorf("catalog: refresher requires a target")
	}
	if logger == nil {
		logger = discardLogger()
	}

	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)))
	r := &Refresher{
		target: target,
		tables: append([]string(nil), tables...),
		logger: logger,
		cron:   c,
	}

	id, err := c.AddFunc(schedule, r.Refresh)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse refresh schedule %q: %w", schedule, err)
	}
	r.entryID = id
	return r, nil
}

// Refresh invalidates the configured tables immediately.
func (r *Refresher) Refresh() {
	r.target.Invalidate(r.tables...)
	r.logger.WithField("tables", r.tables).Debug("catalog: cache invalidated")
}

// Start begins running the schedule in the background.
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish or ctx
// to expire.
func (r *Refresher) Stop(ctx context.Context) error {
	r.mu.Lock()
	done := r.cron.Stop()
	r.mu.Unlock()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
