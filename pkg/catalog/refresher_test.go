package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-plantillas/pkg/catalog"
)

type recordingInvalidator struct {
	calls chan []string
}

func (r *recordingInvalidator) Invalidate(tables ...string) {
	r.calls <- tables
}

func TestRefresherRejectsBadSchedule(t *testing.T) {
	if _, err := catalog.NewRefresher(&recordingInvalidator{}, "not a schedule", nil); err == nil {
		t.Fatalf("expected schedule parse error")
	}
	if _, err := catalog.NewRefresher(nil, "@every 1m", nil); err == nil {
		t.Fatalf("expected error for missing target")
	}
}

func TestRefresherRefreshInvalidatesTables(t *testing.T) {
	target := &recordingInvalidator{calls: make(chan []string, 1)}
	refresher, err := catalog.NewRefresher(target, "@every 1h", nil, catalog.TableCities)
	if err != nil {
		t.Fatalf("new refresher: %v", err)
	}

	refresher.Refresh()
	got := <-target.calls
	if len(got) != 1 || got[0] != catalog.TableCities {
		t.Fatalf("unexpected tables %v", got)
	}

	refresher.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := refresher.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
