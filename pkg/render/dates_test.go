package render_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-plantillas/pkg/render"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDateBounds_MinimumDays(t *testing.T) {
	now := time.Date(2024, time.January, 10, 15, 30, 0, 0, time.Local)
	three := 3
	bounds := render.NewDateBounds(now, &three)

	if !bounds.Min.Equal(day(2024, time.January, 13)) {
		t.Fatalf("unexpected min date %v", bounds.Min)
	}

	cases := map[time.Time]bool{
		day(2024, time.January, 9):  true,
		day(2024, time.January, 10): true,
		day(2024, time.January, 11): true,
		day(2024, time.January, 13): true,
		day(2024, time.January, 14): false,
		day(2024, time.February, 1): false,
	}
	for d, want := range cases {
		if got := bounds.Disabled(d); got != want {
			t.Fatalf("Disabled(%s) = %v, want %v", d.Format("2006-01-02"), got, want)
		}
	}
	if got := bounds.MinAttr(); got != "2024-01-14" {
		t.Fatalf("unexpected min attribute %q", got)
	}
}

func TestDateBounds_NoMinimum(t *testing.T) {
	now := time.Date(2024, time.January, 10, 23, 59, 0, 0, time.Local)
	zero, negative := 0, -4

	for name, minDays := range map[string]*int{"absent": nil, "zero": &zero, "negative": &negative} {
		t.Run(name, func(t *testing.T) {
			bounds := render.NewDateBounds(now, minDays)
			if bounds.Disabled(day(2024, time.January, 10)) {
				t.Fatalf("today must stay selectable")
			}
			if !bounds.Disabled(day(2024, time.January, 9)) {
				t.Fatalf("past days must be disabled")
			}
			if got := bounds.MinAttr(); got != "2024-01-10" {
				t.Fatalf("unexpected min attribute %q", got)
			}
		})
	}
}
