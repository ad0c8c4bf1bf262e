package render

import "time"

const dateLayout = "2006-01-02"

// DateBounds describes which days a date field accepts. Days before Today are
// always disabled; when the field declares a positive minimum day count every
// day in [Today, Min] is disabled as well.
type DateBounds struct {
	Today time.Time
	Min   time.Time
	// DisabledThrough is the last disabled day, zero when only past days are
	// disabled.
	DisabledThrough time.Time
}

// NewDateBounds anchors bounds at the local midnight of now.
func NewDateBounds(now time.Time, minDays *int) DateBounds {
	today := midnight(now)
	bounds := DateBounds{Today: today, Min: today}
	if minDays != nil && *minDays > 0 {
		bounds.Min = today.AddDate(0, 0, *minDays)
		bounds.DisabledThrough = bounds.Min
	}
	return bounds
}

// Disabled reports whether day cannot be selected.
func (b DateBounds) Disabled(day time.Time) bool {
	d := midnight(day.In(b.Today.Location()))
	if d.Before(b.Today) {
		return true
	}
	if b.DisabledThrough.IsZero() {
		return false
	}
	return !d.After(b.DisabledThrough)
}

// FirstSelectable returns the earliest enabled day.
func (b DateBounds) FirstSelectable() time.Time {
	if b.DisabledThrough.IsZero() {
		return b.Today
	}
	return b.DisabledThrough.AddDate(0, 0, 1)
}

// MinAttr formats FirstSelectable for an HTML date input.
func (b DateBounds) MinAttr() string {
	return b.FirstSelectable().Format(dateLayout)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
