package model

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{
		BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted,
		BookingStatusCancelled, BookingStatusNoShow,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, BookingStatus("booked").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusPending, BookingStatusNoShow, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusNoShow, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusNoShow, BookingStatusConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.Terminal())
	assert.False(t, BookingStatusConfirmed.Terminal())
	assert.True(t, BookingStatusCompleted.Terminal())
	assert.True(t, BookingStatusCancelled.Terminal())
	assert.True(t, BookingStatusNoShow.Terminal())
	assert.False(t, BookingStatus("bogus").Terminal())
}

func TestBookingStatusOccupies(t *testing.T) {
	assert.True(t, BookingStatusPending.Occupies())
	assert.True(t, BookingStatusConfirmed.Occupies())
	assert.False(t, BookingStatusCompleted.Occupies())
	assert.False(t, BookingStatusCancelled.Occupies())
	assert.False(t, BookingStatusNoShow.Occupies())
}

func TestTimeRangeOverlapsBoundaries(t *testing.T) {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	r := TimeRange{Start: base, End: base.Add(30 * time.Minute)}

	// Touching endpoints do not overlap.
	assert.False(t, r.Overlaps(TimeRange{Start: base.Add(30 * time.Minute), End: base.Add(time.Hour)}))
	assert.False(t, r.Overlaps(TimeRange{Start: base.Add(-time.Hour), End: base}))

	// One-minute intrusions do.
	assert.True(t, r.Overlaps(TimeRange{Start: base.Add(29 * time.Minute), End: base.Add(time.Hour)}))
	assert.True(t, r.Overlaps(TimeRange{Start: base.Add(-time.Hour), End: base.Add(time.Minute)}))

	// Containment in both directions.
	assert.True(t, r.Overlaps(TimeRange{Start: base.Add(10 * time.Minute), End: base.Add(20 * time.Minute)}))
	assert.True(t, r.Overlaps(TimeRange{Start: base.Add(-time.Hour), End: base.Add(2 * time.Hour)}))
}

// Overlap must agree with the interval-intersection definition for arbitrary
// pairs, and be symmetric.
func TestTimeRangeOverlapsProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	randRange := func() TimeRange {
		a := rng.Intn(MinutesPerDay)
		b := rng.Intn(MinutesPerDay)
		if a == b {
			b = a + 1
		}
		if a > b {
			a, b = b, a
		}
		return TimeRange{
			Start: day.Add(time.Duration(a) * time.Minute),
			End:   day.Add(time.Duration(b) * time.Minute),
		}
	}

	for i := 0; i < 2000; i++ {
		x := randRange()
		y := randRange()

		lo := x.Start
		if y.Start.After(lo) {
			lo = y.Start
		}
		hi := x.End
		if y.End.Before(hi) {
			hi = y.End
		}
		want := lo.Before(hi)

		assert.Equal(t, want, x.Overlaps(y), "x=%v y=%v", x, y)
		assert.Equal(t, x.Overlaps(y), y.Overlaps(x), "symmetry x=%v y=%v", x, y)
	}
}
