package burndown

import "time"

// Point is a single day on the burndown chart.
type Point struct {
	Date time.Time
	// Ideal is the straight-line reference from the total down to zero.
	Ideal float64
	// Actual starts as a copy of Ideal and is overwritten by progress
	// updates for exactly matching days.
	Actual float64
	// Estimated is carried as an independent curve seeded from Ideal; no
	// separate projection is computed for it.
	Estimated float64
}

// Series holds one point per calendar day in the project range, inclusive.
type Series struct {
	points []Point
}

// dateOnly truncates a timestamp to its UTC calendar day. All series
// bookkeeping is day-granular so time-of-day differences never cause a
// missed match.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// newSeries builds the initial curves for [start, end] inclusive. The ideal
// line interpolates from total at day zero to zero at the last day. A
// single-day range has no interpolation denominator; it is defined as one
// point holding the full total.
func newSeries(start, end time.Time, total float64) Series {
	start = dateOnly(start)
	end = dateOnly(end)

	days := int(end.Sub(start).Hours()/24) + 1
	points := make([]Point, 0, days)
	for day := 0; day < days; day++ {
		ideal := total
		if days > 1 {
			ideal = total - total*float64(day)/float64(days-1)
		}
		points = append(points, Point{
			Date:      start.AddDate(0, 0, day),
			Ideal:     ideal,
			Actual:    ideal,
			Estimated: ideal,
		})
	}
	return Series{points: points}
}

// setActual overwrites the actual curve for the day matching date exactly.
// A date outside the range is a silent no-op.
func (s *Series) setActual(date time.Time, remaining float64) {
	day := dateOnly(date)
	for i := range s.points {
		if s.points[i].Date.Equal(day) {
			s.points[i].Actual = remaining
			return
		}
	}
}

// Len returns the number of days in the series.
func (s *Series) Len() int {
	return len(s.points)
}

// Points returns a copy of the per-day curves in date order.
func (s *Series) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}
