package movements

import (
	"time"

	"github.com/chris/money-movements/pkg/models"
)

// Filter narrows a movement list the way the transactions view does.
// Zero-valued fields do not filter.
type Filter struct {
	Type     models.MovementType
	Category string
	Year     int
	Location *time.Location
}

// Apply returns the movements matching f, preserving order.
func (f Filter) Apply(ms []models.Movement) []models.Movement {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	out := make([]models.Movement, 0, len(ms))
	for _, m := range ms {
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.Category != "" && m.Category != f.Category {
			continue
		}
		if f.Year != 0 && m.Date.In(loc).Year() != f.Year {
			continue
		}
		out = append(out, m)
	}
	return out
}
