package movements

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedDate is returned by ParseCalendarDate for values that carry no recognisable date.
var ErrMalformedDate = errors.New("malformed date")

// layouts are tried in order for string dates. Layouts without a zone are read in the
// caller's location.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
}

// Timestamp is implemented by backend timestamp wrappers that can convert themselves to a time.
type Timestamp interface {
	ToDate() time.Time
}

type asTimer interface {
	AsTime() time.Time
}

// ToCalendarDate normalises any date representation a store may return into a time.Time.
// It never fails: values that carry no date yield the zero time.
func ToCalendarDate(v any) time.Time {
	return ToCalendarDateIn(v, time.Local)
}

// ToCalendarDateIn is ToCalendarDate with zone-less strings read as wall time in loc.
func ToCalendarDateIn(v any, loc *time.Location) time.Time {
	t, err := ParseCalendarDateIn(v, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseCalendarDate is the strict form of ToCalendarDate, used where a malformed date
// must be reported back to the caller.
func ParseCalendarDate(v any) (time.Time, error) {
	return ParseCalendarDateIn(v, time.Local)
}

// ParseCalendarDateIn is ParseCalendarDate with zone-less strings such as "2024-02-01"
// read as wall time in loc. Values that already name an instant are unaffected.
func ParseCalendarDateIn(v any, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	switch d := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedDate)
	case time.Time:
		return d, nil
	case *time.Time:
		if d == nil {
			return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedDate)
		}
		return *d, nil
	case Timestamp:
		return d.ToDate(), nil
	case asTimer:
		return d.AsTime(), nil
	case int:
		return fromEpochMillis(float64(d)), nil
	case int32:
		return fromEpochMillis(float64(d)), nil
	case int64:
		return fromEpochMillis(float64(d)), nil
	case uint64:
		return fromEpochMillis(float64(d)), nil
	case float32:
		return fromEpochMillis(float64(d)), nil
	case float64:
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedDate, d)
		}
		return fromEpochMillis(d), nil
	case json.Number:
		return parseDateString(d.String(), loc)
	case string:
		return parseDateString(d, loc)
	case []byte:
		return parseDateString(string(d), loc)
	case map[string]any:
		return fromSecondsMap(d)
	case fmt.Stringer:
		return parseDateString(d.String(), loc)
	}
	return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrMalformedDate, v)
}

func parseDateString(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrMalformedDate)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return ParseCalendarDateIn(f, loc)
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}

// fromSecondsMap reads serialised timestamp objects such as {"seconds": 1700000000, "nanoseconds": 0}.
func fromSecondsMap(m map[string]any) (time.Time, error) {
	var secs, nanos float64
	var found bool
	for _, key := range []string{"seconds", "_seconds"} {
		if v, ok := m[key]; ok {
			f, err := toFloat(v)
			if err != nil {
				return time.Time{}, err
			}
			secs, found = f, true
			break
		}
	}
	if !found {
		return time.Time{}, fmt.Errorf("%w: timestamp object without seconds", ErrMalformedDate)
	}
	for _, key := range []string{"nanoseconds", "_nanoseconds", "nanos"} {
		if v, ok := m[key]; ok {
			f, err := toFloat(v)
			if err != nil {
				return time.Time{}, err
			}
			nanos = f
			break
		}
	}
	return time.Unix(int64(secs), int64(nanos)), nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("%w: non-numeric timestamp field %T", ErrMalformedDate, v)
}

func fromEpochMillis(ms float64) time.Time {
	return time.UnixMilli(int64(ms))
}
