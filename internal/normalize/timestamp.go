package normalize

import (
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order for string timestamps. Backend
// versions have shipped RFC3339, space-separated, and fraction-less forms.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a raw timestamp value of any supported shape:
// RFC3339-style strings, unix seconds or milliseconds as numbers, or
// numeric strings. Returns false when the value cannot be interpreted.
func ParseTimestamp(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return fromUnix(n)
		}
	case float64:
		return fromUnix(v)
	case int:
		return fromUnix(float64(v))
	case int64:
		return fromUnix(float64(v))
	}
	return time.Time{}, false
}

// fromUnix interprets a numeric timestamp. Values above 1e12 are taken as
// milliseconds, everything else as seconds.
func fromUnix(n float64) (time.Time, bool) {
	if n <= 0 {
		return time.Time{}, false
	}
	if n > 1e12 {
		return time.UnixMilli(int64(n)).UTC(), true
	}
	sec := int64(n)
	nsec := int64((n - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC(), true
}
