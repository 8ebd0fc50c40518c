// Package timeline implements temporal windowing over timestamped GeoJSON:
// timestamp normalization, per-feature time indexing, window filtering, and
// the playback clock driving it all.
package timeline

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedTimestamp marks a timestamp value that cannot be normalized
// to epoch-milliseconds.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// Accepted ISO-8601 layouts, most specific first. A string without a zone
// is taken as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTime normalizes a raw timestamp to integer epoch-milliseconds.
// Numeric values pass through unchanged; strings are trimmed and parsed as
// ISO-8601 date-times.
func ParseTime(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		// JSON numbers decode as float64
		return int64(t), nil
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range isoLayouts {
			if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return ts.UnixMilli(), nil
			}
		}
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, t)
	}
	return 0, fmt.Errorf("%w: unsupported type %T", ErrMalformedTimestamp, v)
}
