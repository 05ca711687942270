package types

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	nanosPerSecond = 1_000_000_000

	kindTimestamp = "timestamp"
	kindDuration  = "duration"
)

// Calendar range accepted by ToTime, matching the four-digit signed year
// range of common calendar libraries.
var (
	minTimestampSeconds = time.Date(-9999, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxTimestampSeconds = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// Timestamp is a wire-safe representation of a point in time, laid out
// like google.protobuf.Timestamp: whole seconds since the Unix epoch plus
// a nanosecond offset.
//
// A normalized Timestamp has 0 <= Nanos < 1e9. Other combinations are
// kept as-is: Equal, Hash and == compare the stored fields, so
// {1, 1e9} and {2, 0} are different values even though they denote the
// same instant. Use Normalized to fold them together explicitly.
type Timestamp struct {
	Seconds int64 `cramberry:"1"`
	Nanos   int32 `cramberry:"2"`
}

// TimeToTimestamp converts a time.Time to a Timestamp.
func TimeToTimestamp(t time.Time) Timestamp {
	return Timestamp{
		Seconds: t.Unix(),
		// Nanosecond is always in [0, 1e9), so the narrowing is lossless.
		Nanos: int32(t.Nanosecond()),
	}
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return TimeToTimestamp(time.Now())
}

// ToTime converts a Timestamp to a time.Time (UTC).
//
// The instant is Seconds*1e9 + Nanos evaluated without overflow, so
// non-normalized Nanos are carried into the seconds. A *RangeError is
// returned when the instant lies outside years -9999 through 9999.
func (ts Timestamp) ToTime() (time.Time, error) {
	sec, nsec, ok := floorSplit(ts.Seconds, ts.Nanos)
	if !ok || sec < minTimestampSeconds || sec > maxTimestampSeconds {
		return time.Time{}, &RangeError{Kind: kindTimestamp, Seconds: ts.Seconds, Nanos: ts.Nanos}
	}
	return time.Unix(sec, nsec).UTC(), nil
}

// Normalized returns the Timestamp denoting the same instant with
// 0 <= Nanos < 1e9. Values whose carry overflows int64 saturate.
func (ts Timestamp) Normalized() Timestamp {
	sec, nsec, ok := floorSplit(ts.Seconds, ts.Nanos)
	if !ok {
		if ts.Nanos > 0 {
			return Timestamp{Seconds: math.MaxInt64, Nanos: nanosPerSecond - 1}
		}
		return Timestamp{Seconds: math.MinInt64}
	}
	return Timestamp{Seconds: sec, Nanos: int32(nsec)}
}

// Format renders the Timestamp as an RFC 3339 string in UTC, e.g.
// "2015-05-15T09:00:00.123Z". Fractional seconds use 0, 3, 6 or 9
// digits, the canonical protobuf JSON form.
func (ts Timestamp) Format() (string, error) {
	t, err := ts.ToTime()
	if err != nil {
		return "", &FormatError{Kind: kindTimestamp, Cause: err}
	}
	if y := t.Year(); y < 0 || y > 9999 {
		return "", &FormatError{
			Kind:  kindTimestamp,
			Cause: fmt.Errorf("year %d outside of range [0,9999]", y),
		}
	}
	b := make([]byte, 0, len("2006-01-02T15:04:05.000000000Z"))
	b = t.AppendFormat(b, "2006-01-02T15:04:05")
	b = appendFraction(b, int64(t.Nanosecond()))
	b = append(b, 'Z')
	return string(b), nil
}

// ParseTimestamp parses a strict RFC 3339 date-time. The "T" and "Z"
// letters may be lowercase, numeric offsets are folded into UTC and leap
// seconds (":60") are rejected. On failure the returned *ParseError
// carries the time package diagnostic unchanged.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(time.RFC3339Nano, upperDesignators(s))
	if err != nil {
		return Timestamp{}, &ParseError{Kind: kindTimestamp, Input: s, Cause: err}
	}
	// time.Parse also takes a comma before the fraction; RFC 3339 does not.
	if strings.IndexByte(s, ',') >= 0 {
		return Timestamp{}, &ParseError{
			Kind:  kindTimestamp,
			Input: s,
			Cause: errors.New("fractional seconds must be separated by '.'"),
		}
	}
	return TimeToTimestamp(t), nil
}

// upperDesignators upper-cases the date-time separator and a trailing
// zone letter, which time.Parse only accepts in uppercase.
func upperDesignators(s string) string {
	lowerT := len(s) > 10 && s[10] == 't'
	lowerZ := len(s) > 0 && s[len(s)-1] == 'z'
	if !lowerT && !lowerZ {
		return s
	}
	b := []byte(s)
	if lowerT {
		b[10] = 'T'
	}
	if lowerZ {
		b[len(b)-1] = 'Z'
	}
	return string(b)
}

// Equal reports whether both fields match. It does not normalize.
func (ts Timestamp) Equal(o Timestamp) bool {
	return ts.Seconds == o.Seconds && ts.Nanos == o.Nanos
}

// Hash returns a hash of Seconds followed by Nanos, consistent with Equal.
func (ts Timestamp) Hash() uint64 {
	return hashFields(ts.Seconds, ts.Nanos)
}

func (ts Timestamp) String() string {
	s, err := ts.Format()
	if err != nil {
		return fmt.Sprintf("Timestamp{%d, %d}", ts.Seconds, ts.Nanos)
	}
	return s
}

// floorSplit folds nanos into seconds so that the remainder lies in
// [0, 1e9). ok is false when the carry overflows int64.
func floorSplit(seconds int64, nanos int32) (sec, nsec int64, ok bool) {
	carry := int64(nanos) / nanosPerSecond
	nsec = int64(nanos) % nanosPerSecond
	if nsec < 0 {
		nsec += nanosPerSecond
		carry--
	}
	sec, ok = addCarry(seconds, carry)
	return sec, nsec, ok
}

func addCarry(seconds, carry int64) (int64, bool) {
	if (carry > 0 && seconds > math.MaxInt64-carry) || (carry < 0 && seconds < math.MinInt64-carry) {
		return 0, false
	}
	return seconds + carry, true
}

func appendFraction(b []byte, nanos int64) []byte {
	switch {
	case nanos == 0:
		return b
	case nanos%1_000_000 == 0:
		return fmt.Appendf(b, ".%03d", nanos/1_000_000)
	case nanos%1_000 == 0:
		return fmt.Appendf(b, ".%06d", nanos/1_000)
	default:
		return fmt.Appendf(b, ".%09d", nanos)
	}
}
