package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Largest magnitude the protobuf JSON mapping allows for a Duration,
// roughly 10,000 years.
const maxDurationSeconds = 315_576_000_000

// Duration is a wire-safe representation of a signed span of time, laid
// out like google.protobuf.Duration. A normalized Duration has Seconds
// and Nanos of the same sign with |Nanos| < 1e9.
//
// Like Timestamp, equality and hashing compare the stored fields.
type Duration struct {
	Seconds int64 `cramberry:"1"`
	Nanos   int32 `cramberry:"2"`
}

// DurationFromGo converts a time.Duration to a Duration.
func DurationFromGo(d time.Duration) Duration {
	return Duration{
		Seconds: int64(d / time.Second),
		Nanos:   int32(d % time.Second),
	}
}

// ToGo converts a Duration to a time.Duration. A *RangeError is
// returned when the span does not fit in a time.Duration (about 292 years).
func (d Duration) ToGo() (time.Duration, error) {
	const maxSec = math.MaxInt64 / nanosPerSecond
	sec, nsec, ok := truncSplit(d.Seconds, d.Nanos)
	if !ok || sec > maxSec || sec < -maxSec {
		return 0, d.rangeError()
	}
	hi := sec * nanosPerSecond
	if (nsec > 0 && hi > math.MaxInt64-nsec) || (nsec < 0 && hi < math.MinInt64-nsec) {
		return 0, d.rangeError()
	}
	return time.Duration(hi + nsec), nil
}

// Normalized returns the Duration denoting the same span with Seconds
// and Nanos sharing a sign. Values whose carry overflows int64 saturate.
func (d Duration) Normalized() Duration {
	sec, nsec, ok := truncSplit(d.Seconds, d.Nanos)
	if !ok {
		if d.Nanos > 0 {
			return Duration{Seconds: math.MaxInt64, Nanos: nanosPerSecond - 1}
		}
		return Duration{Seconds: math.MinInt64, Nanos: -(nanosPerSecond - 1)}
	}
	return Duration{Seconds: sec, Nanos: int32(nsec)}
}

// Format renders the Duration in protobuf JSON form: decimal seconds
// with 0, 3, 6 or 9 fractional digits and an "s" suffix, e.g. "-1.500s".
func (d Duration) Format() (string, error) {
	sec, nsec, ok := truncSplit(d.Seconds, d.Nanos)
	if !ok || sec > maxDurationSeconds || sec < -maxDurationSeconds {
		return "", &FormatError{Kind: kindDuration, Cause: d.rangeError()}
	}
	b := make([]byte, 0, len("-315576000000.000000000s"))
	if sec < 0 || nsec < 0 {
		b = append(b, '-')
		sec, nsec = -sec, -nsec
	}
	b = strconv.AppendInt(b, sec, 10)
	b = appendFraction(b, nsec)
	b = append(b, 's')
	return string(b), nil
}

// ParseDuration parses the protobuf JSON form produced by Format.
// Between one and nine fractional digits are accepted.
func ParseDuration(s string) (Duration, error) {
	fail := func(cause error) (Duration, error) {
		return Duration{}, &ParseError{Kind: kindDuration, Input: s, Cause: cause}
	}

	body, ok := strings.CutSuffix(s, "s")
	if !ok {
		return fail(errors.New(`missing unit suffix "s"`))
	}
	body, neg := strings.CutPrefix(body, "-")
	intPart, fracPart, hasFrac := strings.Cut(body, ".")
	if !isDigits(intPart) {
		return fail(fmt.Errorf("invalid seconds %q", intPart))
	}
	sec, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return fail(err)
	}
	var nsec int64
	if hasFrac {
		if len(fracPart) > 9 || !isDigits(fracPart) {
			return fail(fmt.Errorf("invalid fractional seconds %q", fracPart))
		}
		nsec, _ = strconv.ParseInt(fracPart, 10, 64)
		for i := len(fracPart); i < 9; i++ {
			nsec *= 10
		}
	}
	if neg {
		sec, nsec = -sec, -nsec
	}
	if sec > maxDurationSeconds || sec < -maxDurationSeconds {
		return fail(&RangeError{Kind: kindDuration, Seconds: sec, Nanos: int32(nsec)})
	}
	return Duration{Seconds: sec, Nanos: int32(nsec)}, nil
}

// Equal reports whether both fields match. It does not normalize.
func (d Duration) Equal(o Duration) bool {
	return d.Seconds == o.Seconds && d.Nanos == o.Nanos
}

// Hash returns a hash of Seconds followed by Nanos, consistent with Equal.
func (d Duration) Hash() uint64 {
	return hashFields(d.Seconds, d.Nanos)
}

func (d Duration) String() string {
	s, err := d.Format()
	if err != nil {
		return fmt.Sprintf("Duration{%d, %d}", d.Seconds, d.Nanos)
	}
	return s
}

func (d Duration) rangeError() *RangeError {
	return &RangeError{Kind: kindDuration, Seconds: d.Seconds, Nanos: d.Nanos}
}

// truncSplit folds nanos into seconds so that both share a sign and
// |nsec| < 1e9. ok is false when the carry overflows int64.
func truncSplit(seconds int64, nanos int32) (sec, nsec int64, ok bool) {
	carry := int64(nanos) / nanosPerSecond
	nsec = int64(nanos) % nanosPerSecond
	sec, ok = addCarry(seconds, carry)
	if !ok {
		return 0, 0, false
	}
	switch {
	case sec > 0 && nsec < 0:
		sec--
		nsec += nanosPerSecond
	case sec < 0 && nsec > 0:
		sec++
		nsec -= nanosPerSecond
	}
	return sec, nsec, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
