package kadm5

import (
	"strings"
	"time"
)

// Timestamps and lifetimes cross the native boundary as integers where zero
// means "unset" or "no limit". The helpers below keep that sentinel exact in
// both directions: the zero time.Time and the zero time.Duration round-trip
// to integer zero.

func tsToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

func timeToTS(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func deltaToDuration(d int64) time.Duration {
	return time.Duration(d) * time.Second
}

func durationToDelta(d time.Duration) int64 {
	return int64(d / time.Second)
}

// globOrAll maps an empty list pattern to the match-everything glob.
func globOrAll(glob string) string {
	if glob == "" {
		return "*"
	}
	return glob
}

// validName rejects names that cannot be represented as C strings or that
// the library would silently mangle.
func validName(kind, name string) error {
	if name == "" {
		return errInvalidArgument("%s name must not be empty", kind)
	}
	if strings.ContainsRune(name, 0) {
		return errInvalidArgument("%s name must not contain NUL bytes", kind)
	}
	return nil
}
