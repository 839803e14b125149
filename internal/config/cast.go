package config

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

func castInt(s string) (int, error) {
	n, err := cast.ToIntE(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return n, nil
}

// castDuration accepts a Go duration ("90m") or a bare number of minutes.
func castDuration(s string) (time.Duration, error) {
	if n, err := cast.ToIntE(s); err == nil {
		return time.Duration(n) * time.Minute, nil
	}
	d, err := cast.ToDurationE(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}
