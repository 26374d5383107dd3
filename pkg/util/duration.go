package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses durations like time.ParseDuration but additionally
// accepts a d suffix for days, e.g. "7d" or "1d12h"
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if i := strings.Index(s, "d"); i > 0 {
		days, err := strconv.Atoi(s[:i])
		if err != nil {
			return 0, fmt.Errorf("invalid day count in duration %q", s)
		}
		rest := time.Duration(0)
		if remainder := s[i+1:]; remainder != "" {
			rest, err = time.ParseDuration(remainder)
			if err != nil {
				return 0, err
			}
		}
		return time.Duration(days)*24*time.Hour + rest, nil
	}
	return time.ParseDuration(s)
}
