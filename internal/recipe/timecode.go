package recipe

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHHMMSS parses an HH:MM:SS timecode into seconds since video
// start. Minutes and seconds must stay below 60.
func ParseHHMMSS(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	fields := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timecode %q", value)
		}
		fields[i] = n
	}
	if fields[1] > 59 || fields[2] > 59 {
		return 0, fmt.Errorf("invalid timecode %q", value)
	}
	return fields[0]*3600 + fields[1]*60 + fields[2], nil
}

// ValidTimeRange reports whether both timecodes parse and end strictly
// follows start.
func ValidTimeRange(start, end string) bool {
	startSeconds, err := ParseHHMMSS(start)
	if err != nil {
		return false
	}
	endSeconds, err := ParseHHMMSS(end)
	if err != nil {
		return false
	}
	return endSeconds > startSeconds
}
