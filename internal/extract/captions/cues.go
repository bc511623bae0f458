package captions

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Cue is a single subtitle entry.
type Cue struct {
	StartSeconds float64
	EndSeconds   float64
	Text         string
}

var inlineTagPattern = regexp.MustCompile(`<[^>]*>`)

// ParseCues parses WebVTT or SRT content into cues. Header lines,
// cue indices, positioning metadata, and inline tags are discarded.
// Consecutive cues with identical text (common in auto-generated
// tracks) are collapsed into one.
func ParseCues(content string) []Cue {
	var cues []Cue
	lines := strings.Split(content, "\n")
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if !strings.Contains(line, "-->") {
			i++
			continue
		}
		start, end, err := parseCueTiming(line)
		if err != nil {
			i++
			continue
		}
		i++
		var textLines []string
		for i < len(lines) {
			text := strings.TrimSpace(lines[i])
			if text == "" {
				break
			}
			if strings.Contains(text, "-->") {
				break
			}
			if cleaned := cleanCueText(text); cleaned != "" {
				textLines = append(textLines, cleaned)
			}
			i++
		}
		text := strings.Join(textLines, " ")
		if text == "" {
			continue
		}
		if len(cues) > 0 && cues[len(cues)-1].Text == text {
			cues[len(cues)-1].EndSeconds = end
			continue
		}
		cues = append(cues, Cue{StartSeconds: start, EndSeconds: end, Text: text})
	}
	return cues
}

// parseCueTiming parses "HH:MM:SS.mmm --> HH:MM:SS.mmm" (VTT, with
// optional trailing settings) or the comma-separated SRT equivalent.
// VTT also allows the short MM:SS.mmm form.
func parseCueTiming(line string) (float64, float64, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid cue timing %q", line)
	}
	start, err := ParseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	endField := strings.Fields(strings.TrimSpace(parts[1]))
	if len(endField) == 0 {
		return 0, 0, fmt.Errorf("invalid cue timing %q", line)
	}
	end, err := ParseTimestamp(endField[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ParseTimestamp parses a subtitle timestamp into seconds.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ",", ".")
	clock := strings.Split(value, ":")
	var hours, minutes int
	var seconds float64
	var err error
	switch len(clock) {
	case 3:
		if hours, err = strconv.Atoi(clock[0]); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		if minutes, err = strconv.Atoi(clock[1]); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		if seconds, err = strconv.ParseFloat(clock[2], 64); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
	case 2:
		if minutes, err = strconv.Atoi(clock[0]); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		if seconds, err = strconv.ParseFloat(clock[1], 64); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
	default:
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || seconds < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60) + seconds, nil
}

func cleanCueText(line string) string {
	cleaned := inlineTagPattern.ReplaceAllString(line, "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return ""
	}
	// SRT blocks start with a bare numeric index.
	if _, err := strconv.Atoi(cleaned); err == nil {
		return ""
	}
	switch {
	case strings.HasPrefix(cleaned, "WEBVTT"),
		strings.HasPrefix(cleaned, "Kind:"),
		strings.HasPrefix(cleaned, "Language:"),
		strings.HasPrefix(cleaned, "NOTE"),
		strings.HasPrefix(cleaned, "STYLE"):
		return ""
	}
	return cleaned
}

// FormatTimestamp renders whole seconds as HH:MM:SS.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
