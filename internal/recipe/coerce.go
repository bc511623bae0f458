package recipe

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// FlexString accepts a JSON string or number and stores it as a string.
// Models frequently emit quantities like 2 instead of "2".
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = FlexString(asString)
		return nil
	}
	var asNumber json.Number
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*f = FlexString(asNumber.String())
		return nil
	}
	*f = FlexString(strings.Trim(trimmed, `"`))
	return nil
}

// FlexInt accepts a JSON number or a numeric-looking string, including
// strings with trailing units ("2분", "180C").
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = 0
		return nil
	}
	var asInt int
	if err := json.Unmarshal(data, &asInt); err == nil {
		*f = FlexInt(asInt)
		return nil
	}
	var asFloat float64
	if err := json.Unmarshal(data, &asFloat); err == nil {
		*f = FlexInt(int(asFloat))
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*f = FlexInt(leadingInt(asString))
		return nil
	}
	*f = 0
	return nil
}

// FlexFloat accepts a JSON number or a numeric-looking string.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = 0
		return nil
	}
	var asFloat float64
	if err := json.Unmarshal(data, &asFloat); err == nil {
		*f = FlexFloat(asFloat)
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		cleaned := strings.TrimSpace(asString)
		cleaned = strings.TrimRightFunc(cleaned, func(r rune) bool {
			return !unicode.IsDigit(r) && r != '.'
		})
		if value, err := strconv.ParseFloat(cleaned, 64); err == nil {
			*f = FlexFloat(value)
			return nil
		}
	}
	*f = 0
	return nil
}

// leadingInt parses the leading decimal digits of a string, so "2분"
// and "180 C" both coerce to their numeric prefix.
func leadingInt(value string) int {
	trimmed := strings.TrimSpace(value)
	end := 0
	for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0
	}
	return n
}
