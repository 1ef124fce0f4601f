package conv

import (
	"strconv"
	"strings"
	"time"
)

// AsDuration converts value to a duration. Plain numbers are taken as seconds,
// strings may also use time.ParseDuration units ("1m30s").
func AsDuration(value interface{}) (time.Duration, bool) {
	switch actual := value.(type) {
	case time.Duration:
		return actual, true
	case int:
		return time.Duration(actual) * time.Second, true
	case int64:
		return time.Duration(actual) * time.Second, true
	case float64:
		return time.Duration(actual * float64(time.Second)), true
	case string:
		text := strings.TrimSpace(actual)
		if text == "" {
			return 0, false
		}
		if seconds, err := strconv.ParseFloat(text, 64); err == nil {
			return time.Duration(seconds * float64(time.Second)), true
		}
		if d, err := time.ParseDuration(text); err == nil {
			return d, true
		}
	}
	return 0, false
}
