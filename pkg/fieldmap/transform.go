package fieldmap

import (
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
)

const dateFormatPrefix = "date:"

var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ApplyFormat applies a declarative format spec to a resolved value.
//
// Values that are not strings, and specs other than date:<pattern>, pass
// through unchanged. A date: spec parses the value as an ISO-8601 date/time
// and re-renders it with the strftime-style pattern; parse or pattern
// failures return the original value, since formatting degrades gracefully
// unlike resolution errors.
func ApplyFormat(value any, format string) any {
	text, ok := value.(string)
	if format == "" || !ok {
		return value
	}

	pattern, ok := strings.CutPrefix(format, dateFormatPrefix)
	if !ok {
		return value
	}

	parsed, err := parseISO(text)
	if err != nil {
		return value
	}
	rendered, err := strftime.Format(strings.TrimSpace(pattern), parsed)
	if err != nil {
		return value
	}
	return rendered
}

func parseISO(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range isoLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
