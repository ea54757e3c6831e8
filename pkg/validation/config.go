package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor checks that a chart colour is a #RGB or #RRGGBB hex string.
func ValidateColor(color string) error {
	if !hexColor.MatchString(color) {
		return fmt.Errorf("invalid colour %q: expected #RGB or #RRGGBB", color)
	}
	return nil
}

// ValidateLocator checks that a source locator is either an http(s) or file
// URL, or a plain filesystem path.
func ValidateLocator(locator string) error {
	trimmed := strings.TrimSpace(locator)
	if trimmed == "" {
		return fmt.Errorf("empty locator")
	}
	if !strings.Contains(trimmed, "://") {
		return nil
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("invalid locator %q: %w", locator, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("locator %q has no host", locator)
		}
	case "file":
	default:
		return fmt.Errorf("unsupported locator scheme %q", u.Scheme)
	}
	return nil
}
