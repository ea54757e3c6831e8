// Package selection resolves request parameters into the ordered list of
// scenario sources a dashboard compares.
package selection

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mapcraftlabs/feasibility-dashboard/internal/scenario"
	"github.com/mapcraftlabs/feasibility-dashboard/pkg/constants"
)

// ErrNoUsableInput means no scenario could be charted: either no locator was
// configured or none of them loaded.
var ErrNoUsableInput = errors.New("data not found")

// Defaults are substituted for missing parameters: the baseline, and the
// first DefaultedZonedSlots zoned slots.
type Defaults struct {
	Enabled bool
	Unzoned string
	Zoned   string
}

// Resolve returns the baseline source followed by zoned slots 1..9 in
// ascending order. Parameter values are percent-decoded once more since
// upstream links double-encode them.
func Resolve(params url.Values, defaults Defaults) ([]scenario.Source, error) {
	var sources []scenario.Source

	unzoned := decode(params.Get(constants.UnzonedParam))
	if unzoned == "" && defaults.Enabled {
		unzoned = defaults.Unzoned
	}
	if unzoned != "" {
		sources = append(sources, scenario.Source{Name: constants.BaselineScenarioName, Locator: unzoned})
	}

	for i := 1; i <= constants.MaxZonedScenarios; i++ {
		locator := decode(params.Get(fmt.Sprintf(constants.ZonedParamFormat, i)))
		if locator == "" && defaults.Enabled && i <= constants.DefaultedZonedSlots {
			locator = defaults.Zoned
		}
		if locator != "" {
			sources = append(sources, scenario.Source{Name: ZonedName(i), Locator: locator})
		}
	}

	if len(sources) == 0 {
		return nil, ErrNoUsableInput
	}
	return sources, nil
}

// ZonedName is the display name of zoned slot i.
func ZonedName(i int) string {
	return fmt.Sprintf(constants.ScenarioNameFormat, i)
}

// Query builds the request parameters that select the given locators.
// zoned maps slot numbers to locators; slots outside 1..9 are dropped.
// Locators are escaped once so Resolve hands them back unchanged.
func Query(unzoned string, zoned map[int]string) url.Values {
	params := url.Values{}
	if unzoned != "" {
		params.Set(constants.UnzonedParam, url.PathEscape(unzoned))
	}
	for slot, locator := range zoned {
		if slot < 1 || slot > constants.MaxZonedScenarios || locator == "" {
			continue
		}
		params.Set(fmt.Sprintf(constants.ZonedParamFormat, slot), url.PathEscape(locator))
	}
	return params
}

// Usage explains how to select scenarios.
func Usage() string {
	return fmt.Sprintf("Example: ?%s=https://example.com/unzoned.csv&%s=https://example.com/zoned1.csv&%s=https://example.com/zoned2.csv",
		constants.UnzonedParam,
		fmt.Sprintf(constants.ZonedParamFormat, 1),
		fmt.Sprintf(constants.ZonedParamFormat, 2),
	)
}

// Guidance is the operator-facing message for ErrNoUsableInput when no
// locator was selected.
func Guidance() string {
	return fmt.Sprintf("Please provide '%s' and/or '%s' query parameters.",
		constants.UnzonedParam, strings.TrimSuffix(constants.ZonedParamFormat, "_%d"))
}

// RetryGuidance is the operator-facing message for ErrNoUsableInput when
// locators were selected but none of them loaded.
func RetryGuidance() string {
	return "Please check the URLs and try again."
}

// decode percent-decodes value escape by escape. Malformed escapes are kept
// verbatim and do not stop the rest of the value from decoding.
func decode(value string) string {
	value = strings.TrimSpace(value)
	if !strings.Contains(value, "%") {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if value[i] == '%' && i+2 < len(value) && isHex(value[i+1]) && isHex(value[i+2]) {
			b.WriteByte(unhex(value[i+1])<<4 | unhex(value[i+2]))
			i += 2
			continue
		}
		b.WriteByte(value[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
