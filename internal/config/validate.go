package config

import (
	"fmt"
	"sort"

	"github.com/mapcraftlabs/feasibility-dashboard/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration
// and returns warnings. Nothing here stops the dashboard from rendering.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if c.Sources.UseDefaults {
		for _, d := range []struct{ name, locator string }{
			{"defaultUnzoned", c.Sources.DefaultUnzoned},
			{"defaultZoned", c.Sources.DefaultZoned},
		} {
			if d.locator == "" {
				continue
			}
			if err := validation.ValidateLocator(d.locator); err != nil {
				warnings = append(warnings, fmt.Sprintf("sources.%s: %v", d.name, err))
			}
		}
		if c.Sources.DefaultUnzoned == "" && c.Sources.DefaultZoned == "" {
			warnings = append(warnings, "sources.useDefaults is set but no default locators are configured")
		}
	}

	if _, err := c.MaxSourceSize(); err != nil {
		warnings = append(warnings, fmt.Sprintf("sources.maxSize: %v", err))
	}
	if c.Sources.FetchTimeout < 0 {
		warnings = append(warnings, fmt.Sprintf("sources.fetchTimeout is negative (%s)", c.Sources.FetchTimeout))
	}

	if c.Charts.TotalColor != "" {
		if err := validation.ValidateColor(c.Charts.TotalColor); err != nil {
			warnings = append(warnings, fmt.Sprintf("charts.totalColor: %v", err))
		}
	}

	_, unknown := c.Palettes()
	for _, label := range unknown {
		warnings = append(warnings, fmt.Sprintf("charts.palettes.%s matches no category and is ignored", label))
	}
	for _, p := range []struct {
		group    string
		swatches map[string]string
	}{
		{"income", c.Charts.Palettes.Income},
		{"bedroom", c.Charts.Palettes.Bedroom},
		{"parking", c.Charts.Palettes.Parking},
	} {
		for _, label := range sortedKeys(p.swatches) {
			color := p.swatches[label]
			if err := validation.ValidateColor(color); err != nil {
				warnings = append(warnings, fmt.Sprintf("charts.palettes.%s.%s: %v", p.group, label, err))
			}
		}
	}

	return warnings
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
