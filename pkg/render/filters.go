package render

import (
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

// registerDefaultFilters installs the custdoc template filters. pongo2
// filters are process-global, so registration is guarded by FilterExists.
func registerDefaultFilters() {
	if !pongo2.FilterExists("strip") {
		_ = pongo2.RegisterFilter("strip", filterStrip)
	}
}

// filterStrip removes all markup from free-text values (addresses, names)
// where escaping alone would still display tags verbatim.
func filterStrip(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return pongo2.AsSafeValue(strings.TrimSpace(stripPolicy.Sanitize(in.String()))), nil
}
