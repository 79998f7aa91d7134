package netbox

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseParams builds query parameters from repeated key=value flag values.
// Repeated keys accumulate in first-seen order and are later serialized as
// repeated query parameters; they never overwrite each other. A value without
// a "=" is a usage error.
func ParseParams(items []string) (url.Values, error) {
	if len(items) == 0 {
		return nil, nil
	}

	params := url.Values{}

	for _, item := range items {
		key, value, found := strings.Cut(item, "=")
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParam, item)
		}

		params.Add(key, value)
	}

	return params, nil
}

// CombineParams merges multiple key=value flag lists (e.g. --param and
// --filter) into one parameter set, preserving order across lists.
func CombineParams(lists ...[]string) (url.Values, error) {
	var combined []string
	for _, list := range lists {
		combined = append(combined, list...)
	}

	return ParseParams(combined)
}
