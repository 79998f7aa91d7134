package netbox

import "sort"

// PageResults extracts the results array from a list-shaped page. It returns
// false when the payload is not an object carrying an array-typed "results"
// field, in which case the endpoint is not paginated and the payload stands
// on its own.
func PageResults(payload any) ([]any, bool) {
	object, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}

	raw, ok := object["results"]
	if !ok {
		return nil, false
	}

	results, ok := raw.([]any)
	if !ok {
		return nil, false
	}

	return results, true
}

// NextURL returns the continuation URL of a list-shaped page, or "" when the
// page is the last one (next absent or null).
func NextURL(payload any) string {
	object, ok := payload.(map[string]any)
	if !ok {
		return ""
	}

	next, _ := object["next"].(string)

	return next
}

// SortedKeys returns the keys of a decoded JSON object in lexicographic
// order, the deterministic ordering used everywhere results are rendered or
// traversed.
func SortedKeys(object map[string]any) []string {
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
