package netbox

import (
	"strconv"
	"strings"
)

// Select navigates a decoded JSON tree via a dotted-path expression, e.g.
// ".results.0.name". An empty selector (after stripping an optional leading
// dot) returns value unchanged. Each segment is an object key or, when the
// current node is an array, a non-negative index; the interpretation follows
// the runtime type of the node, not the segment's own syntax. Evaluation
// stops at the first unresolvable segment with a SelectorError.
func Select(value any, selector string) (any, error) {
	path := strings.TrimSpace(selector)
	path = strings.TrimPrefix(path, ".")

	if path == "" {
		return value, nil
	}

	current := value

	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, &SelectorError{Selector: selector, Segment: segment}
			}

			current = next
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, &SelectorError{Selector: selector, Segment: segment}
			}

			current = node[index]
		default:
			// Scalars are not indexable.
			return nil, &SelectorError{Selector: selector, Segment: segment}
		}
	}

	return current, nil
}
