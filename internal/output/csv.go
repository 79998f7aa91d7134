package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/my0373/nbcli/pkg/netbox"
)

// renderCSV writes the payload as CSV. Row extraction, in priority order: an
// object with an array-typed "results" field uses that array; a bare array
// is its own rows; any other object is flattened into dotted key/value
// pairs; anything else is a single scalar row under a "value" column. A
// zero-row payload emits nothing, not even a header.
func (r *Renderer) renderCSV(w io.Writer, payload any) error {
	header, rows, err := csvRows(payload)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}

func csvRows(payload any) ([]string, [][]string, error) {
	var rows []any

	switch node := payload.(type) {
	case map[string]any:
		if results, ok := node["results"].([]any); ok {
			rows = results

			break
		}

		return flattenedRows(node)
	case []any:
		rows = node
	default:
		rows = []any{payload}
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	header := rowHeader(rows)

	records := make([][]string, 0, len(rows))

	for _, row := range rows {
		record, err := rowRecord(header, row)
		if err != nil {
			return nil, nil, err
		}

		records = append(records, record)
	}

	return header, records, nil
}

// rowHeader is the sorted union of all row keys; non-object rows contribute
// a single "value" column.
func rowHeader(rows []any) []string {
	seen := map[string]struct{}{}

	for _, row := range rows {
		if object, ok := row.(map[string]any); ok {
			for key := range object {
				seen[key] = struct{}{}
			}
		} else {
			seen["value"] = struct{}{}
		}
	}

	header := make([]string, 0, len(seen))
	for key := range seen {
		header = append(header, key)
	}

	sort.Strings(header)

	return header
}

func rowRecord(header []string, row any) ([]string, error) {
	record := make([]string, len(header))

	object, ok := row.(map[string]any)
	if !ok {
		for i, column := range header {
			if column == "value" {
				cell, err := cellString(row)
				if err != nil {
					return nil, err
				}

				record[i] = cell
			}
		}

		return record, nil
	}

	for i, column := range header {
		value, present := object[column]
		if !present {
			continue
		}

		cell, err := cellString(value)
		if err != nil {
			return nil, err
		}

		record[i] = cell
	}

	return record, nil
}

// flattenedRows turns a results-less object into two-column key/value rows,
// with nested objects flattened into dotted key paths.
func flattenedRows(object map[string]any) ([]string, [][]string, error) {
	pairs, err := flattenObject(object, "")
	if err != nil {
		return nil, nil, err
	}

	if len(pairs) == 0 {
		return nil, nil, nil
	}

	rows := make([][]string, len(pairs))
	for i, pair := range pairs {
		rows[i] = []string{pair.key, pair.value}
	}

	return []string{"key", "value"}, rows, nil
}

type flatPair struct {
	key   string
	value string
}

// flattenObject walks nested objects, joining keys with dots in sorted
// order. Array-valued leaves are rendered as canonical JSON text rather than
// flattened further.
func flattenObject(value any, prefix string) ([]flatPair, error) {
	object, ok := value.(map[string]any)
	if !ok {
		cell, err := cellString(value)
		if err != nil {
			return nil, err
		}

		return []flatPair{{key: prefix, value: cell}}, nil
	}

	var pairs []flatPair

	for _, key := range netbox.SortedKeys(object) {
		joined := key
		if prefix != "" {
			joined = prefix + "." + key
		}

		nested, err := flattenObject(object[key], joined)
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, nested...)
	}

	return pairs, nil
}

// cellString is a CSV cell: nested composites become compact canonical JSON
// text, null becomes an empty cell, scalars their string form.
func cellString(value any) (string, error) {
	switch value.(type) {
	case nil:
		return "", nil
	case map[string]any, []any:
		data, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("encoding json: %w", err)
		}

		return string(data), nil
	default:
		return scalarString(value), nil
	}
}
