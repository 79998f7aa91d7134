// Package output renders decoded JSON payloads in the formats nbcli
// supports: pretty (sorted key/value lines with optional ANSI color),
// canonical JSON, YAML, and CSV with flattening rules.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/my0373/nbcli/pkg/netbox"
)

// Format is an output format name.
type Format string

const (
	// FormatPretty is the human-facing default: sorted key/value lines.
	FormatPretty Format = "pretty"
	// FormatJSON is canonical JSON: sorted keys, 2-space indent.
	FormatJSON Format = "json"
	// FormatYAML is canonical YAML.
	FormatYAML Format = "yaml"
	// FormatCSV is tabular output with flattening rules.
	FormatCSV Format = "csv"
)

// ParseFormat validates an output format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatPretty, FormatJSON, FormatYAML, FormatCSV:
		return Format(name), nil
	default:
		return "", fmt.Errorf("%w: %q", netbox.ErrUnknownOutputFormat, name)
	}
}

// Machine reports whether the format is meant for machine consumption.
// Coloring and the status line only apply to non-machine formats.
func (f Format) Machine() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatCSV
}

// Renderer writes payloads in one configured format. The color palette is
// threaded explicitly rather than read from process-wide state so tests and
// piped output stay deterministic.
type Renderer struct {
	format Format
	label  *color.Color
	value  *color.Color
}

// NewRenderer creates a renderer. colorEnabled only affects the pretty
// format; machine formats are never colored.
func NewRenderer(format Format, colorEnabled bool) *Renderer {
	label := color.New(color.FgCyan)
	value := color.New(color.FgYellow)

	if colorEnabled && format == FormatPretty {
		label.EnableColor()
		value.EnableColor()
	} else {
		label.DisableColor()
		value.DisableColor()
	}

	return &Renderer{format: format, label: label, value: value}
}

// Format returns the renderer's configured format.
func (r *Renderer) Format() Format {
	return r.format
}

// Render writes the payload to w in the configured format.
func (r *Renderer) Render(w io.Writer, payload any) error {
	switch r.format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(payload)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		if err := encoder.Encode(payload); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}

		return encoder.Close()
	case FormatCSV:
		return r.renderCSV(w, payload)
	default:
		return r.renderPretty(w, payload)
	}
}

// Serialize produces the bytes written to a dump file. Only the machine
// formats JSON and YAML are valid here.
func Serialize(payload any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}

		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}

		return data, nil
	default:
		return nil, fmt.Errorf("%w: got %q", netbox.ErrDumpFormatUnsupported, format)
	}
}

// StatusLine renders the highlighted NetBox version line used by the status
// command. It only applies to the pretty format; for machine formats it
// returns false and the caller falls through to the generic payload path.
func (r *Renderer) StatusLine(w io.Writer, version string) bool {
	if r.format.Machine() {
		return false
	}

	fmt.Fprintf(w, "%s: %s\n", r.label.Sprint("NetBox version"), r.value.Sprint(version))

	return true
}

// renderPretty writes one sorted "key: value" line per object key, one
// "- <json>" line per array element, or the scalar's string form. Nested
// composites inside an object are rendered as indented canonical JSON.
func (r *Renderer) renderPretty(w io.Writer, payload any) error {
	switch node := payload.(type) {
	case map[string]any:
		for _, key := range netbox.SortedKeys(node) {
			text, err := prettyValue(node[key])
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "%s: %s\n", r.label.Sprint(key), r.value.Sprint(text))
		}
	case []any:
		for _, item := range node {
			data, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("encoding json: %w", err)
			}

			fmt.Fprintf(w, "- %s\n", data)
		}
	default:
		fmt.Fprintln(w, scalarString(payload))
	}

	return nil
}

// prettyValue renders an object field's value: composites become indented
// canonical JSON, scalars their string form.
func prettyValue(value any) (string, error) {
	switch value.(type) {
	case map[string]any, []any:
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding json: %w", err)
		}

		return string(data), nil
	default:
		return scalarString(value), nil
	}
}

// scalarString is the display form of a scalar value. Numbers print without
// exponent notation so identifiers stay readable.
func scalarString(value any) string {
	switch scalar := value.(type) {
	case nil:
		return "null"
	case string:
		return scalar
	case bool:
		return strconv.FormatBool(scalar)
	case float64:
		return strconv.FormatFloat(scalar, 'f', -1, 64)
	case int:
		return strconv.Itoa(scalar)
	default:
		data, err := json.Marshal(scalar)
		if err != nil {
			return fmt.Sprint(scalar)
		}

		return string(data)
	}
}
