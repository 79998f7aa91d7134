package netbox

import (
	"errors"
	"fmt"
)

// Process exit codes reported by the nbcli binary.
const (
	ExitOK        = 0
	ExitHTTPError = 1
	ExitUsage     = 2
	ExitTransport = 3
)

// Static errors for err113 compliance.
var (
	ErrMissingURL            = errors.New("missing NetBox URL (set NETBOX_URL or --url)")
	ErrMissingToken          = errors.New("missing NetBox token (set NETBOX_TOKEN or --token)")
	ErrInvalidParam          = errors.New("invalid param, use key=value")
	ErrUnknownOutputFormat   = errors.New("unknown output format")
	ErrDumpFormatUnsupported = errors.New("dump output supports YAML or JSON only")
	ErrShowTargetRequired    = errors.New("show target is required")
	ErrUnexpectedRootShape   = errors.New("catalog root is not an object")
)

// TransportKind classifies network-level failures.
type TransportKind int

const (
	// TransportOther covers network failures that are neither timeouts nor
	// connection failures.
	TransportOther TransportKind = iota
	// TransportTimeout is a request that exceeded its deadline.
	TransportTimeout
	// TransportConnectionFailed is a dial or DNS failure.
	TransportConnectionFailed
)

// TransportError wraps a network-level failure. No response was received.
type TransportError struct {
	Kind TransportKind
	Err  error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case TransportTimeout:
		return "request timed out"
	case TransportConnectionFailed:
		return "connection failed"
	default:
		return fmt.Sprintf("request failed: %v", e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response. Body carries the raw response text.
type HTTPError struct {
	StatusCode int
	Reason     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.Reason)
}

// NotJSONError is a 2xx response whose body does not decode as JSON. The raw
// body is still meaningful content; the CLI prints it to stdout and exits 0.
type NotJSONError struct {
	StatusCode int
	Body       string
}

func (e *NotJSONError) Error() string {
	return "response body is not JSON"
}

// SelectorError reports the first dotted-path segment that could not be
// resolved.
type SelectorError struct {
	Selector string
	Segment  string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Selector)
}

// ExitCode maps an error from the taxonomy to the process exit code the CLI
// reports. Configuration, usage, and selector errors all exit 2; a non-JSON
// 2xx body exits 0 because the raw text is still shown to the caller.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return ExitHTTPError
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return ExitTransport
	}

	var notJSON *NotJSONError
	if errors.As(err, &notJSON) {
		return ExitOK
	}

	return ExitUsage
}
