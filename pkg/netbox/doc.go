// Package netbox provides the error taxonomy and pure helpers shared by the
// nbcli command and its internal packages.
//
// # Overview
//
// NetBox exposes a browsable, paginated REST catalog: the API root lists
// applications, each application lists its endpoints, and list endpoints
// return pages shaped as {"results": [...], "next": <url|null>}. This package
// holds everything about that contract which does not require a network
// connection: request URL construction (BuildURL, EnsureTrailingSlash),
// recognition of the synthetic local targets ("status" and "cli config"),
// query parameter parsing from repeated key=value flags, dotted-path value
// selection over decoded JSON trees, token masking for display, and the error
// types the rest of the repository maps process exit codes from.
//
// # Values
//
// Payloads are plain decoded JSON: map[string]any, []any, string, float64,
// bool, and nil. Helpers such as PageResults and NextURL shape-check these
// trees; nothing in this package validates catalog schema beyond that.
//
// # Errors
//
// Failures fall into a fixed taxonomy: HTTPError (non-2xx response),
// TransportError (timeout, connection failure, or any other network-level
// failure), NotJSONError (2xx body that does not decode), SelectorError
// (dotted path segment absent or out of range), and static usage/config
// sentinels. ExitCode maps any error from the taxonomy to the process exit
// code the CLI reports.
package netbox
