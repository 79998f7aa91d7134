// Package constants centralizes the defaults shared across nbcli: file
// permissions, timeouts, configuration lookup, and identification headers.
package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for the ~/.nbcli directory.
	ConfigDirPerm = 0o750

	// DumpFilePerm is the permission for dump files, which may contain
	// sensitive inventory data.
	DumpFilePerm = 0o600
)

// HTTP defaults.
const (
	// DefaultHTTPTimeout bounds each HTTP request unless overridden.
	DefaultHTTPTimeout = 30 * time.Second

	// UserAgent identifies nbcli to the NetBox server.
	UserAgent = "nbcli"
)

// Configuration lookup.
const (
	// EnvPrefix is the prefix for environment variables, e.g. NETBOX_URL.
	EnvPrefix = "NETBOX"

	// ConfigDirName is the per-user configuration directory under $HOME.
	ConfigDirName = ".nbcli"

	// ConfigFileName is the configuration file name without extension.
	ConfigFileName = "config"

	// ConfigFileType is the configuration file format.
	ConfigFileType = "yaml"
)

// Output defaults.
const (
	// DefaultOutputFormat is used when no --output flag is given.
	DefaultOutputFormat = "pretty"
)
