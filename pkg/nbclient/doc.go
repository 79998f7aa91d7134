// Package nbclient provides the primary entry point for constructing a
// NetBox API client.
//
// It layers endpoint normalization and token authentication on top of the
// catalog client: paginated fetches, catalog index traversal, and full dumps.
// Payloads are decoded JSON values (map[string]any, []any, and scalars) so
// callers can address any NetBox release without regenerating types.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/my0373/nbcli/pkg/nbclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := nbclient.New(&nbclient.Config{
//	    BaseURL: "https://netbox.example.com",
//	    Token:   "0123456789abcdef",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  status, err := cli.Status(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = status
//	}
package nbclient
