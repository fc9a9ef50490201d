// Package tsclient provides the primary entry point for constructing a
// Terrascope platform API client that implements the terrascope.Client
// interface.
//
// It layers configuration, the retrying HTTP transport, and API key
// authentication on top of the resource interfaces and types defined in
// the terrascope package. Most applications should import tsclient to
// build a client, then use the returned terrascope.Client to access the
// subsystem clients, for example Data(), Orders(), Subscriptions(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/terrascope-io/terrascope-client/pkg/terrascope"
//	  "github.com/terrascope-io/terrascope-client/pkg/tsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: endpoint plus API key.
//	  cli, err := tsclient.New(&terrascope.Config{
//	    APIEndpoint: "https://api.terrascope.io",
//	    APIKey:      "TS_KEY...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Or let the key come from the TERRASCOPE_API_KEY environment
//	  // variable:
//	  cli, err = tsclient.NewWithEndpoint("https://api.terrascope.io")
//	  if err != nil { log.Fatal(err) }
//
//	  // Use subsystem clients via the terrascope.Client interface
//	  orders, err := cli.Orders().List(ctx, nil, 10)
//	  if err != nil { log.Fatal(err) }
//	  _ = orders
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewWithEndpoint and
// NewWithAPIKey that wrap New with the appropriate configuration.
package tsclient
