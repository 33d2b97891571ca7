// Package hubspotclient provides the primary entry point for constructing a
// HubSpot API client that implements the hubspot.Client interface.
//
// It layers configuration, HTTP transport and authentication on top of the
// resource interfaces and types defined in the hubspot package. Most
// applications import hubspotclient to build a client, then use the returned
// hubspot.Client to reach the resource clients: Deals(), ContactLists(),
// Engagements(), Blogs() and so on.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/hubspot-client/pkg/hubspot"
//	  "github.com/fivetwenty-io/hubspot-client/pkg/hubspotclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Developer API key, sent as the hapikey query parameter.
//	  cli, err := hubspotclient.NewWithAPIKey(ctx, "demo", "62515")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or a private app token, sent as a bearer header:
//	  cli, err = hubspotclient.NewWithAccessToken(ctx, "pat-na1-...", "62515")
//
//	  // Or a full configuration:
//	  cli, err = hubspotclient.New(ctx, &hubspot.Config{
//	    ClientID:     "client-id",
//	    ClientSecret: "client-secret",
//	    RefreshToken: "refresh-token",
//	    ReadTimeout:  10 * time.Second,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  lists, err := cli.ContactLists().All(ctx, &hubspot.ContactListOptions{Count: 10})
//	  if err != nil { log.Fatal(err) }
//	  _ = lists
//	}
//
// # Base URL
//
// An empty BaseURL selects https://api.hubapi.com. A host without a scheme is
// reached over https.
package hubspotclient
