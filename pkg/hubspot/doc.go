// Package hubspot provides types, interfaces, and helpers for working with the
// HubSpot REST API.
//
// # Overview
//
// The hubspot package defines the configuration, the typed request
// parameters, the error taxonomy, the domain types (Deal, Engagement,
// ContactList, Property, Blog, Topic) and the interfaces of the
// resource-oriented clients. A concrete implementation is provided by the
// hubspotclient package, which wires configuration, transport and
// authentication.
//
// Getting a client
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
//	  cli, err := hubspotclient.New(ctx, &hubspot.Config{APIKey: "demo"})
//	  if err != nil { log.Fatal(err) }
//
//	  deal, err := cli.Deals().Find(ctx, 42)
//	  if err != nil { log.Fatal(err) }
//	  _ = deal
//	}
//
// # Authentication
//
// A Config carries exactly one authentication approach. With APIKey set,
// every request carries a hapikey query parameter. With AccessToken (or
// RefreshToken plus ClientID and ClientSecret) set, requests carry an
// Authorization: Bearer header and any hapikey parameter is dropped. Paths
// containing :portal_id receive the configured PortalID.
//
// # Parameters
//
// Query parameters are typed. Params keeps insertion order and each value
// decides its own encoding:
//
//	params := hubspot.NewParams(
//	  "createdRange", hubspot.Range(start, end), // createdRange=<ms>&createdRange=<ms>
//	  "vids", []int64{1, 2, 3},                  // vids=1&vids=2&vids=3
//	  "batch_from_id", hubspot.BatchOf(42),      // fromId=42
//	)
//
// Timestamps are sent as epoch milliseconds; other values are query-escaped.
//
// # Errors
//
// Calls fail with *NotFoundError for 404 responses, *RequestError for other
// failures (including transport errors), *UnresolvedPlaceholderError when a
// path template cannot be filled and *ConfigurationError when a required
// setting is missing. Use errors.Is with ErrNotFound, ErrRequestFailed,
// ErrUnresolvedPlaceholder and ErrConfigurationInvalid, or the IsNotFound
// helpers. ResponseOf extracts the HTTP response for inspection.
//
// # Interceptors
//
// An InterceptorChain set on Config runs request interceptors before each
// call and response interceptors after it. HeaderInterceptor,
// RequestIDInterceptor, LoggingInterceptor and the metrics interceptors are
// provided.
package hubspot
