// Package api implements the JSON-over-HTTPS transport consumed by the
// lifecycle layer.
//
// Every secretbin endpoint is a POST with consume-on-read semantics: secrets
// burn on first retrieval and fulfilment ids are single-use. The client
// therefore never retries a failed request; a replay could consume an object
// the caller never saw. Timeouts are owned here, retry policy is deliberately
// absent everywhere.
package api
