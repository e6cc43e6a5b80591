// Package http is the transport adapter layer: plain Request and
// Response records around net/http, plus the status-carrying Error type
// the dispatch pipeline maps onto responses. The container core is
// agnostic to everything in this package.
package http
