// Package http exposes live page sessions over HTTP with a chi router, so a
// browser shim or a test harness can feed step events and follow the sticky
// panel through Server-Sent Events.
package http
