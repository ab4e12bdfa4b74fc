// Package api is the HTTP client for the remote customer store.
//
// The store is authoritative: the table engine mutates its working set
// optimistically, but every change is a PATCH carrying exactly the changed
// field(s), and a non-2xx response (StatusError) or transport failure tells
// the caller to roll back. Deletes are confirmed before the record leaves
// the working set.
//
// Authentication is a bearer token supplied at construction; the client
// attaches it to every request and otherwise knows nothing about sessions.
package api
