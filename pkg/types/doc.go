// Package types defines the entity types exchanged with the Linkdeck API,
// the form payloads submitted by clients, and the standard errors shared
// across the client core.
package types
