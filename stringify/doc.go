// Package stringify renders type-erased runtime values as human-readable
// strings for logs and traces.
//
// A Renderer looks up the formatter registered for a value's runtime type
// handle and returns its output. Entity adapters (Message, Header, Actor,
// Address, Group, Channel, Object) spare callers from building a View by
// hand. Node identifiers are rendered by a fixed formatter that never
// consults the registry, and Verbose renders errors with their type name.
//
// Output is meant for humans. Only the node identifier layout
// "<process-id>@<host>" is stable across versions.
package stringify
