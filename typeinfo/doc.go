// Package typeinfo maps Go types to runtime type handles.
//
// A Handle is created once per concrete type by Announce and stays valid
// for the lifetime of the Registry that issued it. Each handle may carry a
// Formatter, the per-type logic that renders an instance as a string.
// Announcing a type and attaching its formatter are separate steps, so a
// type can be known to the runtime without having a string form.
//
// Registries are populated during startup (package init functions) and
// are read concurrently afterwards.
package typeinfo
