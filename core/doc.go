// Package core defines the value model of the SNGO actor runtime that is
// passed around type-erased: actor addresses and references, groups,
// channels, distributed node identifiers, message headers, boxed objects
// and message tuples.
//
// Each type is announced with a uniform name in typeinfo.Default at init so
// that it can be boxed and rendered through the runtime type registry.
package core
