package stringify

import (
	"strconv"

	"github.com/najoast/sngofmt/core"
)

// UnknownNode is rendered for absent node identifiers.
const UnknownNode = "<unknown-node>"

// NodeID renders n as "<process-id>@<host>", e.g. "7@10.0.0.1:4040".
// The layout is consumed by log correlators and must not change. A zero
// identifier renders as UnknownNode.
func NodeID(n core.NodeID) string {
	if n.IsZero() {
		return UnknownNode
	}
	return strconv.FormatUint(uint64(n.ProcessID), 10) + "@" + n.Host
}

// NodeIDPtr renders an optional identifier, UnknownNode when nil.
func NodeIDPtr(n *core.NodeID) string {
	if n == nil {
		return UnknownNode
	}
	return NodeID(*n)
}
