package core

// NodeID identifies a runtime process in a cluster.
// It combines a process-unique component with the network location the
// node is reachable at.
type NodeID struct {
	// ProcessID is unique among the processes running on Host
	ProcessID uint32

	// Host is the network location, e.g. "10.0.0.1:4040"
	Host string
}

// NewNodeID creates a node identifier.
func NewNodeID(processID uint32, host string) NodeID {
	return NodeID{ProcessID: processID, Host: host}
}

// IsZero reports whether the identifier carries no addressing data.
func (n NodeID) IsZero() bool {
	return n.ProcessID == 0 && n.Host == ""
}

// Equal compares both addressing fields.
func (n NodeID) Equal(other NodeID) bool {
	return n.ProcessID == other.ProcessID && n.Host == other.Host
}
