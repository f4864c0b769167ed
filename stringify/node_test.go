package stringify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/najoast/sngofmt/core"
)

func TestNodeID(t *testing.T) {
	tests := []struct {
		name string
		node core.NodeID
		want string
	}{
		{"ipv4", core.NewNodeID(7, "10.0.0.1:4040"), "7@10.0.0.1:4040"},
		{"ipv6", core.NewNodeID(1, "[::1]:9000"), "1@[::1]:9000"},
		{"no host", core.NewNodeID(9, ""), "9@"},
		{"zero", core.NodeID{}, UnknownNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NodeID(tt.node))
		})
	}
}

func TestNodeIDIsDeterministic(t *testing.T) {
	a := core.NewNodeID(7, "10.0.0.1:4040")
	b := core.NodeID{ProcessID: 7, Host: "10.0.0.1:4040"}

	first := NodeID(a)
	assert.Equal(t, first, NodeID(a))
	assert.Equal(t, first, NodeID(b))

	// Process component comes first
	pid := strings.Index(first, "7")
	host := strings.Index(first, "10.0.0.1:4040")
	assert.True(t, pid >= 0 && host > pid)
}

func TestNodeIDPtr(t *testing.T) {
	assert.Equal(t, UnknownNode, NodeIDPtr(nil))

	n := core.NewNodeID(7, "10.0.0.1:4040")
	assert.Equal(t, "7@10.0.0.1:4040", NodeIDPtr(&n))
}

func TestNodeIDInsideRegistryMatchesDirectFormatter(t *testing.T) {
	n := core.NewNodeID(4, "node-a:7000")

	viaRegistry, err := Render(n)
	require.NoError(t, err)
	assert.Equal(t, NodeID(n), viaRegistry)
}
