package calltrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCall_CreatesNodesAndCounts(t *testing.T) {
	g := NewGraph()

	g.AddCall("main", "processData")
	g.AddCall("main", "processData")
	g.AddCall("main", "otherFunc")

	require.Equal(t, 3, g.Size())

	main := g.FindNode("main")
	require.NotNil(t, main)
	assert.Equal(t, 2, main.CallCountTo("processData"))
	assert.Equal(t, 1, main.CallCountTo("otherFunc"))

	processData := g.FindNode("processData")
	require.NotNil(t, processData)
	assert.Equal(t, 2, processData.CallCount())
}

func TestAddCall_IsIdempotentInEdgeIdentity(t *testing.T) {
	g := NewGraph()
	g.AddCall("a", "b")
	g.AddCall("a", "b")
	g.AddCall("a", "b")

	a := g.FindNode("a")
	require.Len(t, a.Next(), 1, "repeated calls should not fragment the edge")
	assert.Equal(t, 3, a.CallCountTo("b"))
}

func TestFindNode_AbsentReturnsNil(t *testing.T) {
	g := NewGraph()
	assert.Nil(t, g.FindNode("nope"))
}

func TestRemoveInterceptors_StripsPrefix(t *testing.T) {
	g := NewGraph()
	g.AddCall("caller", "__interceptor_strcpy")
	g.AddCall("__interceptor_strcpy", "strcpy")

	g.RemoveInterceptors()

	for _, n := range g.Nodes() {
		assert.NotContains(t, n.Name(), "__interceptor_")
	}
	assert.NotNil(t, g.FindNode("strcpy"))
}

func TestRemoveInterceptors_Idempotent(t *testing.T) {
	g := NewGraph()
	g.AddCall("caller", "__interceptor_memcpy")

	g.RemoveInterceptors()
	names1 := nodeNames(g)
	g.RemoveInterceptors()
	names2 := nodeNames(g)

	assert.Equal(t, names1, names2)
	for _, n := range g.Nodes() {
		assert.False(t, len(n.Name()) >= 14 && n.Name()[:14] == "__interceptor_")
	}
}

func nodeNames(g *Graph) []string {
	var names []string
	for _, n := range g.Nodes() {
		names = append(names, n.Name())
	}
	return names
}
