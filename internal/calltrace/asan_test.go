package calltrace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseASanOutput_ExtractsFourthToken(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "asan.txt")
	content := "    #0 0x55a1 in combineData (0x55a1+0x10)\n" +
		"#1 0x55a2 in processData /src/app.c:42:3\n" +
		"short line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	g := NewGraph()
	require.NoError(t, g.ParseASanOutput(path))

	require.Len(t, g.Backtrace, 2)
	assert.Equal(t, "combineData", g.Backtrace[0].Name)
	assert.Equal(t, "processData", g.Backtrace[1].Name)
}

func TestParseASanOutput_MissingFileIsError(t *testing.T) {
	g := NewGraph()
	err := g.ParseASanOutput("/does/not/exist")
	assert.Error(t, err)
}

func TestAddBacktrace_ReversesAndWiresConsecutivePairs(t *testing.T) {
	g := NewGraph()
	g.Backtrace = []FunctionInfo{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	g.AddBacktrace()

	// as read innermost-first [a, b, c]; reversed gives [c, b, a]; edges c->b, b->a.
	c := g.FindNode("c")
	require.NotNil(t, c)
	assert.Equal(t, 1, c.CallCountTo("b"))

	b := g.FindNode("b")
	require.NotNil(t, b)
	assert.Equal(t, 1, b.CallCountTo("a"))
	assert.Equal(t, 0, b.CallCountTo("c"))

	a := g.FindNode("a")
	require.NotNil(t, a)
	assert.Empty(t, a.Next())
}
