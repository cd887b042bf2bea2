package srcxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseElements_EmitsDeclsCallsAndReturns(t *testing.T) {
	doc := `<function><type><name>void</name></type> <name>combineData</name>` +
		`<parameter_list>(<parameter><decl><type><name>char</name><modifier>*</modifier></type> <name>dst</name></decl></parameter>)</parameter_list>` +
		`<block>{` +
		`<decl_stmt><decl><type><name>char</name></type> <name>buf</name> <init>= <expr><call><name>getInput</name><argument_list>()</argument_list></call></expr></init></decl>;</decl_stmt>` +
		`<expr_stmt><expr><call><name>strcpy</name><argument_list>(<argument><expr><name>dst</name></expr></argument>, <argument><expr><name>buf</name></expr></argument>)</argument_list></call></expr>;</expr_stmt>` +
		`<return>return <expr><name>dst</name></expr>;</return>` +
		`}</block></function>`

	elements, err := ParseElements(doc)
	require.NoError(t, err)
	require.NotEmpty(t, elements)

	for _, el := range elements {
		assert.Equal(t, "combineData", el.FunctionName)
	}

	var sawDecl, sawCall, sawReturn bool
	for _, el := range elements {
		switch el.Type {
		case "decl":
			sawDecl = true
		case "call":
			sawCall = true
		case "return":
			sawReturn = true
		}
	}
	assert.True(t, sawDecl, "expected a decl element")
	assert.True(t, sawCall, "expected a call element")
	assert.True(t, sawReturn, "expected a return element")
}

func TestParseElements_SkipsCommentsAndForwardDecls(t *testing.T) {
	doc := `<function><name>f</name><block>{` +
		`<comment>not real code <call><name>strcpy</name></call></comment>` +
		`<function_decl>int g();</function_decl>` +
		`<return>return <expr><name>x</name></expr>;</return>` +
		`}</block></function>`

	elements, err := ParseElements(doc)
	require.NoError(t, err)
	for _, el := range elements {
		assert.NotContains(t, el.Content, "not real code")
	}
}

func TestParseElements_UnlinksTypeBeforeRecordingDeclContent(t *testing.T) {
	doc := `<function><name>f</name><block>{` +
		`<decl_stmt><decl><type><name>int</name></type> <name>n</name></decl>;</decl_stmt>` +
		`}</block></function>`

	elements, err := ParseElements(doc)
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.NotContains(t, elements[0].Content, "int")
	assert.Contains(t, elements[0].Content, "n")
}
