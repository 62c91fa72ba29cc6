package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsRenderCapsOutput(t *testing.T) {
	var diags Diagnostics
	for i := 0; i < 8; i++ {
		diags.Add(Diagnostic{Sheet: "2023", Err: fmt.Errorf("falha %d", i)})
	}

	assert.Equal(t, 8, diags.Count())

	lines := diags.Render()
	require.Len(t, lines, MaxShownDiagnostics+1)
	assert.Contains(t, lines[0], "falha 0")
	assert.Contains(t, lines[MaxShownDiagnostics], "and 3 more error(s)")
}

func TestDiagnosticsRenderBelowCap(t *testing.T) {
	var diags Diagnostics
	diags.AddAll([]Diagnostic{
		{Err: fmt.Errorf("uma")},
		{Err: fmt.Errorf("outra")},
	})

	lines := diags.Render()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "outra")
}

func TestDiagnosticsEmpty(t *testing.T) {
	var diags Diagnostics
	assert.Zero(t, diags.Count())
	assert.Nil(t, diags.Render())
	assert.Empty(t, diags.Summary())
}
