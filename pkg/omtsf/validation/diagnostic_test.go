package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityStringAndLetter(t *testing.T) {
	assert.Equal(t, "Error", SeverityError.String())
	assert.Equal(t, "Warning", SeverityWarning.String())
	assert.Equal(t, "Info", SeverityInfo.String())
	assert.Equal(t, byte('E'), SeverityError.letter())
	assert.Equal(t, byte('W'), SeverityWarning.letter())
	assert.Equal(t, byte('I'), SeverityInfo.letter())
}

func TestRuleIdCodeAndExtension(t *testing.T) {
	assert.Equal(t, "L1-GDM-01", L1Gdm01.Code())
	assert.False(t, L1Gdm01.IsExtension())

	ext := Extension("com.acme.custom-check")
	assert.Equal(t, "com.acme.custom-check", ext.Code())
	assert.True(t, ext.IsExtension())

	assert.Equal(t, "internal", Internal.Code())
}

func TestLocationStringFormats(t *testing.T) {
	assert.Equal(t, "header.spec_version", LocationHeader("spec_version").String())
	assert.Equal(t, `node "n-1"`, LocationNode("n-1", "").String())
	assert.Equal(t, `node "n-1" field "type"`, LocationNode("n-1", "type").String())
	assert.Equal(t, `edge "e-1"`, LocationEdge("e-1", "").String())
	assert.Equal(t, `edge "e-1" field "type"`, LocationEdge("e-1", "type").String())
	assert.Equal(t, `node "n-1" identifiers[2]`, LocationIdentifier("n-1", 2, "").String())
	assert.Equal(t, `node "n-1" identifiers[2].scheme`, LocationIdentifier("n-1", 2, "scheme").String())
	assert.Equal(t, "(global)", LocationGlobal.String())
}

func TestDiagnosticString(t *testing.T) {
	d := NewDiagnostic(L1Gdm01, SeverityError, LocationGlobal, "a node has an empty id")
	assert.Equal(t, `[E] L1-GDM-01 (global): a node has an empty id`, d.String())
}

func TestResultHasErrorsAndIsConformant(t *testing.T) {
	clean := NewResult(nil)
	assert.False(t, clean.HasErrors())
	assert.True(t, clean.IsConformant())
	assert.True(t, clean.IsEmpty())

	dirty := NewResult([]Diagnostic{
		NewDiagnostic(L1Gdm01, SeverityError, LocationGlobal, "boom"),
		NewDiagnostic(L2Gdm01, SeverityWarning, LocationGlobal, "hmm"),
	})
	assert.True(t, dirty.HasErrors())
	assert.False(t, dirty.IsConformant())
	assert.Equal(t, 2, dirty.Len())
	assert.Len(t, dirty.BySeverity(SeverityError), 1)
	assert.Len(t, dirty.BySeverity(SeverityWarning), 1)
	assert.Len(t, dirty.ByRule(L1Gdm01), 1)
}
