package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll_DefinitionOrder(t *testing.T) {
	all := All()
	assert.Len(t, all, 11)
	assert.Equal(t, DomainPython, all[0])
	assert.Equal(t, DomainTraining, all[len(all)-1])
	for i, d := range all {
		assert.Equal(t, i, d.Index())
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0] = DomainWeb
	assert.Equal(t, DomainPython, All()[0])
}

func TestGeneralIsNotValid(t *testing.T) {
	assert.False(t, General.Valid())
	assert.Equal(t, len(All()), General.Index())
	assert.True(t, DomainMCP.Valid())
}

func TestParseDomain(t *testing.T) {
	d, ok := ParseDomain("CICD")
	assert.True(t, ok)
	assert.Equal(t, DomainCICD, d)

	_, ok = ParseDomain("cobol")
	assert.False(t, ok)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.3))
	assert.Equal(t, 1.0, Clamp01(1.7))
	assert.Equal(t, 0.42, Clamp01(0.42))
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr())
	assert.Equal(t, "", FirstOf(nil))
	assert.Equal(t, "x", FirstOf([]string{"x", "y"}))
}
