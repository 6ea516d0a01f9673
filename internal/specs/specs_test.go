package specs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownSpec(t *testing.T) {
	class, spec, role, ok := Lookup(105)
	assert.True(t, ok)
	assert.Equal(t, "Druid", class)
	assert.Equal(t, "Restoration", spec)
	assert.Equal(t, RoleHealer, role)
}

func TestLookupUnknownSpecIsNotAnError(t *testing.T) {
	class, spec, role, ok := Lookup(999999)
	assert.False(t, ok)
	assert.Empty(t, class)
	assert.Empty(t, spec)
	assert.Empty(t, role)
}

func TestEveryEntryHasARole(t *testing.T) {
	for id, e := range table {
		assert.NotEmpty(t, e.Class, "spec %d missing class", id)
		assert.NotEmpty(t, e.Spec, "spec %d missing spec", id)
		switch e.Role {
		case RoleTank, RoleHealer, RoleDPS:
		default:
			t.Fatalf("spec %d has unrecognised role %q", id, e.Role)
		}
	}
}
