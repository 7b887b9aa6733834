package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("coach")
	require.NoError(t, err)
	assert.Equal(t, RoleCoach, r)

	r, err = ParseRole("student")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, r)

	_, err = ParseRole("Coach")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestScopeRoleHelpers(t *testing.T) {
	coach := Scope{UserID: "c-42", Role: RoleCoach}
	assert.True(t, coach.IsCoach())
	assert.False(t, coach.IsStudent())

	student := Scope{UserID: "s-7", Role: RoleStudent}
	assert.True(t, student.IsStudent())
	assert.False(t, Role("admin").Valid())
}
