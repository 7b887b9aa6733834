package scope

import (
	"context"
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/model"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/jwt"
)

func TestNewScope(t *testing.T) {
	claims := &jwt.Claims{Role: "coach", RegisteredClaims: gojwt.RegisteredClaims{Subject: "c-42"}}
	s, err := NewScope(claims)
	require.NoError(t, err)
	assert.Equal(t, model.Scope{UserID: "c-42", Role: model.RoleCoach}, s)

	_, err = NewScope(&jwt.Claims{Role: "admin"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestScopeContextRoundTrip(t *testing.T) {
	_, err := MustScope(context.Background())
	assert.ErrorIs(t, err, ErrMissingScope)

	want := model.Scope{UserID: "s-7", Role: model.RoleStudent}
	ctx := SetScopeToContext(context.Background(), want)

	got, ok := GetScopeFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)

	got, err = MustScope(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
