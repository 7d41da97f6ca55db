//go:build !integration

package operator

import (
	"context"
	"smelterAdvisor/pkg/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*OperatorService, *utils.TokenIssuer) {
	t.Helper()
	hash, err := utils.HashPassword("converter")
	require.NoError(t, err)

	issuer := utils.NewTokenIssuer("secret", time.Hour)
	return NewOperatorService("shift-lead", hash, issuer), issuer
}

func TestLoginIssuesOperatorToken(t *testing.T) {
	svc, issuer := newService(t)

	token, err := svc.Login(context.Background(), "shift-lead", "converter")
	require.NoError(t, err)

	claims, err := issuer.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "shift-lead", claims.Subject)
	assert.Equal(t, RoleOperator, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login(context.Background(), "shift-lead", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "someone", "converter")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	svc := NewOperatorService("operator", "", utils.NewTokenIssuer("secret", time.Hour))

	_, err := svc.Login(context.Background(), "operator", "anything")
	assert.ErrorIs(t, err, ErrLoginDisabled)
}
