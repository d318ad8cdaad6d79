package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/kenlo-pricing-api/internal/config"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService(config.Auth{})
	assert.True(t, errors.Is(err, ErrMissingSecret))
}

func TestService_IssueAndValidate(t *testing.T) {
	service, err := NewService(config.Auth{Secret: "segredo-de-teste"})
	require.NoError(t, err)

	t.Run("Token válido", func(t *testing.T) {
		token, err := service.IssueToken("ana@kenlo.com.br", "Ana", domain.RoleAdmin, time.Hour)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "ana@kenlo.com.br", claims.UserEmail)
		assert.True(t, claims.IsAdmin())
	})

	t.Run("Perfil desconhecido não é emitido", func(t *testing.T) {
		_, err := service.IssueToken("ana@kenlo.com.br", "Ana", "owner", time.Hour)
		assert.True(t, errors.Is(err, ErrUnknownRole))
	})

	t.Run("Token expirado", func(t *testing.T) {
		token, err := service.IssueToken("bruno@kenlo.com.br", "Bruno", domain.RoleSales, -time.Minute)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrExpiredToken))
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("Assinatura de outro segredo", func(t *testing.T) {
		other, err := NewService(config.Auth{Secret: "outro-segredo"})
		require.NoError(t, err)

		token, err := other.IssueToken("bruno@kenlo.com.br", "Bruno", domain.RoleSales, time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("Texto qualquer", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-jwt")
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}
