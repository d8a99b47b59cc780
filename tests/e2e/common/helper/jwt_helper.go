//go:build e2e

package helper

import (
	"testing"
	"time"

	"civicdesk/internal/domain/user"
	"civicdesk/internal/pkg/config"
	"civicdesk/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTTestHelper mints tokens directly against the configured signing
// key. Actors are external identities carried entirely in the token, so
// there is no user table to seed.
type JWTTestHelper struct {
	cfg config.JWTConfig
}

func NewJWTTestHelper(cfg config.JWTConfig) *JWTTestHelper {
	return &JWTTestHelper{cfg: cfg}
}

func (h *JWTTestHelper) GenerateToken(t *testing.T, actorID uuid.UUID, role user.Role) string {
	t.Helper()

	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)

	service := jwt.NewService(h.cfg.Secret, duration)
	token, err := service.GenerateToken(actorID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTTestHelper) CreateExpiredToken(t *testing.T, actorID uuid.UUID, role user.Role) string {
	t.Helper()

	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(actorID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
