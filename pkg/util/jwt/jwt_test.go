package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	m, err := NewManager("test-secret", "HS256", time.Minute)
	require.NoError(t, err)

	token, err := m.Generate(42)
	require.NoError(t, err)

	id, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m, err := NewManager("test-secret", "", time.Minute)
	require.NoError(t, err)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Generate(1)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	a, _ := NewManager("secret-a", "HS256", time.Minute)
	b, _ := NewManager("secret-b", "HS256", time.Minute)

	token, err := a.Generate(7)
	require.NoError(t, err)

	_, err = b.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManagerValidation(t *testing.T) {
	_, err := NewManager("", "HS256", time.Minute)
	assert.Error(t, err)

	_, err = NewManager("s", "RS256", time.Minute)
	assert.Error(t, err)
}
