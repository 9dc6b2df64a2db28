package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewToken_Format(t *testing.T) {
	t.Parallel()

	token, err := newToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// 32 байта энтропии в base64url без паддинга — 43 символа.
	require.Len(t, token, 43)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, 32)
}

func TestNewToken_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 128)
	for i := 0; i < 128; i++ {
		token, err := newToken()
		require.NoError(t, err)

		_, dup := seen[token]
		require.False(t, dup, "token collision")
		seen[token] = struct{}{}
	}
}
