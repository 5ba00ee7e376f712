package cryptoutil

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-signing-secret")

func TestSignedToken_RoundTrip(t *testing.T) {
	t.Parallel()
	payload := []byte(`{"v":1,"userId":"42"}`)

	token := SignedToken(payload, testSecret)
	assert.Equal(t, 1, strings.Count(token, "."))

	decoded, ok := VerifySignedToken(token, testSecret)
	require.True(t, ok)
	assert.Equal(t, payload, decoded)
}

func TestVerifySignedToken_RejectsTampering(t *testing.T) {
	t.Parallel()
	token := SignedToken([]byte(`{"v":1,"userId":"42"}`), testSecret)
	parts := strings.SplitN(token, ".", 2)
	require.Len(t, parts, 2)

	// Flip one bit in every byte position of each segment.
	for seg := range 2 {
		raw, err := base64.RawURLEncoding.DecodeString(parts[seg])
		require.NoError(t, err)
		for i := range raw {
			mutated := append([]byte(nil), raw...)
			mutated[i] ^= 0x01
			segments := []string{parts[0], parts[1]}
			segments[seg] = base64.RawURLEncoding.EncodeToString(mutated)
			_, ok := VerifySignedToken(segments[0]+"."+segments[1], testSecret)
			assert.False(t, ok, "tampered byte %d of segment %d accepted", i, seg)
		}
	}
}

func TestVerifySignedToken_FailsClosed(t *testing.T) {
	t.Parallel()
	cases := []string{
		"",
		"no-dot",
		".signature-only",
		"payload-only.",
		"not!base64url.not!base64url",
	}
	for _, token := range cases {
		_, ok := VerifySignedToken(token, testSecret)
		assert.False(t, ok, "token %q accepted", token)
	}
}

func TestVerifySignedToken_WrongSecret(t *testing.T) {
	t.Parallel()
	token := SignedToken([]byte("payload"), testSecret)
	_, ok := VerifySignedToken(token, []byte("other-secret"))
	assert.False(t, ok)
}

func TestPKCEVerifier_Shape(t *testing.T) {
	t.Parallel()
	verifier, err := PKCEVerifier()
	require.NoError(t, err)

	// 64 random bytes base64url-encode to 86 characters, within RFC 7636's
	// 43..128 window.
	assert.Len(t, verifier, 86)
	_, err = base64.RawURLEncoding.DecodeString(verifier)
	assert.NoError(t, err)

	second, err := PKCEVerifier()
	require.NoError(t, err)
	assert.NotEqual(t, verifier, second)
}

func TestPKCEChallenge_DerivesS256(t *testing.T) {
	t.Parallel()
	verifier := "test-verifier-value"
	digest := sha256.Sum256([]byte(verifier))
	expected := base64.RawURLEncoding.EncodeToString(digest[:])

	challenge := PKCEChallenge(verifier)
	assert.Equal(t, expected, challenge)
	assert.GreaterOrEqual(t, len(challenge), 43)
}

func TestOAuthState_Shape(t *testing.T) {
	t.Parallel()
	state, err := OAuthState()
	require.NoError(t, err)
	assert.Len(t, state, 43) // 32 bytes, unpadded base64url

	second, err := OAuthState()
	require.NoError(t, err)
	assert.NotEqual(t, state, second)
}
