// Package cryptoutil provides the signing and PKCE primitives for the
// cookie-carried auth layer: base64url signed tokens (HMAC-SHA256),
// cryptographically random OAuth state and PKCE verifiers, and the S256
// challenge derivation.
package cryptoutil

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// pkceVerifierBytes yields a 86-character base64url verifier, inside
	// the 43..128 range RFC 7636 requires.
	pkceVerifierBytes = 64
	oauthStateBytes   = 32
)

func sign(encodedPayload string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(encodedPayload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// SignedToken encodes payload as base64url and appends an HMAC-SHA256
// signature over the encoded form: "<payload>.<signature>".
func SignedToken(payload []byte, secret []byte) string {
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + sign(encoded, secret)
}

// VerifySignedToken checks a token produced by SignedToken and returns the
// decoded payload. It fails closed: a missing segment, a signature mismatch
// (compared in constant time), or an undecodable payload all return false.
func VerifySignedToken(token string, secret []byte) ([]byte, bool) {
	encodedPayload, signature, found := strings.Cut(token, ".")
	if !found || encodedPayload == "" || signature == "" {
		return nil, false
	}

	expected := sign(encodedPayload, secret)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return nil, false
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, false
	}
	return payload, true
}

func randomURLSafe(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// PKCEVerifier returns a fresh PKCE code verifier: 64 bytes of
// cryptographically secure randomness, base64url-encoded, used verbatim as
// the code_verifier parameter.
func PKCEVerifier() (string, error) {
	return randomURLSafe(pkceVerifierBytes)
}

// PKCEChallenge derives the S256 code challenge for a verifier.
func PKCEChallenge(verifier string) string {
	digest := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(digest[:])
}

// OAuthState returns a fresh anti-CSRF state parameter: 32 bytes of secure
// randomness, base64url-encoded.
func OAuthState() (string, error) {
	return randomURLSafe(oauthStateBytes)
}
