package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-auth-api/internal/model"
)

func TestNewCodecRequiresSecretAndLifetime(t *testing.T) {
	_, err := NewCodec("", time.Hour)
	require.Error(t, err)

	_, err = NewCodec("   ", time.Hour)
	require.Error(t, err)

	_, err = NewCodec("secret", 0)
	require.Error(t, err)

	codec, err := NewCodec("secret", time.Hour)
	require.NoError(t, err)
	require.NotNil(t, codec)
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Hour)
	require.NoError(t, err)

	issued, err := codec.Issue("user-42", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, issued)
	require.Len(t, strings.Split(issued, "."), 3)

	claims, err := codec.Verify(issued)
	require.NoError(t, err)
	require.Equal(t, "user-42", claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Hour)
	require.NoError(t, err)

	issued, err := codec.Issue("user-42", "alice")
	require.NoError(t, err)

	parts := strings.Split(issued, ".")
	require.Len(t, parts, 3)

	// Flip one character of the claims segment while keeping it valid
	// base64url so the failure is the signature, not parsing.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = codec.Verify(tampered)
	require.Error(t, err)
	require.NotErrorIs(t, err, model.ErrTokenExpired)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := NewCodec("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewCodec("secret-b", time.Hour)
	require.NoError(t, err)

	issued, err := issuer.Issue("user-42", "alice")
	require.NoError(t, err)

	_, err = verifier.Verify(issued)
	require.ErrorIs(t, err, model.ErrTokenSignatureInvalid)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	// A codec with a tiny lifetime keeps the exp = iat + lifetime invariant
	// while producing an already-expired token after a short sleep.
	codec, err := NewCodec("test-secret", time.Millisecond)
	require.NoError(t, err)

	issued, err := codec.Issue("user-42", "alice")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond) // exp has one-second resolution

	_, err = codec.Verify(issued)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Hour)
	require.NoError(t, err)

	for _, input := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(input)
		require.ErrorIs(t, err, model.ErrTokenMalformed, "input %q", input)
	}
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	codec, err := NewCodec("test-secret", time.Hour)
	require.NoError(t, err)

	issued, err := codec.Issue("", "alice")
	require.NoError(t, err)

	_, err = codec.Verify(issued)
	require.ErrorIs(t, err, model.ErrTokenMalformed)
}
