package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestPasswordHashAndVerify(t *testing.T) {
	h := NewPasswordHasherWithParams(fastParams)

	salt, digest, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, salt)
	assert.NotEmpty(t, digest)

	assert.True(t, h.Verify("correct horse", salt, digest))
	assert.False(t, h.Verify("wrong horse", salt, digest))
}

func TestPasswordSaltsDiffer(t *testing.T) {
	h := NewPasswordHasherWithParams(fastParams)

	salt1, digest1, err := h.Hash("same")
	require.NoError(t, err)
	salt2, digest2, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, digest1, digest2)
}

func TestPasswordVerifyRejectsMalformed(t *testing.T) {
	h := NewPasswordHasherWithParams(fastParams)
	salt, _, err := h.Hash("pw")
	require.NoError(t, err)

	assert.False(t, h.Verify("pw", "%%%", "AAAA"))
	assert.False(t, h.Verify("pw", salt, "not base64!"))
	assert.False(t, h.Verify("pw", salt, "AAAA"))
}

func TestTokenIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	now := time.Now()

	token, err := issuer.Issue("user-1", "session-1", now, now.Add(time.Hour))
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestTokensAreUniquePerIssue(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	now := time.Now()

	a, err := issuer.Issue("u", "s", now, now.Add(time.Hour))
	require.NoError(t, err)
	b, err := issuer.Issue("u", "s", now, now.Add(time.Hour))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, HashToken(a), HashToken(b))
}

func TestTokenParseIgnoresExpiry(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	past := time.Now().Add(-48 * time.Hour)

	token, err := issuer.Issue("u", "s", past, past.Add(time.Hour))
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.NoError(t, err)
}

func TestTokenParseRejects(t *testing.T) {
	now := time.Now()
	token, err := NewTokenIssuer("right").Issue("u", "s", now, now.Add(time.Hour))
	require.NoError(t, err)

	_, err = NewTokenIssuer("wrong").Parse(token)
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = NewTokenIssuer("right").Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = NewTokenIssuer("right").Parse("")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestHashTokenStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.Len(t, HashToken("abc"), 32)
}
