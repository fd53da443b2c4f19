package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/sidelines/sidelines/internal/clock"
)

var issuedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec([]byte("secret"), clock.NewManual(issuedAt))

	token, err := codec.Issue(42)
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, 42, claims.UserID)
	require.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
	require.Equal(t, int64(3600), claims.ExpiresAt.Unix()-claims.IssuedAt.Unix())
}

func TestTokenCodec_Expiry(t *testing.T) {
	clk := clock.NewManual(issuedAt)
	codec := NewTokenCodec([]byte("secret"), clk)
	token, err := codec.Issue(1)
	require.NoError(t, err)

	clk.Advance(3600*time.Second - time.Second)
	_, err = codec.Verify(token)
	require.NoError(t, err)

	clk.Advance(2 * time.Second)
	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenCodec_DifferentSecret(t *testing.T) {
	clk := clock.NewManual(issuedAt)
	token, err := NewTokenCodec([]byte("other-secret"), clk).Issue(1)
	require.NoError(t, err)

	_, err = NewTokenCodec([]byte("secret"), clk).Verify(token)
	require.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenCodec_MissingUserID(t *testing.T) {
	clk := clock.NewManual(issuedAt)
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": issuedAt.Unix(),
		"exp": issuedAt.Add(time.Hour).Unix(),
	})
	token, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenCodec([]byte("secret"), clk).Verify(token)
	require.ErrorIs(t, err, ErrTokenClaims)
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	clk := clock.NewManual(issuedAt)
	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewTokenCodec([]byte("secret"), clk).Verify(none)
	require.Error(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = NewTokenCodec([]byte("secret"), clk).Verify(hs512)
	require.Error(t, err)
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec([]byte("secret"), clock.NewManual(issuedAt))

	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := codec.Verify(token)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrTokenMalformed) || errors.Is(err, ErrTokenSignature), "token %q: %v", token, err)
	}
}
