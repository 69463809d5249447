package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitlessHeadersAt(t *testing.T) {
	auth := &HMACAuth{Key: "key-123", Secret: "secret-456"}

	headers := auth.LimitlessHeadersAt("POST", "/orders", `{"size":"4.98"}`, 1717243200000)

	assert.Equal(t, "key-123", headers["X-API-Key"])
	assert.Equal(t, "1717243200000", headers["X-Timestamp"])

	// Recompute the signature independently.
	mac := hmac.New(sha256.New, []byte("secret-456"))
	mac.Write([]byte(`1717243200000POST/orders{"size":"4.98"}`))
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), headers["X-Signature"])
}

func TestLimitlessHeadersDeterministic(t *testing.T) {
	auth := &HMACAuth{Key: "k", Secret: "s"}

	h1 := auth.LimitlessHeadersAt("GET", "/markets", "", 1000)
	h2 := auth.LimitlessHeadersAt("GET", "/markets", "", 1000)
	assert.Equal(t, h1, h2)

	h3 := auth.LimitlessHeadersAt("GET", "/markets", "", 1001)
	assert.NotEqual(t, h1["X-Signature"], h3["X-Signature"], "timestamp is part of the signed message")
}

func TestL2HeadersAt(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString([]byte("raw-secret"))
	auth := &HMACAuth{Key: "key-123", Secret: secret, Passphrase: "pass"}

	headers := auth.L2HeadersAt("0xabc", "POST", "/order", `{"owner":"0xabc"}`, 1717243200)

	assert.Equal(t, "0xabc", headers["POLY_ADDRESS"])
	assert.Equal(t, "key-123", headers["POLY_API_KEY"])
	assert.Equal(t, "1717243200", headers["POLY_TIMESTAMP"])
	assert.Equal(t, "pass", headers["POLY_PASSPHRASE"])

	// The secret is base64-decoded before keying the HMAC.
	mac := hmac.New(sha256.New, []byte("raw-secret"))
	mac.Write([]byte(`1717243200POST/order{"owner":"0xabc"}`))
	assert.Equal(t, base64.StdEncoding.EncodeToString(mac.Sum(nil)), headers["POLY_SIGNATURE"])
}

func TestL2HeadersInvalidBase64Secret(t *testing.T) {
	auth := &HMACAuth{Key: "k", Secret: "not-base64!!!", Passphrase: "p"}

	headers := auth.L2HeadersAt("0xabc", "GET", "/book", "", 1000)
	require.NotEmpty(t, headers["POLY_SIGNATURE"], "an undecodable secret still yields a signature")
}

func TestHMACAuthStringRedacts(t *testing.T) {
	auth := &HMACAuth{Key: "key-1234567", Secret: "secret-7654321"}

	s := auth.String()
	assert.NotContains(t, s, "1234567")
	assert.NotContains(t, s, "7654321")
	assert.Contains(t, s, "key-****")
}
