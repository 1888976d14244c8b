package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// tokenHeader is fixed for every token this service mints.
type tokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

type tokenPayload struct {
	Sub string `json:"sub"`
	Exp int64  `json:"exp"`
}

// TokenIssuer mints and verifies stateless bearer tokens of the form
// "<header>.<payload>.<signature>", each segment base64url without padding,
// signed with HMAC-SHA256 over "<header>.<payload>". Verification needs no
// server-side state; rotating the secret invalidates all outstanding tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a token for the subject and returns it with its expiry
// as epoch seconds.
func (t *TokenIssuer) Issue(subject string) (string, int64) {
	header, _ := json.Marshal(tokenHeader{Alg: "HS256", Typ: "JWT"})
	exp := t.now().Add(t.ttl).Unix()
	payload, _ := json.Marshal(tokenPayload{Sub: subject, Exp: exp})

	signingInput := base64.RawURLEncoding.EncodeToString(header) + "." +
		base64.RawURLEncoding.EncodeToString(payload)
	return signingInput + "." + t.sign(signingInput), exp
}

// Verify checks the token's shape, signature, and expiry, in that order,
// and returns the subject. The signature comparison is constant time.
func (t *TokenIssuer) Verify(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", ErrInvalidFormat
	}
	signingInput := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(t.sign(signingInput)), []byte(parts[2])) {
		return "", ErrBadSignature
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", ErrMalformedPayload
	}
	var payload tokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", ErrMalformedPayload
	}
	if payload.Exp < t.now().Unix() {
		return "", ErrTokenExpired
	}
	return payload.Sub, nil
}

func (t *TokenIssuer) sign(signingInput string) string {
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(signingInput))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
