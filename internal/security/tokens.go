package security

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, expired, or carries
// a bad signature. Verification never reports the underlying cause.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL is the bearer token lifetime when no TTL is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

// BearerClaims holds JWT claims for the bearer token.
type BearerClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenProvider issues and validates bearer JWTs. It signs with HS256 using a
// shared secret, or with RS256/ES256 when constructed from a key pair.
// Tokens are stateless and cannot be revoked before exp elapses.
type TokenProvider struct {
	secret     []byte
	privateKey crypto.Signer
	publicKey  crypto.PublicKey
	issuer     string
	ttl        time.Duration
}

// NewTokenProvider returns a TokenProvider that signs with HS256 using secret.
func NewTokenProvider(secret, issuer string, ttl time.Duration) *TokenProvider {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenProvider{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// NewTokenProviderFromKeys returns a TokenProvider that signs with the given
// private key (RS256 or ES256) and validates with the public key.
func NewTokenProviderFromKeys(privateKey crypto.Signer, publicKey crypto.PublicKey, issuer string, ttl time.Duration) *TokenProvider {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenProvider{privateKey: privateKey, publicKey: publicKey, issuer: issuer, ttl: ttl}
}

// Issue signs a bearer token for userID with the provider's default TTL.
func (p *TokenProvider) Issue(userID string) (token string, expiresAt time.Time, err error) {
	return p.IssueWithTTL(userID, p.ttl)
}

// IssueWithTTL signs a bearer token for userID expiring after ttl.
func (p *TokenProvider) IssueWithTTL(userID string, ttl time.Duration) (token string, expiresAt time.Time, err error) {
	if ttl <= 0 {
		ttl = p.ttl
	}
	now := time.Now().UTC()
	expiresAt = now.Add(ttl)
	claims := BearerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}
	var t *jwt.Token
	switch {
	case p.privateKey != nil:
		method, err := p.signingMethod()
		if err != nil {
			return "", time.Time{}, err
		}
		t = jwt.NewWithClaims(method, claims)
		token, err = t.SignedString(p.privateKey)
		return token, expiresAt, err
	default:
		t = jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		token, err = t.SignedString(p.secret)
		return token, expiresAt, err
	}
}

func (p *TokenProvider) signingMethod() (jwt.SigningMethod, error) {
	switch p.privateKey.Public().(type) {
	case *rsa.PublicKey:
		return jwt.SigningMethodRS256, nil
	case *ecdsa.PublicKey:
		return jwt.SigningMethodES256, nil
	default:
		return nil, ErrInvalidToken
	}
}

// Validate parses and validates the token (signature, exp, alg) and returns
// the user identifier it asserts. It fails closed: any parse error, signature
// mismatch, algorithm mismatch, or elapsed exp yields ErrInvalidToken.
func (p *TokenProvider) Validate(tokenString string) (userID string, err error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if p.privateKey != nil {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				return p.publicKey, nil
			}
			if _, ok := token.Method.(*jwt.SigningMethodECDSA); ok {
				return p.publicKey, nil
			}
			return nil, ErrInvalidToken
		}
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	}
	token, err := jwt.ParseWithClaims(tokenString, &BearerClaims{}, keyFunc)
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*BearerClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if p.issuer != "" && claims.Issuer != p.issuer {
		return "", ErrInvalidToken
	}
	userID = claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
