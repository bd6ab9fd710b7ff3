package token

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/goACL/rolebitmap"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid is returned for any assertion that fails signature,
// structure, or time validation.
var ErrTokenInvalid = errors.New("invalid role assertion token")

// Config configures a [Manager]. Key is the HS256 signing secret and must
// be set; TTL bounds assertion lifetime.
type Config struct {
	TTL      time.Duration
	Key      []byte
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// Manager signs and verifies role assertions.
type Manager struct {
	config Config
}

// AssertionClaims is the payload of a role assertion. Scope is the 32-byte
// scope key in hex; Roles is the 32-byte big-endian bitmap encoding.
type AssertionClaims struct {
	Scope   string `json:"scp"`
	Account string `json:"act"`
	Roles   []byte `json:"rol"`
	jwt.RegisteredClaims
}

// Bitmap decodes the asserted role bitmap.
func (c *AssertionClaims) Bitmap() (rolebitmap.Bitmap, error) {
	return rolebitmap.Decode(c.Roles)
}

// ScopeKey decodes the asserted scope.
func (c *AssertionClaims) ScopeKey() ([32]byte, error) {
	var out [32]byte
	raw, err := hex.DecodeString(c.Scope)
	if err != nil || len(raw) != 32 {
		return out, fmt.Errorf("%w: bad scope claim", ErrTokenInvalid)
	}
	copy(out[:], raw)
	return out, nil
}

// NewManager validates the configuration and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if len(cfg.Key) == 0 {
		return nil, errors.New("hs256 requires signing key")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	return &Manager{config: cfg}, nil
}

// Issue signs an assertion that account held roles at scope at issue time.
func (m *Manager) Issue(scope [32]byte, account uuid.UUID, roles rolebitmap.Bitmap) (string, error) {
	now := time.Now()
	claims := AssertionClaims{
		Scope:   hex.EncodeToString(scope[:]),
		Account: account.String(),
		Roles:   rolebitmap.Encode(roles),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.config.Issuer,
		},
	}
	if m.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{m.config.Audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.config.Key)
}

// Verify parses and validates an assertion. The signing method is pinned
// to HS256; expiry and issued-at are required.
func (m *Manager) Verify(tokenString string) (*AssertionClaims, error) {
	claims := &AssertionClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(m.config.Leeway),
	}
	if m.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.config.Issuer))
	}
	if m.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(m.config.Audience))
	}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return m.config.Key, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if _, err := claims.ScopeKey(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(claims.Account); err != nil {
		return nil, fmt.Errorf("%w: bad account claim", ErrTokenInvalid)
	}
	if _, err := claims.Bitmap(); err != nil {
		return nil, fmt.Errorf("%w: bad roles claim", ErrTokenInvalid)
	}

	return claims, nil
}
