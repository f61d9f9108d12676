package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/crpix-studio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// CookieName carries the signed admin session.
	CookieName = "admin_authenticated"
	issuer     = "crpix-admin"
)

// The studio shipped with a single shared admin login. It stays the
// default until ADMIN_USERNAME/ADMIN_PASSWORD are set; startup warns while
// it is in use.
const (
	DefaultUsername = "cr-pix-007"
	DefaultPassword = "Koushik07"
)

type Config struct {
	Username string
	Password string
	// Secret signs session tokens. When empty a random one is used and
	// sessions do not survive a restart.
	Secret string
	TTL    time.Duration
}

type Claims struct {
	jwt.RegisteredClaims
}

// Authenticator checks the admin credential pair and issues and verifies
// session tokens.
type Authenticator struct {
	username string
	password string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

func New(cfg Config) *Authenticator {
	a := &Authenticator{
		username: cfg.Username,
		password: cfg.Password,
		secret:   []byte(cfg.Secret),
		ttl:      cfg.TTL,
		now:      time.Now,
		logger:   log.With().Str("service", "auth").Logger(),
	}
	if a.username == "" || a.password == "" {
		a.username, a.password = DefaultUsername, DefaultPassword
	}
	if a.ttl <= 0 {
		a.ttl = 24 * time.Hour
	}
	if len(a.secret) == 0 {
		a.logger.Warn().Msg("JWT_SECRET not set, using a random secret; admin sessions end on restart")
		a.secret = []byte(uuid.NewString() + uuid.NewString())
	}
	if a.UsesDefaultCredentials() {
		a.logger.Warn().Msg("admin login uses the built-in credential pair; set ADMIN_USERNAME and ADMIN_PASSWORD")
	}
	return a
}

func (a *Authenticator) UsesDefaultCredentials() bool {
	return a.username == DefaultUsername && a.password == DefaultPassword
}

func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}

// Login checks the pair and returns a signed session token.
func (a *Authenticator) Login(username, password string) (string, time.Time, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	if !userOK || !passOK {
		return "", time.Time{}, errs.NewInvalidCredentialsError()
	}

	now := a.now()
	expires := now.Add(a.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, errs.NewInternalErrorWithCause("failed to sign session", err)
	}
	return signed, expires, nil
}

// Verify reports whether token is a live session issued by this server.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, errs.NewMissingTokenError()
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, errs.NewTokenExpiredError()
	default:
		return nil, errs.NewInvalidTokenError().WithCause(err)
	}
}
