package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/varadpoddar/blog-services/internal/config"
	"github.com/varadpoddar/blog-services/internal/models"
)

// ErrInvalidToken is the only error Parse returns: bad signature, wrong
// algorithm, expiry and malformed input are not distinguished.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID decodes the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

type Token interface {
	Issue(user *models.User) (string, error)
	Parse(tokenString string) (*Claims, error)
}

type JWT struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*JWT)

// WithClock replaces time.Now for both issuing and validation.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

func NewJWT(cfg config.JWTConfig, opts ...Option) (*JWT, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret not defined")
	}

	var method jwt.SigningMethod
	switch cfg.Algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported jwt algorithm %q", cfg.Algorithm)
	}

	if cfg.TTL() <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive, got %s", cfg.TTL())
	}

	j := &JWT{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    cfg.TTL(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

func (j *JWT) Issue(user *models.User) (string, error) {
	now := j.now()
	claims := Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			ID:        uuid.NewString(),
		},
	}

	tokenString, err := jwt.NewWithClaims(j.method, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

func (j *JWT) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
