package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrTooLong is returned for plaintexts beyond bcrypt's 72-byte input limit.
var ErrTooLong = errors.New("password exceeds 72 bytes")

type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns a salted "$2a$" hash; the salt is random per call.
func (b *Bcrypt) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrTooLong
		}
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hash. A malformed hash is a mismatch.
func (b *Bcrypt) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
