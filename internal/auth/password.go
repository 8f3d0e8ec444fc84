package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher names accepted by NewHasher.
const (
	HashBcrypt = "bcrypt"
	HashSHA256 = "sha256"
)

// ErrPasswordMismatch is returned by Compare when the password does not match.
var ErrPasswordMismatch = errors.New("password mismatch")

// Hasher produces and checks one-way password digests.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(digest, plain string) error
}

// NewHasher returns the hasher for name; empty selects bcrypt.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case HashBcrypt, "":
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	case HashSHA256:
		return SHA256Hasher{}, nil
	default:
		return nil, fmt.Errorf("unsupported password hash %q", name)
	}
}

// BcryptHasher stores salted bcrypt digests.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h BcryptHasher) Compare(digest, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

// SHA256Hasher stores unsalted lowercase hex SHA-256 digests.
// Kept for databases populated by the earlier worker; prefer BcryptHasher.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plain string) (string, error) {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Compare(digest, plain string) error {
	got, _ := h.Hash(plain)
	if subtle.ConstantTimeCompare([]byte(got), []byte(digest)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
