package auth

import "golang.org/x/crypto/bcrypt"

// PINHasher defines behavior for hashing and comparing staff PINs.
type PINHasher interface {
	Hash(pin string) (string, error)
	Compare(hash, pin string) error
}

// BcryptPINHasher is a PINHasher implementation using bcrypt.
type BcryptPINHasher struct {
	cost int
}

// NewBcryptPINHasher creates a new BcryptPINHasher with default cost.
func NewBcryptPINHasher() *BcryptPINHasher {
	return &BcryptPINHasher{
		cost: bcrypt.DefaultCost,
	}
}

// NewBcryptPINHasherWithCost allows you to specify a custom bcrypt cost.
func NewBcryptPINHasherWithCost(cost int) *BcryptPINHasher {
	return &BcryptPINHasher{
		cost: cost,
	}
}

func (h *BcryptPINHasher) Hash(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Compare returns nil when pin matches hash.
func (h *BcryptPINHasher) Compare(hash, pin string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
}
