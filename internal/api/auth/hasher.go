package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstracts one-way password hashing so services can be
// tested without paying the bcrypt cost.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher hashes passwords with bcrypt. The per-call salt and the cost
// factor are embedded in the output, so stored hashes stay verifiable when
// the cost is raised later.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// Check reports whether password matches hash. A malformed hash compares
// unequal rather than erroring out.
func (h *BcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
