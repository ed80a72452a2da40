package security

import "golang.org/x/crypto/bcrypt"

// Passwords are stored as bcrypt hashes. The original system compared
// plaintext; that is a defect we do not carry over.

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored hash.
// bcrypt's comparison is constant-time over the derived key.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
