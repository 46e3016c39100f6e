package hash

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest. bcrypt generates a fresh
// salt on every call, so the same password never hashes to the same value.
func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
