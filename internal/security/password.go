package security

import "golang.org/x/crypto/bcrypt"

// Secret is a plaintext password as submitted by a client. Hash is a bcrypt
// digest as stored. Keeping them as separate types stops a plaintext value
// from ever being written where a digest belongs.
type Secret string

type Hash string

// HashSecret derives a bcrypt digest from a plaintext secret.
func HashSecret(plain Secret) (Hash, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return Hash(digest), nil
}

// Verify compares the stored digest with a submitted plaintext secret.
func (h Hash) Verify(plain Secret) error {
	return bcrypt.CompareHashAndPassword([]byte(h), []byte(plain))
}
