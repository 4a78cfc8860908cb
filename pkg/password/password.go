package password

import "golang.org/x/crypto/bcrypt"

// MaxBytes longitud máxima que bcrypt tiene en cuenta.
const MaxBytes = 72

// ErrPasswordTooLong bcrypt solo considera los primeros 72 bytes; rechazamos en lugar de truncar.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// Hasher hashea y verifica contraseñas en texto plano.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// BcryptHasher implementa Hasher con bcrypt (salt embebido en el hash).
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher construye el hasher. Un cost fuera de rango cae a bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash genera el hash bcrypt de plain.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify devuelve true solo si plain corresponde a hash. Un hash malformado da false, nunca error.
// Más de MaxBytes nunca coincide: bcrypt ignoraría el sobrante.
func (h *BcryptHasher) Verify(plain, hash string) bool {
	if len(plain) > MaxBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
