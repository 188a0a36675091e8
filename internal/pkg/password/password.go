package password

import (
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost trades login latency for brute-force resistance.
const DefaultCost = 12

var cost atomic.Int32

func init() {
	cost.Store(DefaultCost)
}

// SetCost overrides the bcrypt cost factor for subsequent hashes.
// Values outside bcrypt's supported range are clamped. Existing hashes
// keep verifying at whatever cost they were created with.
func SetCost(c int) {
	if c < bcrypt.MinCost {
		c = bcrypt.MinCost
	}
	if c > bcrypt.MaxCost {
		c = bcrypt.MaxCost
	}
	cost.Store(int32(c))
}

// Hash derives a bcrypt hash of plain at the configured cost.
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), int(cost.Load()))
	return string(bytes), err
}

// Verify reports whether plain matches the bcrypt hash.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
