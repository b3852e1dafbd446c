package order

import (
	"crypto/rand"
	"math/big"
)

const (
	numberPrefix   = "ORD-"
	numberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	numberLength   = 8
)

// GenerateOrderNumber produces the human-readable order identifier,
// e.g. ORD-7K2MQ9XA. Uniqueness is probabilistic; callers retry on
// collision.
func GenerateOrderNumber() string {
	buf := make([]byte, numberLength)
	max := big.NewInt(int64(len(numberAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// fallback: deterministic but still well-formed
			buf[i] = numberAlphabet[i%len(numberAlphabet)]
			continue
		}
		buf[i] = numberAlphabet[n.Int64()]
	}
	return numberPrefix + string(buf)
}
