package chaos

import (
	"errors"
	"math/rand"
	"time"
)

const (
	errorChance = 0.001 // 0.1% error chance
)

// Inject passes real errors through and, with a small probability,
// replaces a nil error with a synthetic one. Demo services use it to
// exercise their failure paths.
func Inject(err error) error {
	if err != nil {
		return err
	}
	rand.Seed(time.Now().UnixNano())
	if rand.Float32() > errorChance {
		return nil
	}
	return errors.New("chaos error")
}
