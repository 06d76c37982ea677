package student

import (
	"fmt"
	"math/rand"
	"time"
)

const letterPrefix = "TIH-ADMIT"

var (
	nowFunc  = time.Now  // mockable
	randFunc = rand.Intn // mockable
)

// newLetterID generates a human-readable admission-letter identifier:
// TIH-ADMIT-<year>-<4 digit suffix>. The suffix is pseudo-random and not
// checked for collisions; acceptable at this scale.
func newLetterID() string {
	return fmt.Sprintf("%s-%d-%04d", letterPrefix, nowFunc().Year(), randFunc(9000)+1000)
}
