package student

import (
	"math/rand"
	"regexp"
	"testing"
	"time"
)

var letterIDRegex = regexp.MustCompile(`^TIH-ADMIT-\d{4}-\d{4}$`)

func TestNewLetterID(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2021, time.March, 14, 9, 0, 0, 0, time.UTC) }
	randFunc = func(n int) int { return 234 }
	defer func() {
		nowFunc = time.Now
		randFunc = rand.Intn
	}()

	if got, want := newLetterID(), "TIH-ADMIT-2021-1234"; got != want {
		t.Errorf("newLetterID() = %q; want %q", got, want)
	}

	// suffix bounds
	randFunc = func(n int) int { return 0 }
	if got, want := newLetterID(), "TIH-ADMIT-2021-1000"; got != want {
		t.Errorf("newLetterID() = %q; want %q", got, want)
	}
	randFunc = func(n int) int { return n - 1 }
	if got, want := newLetterID(), "TIH-ADMIT-2021-9999"; got != want {
		t.Errorf("newLetterID() = %q; want %q", got, want)
	}
}

func TestNewLetterIDFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		if id := newLetterID(); !letterIDRegex.MatchString(id) {
			t.Fatalf("newLetterID() = %q; want match for %s", id, letterIDRegex)
		}
	}
}
