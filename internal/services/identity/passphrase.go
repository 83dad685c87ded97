package identity

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// MinPassphraseLength is the shortest passphrase GenerateIdentity accepts.
const MinPassphraseLength = 12

// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
var ErrWeakPassphrase = errors.New("passphrase is too weak")

// passphraseClasses are the character classes a passphrase must mix.
var passphraseClasses = []struct {
	name string
	in   func(rune) bool
}{
	{"upper case", unicode.IsUpper},
	{"lower case", unicode.IsLower},
	{"digit", unicode.IsDigit},
	{"symbol", func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }},
}

// CheckPassphrase reports what the passphrase lacks, wrapped in
// ErrWeakPassphrase, or nil when it passes.
func CheckPassphrase(passphrase string) error {
	var missing []string
	if n := len([]rune(passphrase)); n < MinPassphraseLength {
		missing = append(missing, fmt.Sprintf("%d more characters", MinPassphraseLength-n))
	}
	for _, c := range passphraseClasses {
		if !strings.ContainsFunc(passphrase, c.in) {
			missing = append(missing, c.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: needs %s", ErrWeakPassphrase, strings.Join(missing, ", "))
}
