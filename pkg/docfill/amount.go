package docfill

import (
	"unicode"
	"unicode/utf8"
)

// PluralIndex selects one of three plural forms for n using the Slavic rule:
// 0 for 1, 21, 101, ...; 1 for 2-4, 22-24, ...; 2 for everything else,
// including 11-14.
func PluralIndex(n int64) int {
	if n < 0 {
		n = -n
	}
	mod10, mod100 := n%10, n%100
	switch {
	case mod10 == 1 && mod100 != 11:
		return 0
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 10 || mod100 >= 20):
		return 1
	default:
		return 2
	}
}

// AmountFormatter writes amounts as words followed by the currency noun.
type AmountFormatter struct {
	speller NumberSpeller
}

// NewAmountFormatter creates a formatter using the given speller.
func NewAmountFormatter(speller NumberSpeller) *AmountFormatter {
	return &AmountFormatter{speller: speller}
}

// NewAmountFormatterForLanguage creates a formatter for a language code.
func NewAmountFormatterForLanguage(lang string) (*AmountFormatter, error) {
	speller, err := SpellerFor(lang)
	if err != nil {
		return nil, err
	}
	return NewAmountFormatter(speller), nil
}

// Format returns the spelled-out amount, a space and the currency noun form
// matching the amount, e.g. "двадцать два рубля". pluralForms must hold the
// singular, the 2-4 plural and the general plural, in that order.
func (f *AmountFormatter) Format(amount int64, pluralForms []string) (string, error) {
	if len(pluralForms) != 3 {
		return "", &InvalidPluralFormsError{Got: len(pluralForms)}
	}
	if amount < 0 {
		return "", NewValidationError("amount", "must not be negative")
	}
	return f.speller.Spell(amount) + " " + pluralForms[PluralIndex(amount)], nil
}

// Capitalize upper-cases the first letter of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
