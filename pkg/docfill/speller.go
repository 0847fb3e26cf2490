package docfill

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	ntw "moul.io/number-to-words"
)

// NumberSpeller spells a non-negative integer as lower-case cardinal words.
type NumberSpeller interface {
	Spell(n int64) string
}

// SpellerFunc adapts a function to NumberSpeller.
type SpellerFunc func(n int64) string

// Spell calls f(n).
func (f SpellerFunc) Spell(n int64) string {
	return f(n)
}

// SpellerFor returns the speller for a language code such as "ru", "en-US" or "fr".
func SpellerFor(lang string) (NumberSpeller, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, NewConfigurationError("language", fmt.Sprintf("invalid language %q", lang), err)
	}
	base, _ := tag.Base()

	switch base.String() {
	case "ru":
		return SpellerFunc(spellRussian), nil
	case "en":
		return SpellerFunc(func(n int64) string { return ntw.IntegerToEnUs(int(n)) }), nil
	case "fr":
		return SpellerFunc(func(n int64) string { return ntw.IntegerToFrFr(int(n)) }), nil
	}
	return nil, NewConfigurationError("language", fmt.Sprintf("no number speller for %q", lang), nil)
}

var (
	ruUnits    = [...]string{"", "один", "два", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	ruUnitsFem = [...]string{"", "одна", "две", "три", "четыре", "пять", "шесть", "семь", "восемь", "девять"}
	ruTeens    = [...]string{"десять", "одиннадцать", "двенадцать", "тринадцать", "четырнадцать",
		"пятнадцать", "шестнадцать", "семнадцать", "восемнадцать", "девятнадцать"}
	ruTens = [...]string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят",
		"шестьдесят", "семьдесят", "восемьдесят", "девяносто"}
	ruHundreds = [...]string{"", "сто", "двести", "триста", "четыреста", "пятьсот",
		"шестьсот", "семьсот", "восемьсот", "девятьсот"}

	// ruScales holds the three plural forms of each power of a thousand.
	ruScales = [...][3]string{
		{"", "", ""},
		{"тысяча", "тысячи", "тысяч"},
		{"миллион", "миллиона", "миллионов"},
		{"миллиард", "миллиарда", "миллиардов"},
		{"триллион", "триллиона", "триллионов"},
		{"квадриллион", "квадриллиона", "квадриллионов"},
		{"квинтиллион", "квинтиллиона", "квинтиллионов"},
	}
)

// spellRussian spells n in the masculine nominative. Thousands are feminine
// ("одна тысяча", "две тысячи").
func spellRussian(n int64) string {
	if n == 0 {
		return "ноль"
	}

	var groups []int64
	for v := n; v > 0; v /= 1000 {
		groups = append(groups, v%1000)
	}

	var words []string
	for scale := len(groups) - 1; scale >= 0; scale-- {
		g := groups[scale]
		if g == 0 {
			continue
		}
		words = append(words, spellRussianTriple(g, scale == 1)...)
		if scale > 0 {
			words = append(words, ruScales[scale][PluralIndex(g)])
		}
	}
	return strings.Join(words, " ")
}

func spellRussianTriple(n int64, feminine bool) []string {
	var words []string
	if h := n / 100; h > 0 {
		words = append(words, ruHundreds[h])
	}
	rest := n % 100
	switch {
	case rest >= 10 && rest < 20:
		words = append(words, ruTeens[rest-10])
	default:
		if t := rest / 10; t > 0 {
			words = append(words, ruTens[t])
		}
		if u := rest % 10; u > 0 {
			if feminine {
				words = append(words, ruUnitsFem[u])
			} else {
				words = append(words, ruUnits[u])
			}
		}
	}
	return words
}
