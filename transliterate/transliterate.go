// Package transliterate renders abugida and syllabary scripts as Latin letters.
//
// The output is a heuristic approximation meant as a pronunciation hint for
// readers who cannot read the target script. It is not a standard
// romanization and makes no attempt at schwa deletion, pitch accent or
// similar phonology.
//
// Every function in this package is total: unmapped characters are skipped,
// plain ASCII passes through unchanged, and input with nothing to render
// reports false instead of returning a guess.
package transliterate

import (
	"strings"

	"golang.org/x/text/language"
)

// AbugidaTable is the mapping set for a Brahmic script.
type AbugidaTable struct {
	Consonants map[rune]string // consonant -> base sound without the inherent vowel
	Vowels     map[rune]string // independent vowel letters
	Marks      map[rune]string // dependent vowel signs (matras)
	Signs      map[rune]string // anusvara, visarga, digits; never touch the inherent vowel
	Killer     rune            // virama / halant
}

// SyllabaryTable is the mapping set for a mora-based script.
type SyllabaryTable struct {
	Sounds     map[rune]string
	Digraphs   map[string]string // two-character combinations, checked before Sounds
	Geminators string            // characters that double the next consonant
}

// Telugu, Devanagari and Kana are the built-in tables. They are shared and
// must be treated as read-only.
var (
	Telugu = &AbugidaTable{
		Consonants: teluguConsonants,
		Vowels:     teluguVowels,
		Marks:      teluguMarks,
		Signs:      teluguSigns,
		Killer:     teluguVirama,
	}

	Devanagari = &AbugidaTable{
		Consonants: devanagariConsonants,
		Vowels:     devanagariVowels,
		Marks:      devanagariMarks,
		Signs:      devanagariSigns,
		Killer:     devanagariVirama,
	}

	Kana = &SyllabaryTable{
		Sounds:     kanaSounds,
		Digraphs:   kanaDigraphs,
		Geminators: kanaGeminators,
	}
)

// romanizer renders text with one of the tables above.
type romanizer func(text string) (string, bool)

// schemes is the fixed code-to-algorithm table. Keys are base language codes.
var schemes = map[string]romanizer{
	"ja": func(text string) (string, bool) { return RomanizeSyllabary(Kana, text) },
	"hi": func(text string) (string, bool) { return RomanizeAbugida(Devanagari, text) },
	"te": func(text string) (string, bool) { return RomanizeAbugida(Telugu, text) },
}

// Romanize renders text in the script of lang as Latin letters.
// It reports false for unsupported languages and for text that produces no
// output.
func Romanize(text, lang string) (string, bool) {
	fn, ok := schemes[BaseLanguage(lang)]
	if !ok {
		return "", false
	}
	return fn(text)
}

// Supported reports whether lang (or its base language) has a romanization
// scheme.
func Supported(lang string) bool {
	_, ok := schemes[BaseLanguage(lang)]
	return ok
}

// BaseLanguage reduces a language code to its lowercase base subtag:
// "te-IN", "te_IN" and "TE" all become "te".
func BaseLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}

	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err == nil {
		if base, conf := tag.Base(); conf != language.No {
			return base.String()
		}
	}

	// Not a valid BCP 47 tag; fall back to the text before the first separator.
	lang = strings.ToLower(lang)
	if idx := strings.IndexAny(lang, "-_"); idx >= 0 {
		lang = lang[:idx]
	}
	return lang
}

func isASCII(r rune) bool {
	return r < 0x80
}

func finish(out string) (string, bool) {
	out = strings.TrimSpace(out)
	if out == "" {
		return "", false
	}
	return out, true
}
