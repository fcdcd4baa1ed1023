package transliterate

import (
	"strings"
	"unicode/utf8"
)

// RomanizeSyllabary renders kana-like text in a single left-to-right pass.
//
// A geminator followed by another character emits the first letter of that
// character's sound, then the character itself is handled normally. Digraphs
// take precedence over single characters. ASCII passes through and
// everything else (kanji, punctuation) is skipped.
func RomanizeSyllabary(t *SyllabaryTable, text string) (string, bool) {
	if t == nil {
		return "", false
	}

	runes := []rune(text)
	var sb strings.Builder
	sb.Grow(len(text))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		hasNext := i+1 < len(runes)

		if hasNext && strings.ContainsRune(t.Geminators, r) {
			if sound := t.Sounds[runes[i+1]]; sound != "" {
				first, _ := utf8.DecodeRuneInString(sound)
				sb.WriteRune(first)
			}
			continue
		}

		if hasNext {
			if sound, ok := t.Digraphs[string(runes[i:i+2])]; ok {
				sb.WriteString(sound)
				i++
				continue
			}
		}

		if sound, ok := t.Sounds[r]; ok {
			sb.WriteString(sound)
			continue
		}

		if isASCII(r) {
			sb.WriteRune(r)
		}
	}

	return finish(sb.String())
}
