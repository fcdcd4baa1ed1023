package transliterate

// RomanizeAbugida renders Brahmic-script text in a single left-to-right pass.
//
// A consonant is written with its inherent "a". A following matra replaces
// that "a", and a virama drops it. Independent vowels are written as-is, ASCII
// passes through and anything else is skipped.
func RomanizeAbugida(t *AbugidaTable, text string) (string, bool) {
	if t == nil {
		return "", false
	}

	out := make([]byte, 0, len(text))
	// inherent is true while the last byte of out is a consonant's implicit "a".
	inherent := false

	dropInherent := func() {
		if inherent {
			out = out[:len(out)-1]
			inherent = false
		}
	}

	for _, r := range text {
		if sound, ok := t.Consonants[r]; ok {
			out = append(out, sound...)
			out = append(out, 'a')
			inherent = true
			continue
		}

		if sound, ok := t.Vowels[r]; ok {
			out = append(out, sound...)
			inherent = false
			continue
		}

		if sound, ok := t.Marks[r]; ok {
			dropInherent()
			out = append(out, sound...)
			continue
		}

		if r == t.Killer {
			dropInherent()
			continue
		}

		if sound, ok := t.Signs[r]; ok {
			// A nukta maps to "" and must keep the consonant's vowel open.
			if sound != "" {
				out = append(out, sound...)
				inherent = false
			}
			continue
		}

		if isASCII(r) {
			out = append(out, byte(r))
			inherent = false
		}
	}

	return finish(string(out))
}
