package transliterate

// Devanagari (U+0900 block) as used for Hindi.

// Nukta forms (U+0958..U+095F) map to their Perso-Arabic sounds.
var devanagariConsonants = map[rune]string{
	'क': "k", 'ख': "kh", 'ग': "g", 'घ': "gh", 'ङ': "ng", 'च': "ch",
	'छ': "chh", 'ज': "j", 'झ': "jh", 'ञ': "ny", 'ट': "t", 'ठ': "th",
	'ड': "d", 'ढ': "dh", 'ण': "n", 'त': "t", 'थ': "th", 'द': "d",
	'ध': "dh", 'न': "n", 'प': "p", 'फ': "ph", 'ब': "b", 'भ': "bh",
	'म': "m", 'य': "y", 'र': "r", 'ल': "l", 'ळ': "l", 'व': "v",
	'श': "sh", 'ष': "sh", 'स': "s", 'ह': "h", 'क़': "q", 'ख़': "kh",
	'ग़': "gh", 'ज़': "z", 'ड़': "r", 'ढ़': "rh", 'फ़': "f", 'य़': "y",
}

var devanagariVowels = map[rune]string{
	'अ': "a", 'आ': "aa", 'इ': "i", 'ई': "ee", 'उ': "u", 'ऊ': "oo",
	'ऋ': "ri", 'ए': "e", 'ऐ': "ai", 'ऑ': "o", 'ओ': "o", 'औ': "au",
}

var devanagariMarks = map[rune]string{
	'ा': "aa", 'ि': "i", 'ी': "ee", 'ु': "u", 'ू': "oo", 'ृ': "ri",
	'े': "e", 'ै': "ai", 'ॉ': "o", 'ो': "o", 'ौ': "au",
}

var devanagariSigns = map[rune]string{
	'ँ': "n", 'ं': "n", 'ः': "h", '़': "", '।': ".", '॥': ".",
	'०': "0", '१': "1", '२': "2", '३': "3", '४': "4", '५': "5",
	'६': "6", '७': "7", '८': "8", '९': "9",
}

const devanagariVirama = '्'
