package transliterate

// Telugu (U+0C00 block).

var teluguConsonants = map[rune]string{
	'క': "k", 'ఖ': "kh", 'గ': "g", 'ఘ': "gh", 'ఙ': "ng", 'చ': "ch",
	'ఛ': "chh", 'జ': "j", 'ఝ': "jh", 'ఞ': "ny", 'ట': "t", 'ఠ': "th",
	'డ': "d", 'ఢ': "dh", 'ణ': "n", 'త': "t", 'థ': "th", 'ద': "d",
	'ధ': "dh", 'న': "n", 'ప': "p", 'ఫ': "ph", 'బ': "b", 'భ': "bh",
	'మ': "m", 'య': "y", 'ర': "r", 'ఱ': "r", 'ల': "l", 'ళ': "l",
	'వ': "v", 'శ': "sh", 'ష': "sh", 'స': "s", 'హ': "h",
}

var teluguVowels = map[rune]string{
	'అ': "a", 'ఆ': "aa", 'ఇ': "i", 'ఈ': "ee", 'ఉ': "u", 'ఊ': "oo",
	'ఋ': "ru", 'ౠ': "ruu", 'ఌ': "lu", 'ఎ': "e", 'ఏ': "e", 'ఐ': "ai",
	'ఒ': "o", 'ఓ': "o", 'ఔ': "au",
}

var teluguMarks = map[rune]string{
	'ా': "aa", 'ి': "i", 'ీ': "ee", 'ు': "u", 'ూ': "oo", 'ృ': "ru",
	'ౄ': "ruu", 'ె': "e", 'ే': "e", 'ై': "ai", 'ొ': "o", 'ో': "o",
	'ౌ': "au",
}

var teluguSigns = map[rune]string{
	'ఁ': "n", 'ం': "m", 'ః': "h", '౦': "0", '౧': "1", '౨': "2",
	'౩': "3", '౪': "4", '౫': "5", '౬': "6", '౭': "7", '౮': "8",
	'౯': "9",
}

// teluguVirama is the halant that suppresses the inherent vowel.
const teluguVirama = '్'
