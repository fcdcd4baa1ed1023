package linguachain

import (
	"strings"

	"github.com/ZaguanLabs/linguachain/transliterate"
)

// LanguageNames maps base language codes to human-readable names. It is used
// where a provider wants a language name rather than a code.
var LanguageNames = map[string]string{
	"ar": "Arabic",
	"bn": "Bengali",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fa": "Persian",
	"fr": "French",
	"gu": "Gujarati",
	"he": "Hebrew",
	"hi": "Hindi",
	"id": "Indonesian",
	"it": "Italian",
	"ja": "Japanese",
	"kn": "Kannada",
	"ko": "Korean",
	"ml": "Malayalam",
	"mr": "Marathi",
	"nl": "Dutch",
	"pa": "Punjabi",
	"pl": "Polish",
	"pt": "Portuguese",
	"ru": "Russian",
	"ta": "Tamil",
	"te": "Telugu",
	"th": "Thai",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"ur": "Urdu",
	"vi": "Vietnamese",
	"zh": "Chinese",
}

// RTLLanguages contains language codes that use right-to-left text direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}

// GetLanguageName returns the human-readable name for a language code.
// Regional variants resolve through their base code. Falls back to the code
// itself if not found.
func GetLanguageName(langCode string) string {
	if name, ok := LanguageNames[strings.ToLower(langCode)]; ok {
		return name
	}
	if name, ok := LanguageNames[transliterate.BaseLanguage(langCode)]; ok {
		return name
	}
	return langCode
}

// GetDirection returns "rtl" for right-to-left languages, "ltr" otherwise.
func GetDirection(langCode string) string {
	if RTLLanguages[transliterate.BaseLanguage(langCode)] {
		return "rtl"
	}
	return "ltr"
}

// IsRTL returns true if the language uses right-to-left text direction.
func IsRTL(langCode string) bool {
	return GetDirection(langCode) == "rtl"
}

// ToHTMLLang converts a locale code to HTML lang attribute format (e.g., "te_IN" → "te-IN").
func ToHTMLLang(langCode string) string {
	return strings.ReplaceAll(strings.TrimSpace(langCode), "_", "-")
}
