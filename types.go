package linguachain

// Tier is the rank of a provider within the fallback chain.
type Tier int

const (
	// TierPrimary is the unauthenticated web endpoint tried first.
	TierPrimary Tier = iota + 1
	// TierSecondary covers self-hosted style POST JSON services.
	TierSecondary
	// TierTertiary is the free lookup/memory service tried after the secondaries.
	TierTertiary
	// TierFallback is the optional authenticated last resort.
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	case TierFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Request is one translation call. Both fields must be non-empty after
// trimming.
type Request struct {
	Text       string
	TargetLang string
}

// Result is a successful translation.
type Result struct {
	TranslatedText string  `json:"translatedText"`
	Pronunciation  *string `json:"pronunciation,omitempty"` // nil unless the target script is romanizable
	Provider       string  `json:"provider,omitempty"`      // name of the provider that answered
}

// TextNode represents a translatable unit of content.
type TextNode struct {
	ID       string            // Position-based identifier
	Text     string            // Original text content (trimmed)
	Hash     string            // SHA-256 hash of Text
	NodeType string            // Content type: "html_text"
	Metadata map[string]string // Additional info (parent tag, etc.)
}

// ProcessedContent is the result of translating structured content.
type ProcessedContent struct {
	Content         string // Translated content
	TranslatedCount int    // Number of unique texts translated
	FailedCount     int    // Number of unique texts left untranslated
	TotalNodes      int    // Total translatable nodes found
}

// IgnoredTags contains HTML tags whose content should not be translated.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}
