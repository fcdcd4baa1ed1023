package processor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/linguachain"
	"golang.org/x/net/html"
)

// HTMLProcessor finds the translatable text nodes of an HTML document or
// fragment and writes translations back in place.
type HTMLProcessor struct {
	ignoredTags map[string]bool
}

// NewHTMLProcessor creates an HTML processor with the default ignored tags.
func NewHTMLProcessor() *HTMLProcessor {
	return &HTMLProcessor{
		ignoredTags: linguachain.IgnoredTags,
	}
}

// NewHTMLProcessorWithIgnoredTags creates an HTML processor skipping tags.
func NewHTMLProcessorWithIgnoredTags(tags []string) *HTMLProcessor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &HTMLProcessor{
		ignoredTags: ignored,
	}
}

// parsedHTML holds the document and every text node that may be rewritten.
type parsedHTML struct {
	doc      *goquery.Document
	targets  []*html.Node
	fragment bool
}

// Extract parses content and returns one TextNode per distinct text.
// Repeated texts share a node; all their occurrences are rewritten by Apply.
func (p *HTMLProcessor) Extract(content string) (interface{}, []TextNode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, nil, &linguachain.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	parsed := &parsedHTML{doc: doc, fragment: !isDocument(content)}
	var nodes []TextNode
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && p.skip(n) {
			return
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); translatable(text) {
				parsed.targets = append(parsed.targets, n)

				hash := linguachain.HashText(text)
				if !seen[hash] {
					seen[hash] = true
					node := TextNode{
						ID:       fmt.Sprintf("node-%d", len(nodes)),
						Text:     text,
						Hash:     hash,
						NodeType: "html_text",
						Metadata: map[string]string{},
					}
					if n.Parent != nil {
						node.Metadata["parent_tag"] = n.Parent.Data
					}
					nodes = append(nodes, node)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}

	return parsed, nodes, nil
}

// skip reports whether an element's subtree must be left alone.
func (p *HTMLProcessor) skip(n *html.Node) bool {
	if p.ignoredTags[strings.ToLower(n.Data)] {
		return true
	}
	for _, attr := range n.Attr {
		switch {
		case attr.Key == "data-no-translate":
			return true
		case attr.Key == "translate" && strings.EqualFold(strings.TrimSpace(attr.Val), "no"):
			return true
		}
	}
	return false
}

// translatable reports whether text contains at least one letter. Numbers,
// symbols and punctuation are not sent to providers.
func translatable(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Apply writes translations (keyed by node hash) into the parsed document.
// Texts without a translation keep their original content. Fragments are
// returned as fragments.
func (p *HTMLProcessor) Apply(parsed interface{}, nodes []TextNode, translations map[string]string) (string, error) {
	ph, ok := parsed.(*parsedHTML)
	if !ok {
		return "", &linguachain.ProcessorError{
			Message:     "invalid parsed content type",
			ContentType: "html",
		}
	}

	for _, n := range ph.targets {
		hash := linguachain.HashText(strings.TrimSpace(n.Data))
		if translated, ok := translations[hash]; ok {
			n.Data = preserveWhitespace(n.Data, translated)
		}
	}

	sel := ph.doc.Selection
	if ph.fragment {
		sel = ph.doc.Find("body")
	}

	out, err := sel.Html()
	if err != nil {
		return "", &linguachain.ProcessorError{
			Message:     "failed to serialize HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	return out, nil
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

// isDocument reports whether content is a full document rather than a
// fragment.
func isDocument(content string) bool {
	lower := strings.ToLower(content)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype")
}

// preserveWhitespace keeps the original leading and trailing whitespace.
func preserveWhitespace(original, translated string) string {
	trimmedLeft := strings.TrimLeft(original, " \t\n\r")
	leading := original[:len(original)-len(trimmedLeft)]
	trailing := trimmedLeft[len(strings.TrimRight(trimmedLeft, " \t\n\r")):]

	return leading + strings.TrimSpace(translated) + trailing
}

var _ ContentProcessor = (*HTMLProcessor)(nil)
