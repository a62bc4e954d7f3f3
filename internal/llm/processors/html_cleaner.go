package processors

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLCleaner normalizes job descriptions and résumé text that arrive as
// HTML into plain text suitable for prompting
type HTMLCleaner struct {
	// Tags removed before text extraction
	removeTags []string
}

var htmlTagRegex = regexp.MustCompile(`(?i)<\s*(html|body|div|p|br|span|ul|ol|li|h[1-6]|table|section|article)[\s>/]`)

// NewHTMLCleaner creates a new HTML cleaner instance
func NewHTMLCleaner() *HTMLCleaner {
	return &HTMLCleaner{
		removeTags: []string{
			"script", "style", "noscript", "iframe", "object", "embed",
			"form", "input", "button", "select", "textarea",
			"nav", "header", "footer", "aside", "menu",
			"svg", "path", "g", "defs", "use", "symbol",
			"meta", "link", "title", "base", "img",
		},
	}
}

// LooksLikeHTML reports whether the input appears to be HTML markup
// rather than plain text
func (hc *HTMLCleaner) LooksLikeHTML(input string) bool {
	return htmlTagRegex.MatchString(input)
}

// ExtractText converts the input to plain text. Plain text passes through
// with whitespace normalization only; HTML is parsed and stripped of
// non-content elements first.
func (hc *HTMLCleaner) ExtractText(input string) (string, error) {
	if !hc.LooksLikeHTML(input) {
		return hc.normalizeText(input), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return "", err
	}

	for _, tag := range hc.removeTags {
		doc.Find(tag).Remove()
	}

	// Prefer the main content area when one exists
	var text string
	for _, selector := range []string{"main", "[role='main']", "article"} {
		if sel := doc.Find(selector); sel.Length() > 0 {
			if t := strings.TrimSpace(sel.Text()); len(t) > 50 {
				text = t
				break
			}
		}
	}
	if text == "" {
		text = doc.Find("body").Text()
	}
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	return hc.normalizeText(text), nil
}

func (hc *HTMLCleaner) normalizeText(text string) string {
	// Collapse runs of spaces and tabs but keep paragraph breaks
	text = regexp.MustCompile(`[ \t]+`).ReplaceAllString(text, " ")
	text = regexp.MustCompile(`\n{3,}`).ReplaceAllString(text, "\n\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// EstimateTokens returns the approximate token count for the text
func (hc *HTMLCleaner) EstimateTokens(text string) int {
	// Rough estimation: ~4 characters per token
	return len(text) / 4
}
