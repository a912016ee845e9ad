// Package textclean repairs raw speech transcripts: mojibake and smart
// punctuation, leftover HTML markup, and ragged whitespace.
package textclean

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// encodingFixes repairs UTF-8 text that was decoded as Windows-1252
// somewhere upstream, then folds smart punctuation to ASCII. Longer
// sequences come first so the bare closing-quote mojibake does not
// shadow them.
var encodingFixes = strings.NewReplacer(
	"â€™", "'", // mojibake right single quote
	"â€˜", "'", // mojibake left single quote
	"â€œ", `"`, // mojibake left double quote
	"â€”", "-", // mojibake em dash
	"â€“", "-", // mojibake en dash
	"â€¦", "...", // mojibake ellipsis
	"â€", `"`, // mojibake right double quote (final byte lost)
	"’", "'",
	"‘", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"…", "...",
	" ", " ",
)

var (
	spaceRuns   = regexp.MustCompile("[ \t ]+")
	newlineRuns = regexp.MustCompile(`\n{3,}`)
	spacedPunct = regexp.MustCompile(`\s+([.,!?;:])`)
)

var skippedTags = map[string]struct{}{"script": {}, "style": {}}

var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "li": {}, "tr": {}, "blockquote": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
}

// FixEncoding repairs mojibake, folds smart punctuation to ASCII, and
// applies NFKD normalization.
func FixEncoding(text string) string {
	return norm.NFKD.String(encodingFixes.Replace(text))
}

// StripHTML drops markup and returns the concatenated text content.
// Script and style bodies are skipped, block elements and line breaks
// become newlines. Text that fails to parse is returned as-is.
func StripHTML(text string) string {
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := skippedTags[n.Data]; skip {
				return
			}
			if n.Data == "br" {
				buf.WriteString("\n")
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			if _, block := blockTags[n.Data]; block {
				buf.WriteString("\n")
			}
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}

// NormalizeWhitespace collapses space runs, caps consecutive blank
// lines at one, removes whitespace before punctuation, and trims every
// line.
func NormalizeWhitespace(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	text = spacedPunct.ReplaceAllString(text, "$1")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Clean runs the full cleanup: encoding repair, markup removal, then
// whitespace normalization.
func Clean(text string) string {
	return NormalizeWhitespace(StripHTML(FixEncoding(text)))
}
