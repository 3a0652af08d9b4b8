package ingest

import "regexp"

// The original crawler leaned on mwparserfromhell.strip_code() to turn
// wiki markup into plain text; that library's dependency tree isn't
// something this module pulls in, so StripMarkup keeps only the
// "store the clean text" contract with a minimal line-oriented
// stripper covering the markup forms that dominate article bodies:
// templates, links, emphasis, and headings.
var (
	templateRe = regexp.MustCompile(`(?s)\{\{.*?\}\}`)
	commentRe  = regexp.MustCompile(`(?s)<!--.*?-->`)
	refRe      = regexp.MustCompile(`(?s)<ref[^>]*>.*?</ref>|<ref[^>]*/>`)
	linkTextRe = regexp.MustCompile(`\[\[(?:[^|\]]*\|)?([^\]]*)\]\]`)
	extLinkRe  = regexp.MustCompile(`\[(?:https?://\S+)\s+([^\]]*)\]`)
	emphasisRe = regexp.MustCompile(`'{2,5}`)
	headingRe  = regexp.MustCompile(`(?m)^=+\s*(.*?)\s*=+\s*$`)
	tagRe      = regexp.MustCompile(`(?s)<[^>]+>`)
)

// StripMarkup removes MediaWiki markup and returns plain text.
func StripMarkup(raw string) string {
	text := commentRe.ReplaceAllString(raw, "")
	text = refRe.ReplaceAllString(text, "")
	text = templateRe.ReplaceAllString(text, "")
	text = linkTextRe.ReplaceAllString(text, "$1")
	text = extLinkRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, "$1")
	text = emphasisRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, "")
	return text
}
