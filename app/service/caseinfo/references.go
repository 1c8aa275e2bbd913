package caseinfo

import (
	"regexp"
	"strings"

	"github.com/elliotchance/pie/v2"
)

// FallbackReferences is returned when the document names no recognizable
// source material at all.
const FallbackReferences = "Standard clinical references (e.g., CPS, product monograph)"

var referencesSectionRe = regexp.MustCompile(`(?is)references\s*[:\n]+(.+?)(\n\n|\z)`)

// Known compendia and regulatory sources that OSCE cases cite even when the
// references section itself does not survive text extraction.
var referenceKeywords = []string{
	"Health Canada",
	"CPS",
	"Compendium of Pharmaceuticals",
	"Product Monograph",
	"FDA",
	"UpToDate",
	"Lexicomp",
	"NAPRA",
	"ISMP",
	"RxTx",
}

// ExtractReferences finds the source material a case cites. Three tiers:
// an explicit references section wins; otherwise known reference keywords
// found anywhere in the text, sorted and deduplicated; otherwise a generic
// fallback. Always returns a non-empty string.
func ExtractReferences(text string) string {
	if m := referencesSectionRe.FindStringSubmatch(text); m != nil {
		body := strings.TrimSpace(m[1])
		return strings.ReplaceAll(body, "\n", "; ")
	}

	lower := strings.ToLower(text)

	var found []string
	for _, keyword := range referenceKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			found = append(found, keyword)
		}
	}

	if len(found) > 0 {
		return strings.Join(pie.Sort(pie.Unique(found)), "; ")
	}

	return FallbackReferences
}
