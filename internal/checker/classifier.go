package checker

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MarkerClassifier turns a snapshot into a verdict by looking for the exact,
// case-sensitive sold-out marker. Pure and deterministic; it performs
// no I/O and never produces VerdictUnknown.
type MarkerClassifier struct {
	marker    string
	selectors []string
}

// NewMarkerClassifier constructs a classifier for the given marker. The
// optional CSS selectors narrow the search to specific nodes the way
// storefronts render their sold-out badge; a hit in either the node
// text or the full page text counts.
func NewMarkerClassifier(marker string, selectors []string) *MarkerClassifier {
	return &MarkerClassifier{
		marker:    marker,
		selectors: selectors,
	}
}

// Classify inspects the snapshot text for the sold-out marker.
// Marker present yields VerdictSoldOut, absent yields
// VerdictAvailable. An empty or whitespace-only page falls through the
// same absence-of-marker rule and classifies as VerdictAvailable.
func (c *MarkerClassifier) Classify(snap Snapshot) Verdict {
	if strings.Contains(snap.Text, c.marker) {
		return VerdictSoldOut
	}
	if c.selectorHit(snap.HTML) {
		return VerdictSoldOut
	}
	return VerdictAvailable
}

func (c *MarkerClassifier) selectorHit(html string) bool {
	if len(c.selectors) == 0 || html == "" {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	for _, sel := range c.selectors {
		hit := false
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.Contains(s.Text(), c.marker) {
				hit = true
				return false
			}
			return true
		})
		if hit {
			return true
		}
	}
	return false
}
