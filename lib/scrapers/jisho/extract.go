package jisho

import (
	"context"

	"jishodash/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("scrapers/jisho")

// RawEntry is one dictionary headword as cut out of a search result page:
// the representation fragment plus every meaning wrapper that carries an
// example sentence. Wrappers without sentences are dropped here, they
// never reach the store.
type RawEntry struct {
	RepresentationHTML string
	WrapperHTMLs       []string
}

// ExtractEntries walks every concept_light element of a search result page.
func ExtractEntries(ctx context.Context, doc *goquery.Document) []RawEntry {
	_, span := tracer.Start(ctx, "ExtractEntries")
	defer span.End()

	var out []RawEntry
	doc.Find(selEntry).Each(func(_ int, entry *goquery.Selection) {
		repr := entry.Find(selRepresentation).First()
		if repr.Length() == 0 {
			return
		}

		var wrappers []string
		entry.Find(selMeaningWrapper).Each(func(_ int, wrapper *goquery.Selection) {
			if wrapper.Find(selSentence).Length() == 0 {
				return
			}

			clone := wrapper.Clone()
			clone.Find(selSectionDivider).Remove()
			clone.Find(selSupplemental).Remove()
			clone.Find("span").Each(func(_ int, s *goquery.Selection) {
				// jisho pads definitions with zero-width-space spans
				if s.Text() == "​" {
					s.Remove()
				}
			})

			html, err := htmlutil.OuterHTML(clone)
			if err != nil {
				span.RecordError(err)
				return
			}
			wrappers = append(wrappers, html)
		})
		if len(wrappers) == 0 {
			return
		}

		reprHTML, err := htmlutil.OuterHTML(repr)
		if err != nil {
			span.RecordError(err)
			return
		}
		out = append(out, RawEntry{
			RepresentationHTML: reprHTML,
			WrapperHTMLs:       wrappers,
		})
	})

	span.SetAttributes(attribute.Int("entries", len(out)))
	return out
}
