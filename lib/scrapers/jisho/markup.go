package jisho

import (
	"errors"
	"fmt"
	"strings"

	"jishodash/lib/htmlutil"
	"jishodash/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Class markers fixed by jisho.org's markup. Every assumption about the
// shape of the source site lives behind this package.
const (
	selEntry          = "div.concept_light"
	selRepresentation = "div.concept_light-representation"
	selReadingRegion  = "span.furigana"
	selDisplayRegion  = "span.text"
	selMeaningWrapper = "div.meaning-wrapper"
	selSentence       = "div.sentence"
	selMeaningText    = "span.meaning-meaning"
	selEnglish        = "span.english"
	selExampleReading = "span.furigana"
	selUnlinked       = "span.unlinked"
	selSectionDivider = "span.meaning-definition-section_divider"
	selSupplemental   = "span.supplemental_info"
)

var ErrMalformedAnnotation = errors.New("malformed reading annotation")
var ErrReadingCountMismatch = errors.New("reading count mismatch")

// Block is one display unit of a word paired with its reading.
type Block struct {
	// Text holds the displayed characters, a single character for plain
	// units or a whole compound for span units.
	Text    string
	Reading string
	// RubyBase carries the original uncollapsed base text of a ruby
	// annotation for traceability, empty otherwise.
	RubyBase string
}

// WordText concatenates the display text of all blocks.
func WordText(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(block.Text)
	}
	return b.String()
}

type readingAnnotation struct {
	reading string
	base    string
}

type displayUnit struct {
	text string
	// span units share one reading across the whole unit, plain units
	// get one reading per character
	span bool
}

// ParseRepresentation decomposes a concept_light-representation fragment
// into ordered (display unit, reading) blocks.
//
// The reading region and the display region are two independent annotation
// streams. They align either one-to-one or, when readings are
// per-character, one reading per rune of every plain unit. Anything else
// means the entry cannot be trusted and is rejected with
// ErrReadingCountMismatch.
func ParseRepresentation(markup string) ([]Block, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	container := doc.Find(selRepresentation).First()
	if container.Length() == 0 {
		return nil, nil
	}

	readings, err := parseReadingRegion(container.Find(selReadingRegion).First())
	if err != nil {
		return nil, err
	}
	units := parseDisplayRegion(container.Find(selDisplayRegion).First())

	return reconcile(readings, units)
}

func parseReadingRegion(region *goquery.Selection) ([]readingAnnotation, error) {
	var readings []readingAnnotation
	var parseErr error

	region.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		switch goquery.NodeName(child) {
		case "span":
			readings = append(readings, readingAnnotation{
				reading: htmlutil.CleanText(child.Text()),
			})
		case "ruby":
			rt := child.Find("rt")
			if rt.Length() == 0 {
				parseErr = fmt.Errorf("%w: ruby element without <rt>", ErrMalformedAnnotation)
				return false
			}
			readings = append(readings, readingAnnotation{
				reading: htmlutil.CleanText(rt.Text()),
				base:    htmlutil.CleanText(child.Find("rb").Text()),
			})
		default:
			parseErr = fmt.Errorf(
				"%w: unexpected <%s> in reading region",
				ErrMalformedAnnotation, goquery.NodeName(child),
			)
			return false
		}
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return readings, nil
}

func parseDisplayRegion(region *goquery.Selection) []displayUnit {
	var units []displayUnit

	region.Contents().Each(func(_ int, c *goquery.Selection) {
		node := c.Nodes[0]
		switch {
		case node.Type == html.TextNode:
			text := htmlutil.CleanText(node.Data)
			if text != "" {
				units = append(units, displayUnit{text: text})
			}
		case goquery.NodeName(c) == "span":
			units = append(units, displayUnit{text: htmlutil.CleanText(c.Text()), span: true})
		}
	})

	return units
}

func reconcile(readings []readingAnnotation, units []displayUnit) ([]Block, error) {
	if len(readings) == len(units) {
		blocks := make([]Block, len(units))
		for i, u := range units {
			blocks[i] = Block{
				Text:     u.text,
				Reading:  readings[i].reading,
				RubyBase: readings[i].base,
			}
		}
		return blocks, nil
	}

	characters := 0
	for _, u := range units {
		if u.span {
			characters++
		} else {
			characters += textutil.RuneLen(u.text)
		}
	}
	if len(readings) != characters {
		return nil, fmt.Errorf(
			"%w: %d readings cannot align with %d display units (%d characters)",
			ErrReadingCountMismatch, len(readings), len(units), characters,
		)
	}

	// per-character readings: expand plain units into single runes, span
	// units stay collapsed
	expanded := make([]string, 0, characters)
	for _, u := range units {
		if u.span {
			expanded = append(expanded, u.text)
			continue
		}
		for _, r := range u.text {
			expanded = append(expanded, string(r))
		}
	}

	blocks := make([]Block, len(expanded))
	for i, text := range expanded {
		blocks[i] = Block{
			Text:     text,
			Reading:  readings[i].reading,
			RubyBase: readings[i].base,
		}
	}
	return blocks, nil
}

// SentencePart is one segment of an example sentence, optionally carrying
// a furigana reading.
type SentencePart struct {
	Reading string
	Text    string
}

// GlossDetail is the extracted contents of a meaning wrapper.
type GlossDetail struct {
	Meaning  string
	Sentence []SentencePart
	English  string
}

// SentenceText concatenates the display text of the example sentence.
func (g GlossDetail) SentenceText() string {
	var b strings.Builder
	for _, p := range g.Sentence {
		b.WriteString(p.Text)
	}
	return b.String()
}

// ParseGloss extracts the english definition, the segmented example
// sentence and its translation from a meaning wrapper fragment. Jisho
// omits pieces of this markup freely, so missing elements simply yield
// empty fields.
func ParseGloss(markup string) (GlossDetail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return GlossDetail{}, err
	}

	var out GlossDetail
	out.Meaning = textutil.NormalizeSpace(doc.Find(selMeaningText).First().Text())
	out.English = textutil.NormalizeSpace(doc.Find(selEnglish).First().Text())

	doc.Find("ul").First().Find("li").Each(func(_ int, li *goquery.Selection) {
		out.Sentence = append(out.Sentence, SentencePart{
			Reading: htmlutil.CleanText(li.Find(selExampleReading).First().Text()),
			Text:    htmlutil.CleanText(li.Find(selUnlinked).First().Text()),
		})
	})

	return out, nil
}
