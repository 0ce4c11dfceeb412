package jisho

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseRepresentationPerCharacterReadings(t *testing.T) {
	// two bare reading fragments against one two-character text node:
	// readings align per character, so the plain unit is expanded
	markup := `<div class="concept_light-representation">` +
		`<span class="furigana"><span class="kanji-2-up kanji">よ</span><span>む</span></span>` +
		`<span class="text">読む</span>` +
		`</div>`

	blocks, err := ParseRepresentation(markup)
	require.NoError(t, err)

	expect := []Block{
		{Text: "読", Reading: "よ"},
		{Text: "む", Reading: "む"},
	}
	if diff := cmp.Diff(expect, blocks); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseRepresentationSpanUnit(t *testing.T) {
	// one collective reading for a multi-kanji compound: counts match
	// pairwise, nothing gets expanded
	markup := `<div class="concept_light-representation">` +
		`<span class="furigana"><span class="kanji-2-up kanji">にほん</span></span>` +
		`<span class="text"><span>日本</span></span>` +
		`</div>`

	blocks, err := ParseRepresentation(markup)
	require.NoError(t, err)

	expect := []Block{
		{Text: "日本", Reading: "にほん"},
	}
	if diff := cmp.Diff(expect, blocks); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseRepresentationRubyAnnotation(t *testing.T) {
	markup := `<div class="concept_light-representation">` +
		`<span class="furigana"><ruby><rb>仰</rb><rt>ぎょう</rt></ruby><span>さん</span></span>` +
		`<span class="text">仰山</span>` +
		`</div>`

	blocks, err := ParseRepresentation(markup)
	require.NoError(t, err)

	expect := []Block{
		{Text: "仰", Reading: "ぎょう", RubyBase: "仰"},
		{Text: "山", Reading: "さん"},
	}
	if diff := cmp.Diff(expect, blocks); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseRepresentationMixedSpanAndPlain(t *testing.T) {
	// three readings over [span(今日), plain(は)]: span counts as one
	// unit, the plain unit is one character, 3 != 2 either way
	mismatch := `<div class="concept_light-representation">` +
		`<span class="furigana"><span>き</span><span>ょ</span><span>う</span></span>` +
		`<span class="text"><span>今日</span>は</span>` +
		`</div>`

	_, err := ParseRepresentation(mismatch)
	require.ErrorIs(t, err, ErrReadingCountMismatch)

	// two readings over the same display region reconcile per position
	aligned := `<div class="concept_light-representation">` +
		`<span class="furigana"><span>きょう</span><span></span></span>` +
		`<span class="text"><span>今日</span>は</span>` +
		`</div>`

	blocks, err := ParseRepresentation(aligned)
	require.NoError(t, err)

	expect := []Block{
		{Text: "今日", Reading: "きょう"},
		{Text: "は", Reading: ""},
	}
	if diff := cmp.Diff(expect, blocks); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseRepresentationCountMismatch(t *testing.T) {
	// three readings, two display characters: unreconcilable and fatal
	// for the entry
	markup := `<div class="concept_light-representation">` +
		`<span class="furigana"><span>よ</span><span>み</span><span>む</span></span>` +
		`<span class="text">読む</span>` +
		`</div>`

	blocks, err := ParseRepresentation(markup)
	require.ErrorIs(t, err, ErrReadingCountMismatch)
	require.Nil(t, blocks)
}

func TestParseRepresentationMalformedRuby(t *testing.T) {
	markup := `<div class="concept_light-representation">` +
		`<span class="furigana"><ruby><rb>仰</rb></ruby></span>` +
		`<span class="text">仰</span>` +
		`</div>`

	blocks, err := ParseRepresentation(markup)
	require.ErrorIs(t, err, ErrMalformedAnnotation)
	require.Nil(t, blocks)
}

func TestParseRepresentationUnexpectedElement(t *testing.T) {
	markup := `<div class="concept_light-representation">` +
		`<span class="furigana"><div>よ</div></span>` +
		`<span class="text">読</span>` +
		`</div>`

	_, err := ParseRepresentation(markup)
	require.ErrorIs(t, err, ErrMalformedAnnotation)
}

func TestParseRepresentationMissingContainer(t *testing.T) {
	blocks, err := ParseRepresentation(`<div class="something-else">読む</div>`)
	require.NoError(t, err)
	require.Nil(t, blocks)
}

func TestReconcileCountsRunesNotBytes(t *testing.T) {
	// 漢字 is six bytes but two characters; byte arithmetic would reject
	// this entry
	readings := []readingAnnotation{{reading: "かん"}, {reading: "じ"}}
	units := []displayUnit{{text: "漢字"}}

	blocks, err := reconcile(readings, units)
	require.NoError(t, err)

	expect := []Block{
		{Text: "漢", Reading: "かん"},
		{Text: "字", Reading: "じ"},
	}
	if diff := cmp.Diff(expect, blocks); diff != "" {
		t.Fatal(diff)
	}
}

func TestReconcileNeverCollapsesOnEqualLengths(t *testing.T) {
	readings := []readingAnnotation{{reading: "よ"}, {reading: ""}}
	units := []displayUnit{{text: "読"}, {text: "む"}}

	blocks, err := reconcile(readings, units)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Equal(t, "読", blocks[0].Text)
	require.Equal(t, "む", blocks[1].Text)
}

func TestParseGloss(t *testing.T) {
	markup := `<div class="meaning-wrapper">` +
		`<span class="meaning-meaning">to read</span>` +
		`<div class="sentence">` +
		`<ul class="japanese_sentence japanese japanese_gothic clearfix">` +
		`<li class="clearfix"><span class="furigana">ほん</span><span class="unlinked">本</span></li>` +
		`<li class="clearfix"><span class="unlinked">を</span></li>` +
		`<li class="clearfix"><span class="furigana">よ</span><span class="unlinked">読む</span></li>` +
		`</ul>` +
		`<span class="english">I read a book.</span>` +
		`</div>` +
		`</div>`

	gloss, err := ParseGloss(markup)
	require.NoError(t, err)

	expect := GlossDetail{
		Meaning: "to read",
		Sentence: []SentencePart{
			{Reading: "ほん", Text: "本"},
			{Reading: "", Text: "を"},
			{Reading: "よ", Text: "読む"},
		},
		English: "I read a book.",
	}
	if diff := cmp.Diff(expect, gloss); diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, "本を読む", gloss.SentenceText())
}

func TestParseGlossToleratesMissingElements(t *testing.T) {
	gloss, err := ParseGloss(`<div class="meaning-wrapper"><div class="sentence"></div></div>`)
	require.NoError(t, err)
	require.Equal(t, "", gloss.Meaning)
	require.Equal(t, "", gloss.English)
	require.Empty(t, gloss.Sentence)
}

func TestErrorKindsAreDistinct(t *testing.T) {
	require.False(t, errors.Is(ErrMalformedAnnotation, ErrReadingCountMismatch))
}
