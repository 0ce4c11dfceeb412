package render

import (
	"fmt"
	"io"

	"jishodash/lib/scrapers/jisho"

	svg "github.com/ajstarks/svgo"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	CardWidth  = 780
	CardHeight = 460

	margin       = 10
	fontFamily   = "Noto Sans JP"
	qrModuleSize = 3
)

// approximate advance width of a string in em units at a given font size.
// CJK glyphs are full-width, ascii roughly half. There is no font metrics
// engine here, the dashboard tolerates a few pixels of slack.
func textWidth(s string, size int) float64 {
	w := 0.0
	for _, r := range s {
		if r < 0x2E80 {
			w += 0.55
		} else {
			w += 1.0
		}
	}
	return w * float64(size)
}

// fitSize shrinks from initial until the text fits maxWidth.
func fitSize(s string, maxWidth float64, initial, min int) int {
	size := initial
	for size > min && textWidth(s, size) > maxWidth {
		size--
	}
	return size
}

func textStyle(size, weight int) string {
	return fmt.Sprintf(
		"font-family:%s;font-size:%dpx;font-weight:%d;fill:black;text-anchor:middle",
		fontFamily, size, weight,
	)
}

// Card draws one fixed-size SVG card: the word with per-block furigana,
// the meaning line, the example sentence with furigana, the translation
// and a QR code linking back to the dictionary entry.
func Card(w io.Writer, word []jisho.Block, gloss jisho.GlossDetail, linkUrl string) error {
	canvas := svg.New(w)
	canvas.Start(CardWidth, CardHeight)
	defer canvas.End()

	plotWidth := float64(CardWidth - 2*margin)
	plotHeight := float64(CardHeight - 2*margin)

	// headword, sized to fit both half the card height and the width
	wordText := jisho.WordText(word)
	size := fitSize(wordText, plotWidth, 96, 48)
	if size > int(plotHeight/2)*2/3 {
		size = int(plotHeight / 2 * 2 / 3)
	}

	wordY := int(plotHeight/2) - margin
	furiganaY := wordY - size - 4
	x := (float64(CardWidth) - textWidth(wordText, size)) / 2
	for _, block := range word {
		advance := textWidth(block.Text, size)
		cx := int(x + advance/2)
		canvas.Text(cx, wordY, block.Text, textStyle(size, 700))
		if block.Reading != "" {
			canvas.Text(cx, furiganaY, block.Reading, textStyle(size/3, 700))
		}
		x += advance + 3
	}

	// meaning line under the headword
	if gloss.Meaning != "" {
		meaningSize := fitSize(gloss.Meaning, plotWidth, 18, 8)
		canvas.Text(CardWidth/2, wordY+meaningSize+margin, gloss.Meaning, textStyle(meaningSize, 400))
	}

	// example sentence with furigana, then the translation at the bottom
	sentence := gloss.SentenceText()
	sentenceSize := fitSize(sentence, plotWidth, 28, 8)
	englishSize := fitSize(gloss.English, plotWidth, 20, 8)

	englishY := CardHeight - 2*margin
	sentenceY := englishY - englishSize - margin
	sentenceFuriganaY := sentenceY - sentenceSize - 2

	x = (float64(CardWidth) - textWidth(sentence, sentenceSize)) / 2
	for _, part := range gloss.Sentence {
		advance := textWidth(part.Text, sentenceSize)
		cx := int(x + advance/2)
		canvas.Text(cx, sentenceY, part.Text, textStyle(sentenceSize, 400))
		if part.Reading != "" {
			canvas.Text(cx, sentenceFuriganaY, part.Reading, textStyle(sentenceSize/2, 400))
		}
		x += advance
	}
	if gloss.English != "" {
		canvas.Text(CardWidth/2, englishY, gloss.English, textStyle(englishSize, 400))
	}

	return drawQR(canvas, linkUrl)
}

// drawQR plots the code module-by-module in the top right corner.
func drawQR(canvas *svg.SVG, content string) error {
	code, err := qrcode.New(content, qrcode.High)
	if err != nil {
		return err
	}
	matrix := code.Bitmap()

	offsetX := CardWidth - margin - len(matrix)*qrModuleSize
	for y, row := range matrix {
		for x, filled := range row {
			if !filled {
				continue
			}
			canvas.Rect(
				offsetX+x*qrModuleSize,
				margin+y*qrModuleSize,
				qrModuleSize, qrModuleSize,
				"fill:black",
			)
		}
	}
	return nil
}
