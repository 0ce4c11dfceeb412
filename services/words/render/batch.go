package render

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"jishodash/lib/scrapers/jisho"
	"jishodash/services/words"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/words/render")

// Path is the deterministic output location for one (word, gloss) pair.
func Path(dir string, wordId, glossId int64) string {
	return filepath.Join(dir, fmt.Sprintf("word-%d-%d.svg", wordId, glossId))
}

// Entry renders a single stored entry to its card file.
func Entry(entry words.Entry, dir string) (string, error) {
	word, err := jisho.ParseRepresentation(entry.RepresentationHTML)
	if err != nil {
		return "", err
	}
	gloss, err := jisho.ParseGloss(entry.WrapperHTML)
	if err != nil {
		return "", err
	}

	path := Path(dir, entry.WordId, entry.GlossId)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	link := "https://jisho.org/search/" + url.PathEscape(jisho.WordText(word))
	if err := Card(f, word, gloss, link); err != nil {
		return "", err
	}
	return path, nil
}

// All renders every stored entry. One entry failing to parse must not
// abort the batch: the offending markup is logged and the entry skipped.
func All(ctx context.Context, store words.Store, dir string) error {
	ctx, span := tracer.Start(ctx, "RenderAll")
	defer span.End()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	entries, err := store.All(ctx)
	if err != nil {
		return err
	}

	rendered := 0
	for _, entry := range entries {
		_, err := Entry(entry, dir)
		if err != nil {
			slog.WarnContext(
				ctx, "skipping unrenderable entry",
				"word_id", entry.WordId,
				"gloss_id", entry.GlossId,
				"err", err,
				"representation", entry.RepresentationHTML,
				"wrapper", entry.WrapperHTML,
			)
			continue
		}
		rendered++
	}

	span.SetAttributes(attribute.Int("rendered", rendered))
	slog.InfoContext(ctx, "rendered cards", "total", len(entries), "rendered", rendered)
	return nil
}
