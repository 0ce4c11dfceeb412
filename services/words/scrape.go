package words

import (
	"context"
	"log/slog"
	"strings"

	"jishodash/lib/scrapers/jisho"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Scrape fetches search result pages 1..pages, extracts every
// sentence-bearing entry and commits them all in one transaction.
// A page that fails to parse is logged and skipped; a fetch or store
// failure aborts the pass with nothing persisted.
func Scrape(ctx context.Context, store Store, client *jisho.Client, pages int) error {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()
	span.SetAttributes(attribute.Int("pages", pages))

	var all []jisho.RawEntry
	for page := 1; page <= pages; page++ {
		body, err := client.FetchSearchPage(ctx, page)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err != nil {
			slog.WarnContext(ctx, "skipping unparseable search page", "page", page, "err", err)
			continue
		}

		entries := jisho.ExtractEntries(ctx, doc)
		slog.InfoContext(ctx, "extracted search page", "page", page, "entries", len(entries))
		all = append(all, entries...)
	}

	err := store.BulkInsert(ctx, all)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "scrape pass stored", "words", len(all))
	return nil
}
