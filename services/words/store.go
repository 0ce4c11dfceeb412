package words

import (
	"context"
	"database/sql"

	"jishodash/lib/scrapers/jisho"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/words")

// Store owns the persisted word/gloss rows.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

// Entry is one (word, gloss) pair as returned by sampling queries.
type Entry struct {
	GlossId            int64
	WordId             int64
	RepresentationHTML string
	WrapperHTML        string
}

func (s Store) InsertWord(ctx context.Context, representationHTML string) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		"INSERT INTO words (representation_html) VALUES (?)",
		representationHTML,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertGloss fails with a foreign key violation when wordId does not
// exist, the constraint is enforced by sqlite itself.
func (s Store) InsertGloss(ctx context.Context, wordId int64, wrapperHTML string) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		"INSERT INTO glosses (word_id, wrapper_html) VALUES (?, ?)",
		wordId, wrapperHTML,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// BulkInsert commits a whole scrape pass in one transaction. On any
// failure nothing is persisted and the error propagates unmodified.
func (s Store) BulkInsert(ctx context.Context, entries []jisho.RawEntry) error {
	ctx, span := tracer.Start(ctx, "BulkInsert")
	defer span.End()
	span.SetAttributes(attribute.Int("entries", len(entries)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()

	for _, entry := range entries {
		res, err := tx.ExecContext(
			ctx,
			"INSERT INTO words (representation_html) VALUES (?)",
			entry.RepresentationHTML,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		wordId, err := res.LastInsertId()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		for _, wrapper := range entry.WrapperHTMLs {
			_, err := tx.ExecContext(
				ctx,
				"INSERT INTO glosses (word_id, wrapper_html) VALUES (?, ?)",
				wordId, wrapper,
			)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return err
			}
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// deterministicSampleQuery orders words by the first 15 digits of
// word_id * seed taken as a decimal string, one gloss per word by the
// same keying of the gloss id. Ties break on the id itself so the result
// is reproducible regardless of insertion order or table growth.
const deterministicSampleQuery = `
WITH daily_words AS (
    SELECT word_id
    FROM glosses
    GROUP BY word_id
    ORDER BY SUBSTR(CAST(word_id * ?1 AS TEXT), 1, 15), word_id
    LIMIT ?2
),
ranked AS (
    SELECT
        g.id AS gloss_id,
        g.wrapper_html,
        g.word_id,
        w.representation_html,
        ROW_NUMBER() OVER (
            PARTITION BY g.word_id
            ORDER BY SUBSTR(CAST(g.id * ?1 AS TEXT), 1, 15), g.id
        ) AS rn
    FROM glosses g
    JOIN words w ON g.word_id = w.id
    JOIN daily_words dw ON g.word_id = dw.word_id
)
SELECT gloss_id, wrapper_html, word_id, representation_html
FROM ranked
WHERE rn = 1
ORDER BY word_id
`

// DeterministicSample returns up to count entries for distinct words,
// a pure function of (seed, table contents).
func (s Store) DeterministicSample(ctx context.Context, seed int64, count int) ([]Entry, error) {
	ctx, span := tracer.Start(ctx, "DeterministicSample")
	defer span.End()
	span.SetAttributes(attribute.Int64("seed", seed))

	rows, err := s.db.QueryContext(ctx, deterministicSampleQuery, seed, count)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(&e.GlossId, &e.WrapperHTML, &e.WordId, &e.RepresentationHTML)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return out, nil
}

// All returns every (word, gloss) pair ordered by word then gloss id.
func (s Store) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.wrapper_html, g.word_id, w.representation_html
		FROM glosses g
		JOIN words w ON g.word_id = w.id
		ORDER BY g.word_id, g.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(&e.GlossId, &e.WrapperHTML, &e.WordId, &e.RepresentationHTML)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteWord removes a word; its glosses go with it through the cascade.
func (s Store) DeleteWord(ctx context.Context, wordId int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM words WHERE id = ?", wordId)
	return err
}

// CountWords reports how many distinct words have at least one gloss.
func (s Store) CountWords(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT word_id) FROM glosses").Scan(&n)
	return n, err
}
