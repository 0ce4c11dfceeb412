package words

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"jishodash/lib/timezone"

	"go.opentelemetry.io/otel/codes"
)

// Service is the thin HTTP surface: the daily payload, offset-mode single
// entries and the static dashboard files.
type Service struct {
	store  Store
	wwwDir string
}

func NewService(db *sql.DB, wwwDir string) Service {
	return Service{
		store:  NewStore(db),
		wwwDir: wwwDir,
	}
}

func (s Service) Store() Store {
	return s.store
}

func (s Service) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/words", s.handleDailyWords)
	mux.HandleFunc("GET /api/words/{offset}", s.handleOffsetWord)
	if s.wwwDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.wwwDir)))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(ctx context.Context, w http.ResponseWriter, message string, err error) {
	slog.ErrorContext(ctx, message, "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": message})
}

// requestDate honors an explicit ?date=YYYY-MM-DD, otherwise today in JST.
func requestDate(r *http.Request) string {
	if d := r.URL.Query().Get("date"); d != "" {
		return d
	}
	return timezone.Today()
}

func (s Service) handleDailyWords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleDailyWords")
	defer span.End()

	date := requestDate(r)
	entries, err := SelectDaily(ctx, s.store, date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, "failed to select daily words", err)
		return
	}

	payload, err := BuildPayload(entries)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, "failed to build payload", err)
		return
	}

	writeJSON(w, http.StatusOK, payload)
}

type offsetResponse struct {
	WordId         int64  `json:"word_id"`
	Representation string `json:"representation"`
	MeaningWrapper string `json:"meaning_wrapper"`
}

func (s Service) handleOffsetWord(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleOffsetWord")
	defer span.End()

	offset, err := strconv.Atoi(r.PathValue("offset"))
	if err != nil || offset < 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"detail": "invalid offset",
		})
		return
	}

	entry, err := SelectOffset(ctx, s.store, requestDate(r), offset)
	if err == ErrNoEntries {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"detail": "no words stored",
		})
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeError(ctx, w, "failed to select word", err)
		return
	}

	writeJSON(w, http.StatusOK, offsetResponse{
		WordId:         entry.WordId,
		Representation: entry.RepresentationHTML,
		MeaningWrapper: entry.WrapperHTML,
	})
}
