package words

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jishodash/lib/testutil"
	"jishodash/services/words/db"

	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (Service, func()) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/words",
		DbSchema: db.Schema,
	})
	return NewService(setup.DB, ""), cleanup
}

func serviceMux(service Service) *http.ServeMux {
	mux := http.NewServeMux()
	service.Register(mux)
	return mux
}

func TestHandleDailyWords(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	seedWords(t, ctx, service.Store(), 10)
	mux := serviceMux(service)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/words?date=2024-01-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	entries := decodePayload(t, payload)
	require.Len(t, entries, DailyCount)

	// the payload is derived from the same selection the offset route uses
	want, err := SelectDaily(ctx, service.Store(), "2024-01-01")
	require.NoError(t, err)
	for i, e := range want {
		require.Equal(t, e.RepresentationHTML+e.WrapperHTML, entries[i])
	}
}

func TestHandleOffsetWord(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	seedWords(t, ctx, service.Store(), 10)
	mux := serviceMux(service)

	want, err := SelectDaily(ctx, service.Store(), "2024-01-01")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/words/2?date=2024-01-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body offsetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, want[2].WordId, body.WordId)
	require.Equal(t, want[2].RepresentationHTML, body.Representation)
	require.Equal(t, want[2].WrapperHTML, body.MeaningWrapper)
}

func TestHandleOffsetWordInvalidOffset(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()
	mux := serviceMux(service)

	for _, path := range []string{"/api/words/abc", "/api/words/-1"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, path)
	}
}

func TestHandleOffsetWordEmptyStore(t *testing.T) {
	service, cleanup := setupService(t)
	defer cleanup()
	mux := serviceMux(service)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/words/0?date=2024-01-01", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
