package words

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"jishodash/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const trmnlEndpoint = "https://usetrmnl.com/api/custom_plugins/"

// Publisher pushes the daily payload to the TRMNL display API at most
// once per calendar date. The last pushed date is kept in a small json
// history file so restarts don't repeat the push.
type Publisher struct {
	store       Store
	http        *resty.Client
	endpoint    string
	apiKey      string
	historyPath string
}

type pushHistory struct {
	LastPushed string `json:"last_pushed"`
}

func NewPublisher(store Store, apiKey, historyPath string) *Publisher {
	client := resty.New()
	client.SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "services/words/trmnl")

	return &Publisher{
		store:       store,
		http:        client,
		endpoint:    trmnlEndpoint,
		apiKey:      apiKey,
		historyPath: historyPath,
	}
}

func (p *Publisher) alreadyPushed(date string) bool {
	raw, err := os.ReadFile(p.historyPath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("read trmnl push history", "path", p.historyPath, "err", err)
		}
		return false
	}
	var hist pushHistory
	if err := json.Unmarshal(raw, &hist); err != nil {
		slog.Warn("invalid trmnl push history", "path", p.historyPath, "err", err)
		return false
	}
	return hist.LastPushed == date
}

func (p *Publisher) recordPush(date string) {
	raw, err := json.MarshalIndent(pushHistory{LastPushed: date}, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(p.historyPath, raw, 0o644); err != nil {
		slog.Warn("write trmnl push history", "path", p.historyPath, "err", err)
	}
}

// PublishDaily selects, packs and pushes the given date's words.
// Repeated calls for the same date are no-ops.
func (p *Publisher) PublishDaily(ctx context.Context, date string) error {
	ctx, span := tracer.Start(ctx, "PublishDaily")
	defer span.End()

	if p.apiKey == "" {
		return fmt.Errorf("trmnl api key is not configured")
	}
	if p.alreadyPushed(date) {
		slog.Debug("trmnl payload already pushed", "date", date)
		return nil
	}

	entries, err := SelectDaily(ctx, p.store, date)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	payload, err := BuildPayload(entries)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	res, err := p.http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetBody(payload).
		Post(p.endpoint + p.apiKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if res.StatusCode() != 200 {
		err := fmt.Errorf("trmnl push: status %s: %s", res.Status(), res.String())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	p.recordPush(date)
	slog.Info("pushed daily words to trmnl", "date", date, "entries", len(entries))
	return nil
}
