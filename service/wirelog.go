package service

import (
	"context"
	"log/slog"
	"net/http"
)

// WireLogger emits the full outbound request and upstream response detail.
// The API key is redacted once at construction, so nothing secret reaches
// the log sink.
type WireLogger struct {
	maskedKey string
}

func NewWireLogger(apiKey string) *WireLogger {
	return &WireLogger{maskedKey: MaskAPIKey(apiKey)}
}

// MaskAPIKey keeps the first and last ten characters of keys longer than 20
// characters; anything shorter is hidden entirely.
func MaskAPIKey(key string) string {
	if len(key) > 20 {
		return key[:10] + "..." + key[len(key)-10:]
	}
	return "***MASKED***"
}

func (l *WireLogger) Request(ctx context.Context, method, url string, headers map[string]string, body []byte) {
	redacted := make(map[string]string, len(headers))
	for k, v := range headers {
		if k == "X-API-Key" {
			v = l.maskedKey
		}
		redacted[k] = v
	}

	slog.InfoContext(ctx, "Adyen API request",
		slog.String("method", method),
		slog.String("url", url),
		slog.Any("headers", redacted),
		slog.String("body", string(body)),
	)
}

func (l *WireLogger) Response(ctx context.Context, status int, headers http.Header, body []byte) {
	slog.InfoContext(ctx, "Adyen API response",
		slog.Int("status", status),
		slog.Any("headers", headers),
		slog.String("body", string(body)),
	)
}

func (l *WireLogger) Error(ctx context.Context, err error) {
	slog.ErrorContext(ctx, "Adyen API call failed", slog.Any("error", err))
}
