package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/illenko/adyen-checkout-demo/config"
	"github.com/illenko/adyen-checkout-demo/handler"
	"github.com/illenko/adyen-checkout-demo/observability"
	"github.com/illenko/adyen-checkout-demo/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "Configuration error", slog.Any("error", err))
		os.Exit(1)
	}

	shutdown, err := observability.Setup(ctx, "adyen-checkout-demo")
	if err != nil {
		slog.ErrorContext(ctx, "error setting up OpenTelemetry", slog.Any("error", err))
	}
	if shutdown != nil {
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.ErrorContext(ctx, "error during shutdown", slog.Any("error", err))
			}
		}()
	}

	slog.InfoContext(ctx, "Adyen configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.String("merchantAccount", cfg.MerchantAccount),
		slog.String("paymentsEndpoint", cfg.BaseURL),
		slog.String("apiKey", service.MaskAPIKey(cfg.APIKey)),
	)

	restyClient := resty.NewWithClient(&http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)})
	payments := service.NewPaymentService(cfg, restyClient)
	h := handler.NewPaymentHandler(payments)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handler.Index)
	mux.Handle("POST /api/authorize", otelhttp.NewHandler(http.HandlerFunc(h.Authorize), "authorize"))
	mux.Handle("POST /api/capture", otelhttp.NewHandler(http.HandlerFunc(h.Capture), "capture"))
	mux.Handle("POST /api/refund", otelhttp.NewHandler(http.HandlerFunc(h.Refund), "refund"))
	mux.Handle("POST /api/recurring", otelhttp.NewHandler(http.HandlerFunc(h.Recurring), "recurring"))

	slog.InfoContext(ctx, "Server starting", slog.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		slog.ErrorContext(ctx, "server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
