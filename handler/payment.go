package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/illenko/adyen-checkout-demo/model"
	"github.com/illenko/adyen-checkout-demo/service"
)

type PaymentHandler struct {
	service *service.PaymentService
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.AuthorizeRequest
	if err := readRequest(r, &req); err != nil {
		WriteValidationError(ctx, w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		WriteValidationError(ctx, w, "Full name is required")
		return
	}
	slog.InfoContext(ctx, "Authorize request", slog.String("fullName", fullName))

	WriteResult(ctx, w, h.service.Authorize(ctx, fullName))
}

func (h *PaymentHandler) Capture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ModificationRequest
	if err := readRequest(r, &req); err != nil {
		WriteValidationError(ctx, w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	if req.PSPReference == "" || req.Reference == "" {
		WriteValidationError(ctx, w, "PSP reference and reference are required")
		return
	}
	slog.InfoContext(ctx, "Capture request", slog.Any("request", req))

	WriteResult(ctx, w, h.service.Capture(ctx, req.PSPReference, req.Reference))
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ModificationRequest
	if err := readRequest(r, &req); err != nil {
		WriteValidationError(ctx, w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	if req.PSPReference == "" || req.Reference == "" {
		WriteValidationError(ctx, w, "PSP reference and reference are required")
		return
	}
	slog.InfoContext(ctx, "Refund request", slog.Any("request", req))

	WriteResult(ctx, w, h.service.Refund(ctx, req.PSPReference, req.Reference))
}

func (h *PaymentHandler) Recurring(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RecurringRequest
	if err := readRequest(r, &req); err != nil {
		WriteValidationError(ctx, w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	if req.RecurringDetailReference == "" || req.ShopperReference == "" || req.Reference == "" {
		WriteValidationError(ctx, w, "Recurring detail reference, shopper reference, and reference are required")
		return
	}
	slog.InfoContext(ctx, "Recurring request", slog.Any("request", req))

	WriteResult(ctx, w, h.service.Recurring(ctx, req.RecurringDetailReference, req.ShopperReference, req.Reference))
}

func WriteValidationError(ctx context.Context, w http.ResponseWriter, message string) {
	slog.ErrorContext(ctx, "Validation failed", slog.String("error", message))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(model.Result{Error: message}); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func WriteResult(ctx context.Context, w http.ResponseWriter, res model.Result) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.ErrorContext(ctx, "Failed to encode response", slog.Any("error", err))
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func readRequest(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("unable to read request body: %w", err)
	}
	defer r.Body.Close()

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
