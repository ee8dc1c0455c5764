package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"storefront/models"
)

// Mini-cart placeholders rendered into the body region
const (
	MiniCartLoadingHTML  = `<div class="text-muted small p-3">Cargando…</div>`
	MiniCartRejectedHTML = `<div class="text-danger small p-3">No se pudo cargar el carrito</div>`
	MiniCartInvalidHTML  = `<div class="text-danger small p-3">Error: respuesta inválida del servidor</div>`
	MiniCartEmptyHTML    = `<div class='text-muted small p-3'>Carrito vacío</div>`
)

// MiniCartStatusErrorHTML is the placeholder for a non-success HTTP status
func MiniCartStatusErrorHTML(status int) string {
	return fmt.Sprintf(`<div class="text-danger small p-3">Error cargando carrito (%d)</div>`, status)
}

// HTMLHandle is a display region whose inner HTML can be replaced
type HTMLHandle interface {
	SetHTML(html string)
}

// BadgeHandle is the cart count badge
type BadgeHandle interface {
	SetText(text string)
	SetHidden(hidden bool)
}

// MiniCartView holds the display handles of the mini-cart.
// A nil handle means the anchor is absent from the page; updates to it are skipped.
type MiniCartView struct {
	Body  HTMLHandle
	Badge BadgeHandle
}

func (v MiniCartView) setBody(html string) {
	if v.Body != nil {
		v.Body.SetHTML(html)
	}
}

func (v MiniCartView) setBadge(count int) {
	if v.Badge == nil {
		return
	}
	v.Badge.SetText(strconv.Itoa(count))
	v.Badge.SetHidden(count <= 0)
}

// RefreshOutcome describes how a refresh ended
type RefreshOutcome string

const (
	RefreshUpdated       RefreshOutcome = "updated"
	RefreshHTTPError     RefreshOutcome = "http_error"
	RefreshRejected      RefreshOutcome = "rejected"
	RefreshInvalid       RefreshOutcome = "invalid"
	RefreshStale         RefreshOutcome = "stale"
	RefreshNotConfigured RefreshOutcome = "not_configured"
)

// CartSummaryRefresher reloads the mini-cart from the cart summary endpoint.
// Overlapping refreshes are resolved last-request-wins: starting a refresh cancels
// the one in flight, and a response that is no longer the latest is discarded.
type CartSummaryRefresher struct {
	client   *http.Client
	endpoint string
	view     MiniCartView

	mu         sync.Mutex
	seq        uint64
	cancelPrev context.CancelFunc
}

// NewCartSummaryRefresher creates a refresher; a nil client gets a 10 second timeout client
func NewCartSummaryRefresher(client *http.Client, endpoint string, view MiniCartView) *CartSummaryRefresher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &CartSummaryRefresher{
		client:   client,
		endpoint: endpoint,
		view:     view,
	}
}

// begin registers a new refresh and cancels the previous one
func (r *CartSummaryRefresher) begin(ctx context.Context) (context.Context, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancelPrev != nil {
		r.cancelPrev()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	r.cancelPrev = cancel
	r.seq++

	r.view.setBody(MiniCartLoadingHTML)
	return reqCtx, r.seq
}

// apply runs render only if token is still the latest refresh
func (r *CartSummaryRefresher) apply(token uint64, render func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token != r.seq {
		return false
	}
	render()
	if r.cancelPrev != nil {
		r.cancelPrev()
		r.cancelPrev = nil
	}
	return true
}

// Refresh fetches the cart summary and renders it. It never returns an error:
// every failure is rendered as a placeholder in the body region.
func (r *CartSummaryRefresher) Refresh(ctx context.Context) RefreshOutcome {
	if r.endpoint == "" {
		log.Printf("⚠️  CartSummaryRefresher: cart summary URL is not configured")
		return RefreshNotConfigured
	}

	reqCtx, token := r.begin(ctx)
	outcome, render := r.fetch(reqCtx)

	if !r.apply(token, render) {
		log.Printf("⏭️  CartSummaryRefresher: discarding stale response (%s)", outcome)
		return RefreshStale
	}
	return outcome
}

// fetch performs the request and returns the outcome with the matching render step
func (r *CartSummaryRefresher) fetch(ctx context.Context) (RefreshOutcome, func()) {
	invalid := func() { r.view.setBody(MiniCartInvalidHTML) }

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		log.Printf("❌ CartSummaryRefresher: failed to build request: %v", err)
		return RefreshInvalid, invalid
	}
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		log.Printf("❌ CartSummaryRefresher: request failed: %v", err)
		return RefreshInvalid, invalid
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		status := resp.StatusCode
		log.Printf("❌ CartSummaryRefresher: endpoint returned status %d", status)
		return RefreshHTTPError, func() { r.view.setBody(MiniCartStatusErrorHTML(status)) }
	}

	var summary models.CartSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		log.Printf("❌ CartSummaryRefresher: malformed body: %v", err)
		return RefreshInvalid, invalid
	}

	if !summary.OK {
		return RefreshRejected, func() { r.view.setBody(MiniCartRejectedHTML) }
	}

	return RefreshUpdated, func() {
		r.view.setBadge(summary.CartCount)
		html := summary.MiniCartHTML
		if html == "" {
			html = MiniCartEmptyHTML
		}
		r.view.setBody(html)
	}
}
