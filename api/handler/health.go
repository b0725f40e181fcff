package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/5dpapa/portfolio/pkg/httpcontext"
	sessionUC "github.com/5dpapa/portfolio/usecase/session"
)

// HealthHandler reports liveness of the callback listener and the session
// state it fronts.
type HealthHandler struct {
	baseHandler
	store   *sessionUC.Store
	backend string
}

func NewHealthHandler(store *sessionUC.Store, backend string, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
		backend:     backend,
	}
}

// Check handles GET /health.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	payload := map[string]interface{}{
		"timestamp":     time.Now().UTC(),
		"storage":       h.backend,
		"authenticated": h.store.Authenticated(),
	}
	h.respondSuccess(ctx, http.StatusOK, payload)
}
