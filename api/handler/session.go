package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/5dpapa/portfolio/pkg/httpcontext"
	sessionUC "github.com/5dpapa/portfolio/usecase/session"
)

// SessionHandler serves the read-only session view consumed by local UI
// surfaces. It never mutates state.
type SessionHandler struct {
	baseHandler
	store *sessionUC.Store
}

func NewSessionHandler(store *sessionUC.Store, adapter *httpcontext.Adapter, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		store:       store,
	}
}

// Get handles GET /session.
func (h *SessionHandler) Get(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, sessionView(h.store.GetSession()))
}
