package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/5dpapa/portfolio/api/transport"
	"github.com/5dpapa/portfolio/domain"
	"github.com/5dpapa/portfolio/pkg/httpcontext"
	authUC "github.com/5dpapa/portfolio/usecase/auth"
)

// AuthHandler exposes the login pathways on the loopback listener so local UI
// surfaces (login form, navbar) drive authentication over one interface.
type AuthHandler struct {
	baseHandler
	client *authUC.Client
}

func NewAuthHandler(client *authUC.Client, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		client:      client,
	}
}

// Login handles POST /login with a username/password payload.
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Username == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	sess, err := h.client.Login(stdCtx, authUC.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sessionView(sess))
}

// Logout handles POST /logout. It always succeeds.
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.client.Logout(stdCtx)
	h.respondSuccess(ctx, http.StatusOK, transport.SessionView{Authenticated: false})
}

// Begin handles GET /oauth/{provider}: phase 1 of the redirect flow. Control
// leaves the application via a 302 to the provider's consent screen.
func (h *AuthHandler) Begin(ctx *fasthttp.RequestCtx) {
	provider, _ := ctx.UserValue("provider").(string)

	var url string
	var err error
	switch provider {
	case "google":
		url, err = h.client.LoginWithGoogle()
	case "facebook":
		url, err = h.client.LoginWithFacebook()
	default:
		err = domain.ErrUnknownProvider
	}
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.Redirect(url, http.StatusFound)
}

// Callback handles GET /oauth/{provider}/callback: phase 2, where control
// re-enters the application. The flow always resolves here — either the store
// receives the new session or a classified failure is reported.
func (h *AuthHandler) Callback(ctx *fasthttp.RequestCtx) {
	provider, _ := ctx.UserValue("provider").(string)
	state := string(ctx.QueryArgs().Peek("state"))
	code := string(ctx.QueryArgs().Peek("code"))
	errParam := string(ctx.QueryArgs().Peek("error"))

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result := h.client.CompleteOAuth(stdCtx, provider, state, code, errParam)
	if result.Err != nil {
		h.respondError(ctx, result.Err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, sessionView(result.Session))
}

func sessionView(sess *domain.Session) transport.SessionView {
	view := transport.SessionView{
		Authenticated: sess != nil,
	}
	if sess != nil {
		view.User = sess.User
		if !sess.ExpiresAt.IsZero() {
			expires := sess.ExpiresAt
			view.ExpiresAt = &expires
		}
	}
	return view
}
