package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/5dpapa/portfolio/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Session *apiHandler.SessionHandler
	Health  *apiHandler.HealthHandler
}

// New wires the loopback listener routes. The listener binds to 127.0.0.1, so
// no auth middleware guards it; requestLog wraps every route instead.
func New(handlers Handlers, requestLog func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	wrap := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		if requestLog == nil {
			return h
		}
		return requestLog(h)
	}

	r.GET("/health", wrap(handlers.Health.Check))

	r.POST("/login", wrap(handlers.Auth.Login))
	r.POST("/logout", wrap(handlers.Auth.Logout))
	r.GET("/session", wrap(handlers.Session.Get))

	// Redirect flow: phase 1 hands control to the provider, phase 2 receives it back.
	r.GET("/oauth/{provider}", wrap(handlers.Auth.Begin))
	r.GET("/oauth/{provider}/callback", wrap(handlers.Auth.Callback))

	return r
}
