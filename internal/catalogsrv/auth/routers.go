package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mediakite/catalogd/internal/common/httpx"
)

var authHandlers = []httpx.ResponseHandlerParam{
	{
		Method:  http.MethodPost,
		Path:    "/register",
		Handler: registerUser,
	},
	{
		Method:  http.MethodPost,
		Path:    "/login",
		Handler: loginUser,
	},
}

var authenticatedHandlers = []httpx.ResponseHandlerParam{
	{
		Method:  http.MethodGet,
		Path:    "/me",
		Handler: getCurrentUser,
	},
}

// Router creates and configures a new router for authentication-related
// endpoints. Register and login are open; /me requires a valid token.
func Router(r chi.Router) chi.Router {
	router := chi.NewRouter()
	for _, handler := range authHandlers {
		router.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
	router.Group(func(gr chi.Router) {
		gr.Use(ContextMiddleware)
		for _, handler := range authenticatedHandlers {
			gr.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
		}
	})
	return router
}
