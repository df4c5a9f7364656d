package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mediakite/catalogd/internal/catalogsrv/auth"
	"github.com/mediakite/catalogd/internal/common/httpx"
)

var contentHandlers = []httpx.ResponseHandlerParam{
	{
		Method:  http.MethodGet,
		Path:    "/",
		Handler: getContentList,
	},
	{
		Method:  http.MethodGet,
		Path:    "/search/query",
		Handler: searchContent,
	},
	{
		Method:  http.MethodGet,
		Path:    "/stats/overview",
		Handler: GetStatistics,
	},
	{
		Method:  http.MethodGet,
		Path:    "/filters/ratings",
		Handler: getAllRatings,
	},
	{
		Method:  http.MethodGet,
		Path:    "/filters/categories",
		Handler: getAllCategories,
	},
	{
		Method:  http.MethodGet,
		Path:    "/filters/countries",
		Handler: getAllCountries,
	},
	{
		Method:  http.MethodGet,
		Path:    "/by-rating/{rating}",
		Handler: getContentByRating,
	},
	{
		Method:  http.MethodGet,
		Path:    "/by-category/{category}",
		Handler: getContentByCategory,
	},
	{
		Method:  http.MethodGet,
		Path:    "/{contentID}",
		Handler: getContentByID,
	},
}

// Router creates and configures a new router for catalog record reads.
// Every route requires a valid token.
func Router(r chi.Router) chi.Router {
	router := chi.NewRouter()
	router.Use(auth.ContextMiddleware)
	for _, handler := range contentHandlers {
		router.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
	return router
}

// ImportRouter creates the router for the bulk import trigger. The import is
// write-side and runs behind the same token gate as the read API.
func ImportRouter(r chi.Router) chi.Router {
	router := chi.NewRouter()
	router.Use(auth.ContextMiddleware)
	router.Method(http.MethodPost, "/", httpx.WrapHttpRsp(loadData))
	return router
}
