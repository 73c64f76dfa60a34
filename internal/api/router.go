package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter creates the router and registers all handlers.
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	domainHandler *DomainHandler,
	authMiddleware func(http.Handler) http.Handler,
) *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint (public, no auth)
	r.HandleFunc("/health", HealthCheckHandler).Methods(http.MethodGet)

	// Public auth routes (no middleware): the IdP itself authenticates these
	authRouter := r.PathPrefix("/api/v1/user/auth").Subrouter()
	authHandler.RegisterRoutes(authRouter)

	// Protected user/domain routes
	apiRouter := r.PathPrefix("/api/v1/user").Subrouter()
	if authMiddleware != nil {
		apiRouter.Use(authMiddleware)
	}
	// Domain routes first: the user routes carry a {userId} wildcard that
	// would otherwise shadow /domain paths.
	domainHandler.RegisterRoutes(apiRouter)
	userHandler.RegisterRoutes(apiRouter)

	return r
}
