package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Route("/api", func(r chi.Router) {
		r.Get("/version", h.getVersion)
		r.Get("/remote/ping", h.pingRemote)

		r.Post("/sync/pull", h.pull)
		r.Post("/sync/push-all", h.pushAll)

		r.Get("/collections/status", h.collectionsStatus)
		r.Get("/collections", h.listCollections)
		r.Post("/collections", h.createCollection)

		r.Route("/collections/{id}", func(r chi.Router) {
			r.Get("/", h.getCollection)
			r.Put("/", h.updateCollection)
			r.Delete("/", h.deleteCollection)

			r.Post("/push", h.pushCollection)
			r.Post("/pull", h.pullCollection)
			r.Post("/resolve", h.resolveConflict)
			r.Post("/sync", h.setSyncEnabled)
			r.Delete("/remote", h.removeRemoteCollection)

			r.Post("/folders", h.saveFolder)
			r.Put("/folders/{folderID}", h.saveFolder)
			r.Delete("/folders/{folderID}", h.deleteFolder)

			r.Post("/requests", h.saveRequest)
			r.Put("/requests/{requestID}", h.saveRequest)
			r.Delete("/requests/{requestID}", h.deleteRequest)
			r.Post("/requests/{requestID}/push", h.pushRequest)
		})

		r.Get("/environments", h.listEnvironments)
		r.Post("/environments", h.saveEnvironment)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
