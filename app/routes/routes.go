package routes

import (
	"net/http"

	"blogapi/app/controllers"
	"blogapi/app/middleware"
	"blogapi/app/repositories"
	"blogapi/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// SetupRoutes defines the application's routes over the given store and returns a router.
func SetupRoutes(store repositories.Store, logger zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.ContentTypeJSON)

	postService := services.NewPostService(store, logger)
	postController := controllers.NewPostController(postService, logger)
	healthController := controllers.NewHealthController(store)

	router.HandleFunc("/healthz", healthController.Show).Methods(http.MethodGet)

	// Posts endpoints
	router.HandleFunc("/posts", postController.Index).Methods(http.MethodGet)
	router.HandleFunc("/posts", postController.Create).Methods(http.MethodPost)
	router.HandleFunc("/posts/{id}", postController.Show).Methods(http.MethodGet)
	router.HandleFunc("/posts/{id}", postController.Update).Methods(http.MethodPut)
	router.HandleFunc("/posts/{id}", postController.Delete).Methods(http.MethodDelete)

	router.NotFoundHandler = jsonError(http.StatusNotFound, "Not found")
	router.MethodNotAllowedHandler = jsonError(http.StatusMethodNotAllowed, "Method not allowed")

	return router
}

func jsonError(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"` + message + `"}`))
	})
}
