package routes

import (
	"net/http"

	"github.com/Ekhol/warbler/handlers"
	"github.com/Ekhol/warbler/monitoring"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(auth *handlers.AuthHandler, users *handlers.UserHandler, messages *handlers.MessageHandler) http.Handler {
	router := mux.NewRouter()

	// Landing and auth routes
	router.HandleFunc("/", auth.Home).Methods("GET")
	router.HandleFunc("/signup", auth.Signup).Methods("GET", "POST")
	router.HandleFunc("/login", auth.Login).Methods("GET", "POST")
	router.HandleFunc("/logout", auth.Logout).Methods("GET")

	// User routes
	router.HandleFunc("/users", users.List).Methods("GET")
	router.HandleFunc("/users/follow/{id:[0-9]+}", users.Follow).Methods("POST")
	router.HandleFunc("/users/stop-following/{id:[0-9]+}", users.StopFollowing).Methods("POST")
	router.HandleFunc("/users/{id:[0-9]+}", users.Show).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}/following", users.Following).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}/followers", users.Followers).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}/likes", users.Likes).Methods("GET")

	// Message routes
	router.HandleFunc("/messages/new", messages.New).Methods("GET", "POST")
	router.HandleFunc("/messages/{id:[0-9]+}", messages.Show).Methods("GET")
	router.HandleFunc("/messages/{id:[0-9]+}/delete", messages.Delete).Methods("POST")
	router.HandleFunc("/messages/{id:[0-9]+}/like", messages.Like).Methods("POST")

	// Add metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return monitoring.InstrumentHandler(router)
}
