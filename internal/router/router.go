package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/wanderke/wanderke-api/internal/api/auth"
	"github.com/wanderke/wanderke-api/internal/container"
)

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(c *container.Container) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	authenticate := auth.Authenticate(c.Logger, c.Config.JWT)

	r.Route("/api", func(r chi.Router) {

		// --- Public routes ---
		r.Group(func(r chi.Router) {
			r.Post("/register", c.AuthHandler.Register)
			r.Post("/login", c.AuthHandler.Login)

			r.Get("/counties", c.CountyHandler.GetCounties)
			r.Get("/counties/{id}", c.CountyHandler.GetCounty)
			r.Get("/counties/{id}/events", c.CountyHandler.GetCountyEvents)

			r.Get("/places", c.PlaceHandler.GetPlaces)
			r.Get("/places/{id}", c.PlaceHandler.GetPlace)

			r.Get("/hotels", c.HotelHandler.GetHotels)
			r.Get("/hotels/{id}", c.HotelHandler.GetHotel)

			r.Post("/contact", c.ContactHandler.SubmitMessage)
		})

		// --- Protected routes ---
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			// The mobile client has always sent logout as a GET.
			r.Get("/logout", c.AuthHandler.Logout)

			r.Get("/users", c.UserHandler.GetUser)
			r.Put("/users", c.UserHandler.UpdateUser)
			r.Delete("/users", c.UserHandler.DeleteUser)

			r.Post("/users/addToFavorites", c.FavoritesHandler.AddToFavorites)
			r.Get("/users/favorites", c.FavoritesHandler.GetFavorites)
			r.Post("/users/removeFromFavorites", c.FavoritesHandler.RemoveFromFavorites)

			r.Get("/media/upload-url", c.MediaHandler.GetUploadURL)
		})
	})

	return r
}
