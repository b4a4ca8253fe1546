package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/alekpstro/UGEvents/internal/delivery/http/controllers"
	"github.com/alekpstro/UGEvents/internal/delivery/http/middleware"
	"github.com/alekpstro/UGEvents/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Routes under /events/manage and /profile require a valid session token.
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	membershipController *controllers.MembershipController,
	profileController *controllers.ProfileController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/register", authController.Register)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events. The calendar and manage listings serve the same data; the
	// manage view differs only on the client side.
	mux.HandleFunc("GET /events/calendar", eventController.List)
	mux.HandleFunc("GET /events/manage", eventController.List)
	mux.HandleFunc("POST /events/manage/create", auth(eventController.Create))
	mux.HandleFunc("GET /events/{eventID}", eventController.Get)
	mux.HandleFunc("PATCH /events/{eventID}/edit", auth(eventController.Update))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.Delete))

	// Memberships
	mux.HandleFunc("POST /events/{eventID}/join", auth(membershipController.Join))
	mux.HandleFunc("GET /events/{eventID}/participants", membershipController.Participants)

	// Profile
	mux.HandleFunc("GET /profile", auth(profileController.Get))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
