package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authsvc "github.com/ivankudzin/tailmates/internal/services/auth"
	discoverysvc "github.com/ivankudzin/tailmates/internal/services/discovery"
	likessvc "github.com/ivankudzin/tailmates/internal/services/likes"
	matchessvc "github.com/ivankudzin/tailmates/internal/services/matches"
	petssvc "github.com/ivankudzin/tailmates/internal/services/pets"
	swipesvc "github.com/ivankudzin/tailmates/internal/services/swipes"
	"github.com/ivankudzin/tailmates/internal/transport/http/handlers"
)

type Dependencies struct {
	JWTManager       *authsvc.JWTManager
	PetService       *petssvc.Service
	SwipeService     *swipesvc.Service
	DiscoveryService *discoverysvc.Service
	MatchService     *matchessvc.Service
	LikeService      *likessvc.Service
	HealthChecks     map[string]handlers.Pinger
	Logger           *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.HealthChecks)
	petsHandler := handlers.NewPetsHandler(deps.PetService)
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	discoveryHandler := handlers.NewDiscoveryHandler(deps.DiscoveryService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	likesHandler := handlers.NewLikesHandler(deps.LikeService)
	adminHandler := handlers.NewAdminHandler(deps.MatchService, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(AuthMiddleware(deps.JWTManager, deps.Logger))

		v1.With(RequireCapability(authsvc.CapSwipe)).Post("/swipes", swipeHandler.Handle)

		v1.Route("/pets", func(pets chi.Router) {
			pets.With(RequireCapability(authsvc.CapManagePets)).Post("/", petsHandler.Create)
			pets.With(RequireCapability(authsvc.CapManagePets)).Get("/", petsHandler.List)

			pets.Route("/{pet_id}", func(pet chi.Router) {
				pet.With(RequireCapability(authsvc.CapDiscover)).Get("/discovery", discoveryHandler.Handle)
				pet.Group(func(viewer chi.Router) {
					viewer.Use(RequireCapability(authsvc.CapViewMatches))
					viewer.Get("/matches", matchesHandler.Handle)
					viewer.Get("/likes/received", likesHandler.Received)
					viewer.Get("/likes/sent", likesHandler.Sent)
				})
			})
		})

		v1.With(RequireCapability(authsvc.CapRunReconcile)).Post("/admin/reconcile", adminHandler.Reconcile)
	})
}
