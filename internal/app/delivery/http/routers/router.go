package routers

import (
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"
	"doctor-appointment-service/internal/pkg/constvars"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	metricsHandler http.Handler,
	healthController *controllers.HealthController,
	doctorController *controllers.DoctorController,
	blogController *controllers.BlogController,
	appointmentController *controllers.AppointmentController,
) {
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	corsOptions := cors.Options{
		AllowedOrigins: internalConfig.App.AllowedOrigins,
		AllowedMethods: []string{
			constvars.MethodGet,
			constvars.MethodPost,
			constvars.MethodPut,
			constvars.MethodDelete,
			constvars.MethodOptions,
		},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderAuthorization,
			constvars.HeaderContentType,
			constvars.HeaderAPIKey,
			constvars.HeaderXRequestID,
		},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(middlewares.GlobalRateLimit())
	}
	router.Use(middlewares.BodyLimit)
	router.Use(middlewares.HTTPMetrics)

	router.Get("/health", healthController.CheckHealth)
	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler)
	}

	attachAPIRoutes := func(r chi.Router) {
		r.Use(middlewares.Identity)

		r.Route("/doctors", func(r chi.Router) {
			attachDoctorRoutes(r, middlewares, doctorController)
		})

		r.Route("/blogs", func(r chi.Router) {
			attachBlogRoutes(r, middlewares, blogController)
		})

		r.Route("/appointments", func(r chi.Router) {
			attachAppointmentRoutes(r, middlewares, appointmentController)
		})
	}

	if internalConfig.App.EndpointPrefix == "" {
		router.Group(attachAPIRoutes)
		return
	}
	router.Route(fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix), attachAPIRoutes)
}
