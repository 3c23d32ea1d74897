package routers

import (
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.Get("/", doctorController.FindAll)
	router.Get("/{id}", doctorController.FindByID)
	router.With(middlewares.RequireAdminAPIKey).Post("/", doctorController.CreateDoctor)
	router.With(middlewares.RequireAdminAPIKey).Put("/{id}", doctorController.UpdateDoctor)
	router.With(middlewares.RequireAdminAPIKey).Delete("/{id}", doctorController.DeleteDoctor)
}
