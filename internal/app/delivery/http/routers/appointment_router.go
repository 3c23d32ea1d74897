package routers

import (
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Get("/", appointmentController.FindAll)
	router.With(middlewares.RequireIdentity).Get("/me", appointmentController.FindMine)
	router.Get("/doctor/{id}", appointmentController.FindByDoctorID)
	router.Get("/{id}", appointmentController.FindByID)
	router.With(middlewares.BookingRateLimit()).Post("/", appointmentController.CreateAppointment)
	router.Put("/{id}", appointmentController.UpdateAppointment)
	router.Delete("/{id}", appointmentController.DeleteAppointment)
}
