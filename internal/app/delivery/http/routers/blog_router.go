package routers

import (
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachBlogRoutes(router chi.Router, middlewares *middlewares.Middlewares, blogController *controllers.BlogController) {
	router.Get("/", blogController.FindAll)
	router.Get("/{id}", blogController.FindByID)
	router.With(middlewares.RequireAdminAPIKey).Post("/", blogController.CreateBlog)
	router.With(middlewares.RequireAdminAPIKey).Put("/{id}", blogController.UpdateBlog)
	router.With(middlewares.RequireAdminAPIKey).Delete("/{id}", blogController.DeleteBlog)
}
