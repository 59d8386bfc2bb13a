package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users/register", h.register)
		r.Post("/api/users/login", h.login)
		r.Post("/api/users/check-email", h.checkEmail)
		r.Post("/api/users/check-username", h.checkUserName)

		r.Get("/api/posts/all", h.getAllPosts)
		r.Get("/api/posts/{postID}", h.getPost)
	})

	// routes behind the bearer-token gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users/details", h.userDetails)
		r.Put("/api/users/update-profile", h.updateProfile)
		r.Put("/api/users/reset-password", h.resetPassword)

		r.Post("/api/posts", h.createPost)
		r.Post("/api/posts/{postID}/comments", h.addComment)

		// admin-only routes; the admin gate reads the token attached above
		r.Group(func(ar chi.Router) {
			ar.Use(h.admin)

			ar.Put("/api/users/admin/update-user", h.adminUpdateUser)

			ar.Delete("/api/posts/{postID}", h.deletePost)
			ar.Delete("/api/posts/{postID}/comments/{commentID}", h.deleteComment)
		})
	})

	return router
}
