package http

import (
	"postboard/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API on r. The caller is expected to have installed
// middleware.Authenticate upstream; mutating routes additionally require a
// signed-in user.
func RegisterRoutes(r gin.IRouter, posts *PostHandler, profiles *ProfileHandler, auth *AuthHandler) {
	requireUser := middleware.RequireUser()

	postRoutes := r.Group("/posts")
	{
		postRoutes.GET("/", posts.ListPosts)
		postRoutes.POST("/", requireUser, posts.CreatePost)
		postRoutes.GET("/:id/", posts.GetPost)
		postRoutes.PUT("/:id/", requireUser, posts.UpdatePost)
		postRoutes.DELETE("/:id/", requireUser, posts.DeletePost)
	}

	profileRoutes := r.Group("/profiles")
	{
		profileRoutes.GET("/", profiles.ListProfiles)
		profileRoutes.GET("/:id/", profiles.GetProfile)
		profileRoutes.PUT("/:id/", requireUser, profiles.UpdateProfile)
	}

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", auth.Register)
		authRoutes.POST("/login", auth.Login)
		authRoutes.GET("/me", requireUser, auth.Me)
		authRoutes.PUT("/me", requireUser, auth.UpdateMe)
		authRoutes.DELETE("/me", requireUser, auth.DeleteMe)
	}
}
