package api

import "github.com/gin-gonic/gin"

func (s *Server) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/status", s.status)

		api.GET("/images", s.listImages)
		api.POST("/images", s.uploadImages)
		api.POST("/images/url", s.addFromURL)
		api.DELETE("/images/:id", s.deleteImage)
		api.POST("/images/:id/move", s.moveImage)
		api.PATCH("/images/:id/label", s.setLabel)

		api.GET("/settings", s.getSettings)
		api.PUT("/settings", s.putSettings)

		api.GET("/layout", s.getLayout)
		api.GET("/preview", s.preview)
		api.GET("/export", s.exportBoard)
		api.GET("/gradient-preview", s.gradientPreview)
	}
}
