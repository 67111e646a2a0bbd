package http

import "github.com/gin-gonic/gin"

// RegisterProjectSubroutes mounts the validation routes that hang off a
// project, at GET/POST /projects/:id/validations.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.GET("/:id/validations", h.listByProject)
	rg.POST("/:id/validations", h.start)
}

// Register mounts the validation-rooted routes on rg, which is expected to be
// the versioned API root.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/validations/:id", h.get)
	rg.PATCH("/validations/:id", h.patch)
	rg.DELETE("/validations/:id", h.delete)
	rg.POST("/validations/:id/complete", h.complete)

	rg.GET("/validations/:id/test-cases", h.listTestCases)
	rg.POST("/validations/:id/test-cases/generate", h.generateTestCases)
	rg.POST("/validations/:id/test-cases/export", h.exportTestCases)
}
