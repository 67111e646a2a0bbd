package figma

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/projects"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo     *Repo
	projects projects.Store
}

func NewHandler(repo *Repo, projectStore projects.Store) *Handler {
	return &Handler{repo: repo, projects: projectStore}
}

// RegisterProjectSubroutes mounts the per-project design routes on the
// projects group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.GET("/:id/figma-designs", h.listByProject)
	rg.POST("/:id/figma-designs", h.create)
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/figma-designs/:id", h.get)
	rg.PATCH("/figma-designs/:id", h.update)
	rg.DELETE("/figma-designs/:id", h.delete)
}

func (h *Handler) listByProject(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return
	}

	items, err := h.repo.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "figmaDesigns": items})
}

type createReq struct {
	Name         string `json:"name" binding:"required"`
	FigmaFileURL string `json:"figmaFileUrl" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return
	}

	if _, err := h.projects.Get(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid figma design data", "details": err.Error()})
		return
	}

	d, err := h.repo.Create(c.Request.Context(), CreateDesign{
		ProjectID:    projectID,
		Name:         strings.TrimSpace(req.Name),
		FigmaFileURL: strings.TrimSpace(req.FigmaFileURL),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "figmaDesign": d})
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid design id"})
		return
	}

	d, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "figma design not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "figmaDesign": d})
}

type updateReq struct {
	Name         *string `json:"name"`
	FigmaFileURL *string `json:"figmaFileUrl"`
	AccessToken  *string `json:"accessToken"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}

func (h *Handler) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid design id"})
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid figma design data"})
		return
	}

	d, err := h.repo.Update(c.Request.Context(), id, UpdateDesign{
		Name:         req.Name,
		FigmaFileURL: req.FigmaFileURL,
		AccessToken:  req.AccessToken,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "figma design not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "figmaDesign": d})
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid design id"})
		return
	}

	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "figma design not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
