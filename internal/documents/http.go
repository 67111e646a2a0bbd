package documents

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/projects"
	"github.com/gin-gonic/gin"
)

// maxUploadSize caps requirement document uploads at 10 MiB, matching the
// dashboard's limit.
const maxUploadSize = 10 << 20

type Handler struct {
	repo     *Repo
	projects projects.Store
}

func NewHandler(repo *Repo, projectStore projects.Store) *Handler {
	return &Handler{repo: repo, projects: projectStore}
}

// RegisterProjectSubroutes mounts the per-project document routes on the
// projects group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.GET("/:id/documents", h.listByProject)
	rg.POST("/:id/documents", h.upload)
}

// Register mounts the document-scoped routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/documents/:id", h.get)
	rg.PUT("/documents/:id/content", h.attachContent)
	rg.DELETE("/documents/:id", h.delete)
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
	c.JSON(http.StatusOK, gin.H{"ok": true, "documents": items})
}

func (h *Handler) upload(c *gin.Context) {
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

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	file, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": "file exceeds the 10 MiB upload limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "no file uploaded"})
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = file.Filename
	}

	doc, err := h.repo.Create(c.Request.Context(), CreateDocument{
		ProjectID:        projectID,
		Name:             name,
		OriginalFilename: file.Filename,
		FileSize:         file.Size,
		FileType:         file.Header.Get("Content-Type"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	// The file bytes are handed to the external parser out of band; only the
	// metadata record lives here until the parser calls back.
	c.JSON(http.StatusCreated, gin.H{"ok": true, "document": doc})
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid document id"})
		return
	}

	doc, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "document": doc})
}

type attachContentReq struct {
	Content               string          `json:"content" binding:"required"`
	ExtractedRequirements json.RawMessage `json:"extractedRequirements"`
}

func (h *Handler) attachContent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid document id"})
		return
	}

	var req attachContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid document data", "details": err.Error()})
		return
	}

	doc, err := h.repo.AttachContent(c.Request.Context(), id, req.Content, req.ExtractedRequirements)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "document": doc})
}

func (h *Handler) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid document id"})
		return
	}

	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "document not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
