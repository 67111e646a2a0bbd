package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/projects"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/domain"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/service"
)

type Handler struct {
	validations *service.ValidationService
	testCases   *service.TestCaseService
}

func NewHandler(validations *service.ValidationService, testCases *service.TestCaseService) *Handler {
	return &Handler{validations: validations, testCases: testCases}
}

func pathID(c *gin.Context, noun string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid " + noun + " id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) start(c *gin.Context) {
	projectID, ok := pathID(c, "project")
	if !ok {
		return
	}

	v, err := h.validations.Start(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "validation": v})
}

func (h *Handler) listByProject(c *gin.Context) {
	projectID, ok := pathID(c, "project")
	if !ok {
		return
	}

	items, err := h.validations.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "validations": items})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := pathID(c, "validation")
	if !ok {
		return
	}

	v, err := h.validations.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrValidationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "validation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "validation": v})
}

func (h *Handler) complete(c *gin.Context) {
	id, ok := pathID(c, "validation")
	if !ok {
		return
	}

	var req completeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid completion payload"})
		return
	}

	v, err := h.validations.Complete(c.Request.Context(), id, domain.CompleteRequest{
		ComplianceScore:   req.ComplianceScore,
		CompliantElements: req.CompliantElements,
		Inconsistencies:   req.Inconsistencies,
		Results:           req.Results,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "validation not found"})
		case errors.Is(err, domain.ErrAlreadyComplete):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "validation already complete"})
		case errors.Is(err, domain.ErrInvalidScore):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "compliance score must be between 0 and 100"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "validation": v})
}

func (h *Handler) patch(c *gin.Context) {
	id, ok := pathID(c, "validation")
	if !ok {
		return
	}

	var req patchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid validation data"})
		return
	}

	v, err := h.validations.Patch(c.Request.Context(), id, domain.ValidationPatch{
		Status:            req.Status,
		CompletedAt:       req.CompletedAt,
		ComplianceScore:   req.ComplianceScore,
		CompliantElements: req.CompliantElements,
		Inconsistencies:   req.Inconsistencies,
		Results:           req.Results,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "validation not found"})
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown validation status"})
		case errors.Is(err, domain.ErrStatusTransition):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "complete validations cannot be reopened"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "validation": v})
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := pathID(c, "validation")
	if !ok {
		return
	}

	removed, err := h.validations.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "validation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) listTestCases(c *gin.Context) {
	id, ok := pathID(c, "validation")
	if !ok {
		return
	}

	items, err := h.testCases.List(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrValidationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "validation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "testCases": items})
}

func (h *Handler) generateTestCases(c *gin.Context) {
	id, ok := pathID(c, "validation")
	if !ok {
		return
	}

	items, err := h.testCases.Generate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrValidationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "validation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "testCases": items})
}

func (h *Handler) exportTestCases(c *gin.Context) {
	id, ok := pathID(c, "validation")
	if !ok {
		return
	}

	// Body is optional; missing or malformed payloads fall back to xlsx.
	var req exportReq
	_ = c.ShouldBindJSON(&req)

	desc, err := h.testCases.Export(c.Request.Context(), id, req.Format)
	if err != nil {
		if errors.Is(err, domain.ErrValidationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "validation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "export": desc})
}
