package http

import (
	"time"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/domain"
)

type completeReq struct {
	ComplianceScore   int                      `json:"complianceScore"`
	CompliantElements int                      `json:"compliantElements"`
	Inconsistencies   int                      `json:"inconsistencies"`
	Results           domain.ValidationResults `json:"results"`
}

type patchReq struct {
	Status            *string                   `json:"status"`
	CompletedAt       *time.Time                `json:"completedAt"`
	ComplianceScore   *int                      `json:"complianceScore"`
	CompliantElements *int                      `json:"compliantElements"`
	Inconsistencies   *int                      `json:"inconsistencies"`
	Results           *domain.ValidationResults `json:"results"`
}

type exportReq struct {
	Format string `json:"format"`
}
