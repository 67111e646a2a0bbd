package service

import (
	"context"
	"time"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/projects"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/domain"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/repository"
)

// ValidationService owns the validation lifecycle: in-progress at creation,
// complete exactly once, never backwards.
type ValidationService struct {
	validations *repository.ValidationRepository
	projects    projects.Store
}

func NewValidationService(validations *repository.ValidationRepository, projectStore projects.Store) *ValidationService {
	return &ValidationService{
		validations: validations,
		projects:    projectStore,
	}
}

// Start creates an in-progress validation for an existing project.
func (s *ValidationService) Start(ctx context.Context, projectID int) (*domain.Validation, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.validations.Create(ctx, projectID)
}

func (s *ValidationService) Get(ctx context.Context, id int) (*domain.Validation, error) {
	return s.validations.Get(ctx, id)
}

func (s *ValidationService) ListByProject(ctx context.Context, projectID int) ([]domain.Validation, error) {
	return s.validations.ListByProject(ctx, projectID)
}

// Complete attaches the comparison collaborator's results and moves the
// validation to its terminal state. A second completion is rejected.
func (s *ValidationService) Complete(ctx context.Context, id int, req domain.CompleteRequest) (*domain.Validation, error) {
	if req.ComplianceScore < 0 || req.ComplianceScore > 100 {
		return nil, domain.ErrInvalidScore
	}

	now := time.Now().UTC()
	status := domain.StatusComplete
	results := req.Results

	// The repo checks the already-complete condition under the same lock as
	// the write, so racing completions cannot both land.
	return s.validations.CompleteOnce(ctx, id, domain.ValidationPatch{
		Status:            &status,
		CompletedAt:       &now,
		ComplianceScore:   &req.ComplianceScore,
		CompliantElements: &req.CompliantElements,
		Inconsistencies:   &req.Inconsistencies,
		Results:           &results,
	})
}

// Patch merges arbitrary mutable fields. Status values outside the known set
// are rejected, as is any attempt to move a complete validation back to
// in-progress.
func (s *ValidationService) Patch(ctx context.Context, id int, patch domain.ValidationPatch) (*domain.Validation, error) {
	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		return nil, domain.ErrInvalidStatus
	}

	v, err := s.validations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && v.Status == domain.StatusComplete && *patch.Status != domain.StatusComplete {
		return nil, domain.ErrStatusTransition
	}

	return s.validations.Patch(ctx, id, patch)
}

func (s *ValidationService) Delete(ctx context.Context, id int) (bool, error) {
	return s.validations.Delete(ctx, id)
}
