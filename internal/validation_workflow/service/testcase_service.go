package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/domain"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/repository"
)

// TestCaseService synthesizes test cases from a validation's stored
// comparison results and produces export descriptors.
//
// StampDemoSnapshot reproduces the dashboard's behavior of resetting the
// parent validation's aggregates to a fixed demonstration snapshot on every
// generation. Turn it off once a real comparison engine owns those numbers.
type TestCaseService struct {
	validations *repository.ValidationRepository
	testCases   *repository.TestCaseRepository
	rng         *rand.Rand

	StampDemoSnapshot bool
}

// NewTestCaseService builds the service. All randomness (pass/fail draws,
// fallback counts and field picks) flows from rng so tests can pin outputs.
func NewTestCaseService(validations *repository.ValidationRepository, testCases *repository.TestCaseRepository, rng *rand.Rand) *TestCaseService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TestCaseService{
		validations:       validations,
		testCases:         testCases,
		rng:               rng,
		StampDemoSnapshot: true,
	}
}

// Generate builds the test cases for a validation, fully replacing any batch
// a previous call produced.
func (s *TestCaseService) Generate(ctx context.Context, validationID int) ([]domain.TestCase, error) {
	v, err := s.validations.Get(ctx, validationID)
	if err != nil {
		return nil, err
	}

	var payloads []domain.CreateTestCase
	if v.Results != nil && len(v.Results.Inconsistencies) > 0 {
		payloads = s.fromInconsistencies(v.ID, v.Results.Inconsistencies)
	} else {
		payloads = s.fallback(v.ID)
	}

	if err := s.testCases.DeleteByValidation(ctx, validationID); err != nil {
		return nil, err
	}

	created, err := s.testCases.CreateBatch(ctx, validationID, payloads)
	if err != nil {
		return nil, err
	}

	if s.StampDemoSnapshot {
		if _, err := s.validations.Patch(ctx, validationID, demoSnapshotPatch()); err != nil {
			return nil, fmt.Errorf("stamp demo snapshot: %w", err)
		}
	}

	return created, nil
}

func (s *TestCaseService) List(ctx context.Context, validationID int) ([]domain.TestCase, error) {
	if _, err := s.validations.Get(ctx, validationID); err != nil {
		return nil, err
	}
	return s.testCases.ListByValidation(ctx, validationID)
}

// fromInconsistencies maps each inconsistency to exactly one test case, in
// order.
func (s *TestCaseService) fromInconsistencies(validationID int, incs []domain.Inconsistency) []domain.CreateTestCase {
	out := make([]domain.CreateTestCase, 0, len(incs))
	for i, inc := range incs {
		n := i + 1

		severity := domain.SeverityLow
		switch inc.Status {
		case domain.InconsistencyMissing:
			severity = domain.SeverityHigh
		case domain.InconsistencyPartial:
			severity = domain.SeverityMedium
		}

		typ := domain.TypeUI
		lower := strings.ToLower(inc.Name)
		switch {
		case strings.Contains(lower, "validation"), strings.Contains(lower, "process"):
			typ = domain.TypeFunctional
		case strings.Contains(lower, "accessibility"):
			typ = domain.TypeAccessibility
		}

		status := domain.TestStatusPassed
		if s.rng.Intn(2) == 1 {
			status = domain.TestStatusFailed
		}

		requirement := inc.RequirementID
		if requirement == "" {
			requirement = fmt.Sprintf("REQ-%03d", n)
		}
		designElement := inc.DesignElementID
		if designElement == "" {
			designElement = inc.Name
		}

		out = append(out, domain.CreateTestCase{
			Code:          fmt.Sprintf("TC-%d-%d", validationID, n),
			Name:          "Verify " + inc.Name,
			Description:   inc.Description,
			Type:          typ,
			Severity:      severity,
			Status:        status,
			Requirement:   requirement,
			DesignElement: designElement,
		})
	}
	return out
}

// fallback synthesizes 6-10 filler test cases when the validation carries no
// inconsistency records, drawing fields from the fixed per-type tables.
func (s *TestCaseService) fallback(validationID int) []domain.CreateTestCase {
	types := []string{domain.TypeUI, domain.TypeFunctional, domain.TypeUX, domain.TypeAccessibility, domain.TypeVisual}
	severities := []string{domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow}
	statuses := []string{domain.TestStatusFailed, domain.TestStatusPassed, domain.TestStatusInProgress}

	count := 6 + s.rng.Intn(5)
	out := make([]domain.CreateTestCase, 0, count)
	for i := 0; i < count; i++ {
		typ := types[s.rng.Intn(len(types))]
		entry := fallbackCatalog[typ][i%len(fallbackCatalog[typ])]
		elements := fallbackDesignElements[typ]

		out = append(out, domain.CreateTestCase{
			Code:          fmt.Sprintf("TC-%d-%d", validationID, i+1),
			Name:          entry.name,
			Description:   entry.description,
			Type:          typ,
			Severity:      severities[s.rng.Intn(len(severities))],
			Status:        statuses[s.rng.Intn(len(statuses))],
			Requirement:   fmt.Sprintf("REQ-%d", 100+i),
			DesignElement: elements[i%len(elements)],
		})
	}
	return out
}

// Export names the artifact the download endpoint would serve. No bytes are
// rendered here; the exporter is an external collaborator.
func (s *TestCaseService) Export(ctx context.Context, validationID int, format string) (*domain.ExportDescriptor, error) {
	if _, err := s.validations.Get(ctx, validationID); err != nil {
		return nil, err
	}

	switch format {
	case "xlsx", "csv", "pdf":
	default:
		format = "xlsx"
	}

	fileName := fmt.Sprintf("test-cases-%d.%s", validationID, format)
	return &domain.ExportDescriptor{
		DownloadURL: "/api/downloads/" + fileName,
		Format:      format,
		FileName:    fileName,
	}, nil
}
