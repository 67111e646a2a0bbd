package domain

import "time"

// Validation statuses. A validation starts in-progress and moves to complete
// exactly once; there is no path back.
const (
	StatusInProgress = "in-progress"
	StatusComplete   = "complete"
)

// Inconsistency status tags as produced by the comparison collaborator.
const (
	InconsistencyMissing  = "Missing"
	InconsistencyPartial  = "Partial"
	InconsistencyMismatch = "Mismatch"
)

// Test case severities.
const (
	SeverityHigh   = "High"
	SeverityMedium = "Medium"
	SeverityLow    = "Low"
)

// Test case statuses.
const (
	TestStatusNew        = "New"
	TestStatusPassed     = "Passed"
	TestStatusFailed     = "Failed"
	TestStatusInProgress = "In Progress"
)

// Test case types.
const (
	TypeUI            = "UI"
	TypeFunctional    = "Functional"
	TypeUX            = "UX"
	TypeAccessibility = "Accessibility"
	TypeVisual        = "Visual"
)

// Validation is one run of comparing a project's requirement documents
// against its design reference. The aggregate fields stay nil until the
// validation completes.
type Validation struct {
	ID                int                `json:"id"`
	ProjectID         int                `json:"projectId"`
	StartedAt         time.Time          `json:"startedAt"`
	CompletedAt       *time.Time         `json:"completedAt"`
	Status            string             `json:"status"`
	ComplianceScore   *int               `json:"complianceScore"`
	CompliantElements *int               `json:"compliantElements"`
	Inconsistencies   *int               `json:"inconsistencies"`
	Results           *ValidationResults `json:"results"`
}

// ValidationResults is the payload the comparison collaborator attaches on
// completion: an ordered list of discrepancy records.
type ValidationResults struct {
	Inconsistencies []Inconsistency `json:"inconsistencies"`
}

type Inconsistency struct {
	Name            string `json:"name"`
	Status          string `json:"status"`
	Description     string `json:"description"`
	RequirementID   string `json:"requirementId,omitempty"`
	DesignElementID string `json:"designElementId,omitempty"`
}

// TestCase is a generated checklist item derived from a validation's
// inconsistencies. Code carries the human-readable TC-<validation>-<n> id.
type TestCase struct {
	ID            int       `json:"id"`
	ValidationID  int       `json:"validationId"`
	Code          string    `json:"testCaseId"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"`
	Severity      string    `json:"severity"`
	Status        string    `json:"status"`
	Requirement   string    `json:"requirement,omitempty"`
	DesignElement string    `json:"designElement,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateTestCase is the creation payload the synthesizer hands the repo.
type CreateTestCase struct {
	Code          string
	Name          string
	Description   string
	Type          string
	Severity      string
	Status        string
	Requirement   string
	DesignElement string
}

// CompleteRequest carries the aggregates the comparison collaborator computed.
type CompleteRequest struct {
	ComplianceScore   int
	CompliantElements int
	Inconsistencies   int
	Results           ValidationResults
}

// ValidationPatch is a partial update; nil fields are left unchanged.
type ValidationPatch struct {
	Status            *string
	CompletedAt       *time.Time
	ComplianceScore   *int
	CompliantElements *int
	Inconsistencies   *int
	Results           *ValidationResults
}

// ExportDescriptor names the artifact the export collaborator would render.
type ExportDescriptor struct {
	DownloadURL string `json:"downloadUrl"`
	Format      string `json:"format"`
	FileName    string `json:"fileName"`
}

func ValidStatus(s string) bool {
	return s == StatusInProgress || s == StatusComplete
}

func ValidSeverity(s string) bool {
	return s == SeverityHigh || s == SeverityMedium || s == SeverityLow
}

func ValidTestStatus(s string) bool {
	return s == TestStatusNew || s == TestStatusPassed ||
		s == TestStatusFailed || s == TestStatusInProgress
}

func ValidTestType(s string) bool {
	return s == TypeUI || s == TypeFunctional || s == TypeUX ||
		s == TypeAccessibility || s == TypeVisual
}
