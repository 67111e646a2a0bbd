package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/projects"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/domain"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/repository"
)

type testDeps struct {
	validations *ValidationService
	testCases   *TestCaseService
	projects    projects.Store
}

func setupTestCaseService(t *testing.T) testDeps {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	projectStore := projects.NewRepo(client)
	validationRepo := repository.NewValidationRepository(client)
	testCaseRepo := repository.NewTestCaseRepository(client)

	tcs := NewTestCaseService(validationRepo, testCaseRepo, rand.New(rand.NewSource(1)))
	tcs.StampDemoSnapshot = false

	return testDeps{
		validations: NewValidationService(validationRepo, projectStore),
		testCases:   tcs,
		projects:    projectStore,
	}
}

func startValidation(t *testing.T, d testDeps) *domain.Validation {
	p, err := d.projects.Create(context.Background(), projects.CreateProject{Name: "P", UserID: 1})
	require.NoError(t, err)
	v, err := d.validations.Start(context.Background(), p.ID)
	require.NoError(t, err)
	return v
}

func completeWith(t *testing.T, d testDeps, id int, incs []domain.Inconsistency) {
	_, err := d.validations.Complete(context.Background(), id, domain.CompleteRequest{
		ComplianceScore:   80,
		CompliantElements: 10,
		Inconsistencies:   len(incs),
		Results:           domain.ValidationResults{Inconsistencies: incs},
	})
	require.NoError(t, err)
}

func TestTestCaseService_GenerateFromInconsistencies(t *testing.T) {
	d := setupTestCaseService(t)
	ctx := context.Background()
	v := startValidation(t, d)

	completeWith(t, d, v.ID, []domain.Inconsistency{
		{Name: "Login Form Field Validation", Status: domain.InconsistencyMissing, Description: "email messaging absent"},
		{Name: "Product Filter Options", Status: domain.InconsistencyPartial, Description: "only 3 of 5 filters"},
		{Name: "Checkout Hero Banner", Status: domain.InconsistencyMismatch, Description: "wrong artwork"},
	})

	cases, err := d.testCases.Generate(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, cases, 3)

	t.Run("codes and names derive from the inconsistency", func(t *testing.T) {
		for i, tc := range cases {
			assert.Equal(t, fmt.Sprintf("TC-%d-%d", v.ID, i+1), tc.Code)
			assert.Equal(t, v.ID, tc.ValidationID)
		}
		assert.Equal(t, "Verify Login Form Field Validation", cases[0].Name)
		assert.Equal(t, "email messaging absent", cases[0].Description)
	})

	t.Run("severity follows the inconsistency status", func(t *testing.T) {
		assert.Equal(t, domain.SeverityHigh, cases[0].Severity)
		assert.Equal(t, domain.SeverityMedium, cases[1].Severity)
		assert.Equal(t, domain.SeverityLow, cases[2].Severity)
	})

	t.Run("type is inferred from the name", func(t *testing.T) {
		assert.Equal(t, domain.TypeFunctional, cases[0].Type)
		assert.Equal(t, domain.TypeUI, cases[1].Type)
		assert.Equal(t, domain.TypeUI, cases[2].Type)
	})

	t.Run("status is an immediate verdict", func(t *testing.T) {
		for _, tc := range cases {
			assert.Contains(t, []string{domain.TestStatusPassed, domain.TestStatusFailed}, tc.Status)
		}
	})

	t.Run("placeholder links fill missing references", func(t *testing.T) {
		assert.Equal(t, "REQ-001", cases[0].Requirement)
		assert.Equal(t, "Login Form Field Validation", cases[0].DesignElement)
	})

	t.Run("list returns the stored batch in order", func(t *testing.T) {
		got, err := d.testCases.List(ctx, v.ID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, cases[0].Code, got[0].Code)
	})
}

func TestTestCaseService_GenerateFallback(t *testing.T) {
	d := setupTestCaseService(t)
	ctx := context.Background()

	t.Run("produces 6 to 10 filler cases with valid fields", func(t *testing.T) {
		v := startValidation(t, d)

		cases, err := d.testCases.Generate(ctx, v.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(cases), 6)
		assert.LessOrEqual(t, len(cases), 10)

		for i, tc := range cases {
			assert.Equal(t, fmt.Sprintf("TC-%d-%d", v.ID, i+1), tc.Code)
			assert.True(t, domain.ValidTestType(tc.Type), "type %q", tc.Type)
			assert.True(t, domain.ValidSeverity(tc.Severity), "severity %q", tc.Severity)
			assert.True(t, domain.ValidTestStatus(tc.Status), "status %q", tc.Status)
			assert.Equal(t, fmt.Sprintf("REQ-%d", 100+i), tc.Requirement)
			assert.NotEmpty(t, tc.Name)
			assert.NotEmpty(t, tc.DesignElement)
		}
	})

	t.Run("empty result list also falls back", func(t *testing.T) {
		v := startValidation(t, d)
		completeWith(t, d, v.ID, nil)

		cases, err := d.testCases.Generate(ctx, v.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(cases), 6)
	})
}

func TestTestCaseService_RegenerateReplaces(t *testing.T) {
	d := setupTestCaseService(t)
	ctx := context.Background()
	v := startValidation(t, d)

	completeWith(t, d, v.ID, []domain.Inconsistency{
		{Name: "Single Item", Status: domain.InconsistencyMissing, Description: "x"},
	})

	first, err := d.testCases.Generate(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := d.testCases.Generate(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, second, 1)

	stored, err := d.testCases.List(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, second[0].ID, stored[0].ID)
	assert.NotEqual(t, first[0].ID, second[0].ID)
}

func TestTestCaseService_DemoSnapshot(t *testing.T) {
	d := setupTestCaseService(t)
	d.testCases.StampDemoSnapshot = true
	ctx := context.Background()
	v := startValidation(t, d)

	_, err := d.testCases.Generate(ctx, v.ID)
	require.NoError(t, err)

	got, err := d.validations.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, got.Status)
	require.NotNil(t, got.ComplianceScore)
	assert.Equal(t, 87, *got.ComplianceScore)
	require.NotNil(t, got.CompliantElements)
	assert.Equal(t, 23, *got.CompliantElements)
	require.NotNil(t, got.Inconsistencies)
	assert.Equal(t, 4, *got.Inconsistencies)
	require.NotNil(t, got.Results)
	assert.Len(t, got.Results.Inconsistencies, 3)
}

func TestTestCaseService_Export(t *testing.T) {
	d := setupTestCaseService(t)
	ctx := context.Background()
	v := startValidation(t, d)

	t.Run("known formats pass through", func(t *testing.T) {
		for _, format := range []string{"xlsx", "csv", "pdf"} {
			desc, err := d.testCases.Export(ctx, v.ID, format)
			require.NoError(t, err)
			assert.Equal(t, format, desc.Format)
			assert.Equal(t, fmt.Sprintf("test-cases-%d.%s", v.ID, format), desc.FileName)
			assert.Equal(t, "/api/downloads/"+desc.FileName, desc.DownloadURL)
		}
	})

	t.Run("unknown format coerces to xlsx", func(t *testing.T) {
		desc, err := d.testCases.Export(ctx, v.ID, "docx")
		require.NoError(t, err)
		assert.Equal(t, "xlsx", desc.Format)
	})

	t.Run("empty format coerces to xlsx", func(t *testing.T) {
		desc, err := d.testCases.Export(ctx, v.ID, "")
		require.NoError(t, err)
		assert.Equal(t, "xlsx", desc.Format)
	})

	t.Run("missing validation", func(t *testing.T) {
		_, err := d.testCases.Export(ctx, 404, "csv")
		assert.ErrorIs(t, err, domain.ErrValidationNotFound)
	})
}

func TestTestCaseService_ListRequiresValidation(t *testing.T) {
	d := setupTestCaseService(t)

	_, err := d.testCases.List(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrValidationNotFound)

	_, err = d.testCases.Generate(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrValidationNotFound)
}
