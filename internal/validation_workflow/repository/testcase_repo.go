package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/domain"
	"github.com/redis/go-redis/v9"
)

const (
	testCaseSeqKey      = "rl:seq:testcase"            // INCR counter for test case IDs
	testCaseKeyPrefix   = "rl:testcase:"               // Test case data: rl:testcase:{id}
	validationIdxPrefix = "rl:testcase:byvalidation:"  // Set of test case IDs per validation
)

type TestCaseRepository struct {
	client *redis.Client
}

func NewTestCaseRepository(client *redis.Client) *TestCaseRepository {
	return &TestCaseRepository{client: client}
}

// CreateBatch stores the payloads in order, assigning sequential IDs.
func (r *TestCaseRepository) CreateBatch(ctx context.Context, validationID int, payloads []domain.CreateTestCase) ([]domain.TestCase, error) {
	out := make([]domain.TestCase, 0, len(payloads))
	for _, p := range payloads {
		tc, err := r.create(ctx, validationID, p)
		if err != nil {
			return nil, err
		}
		out = append(out, *tc)
	}
	return out, nil
}

func (r *TestCaseRepository) create(ctx context.Context, validationID int, p domain.CreateTestCase) (*domain.TestCase, error) {
	id, err := r.client.Incr(ctx, testCaseSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("next test case id: %w", err)
	}

	tc := &domain.TestCase{
		ID:            int(id),
		ValidationID:  validationID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		Type:          p.Type,
		Severity:      p.Severity,
		Status:        p.Status,
		Requirement:   p.Requirement,
		DesignElement: p.DesignElement,
		CreatedAt:     time.Now().UTC(),
	}

	data, err := json.Marshal(tc)
	if err != nil {
		return nil, fmt.Errorf("marshal test case: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.testCaseKey(tc.ID), data, 0)
	pipe.SAdd(ctx, r.validationIdxKey(validationID), tc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store test case: %w", err)
	}

	return tc, nil
}

func (r *TestCaseRepository) ListByValidation(ctx context.Context, validationID int) ([]domain.TestCase, error) {
	ids, err := r.client.SMembers(ctx, r.validationIdxKey(validationID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list test case ids: %w", err)
	}

	out := make([]domain.TestCase, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		tc, err := r.Get(ctx, id)
		if errors.Is(err, domain.ErrTestCaseNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *tc)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TestCaseRepository) Get(ctx context.Context, id int) (*domain.TestCase, error) {
	data, err := r.client.Get(ctx, r.testCaseKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrTestCaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get test case: %w", err)
	}

	var tc domain.TestCase
	if err := json.Unmarshal([]byte(data), &tc); err != nil {
		return nil, fmt.Errorf("unmarshal test case: %w", err)
	}
	return &tc, nil
}

// DeleteByValidation drops every test case of the validation. Regeneration
// calls this first so a batch always fully replaces the previous one.
func (r *TestCaseRepository) DeleteByValidation(ctx context.Context, validationID int) error {
	ids, err := r.client.SMembers(ctx, r.validationIdxKey(validationID)).Result()
	if err != nil {
		return fmt.Errorf("list test case ids: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, idStr := range ids {
		pipe.Del(ctx, testCaseKeyPrefix+idStr)
	}
	pipe.Del(ctx, r.validationIdxKey(validationID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete test cases: %w", err)
	}
	return nil
}

func (r *TestCaseRepository) Delete(ctx context.Context, id int) (bool, error) {
	tc, err := r.Get(ctx, id)
	if errors.Is(err, domain.ErrTestCaseNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.testCaseKey(id))
	pipe.SRem(ctx, r.validationIdxKey(tc.ValidationID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("delete test case: %w", err)
	}
	return true, nil
}

func (r *TestCaseRepository) testCaseKey(id int) string {
	return testCaseKeyPrefix + strconv.Itoa(id)
}

func (r *TestCaseRepository) validationIdxKey(validationID int) string {
	return validationIdxPrefix + strconv.Itoa(validationID)
}
