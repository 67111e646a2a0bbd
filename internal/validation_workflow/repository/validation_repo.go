package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/domain"
	"github.com/redis/go-redis/v9"
)

const (
	validationSeqKey    = "rl:seq:validation"        // INCR counter for validation IDs
	validationKeyPrefix = "rl:validation:"           // Validation data: rl:validation:{id}
	projectIdxPrefix    = "rl:validation:byproject:" // Set of validation IDs per project
)

// ValidationRepository stores validations in redis. Read-modify-write updates
// take a per-id lock so concurrent lifecycle transitions on the same
// validation cannot lose writes (single-process guarantee).
type ValidationRepository struct {
	client *redis.Client
	locks  [16]sync.Mutex
}

func NewValidationRepository(client *redis.Client) *ValidationRepository {
	return &ValidationRepository{client: client}
}

// Create starts a validation for the project: in-progress, all aggregate
// fields null.
func (r *ValidationRepository) Create(ctx context.Context, projectID int) (*domain.Validation, error) {
	id, err := r.client.Incr(ctx, validationSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("next validation id: %w", err)
	}

	v := &domain.Validation{
		ID:        int(id),
		ProjectID: projectID,
		StartedAt: time.Now().UTC(),
		Status:    domain.StatusInProgress,
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal validation: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.validationKey(v.ID), data, 0)
	pipe.SAdd(ctx, r.projectIdxKey(projectID), v.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store validation: %w", err)
	}

	return v, nil
}

func (r *ValidationRepository) Get(ctx context.Context, id int) (*domain.Validation, error) {
	data, err := r.client.Get(ctx, r.validationKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrValidationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get validation: %w", err)
	}

	var v domain.Validation
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("unmarshal validation: %w", err)
	}
	return &v, nil
}

func (r *ValidationRepository) ListByProject(ctx context.Context, projectID int) ([]domain.Validation, error) {
	ids, err := r.client.SMembers(ctx, r.projectIdxKey(projectID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list validation ids: %w", err)
	}

	out := make([]domain.Validation, 0, len(ids))
	for _, idStr := range ids {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		v, err := r.Get(ctx, id)
		if errors.Is(err, domain.ErrValidationNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Patch merges the non-nil fields into the stored validation. Transition
// legality is the service's concern; the repo only guarantees the merge is
// not interleaved with another writer on the same id.
func (r *ValidationRepository) Patch(ctx context.Context, id int, patch domain.ValidationPatch) (*domain.Validation, error) {
	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	v, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.applyPatch(ctx, id, v, patch)
}

// CompleteOnce applies the completion patch only if the validation is still
// in flight. The already-complete check happens under the same per-id lock as
// the write, so two racing completions cannot both succeed.
func (r *ValidationRepository) CompleteOnce(ctx context.Context, id int, patch domain.ValidationPatch) (*domain.Validation, error) {
	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	v, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Status == domain.StatusComplete {
		return nil, domain.ErrAlreadyComplete
	}
	return r.applyPatch(ctx, id, v, patch)
}

func (r *ValidationRepository) lockFor(id int) *sync.Mutex {
	return &r.locks[uint(id)%uint(len(r.locks))]
}

// applyPatch merges the non-nil fields into v and writes it back. Callers
// hold the per-id lock.
func (r *ValidationRepository) applyPatch(ctx context.Context, id int, v *domain.Validation, patch domain.ValidationPatch) (*domain.Validation, error) {
	if patch.Status != nil {
		v.Status = *patch.Status
	}
	if patch.CompletedAt != nil {
		v.CompletedAt = patch.CompletedAt
	}
	if patch.ComplianceScore != nil {
		v.ComplianceScore = patch.ComplianceScore
	}
	if patch.CompliantElements != nil {
		v.CompliantElements = patch.CompliantElements
	}
	if patch.Inconsistencies != nil {
		v.Inconsistencies = patch.Inconsistencies
	}
	if patch.Results != nil {
		v.Results = patch.Results
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal validation: %w", err)
	}
	if err := r.client.Set(ctx, r.validationKey(id), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("store validation: %w", err)
	}
	return v, nil
}

func (r *ValidationRepository) Delete(ctx context.Context, id int) (bool, error) {
	v, err := r.Get(ctx, id)
	if errors.Is(err, domain.ErrValidationNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.validationKey(id))
	pipe.SRem(ctx, r.projectIdxKey(v.ProjectID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("delete validation: %w", err)
	}
	return true, nil
}

func (r *ValidationRepository) validationKey(id int) string {
	return validationKeyPrefix + strconv.Itoa(id)
}

func (r *ValidationRepository) projectIdxKey(projectID int) string {
	return projectIdxPrefix + strconv.Itoa(projectID)
}
