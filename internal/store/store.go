// internal/store/store.go

// Package store persists mixing sessions and their references in Redis.
// A session groups the references a user is combining; every key carries
// the session TTL so abandoned sessions expire on their own.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/andrecollier/website-builder-sub004/internal/common/database"
	apperrors "github.com/andrecollier/website-builder-sub004/internal/common/errors"
	"github.com/andrecollier/website-builder-sub004/internal/common/logger"
	"github.com/andrecollier/website-builder-sub004/internal/models"
)

const keyPrefix = "mixer:session:"

// validTransitions encodes the reference lifecycle. Ready is terminal
// except for a re-extraction, and errored references may be retried.
var validTransitions = map[models.ReferenceStatus][]models.ReferenceStatus{
	models.StatusPending:    {models.StatusProcessing, models.StatusError},
	models.StatusProcessing: {models.StatusReady, models.StatusError},
	models.StatusReady:      {models.StatusProcessing},
	models.StatusError:      {models.StatusProcessing},
}

// ReferenceStore is the Redis-backed session reference store.
type ReferenceStore struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

// New builds a store on an established Redis connection. ttl bounds the
// lifetime of every session key.
func New(db *database.RedisClient, ttl time.Duration, log logger.Logger) *ReferenceStore {
	return &ReferenceStore{
		client: db.Client,
		ttl:    ttl,
		log:    log,
	}
}

func sessionKey(sessionID string) string { return keyPrefix + sessionID }
func refsKey(sessionID string) string    { return keyPrefix + sessionID + ":refs" }
func orderKey(sessionID string) string   { return keyPrefix + sessionID + ":order" }
func mappingKey(sessionID string) string { return keyPrefix + sessionID + ":mapping" }
func sessionKeys(sessionID string) []string {
	return []string{sessionKey(sessionID), refsKey(sessionID), orderKey(sessionID), mappingKey(sessionID)}
}

// CreateSession allocates a new mixing session and returns its id.
func (s *ReferenceStore) CreateSession(ctx context.Context) (string, error) {
	sessionID := uuid.NewString()
	created := time.Now().UTC().Format(time.RFC3339)
	if err := s.client.Set(ctx, sessionKey(sessionID), created, s.ttl).Err(); err != nil {
		return "", apperrors.NewStoreUnavailableError(err)
	}
	s.log.Info("session created", map[string]interface{}{"session_id": sessionID})
	return sessionID, nil
}

// SessionExists reports whether the session is still alive.
func (s *ReferenceStore) SessionExists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, apperrors.NewStoreUnavailableError(err)
	}
	return n > 0, nil
}

// DeleteSession drops the session and everything stored under it.
func (s *ReferenceStore) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeys(sessionID)...).Err(); err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	return nil
}

// AddReference registers a new source website in the session, in pending
// state, and returns it with a freshly assigned id.
func (s *ReferenceStore) AddReference(ctx context.Context, sessionID, url, name string) (*models.Reference, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	ref := &models.Reference{
		ID:     uuid.NewString(),
		URL:    url,
		Name:   name,
		Status: models.StatusPending,
	}

	if err := s.saveReference(ctx, sessionID, ref); err != nil {
		return nil, err
	}
	if err := s.client.RPush(ctx, orderKey(sessionID), ref.ID).Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	if err := s.touch(ctx, sessionID); err != nil {
		return nil, err
	}

	s.log.Info("reference added", map[string]interface{}{
		"session_id":   sessionID,
		"reference_id": ref.ID,
		"url":          url,
	})
	return ref, nil
}

// GetReference loads one reference by id.
func (s *ReferenceStore) GetReference(ctx context.Context, sessionID, referenceID string) (*models.Reference, error) {
	payload, err := s.client.HGet(ctx, refsKey(sessionID), referenceID).Result()
	if err == redis.Nil {
		if exists, exErr := s.SessionExists(ctx, sessionID); exErr == nil && !exists {
			return nil, apperrors.NewSessionNotFoundError(sessionID)
		}
		return nil, apperrors.NewReferenceNotFoundError(referenceID)
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}

	var ref models.Reference
	if err := json.Unmarshal([]byte(payload), &ref); err != nil {
		return nil, apperrors.NewStoreUnavailableError(fmt.Errorf("corrupt reference %s: %w", referenceID, err))
	}
	return &ref, nil
}

// ListReferences returns the session's references in insertion order.
func (s *ReferenceStore) ListReferences(ctx context.Context, sessionID string) ([]*models.Reference, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}

	ids, err := s.client.LRange(ctx, orderKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}

	refs := make([]*models.Reference, 0, len(ids))
	for _, id := range ids {
		ref, err := s.GetReference(ctx, sessionID, id)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// UpdateStatus moves a reference through its lifecycle. Tokens must
// accompany the transition to ready and are ignored otherwise.
func (s *ReferenceStore) UpdateStatus(ctx context.Context, sessionID, referenceID string, to models.ReferenceStatus, tokens *models.DesignSystem) (*models.Reference, error) {
	ref, err := s.GetReference(ctx, sessionID, referenceID)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(ref.Status, to) {
		return nil, apperrors.NewStatusTransitionError(string(ref.Status), string(to))
	}
	if to == models.StatusReady && tokens == nil {
		return nil, apperrors.NewStatusTransitionError(string(ref.Status), string(to)+" without tokens")
	}

	ref.Status = to
	if to == models.StatusReady {
		ref.Tokens = tokens
	}

	if err := s.saveReference(ctx, sessionID, ref); err != nil {
		return nil, err
	}
	if err := s.touch(ctx, sessionID); err != nil {
		return nil, err
	}

	s.log.Info("reference status updated", map[string]interface{}{
		"session_id":   sessionID,
		"reference_id": referenceID,
		"status":       string(to),
	})
	return ref, nil
}

// RemoveReference drops a reference from the session.
func (s *ReferenceStore) RemoveReference(ctx context.Context, sessionID, referenceID string) error {
	removed, err := s.client.HDel(ctx, refsKey(sessionID), referenceID).Result()
	if err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	if removed == 0 {
		return apperrors.NewReferenceNotFoundError(referenceID)
	}
	if err := s.client.LRem(ctx, orderKey(sessionID), 0, referenceID).Err(); err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	return nil
}

// SetSectionMapping persists the session's section-to-source assignment.
func (s *ReferenceStore) SetSectionMapping(ctx context.Context, sessionID string, mapping models.SectionMapping) error {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return err
	}
	payload, err := json.Marshal(mapping)
	if err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	if err := s.client.Set(ctx, mappingKey(sessionID), payload, s.ttl).Err(); err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	return s.touch(ctx, sessionID)
}

// SectionMapping loads the session's mapping, empty when none was saved.
func (s *ReferenceStore) SectionMapping(ctx context.Context, sessionID string) (models.SectionMapping, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return nil, err
	}
	payload, err := s.client.Get(ctx, mappingKey(sessionID)).Result()
	if err == redis.Nil {
		return models.SectionMapping{}, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	var mapping models.SectionMapping
	if err := json.Unmarshal([]byte(payload), &mapping); err != nil {
		return nil, apperrors.NewStoreUnavailableError(fmt.Errorf("corrupt mapping: %w", err))
	}
	return mapping, nil
}

func (s *ReferenceStore) saveReference(ctx context.Context, sessionID string, ref *models.Reference) error {
	payload, err := json.Marshal(ref)
	if err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	if err := s.client.HSet(ctx, refsKey(sessionID), ref.ID, payload).Err(); err != nil {
		return apperrors.NewStoreUnavailableError(err)
	}
	return nil
}

func (s *ReferenceStore) requireSession(ctx context.Context, sessionID string) error {
	exists, err := s.SessionExists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NewSessionNotFoundError(sessionID)
	}
	return nil
}

// touch renews the TTL on every session key so active sessions stay alive.
func (s *ReferenceStore) touch(ctx context.Context, sessionID string) error {
	for _, key := range sessionKeys(sessionID) {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return apperrors.NewStoreUnavailableError(err)
		}
	}
	return nil
}

func transitionAllowed(from, to models.ReferenceStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
