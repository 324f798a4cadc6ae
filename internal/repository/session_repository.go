package repository

import (
	"context"
	"encoding/json"
	"leadform_backend/internal/model"
	"leadform_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	chatSessionKeyPrefix = "leadform:chat:"
	previewKeyPrefix     = "leadform:preview:"
)

// SessionRepository keeps transient renderer state in redis: chat wizard
// sessions and builder preview payloads. Both expire on their own.
type SessionRepository struct {
	RDB        *redis.Client
	SessionTTL time.Duration
	PreviewTTL time.Duration
}

func NewSessionRepository(rdb *redis.Client, sessionTTL, previewTTL time.Duration) *SessionRepository {
	return &SessionRepository{
		RDB:        rdb,
		SessionTTL: sessionTTL,
		PreviewTTL: previewTTL,
	}
}

func (r *SessionRepository) SaveSession(ctx context.Context, session *model.ChatSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, chatSessionKeyPrefix+session.ID, data, r.SessionTTL).Err()
}

func (r *SessionRepository) FindSession(ctx context.Context, id string) (*model.ChatSession, error) {
	data, err := r.RDB.Get(ctx, chatSessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session model.ChatSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, util.ErrSessionNotFound
	}
	return &session, nil
}

func (r *SessionRepository) SavePreview(ctx context.Context, token string, payload *model.PreviewPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.RDB.Set(ctx, previewKeyPrefix+token, data, r.PreviewTTL).Err()
}

// FindPreview returns nil without error when the payload is missing or
// malformed; callers fall back to the example schema.
func (r *SessionRepository) FindPreview(ctx context.Context, token string) (*model.PreviewPayload, error) {
	data, err := r.RDB.Get(ctx, previewKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var payload model.PreviewPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, nil
	}
	return &payload, nil
}
