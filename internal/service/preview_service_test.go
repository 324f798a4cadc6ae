package service

import (
	"context"
	"testing"

	"leadform_backend/internal/model"
	"leadform_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPreviewStore struct {
	payloads map[string]model.PreviewPayload
}

func newMemPreviewStore() *memPreviewStore {
	return &memPreviewStore{payloads: make(map[string]model.PreviewPayload)}
}

func (s *memPreviewStore) SavePreview(ctx context.Context, token string, payload *model.PreviewPayload) error {
	s.payloads[token] = *payload
	return nil
}

func (s *memPreviewStore) FindPreview(ctx context.Context, token string) (*model.PreviewPayload, error) {
	payload, ok := s.payloads[token]
	if !ok {
		return nil, nil
	}
	return &payload, nil
}

func TestPreviewRoundTrip(t *testing.T) {
	store := newMemFormStore()
	forms := NewFormService(store)
	actor := ownerClaims()
	ctx := context.Background()

	form, err := forms.CreateForm(1, FormRequest{Title: "Contact us", Description: "Say hi"})
	require.NoError(t, err)
	q, err := forms.AddQuestion(form.ID, actor)
	require.NoError(t, err)
	title := "What is your name?"
	_, err = forms.UpdateQuestion(form.ID, q.ID, actor, QuestionUpdateRequest{Title: &title})
	require.NoError(t, err)

	preview := NewPreviewService(newMemPreviewStore(), store)
	token, err := preview.Create(ctx, form.ID, actor, model.PreviewModeChat)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload := preview.Load(ctx, token)
	assert.Equal(t, model.PreviewModeChat, payload.Mode)
	assert.Equal(t, "Contact us", payload.Title)
	require.Len(t, payload.Questions, 1)
	assert.Equal(t, title, payload.Questions[0].Title)
}

func TestPreviewUnknownModeFallsBackToForm(t *testing.T) {
	store := newMemFormStore()
	forms := NewFormService(store)
	ctx := context.Background()

	form, err := forms.CreateForm(1, FormRequest{Title: "Contact us"})
	require.NoError(t, err)

	preview := NewPreviewService(newMemPreviewStore(), store)
	token, err := preview.Create(ctx, form.ID, ownerClaims(), model.PreviewMode("diagram"))
	require.NoError(t, err)

	payload := preview.Load(ctx, token)
	assert.Equal(t, model.PreviewModeForm, payload.Mode)
}

func TestPreviewMissingTokenFallsBackToExample(t *testing.T) {
	preview := NewPreviewService(newMemPreviewStore(), newMemFormStore())

	payload := preview.Load(context.Background(), "no-such-token")
	require.NotNil(t, payload)
	assert.Equal(t, model.PreviewModeForm, payload.Mode)
	require.Len(t, payload.Questions, 4)
	for i, q := range payload.Questions {
		assert.Equal(t, i+1, q.Order)
	}
}

func TestPreviewCreateAuthorization(t *testing.T) {
	store := newMemFormStore()
	forms := NewFormService(store)
	ctx := context.Background()

	form, err := forms.CreateForm(1, FormRequest{Title: "Mine"})
	require.NoError(t, err)

	preview := NewPreviewService(newMemPreviewStore(), store)

	stranger := &util.Claims{UserID: 42, Role: model.Owner}
	_, err = preview.Create(ctx, form.ID, stranger, model.PreviewModeForm)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = preview.Create(ctx, "missing", ownerClaims(), model.PreviewModeForm)
	assert.ErrorIs(t, err, util.ErrFormNotFound)
}
