package service

import (
	"context"
	"leadform_backend/internal/model"
	"leadform_backend/internal/util"
)

// PreviewStore keeps hand-off payloads alive between the builder and the
// renderer it opens.
type PreviewStore interface {
	SavePreview(ctx context.Context, token string, payload *model.PreviewPayload) error
	FindPreview(ctx context.Context, token string) (*model.PreviewPayload, error)
}

// PreviewService moves a schema snapshot from the builder to a renderer: the
// builder stores a typed payload under a generated token, the renderer loads
// it by token. A missing or malformed payload falls back to the built-in
// example schema rather than failing the view.
type PreviewService struct {
	Store PreviewStore
	Forms FormStore
}

func NewPreviewService(store PreviewStore, forms FormStore) *PreviewService {
	return &PreviewService{Store: store, Forms: forms}
}

func (s *PreviewService) Create(ctx context.Context, formID string, actor *util.Claims, mode model.PreviewMode) (string, error) {
	form, err := s.Forms.FindFormByID(formID)
	if err != nil {
		return "", util.ErrFormNotFound
	}
	if actor.Role != model.Admin && form.OwnerID != actor.UserID {
		return "", util.ErrPermissionDenied
	}
	questions, err := s.Forms.ListQuestions(formID)
	if err != nil {
		return "", err
	}
	if mode != model.PreviewModeChat {
		mode = model.PreviewModeForm
	}
	payload := &model.PreviewPayload{
		Mode:        mode,
		Title:       form.Title,
		Description: form.Description,
		Form:        *form,
		Questions:   questions,
	}
	token := model.GenerateUUID()
	if err := s.Store.SavePreview(ctx, token, payload); err != nil {
		return "", err
	}
	return token, nil
}

// Load never fails over to an error for a bad token; the consumer gets the
// example schema instead.
func (s *PreviewService) Load(ctx context.Context, token string) *model.PreviewPayload {
	payload, err := s.Store.FindPreview(ctx, token)
	if err != nil || payload == nil {
		return ExamplePayload()
	}
	return payload
}

// ExamplePayload is the built-in example schema shown when a hand-off payload
// is absent or unreadable.
func ExamplePayload() *model.PreviewPayload {
	form := model.Form{
		Title:        "Example intake form",
		Description:  "A short example of what your visitors will see.",
		BusinessName: "Your business",
	}
	questions := []model.FormQuestion{
		{UUIDBase: model.UUIDBase{ID: "example-name"}, Title: "What is your name?", Type: model.QuestionText, Required: true, Placeholder: "Your full name"},
		{UUIDBase: model.UUIDBase{ID: "example-email"}, Title: "What is your email address?", Type: model.QuestionEmail, Required: true, Placeholder: "you@example.com"},
		{UUIDBase: model.UUIDBase{ID: "example-channel"}, Title: "How did you hear about us?", Type: model.QuestionSingleChoice, Options: model.StringList{"Search engine", "Social media", "A friend"}},
		{UUIDBase: model.UUIDBase{ID: "example-rating"}, Title: "How would you rate your interest?", Type: model.QuestionRating, MinRating: model.DefaultMinRating, MaxRating: model.DefaultMaxRating},
	}
	model.Renumber(questions)
	return &model.PreviewPayload{
		Mode:        model.PreviewModeForm,
		Title:       form.Title,
		Description: form.Description,
		Form:        form,
		Questions:   questions,
	}
}
