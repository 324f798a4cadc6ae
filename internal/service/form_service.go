package service

import (
	"leadform_backend/internal/model"
	"leadform_backend/internal/util"
	"time"
)

// FormStore is the persistence surface the builder writes through. The gorm
// repository implements it; tests use an in-memory fake.
type FormStore interface {
	CreateForm(form *model.Form) error
	FindFormByID(id string) (*model.Form, error)
	ListFormsByOwner(ownerID uint, page, limit int) ([]model.Form, int64, error)
	UpdateForm(form *model.Form) error
	DeleteForm(id string) error

	ListQuestions(formID string) ([]model.FormQuestion, error)
	FindQuestionByID(id string) (*model.FormQuestion, error)
	CreateQuestion(q *model.FormQuestion) error
	UpdateQuestion(q *model.FormQuestion) error
	DeleteQuestion(id string) error
	SaveQuestions(formID string, qs []model.FormQuestion) error
}

// FormService owns the question schema. It is the single writer: every
// structural mutation ends with a renumbering pass so order stays 1..N with
// no gaps or duplicates.
type FormService struct {
	Store FormStore
}

func NewFormService(store FormStore) *FormService {
	return &FormService{Store: store}
}

type FormRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`

	BusinessName    string `json:"businessName"`
	LogoURL         string `json:"logoUrl"`
	ProfileImageURL string `json:"profileImageUrl"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
}

type FormDetail struct {
	Form      *model.Form          `json:"form"`
	Questions []model.FormQuestion `json:"questions"`
}

func (s *FormService) authorize(formID string, actor *util.Claims) (*model.Form, error) {
	form, err := s.Store.FindFormByID(formID)
	if err != nil {
		return nil, util.ErrFormNotFound
	}
	if actor.Role != model.Admin && form.OwnerID != actor.UserID {
		return nil, util.ErrPermissionDenied
	}
	return form, nil
}

func (s *FormService) CreateForm(ownerID uint, req FormRequest) (*model.Form, error) {
	form := &model.Form{
		OwnerID:         ownerID,
		Title:           req.Title,
		Description:     req.Description,
		BusinessName:    req.BusinessName,
		LogoURL:         req.LogoURL,
		ProfileImageURL: req.ProfileImageURL,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		BackgroundColor: req.BackgroundColor,
	}
	if err := s.Store.CreateForm(form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *FormService) ListForms(ownerID uint, page, limit int) ([]model.Form, int64, error) {
	return s.Store.ListFormsByOwner(ownerID, page, limit)
}

func (s *FormService) GetForm(formID string, actor *util.Claims) (*FormDetail, error) {
	form, err := s.authorize(formID, actor)
	if err != nil {
		return nil, err
	}
	questions, err := s.Store.ListQuestions(formID)
	if err != nil {
		return nil, err
	}
	return &FormDetail{Form: form, Questions: questions}, nil
}

func (s *FormService) UpdateForm(formID string, actor *util.Claims, req FormRequest) (*model.Form, error) {
	form, err := s.authorize(formID, actor)
	if err != nil {
		return nil, err
	}
	form.Title = req.Title
	form.Description = req.Description
	form.BusinessName = req.BusinessName
	form.LogoURL = req.LogoURL
	form.ProfileImageURL = req.ProfileImageURL
	form.PrimaryColor = req.PrimaryColor
	form.SecondaryColor = req.SecondaryColor
	form.BackgroundColor = req.BackgroundColor
	if err := s.Store.UpdateForm(form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *FormService) DeleteForm(formID string, actor *util.Claims) error {
	if _, err := s.authorize(formID, actor); err != nil {
		return err
	}
	return s.Store.DeleteForm(formID)
}

// Publish flips the form live. Authoring rule: every question needs a
// non-empty title first; the renderers themselves never enforce this.
func (s *FormService) Publish(formID string, actor *util.Claims) (*model.Form, error) {
	form, err := s.authorize(formID, actor)
	if err != nil {
		return nil, err
	}
	questions, err := s.Store.ListQuestions(formID)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		if q.Title == "" {
			return nil, util.ErrTitleRequired
		}
	}
	now := time.Now()
	form.IsPublished = true
	form.PublishedAt = &now
	if err := s.Store.UpdateForm(form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *FormService) Unpublish(formID string, actor *util.Claims) (*model.Form, error) {
	form, err := s.authorize(formID, actor)
	if err != nil {
		return nil, err
	}
	form.IsPublished = false
	form.PublishedAt = nil
	if err := s.Store.UpdateForm(form); err != nil {
		return nil, err
	}
	return form, nil
}

// AddQuestion appends a fresh text question at the tail. Appending keeps the
// existing numbering intact, so no renumber pass is needed here.
func (s *FormService) AddQuestion(formID string, actor *util.Claims) (*model.FormQuestion, error) {
	if _, err := s.authorize(formID, actor); err != nil {
		return nil, err
	}
	questions, err := s.Store.ListQuestions(formID)
	if err != nil {
		return nil, err
	}
	q := &model.FormQuestion{
		FormID:   formID,
		Order:    len(questions) + 1,
		Type:     model.QuestionText,
		Required: false,
		Options:  model.StringList{},
	}
	if err := s.Store.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// DuplicateQuestion deep-copies the question under a new id and appends it at
// the tail, not adjacent to the source.
func (s *FormService) DuplicateQuestion(formID, questionID string, actor *util.Claims) (*model.FormQuestion, error) {
	if _, err := s.authorize(formID, actor); err != nil {
		return nil, err
	}
	src, err := s.findQuestion(formID, questionID)
	if err != nil {
		return nil, err
	}
	questions, err := s.Store.ListQuestions(formID)
	if err != nil {
		return nil, err
	}
	dup := model.CloneQuestion(src)
	dup.Order = len(questions) + 1
	if err := s.Store.CreateQuestion(&dup); err != nil {
		return nil, err
	}
	return &dup, nil
}

func (s *FormService) DeleteQuestion(formID, questionID string, actor *util.Claims) ([]model.FormQuestion, error) {
	if _, err := s.authorize(formID, actor); err != nil {
		return nil, err
	}
	if _, err := s.findQuestion(formID, questionID); err != nil {
		return nil, err
	}
	if err := s.Store.DeleteQuestion(questionID); err != nil {
		return nil, err
	}
	return s.renumber(formID)
}

// QuestionUpdateRequest carries field-level edits. Nil fields stay untouched.
// A type change resets the type-specific fields before the other edits land,
// all in one update.
type QuestionUpdateRequest struct {
	Title       *string             `json:"title"`
	Type        *model.QuestionType `json:"type"`
	Required    *bool               `json:"required"`
	Placeholder *string             `json:"placeholder"`
	MinRating   *int                `json:"minRating"`
	MaxRating   *int                `json:"maxRating"`
}

func (s *FormService) UpdateQuestion(formID, questionID string, actor *util.Claims, req QuestionUpdateRequest) (*model.FormQuestion, error) {
	if _, err := s.authorize(formID, actor); err != nil {
		return nil, err
	}
	q, err := s.findQuestion(formID, questionID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil && *req.Type != q.Type {
		if !req.Type.Valid() {
			return nil, util.ErrInvalidType
		}
		q.ApplyTypeDefaults(*req.Type)
	}
	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.Required != nil {
		q.Required = *req.Required
	}
	if req.Placeholder != nil {
		q.Placeholder = *req.Placeholder
	}
	if req.MinRating != nil {
		if *req.MinRating < model.DefaultMinRating {
			return nil, util.ErrRatingBounds
		}
		q.MinRating = *req.MinRating
	}
	if req.MaxRating != nil {
		if *req.MaxRating < 2 || *req.MaxRating > 10 {
			return nil, util.ErrRatingBounds
		}
		q.MaxRating = *req.MaxRating
	}
	if q.MaxRating != 0 && q.MinRating > q.MaxRating {
		return nil, util.ErrRatingBounds
	}

	if err := s.Store.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *FormService) AddOption(formID, questionID string, actor *util.Claims, value string) (*model.FormQuestion, error) {
	if _, err := s.authorize(formID, actor); err != nil {
		return nil, err
	}
	q, err := s.findQuestion(formID, questionID)
	if err != nil {
		return nil, err
	}
	if !q.Type.IsChoice() {
		return nil, util.ErrOptionsUnsupported
	}
	q.Options = append(q.Options, value)
	if err := s.Store.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *FormService) UpdateOption(formID, questionID string, actor *util.Claims, index int, value string) (*model.FormQuestion, error) {
	if _, err := s.authorize(formID, actor); err != nil {
		return nil, err
	}
	q, err := s.findQuestion(formID, questionID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(q.Options) {
		return nil, util.ErrOptionIndex
	}
	q.Options[index] = value
	if err := s.Store.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// RemoveOption refuses to drop a choice question below two options; the
// interaction layer disables the control, the service backs that with a
// rejection.
func (s *FormService) RemoveOption(formID, questionID string, actor *util.Claims, index int) (*model.FormQuestion, error) {
	if _, err := s.authorize(formID, actor); err != nil {
		return nil, err
	}
	q, err := s.findQuestion(formID, questionID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(q.Options) {
		return nil, util.ErrOptionIndex
	}
	if !model.CanRemoveOption(q, index) {
		return nil, util.ErrOptionMinimum
	}
	q.Options = append(q.Options[:index], q.Options[index+1:]...)
	if err := s.Store.UpdateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// MoveQuestion swaps the question with its immediate neighbor. Moving the
// first question up or the last down is a no-op, schema unchanged.
func (s *FormService) MoveQuestion(formID, questionID string, actor *util.Claims, direction MoveDirection) ([]model.FormQuestion, error) {
	if _, err := s.authorize(formID, actor); err != nil {
		return nil, err
	}
	questions, err := s.Store.ListQuestions(formID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range questions {
		if questions[i].ID == questionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, util.ErrQuestionNotFound
	}

	target := idx
	switch direction {
	case MoveUp:
		target = idx - 1
	case MoveDown:
		target = idx + 1
	}
	if target < 0 || target >= len(questions) || target == idx {
		return questions, nil
	}

	questions[idx], questions[target] = questions[target], questions[idx]
	model.Renumber(questions)
	if err := s.Store.SaveQuestions(formID, questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *FormService) findQuestion(formID, questionID string) (*model.FormQuestion, error) {
	q, err := s.Store.FindQuestionByID(questionID)
	if err != nil || q.FormID != formID {
		return nil, util.ErrQuestionNotFound
	}
	return q, nil
}

func (s *FormService) renumber(formID string) ([]model.FormQuestion, error) {
	questions, err := s.Store.ListQuestions(formID)
	if err != nil {
		return nil, err
	}
	model.Renumber(questions)
	if err := s.Store.SaveQuestions(formID, questions); err != nil {
		return nil, err
	}
	return questions, nil
}
