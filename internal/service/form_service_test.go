package service

import (
	"sort"
	"testing"

	"leadform_backend/internal/model"
	"leadform_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFormStore is the in-memory FormStore used across the service tests.
type memFormStore struct {
	forms     map[string]model.Form
	questions map[string]model.FormQuestion
}

func newMemFormStore() *memFormStore {
	return &memFormStore{
		forms:     make(map[string]model.Form),
		questions: make(map[string]model.FormQuestion),
	}
}

func (s *memFormStore) CreateForm(form *model.Form) error {
	if form.ID == "" {
		form.ID = model.GenerateUUID()
	}
	s.forms[form.ID] = *form
	return nil
}

func (s *memFormStore) FindFormByID(id string) (*model.Form, error) {
	form, ok := s.forms[id]
	if !ok {
		return nil, util.ErrFormNotFound
	}
	return &form, nil
}

func (s *memFormStore) ListFormsByOwner(ownerID uint, page, limit int) ([]model.Form, int64, error) {
	var out []model.Form
	for _, f := range s.forms {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memFormStore) UpdateForm(form *model.Form) error {
	s.forms[form.ID] = *form
	return nil
}

func (s *memFormStore) DeleteForm(id string) error {
	delete(s.forms, id)
	for qid, q := range s.questions {
		if q.FormID == id {
			delete(s.questions, qid)
		}
	}
	return nil
}

func (s *memFormStore) ListQuestions(formID string) ([]model.FormQuestion, error) {
	var out []model.FormQuestion
	for _, q := range s.questions {
		if q.FormID == formID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *memFormStore) FindQuestionByID(id string) (*model.FormQuestion, error) {
	q, ok := s.questions[id]
	if !ok {
		return nil, util.ErrQuestionNotFound
	}
	return &q, nil
}

func (s *memFormStore) CreateQuestion(q *model.FormQuestion) error {
	if q.ID == "" {
		q.ID = model.GenerateUUID()
	}
	s.questions[q.ID] = *q
	return nil
}

func (s *memFormStore) UpdateQuestion(q *model.FormQuestion) error {
	s.questions[q.ID] = *q
	return nil
}

func (s *memFormStore) DeleteQuestion(id string) error {
	delete(s.questions, id)
	return nil
}

func (s *memFormStore) SaveQuestions(formID string, qs []model.FormQuestion) error {
	for _, q := range qs {
		s.questions[q.ID] = q
	}
	return nil
}

func ownerClaims() *util.Claims {
	return &util.Claims{UserID: 1, Role: model.Owner}
}

func newTestForm(t *testing.T) (*FormService, *memFormStore, string) {
	t.Helper()
	store := newMemFormStore()
	svc := NewFormService(store)
	form, err := svc.CreateForm(1, FormRequest{Title: "Contact us"})
	require.NoError(t, err)
	return svc, store, form.ID
}

func assertGaplessOrder(t *testing.T, questions []model.FormQuestion) {
	t.Helper()
	for i, q := range questions {
		assert.Equal(t, i+1, q.Order, "question %d out of order", i)
	}
}

func TestAddQuestionAppendsAtTail(t *testing.T) {
	svc, store, formID := newTestForm(t)
	actor := ownerClaims()

	for i := 1; i <= 3; i++ {
		q, err := svc.AddQuestion(formID, actor)
		require.NoError(t, err)
		assert.Equal(t, i, q.Order)
		assert.Equal(t, model.QuestionText, q.Type)
	}

	questions, err := store.ListQuestions(formID)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assertGaplessOrder(t, questions)
}

func TestUpdateQuestionTypeChangeSeedsDefaults(t *testing.T) {
	svc, _, formID := newTestForm(t)
	actor := ownerClaims()

	q, err := svc.AddQuestion(formID, actor)
	require.NoError(t, err)

	choice := model.QuestionSingleChoice
	q, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{Type: &choice})
	require.NoError(t, err)
	assert.Equal(t, model.StringList{"Option 1", "Option 2"}, q.Options)

	rating := model.QuestionRating
	q, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{Type: &rating})
	require.NoError(t, err)
	assert.Empty(t, q.Options)
	assert.Equal(t, model.DefaultMinRating, q.MinRating)
	assert.Equal(t, model.DefaultMaxRating, q.MaxRating)

	text := model.QuestionText
	q, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{Type: &text})
	require.NoError(t, err)
	assert.Zero(t, q.MinRating)
	assert.Zero(t, q.MaxRating)
}

func TestUpdateQuestionRejectsUnknownType(t *testing.T) {
	svc, _, formID := newTestForm(t)
	actor := ownerClaims()

	q, err := svc.AddQuestion(formID, actor)
	require.NoError(t, err)

	bad := model.QuestionType("hologram")
	_, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{Type: &bad})
	assert.ErrorIs(t, err, util.ErrInvalidType)
}

func TestUpdateQuestionRatingBounds(t *testing.T) {
	svc, _, formID := newTestForm(t)
	actor := ownerClaims()

	q, err := svc.AddQuestion(formID, actor)
	require.NoError(t, err)
	rating := model.QuestionRating
	q, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{Type: &rating})
	require.NoError(t, err)

	tooLow := 0
	_, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{MinRating: &tooLow})
	assert.ErrorIs(t, err, util.ErrRatingBounds)

	tooHigh := 11
	_, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{MaxRating: &tooHigh})
	assert.ErrorIs(t, err, util.ErrRatingBounds)

	max := 10
	q, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{MaxRating: &max})
	require.NoError(t, err)
	assert.Equal(t, 10, q.MaxRating)
}

func TestUpdateQuestionRatingMinNeverExceedsMax(t *testing.T) {
	svc, _, formID := newTestForm(t)
	actor := ownerClaims()

	q, err := svc.AddQuestion(formID, actor)
	require.NoError(t, err)
	rating := model.QuestionRating
	q, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{Type: &rating})
	require.NoError(t, err)

	// Default scale is 1..5; a lone min above the stored max is rejected.
	min := 6
	_, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{MinRating: &min})
	assert.ErrorIs(t, err, util.ErrRatingBounds)

	// Inverted pair in a single update is rejected too.
	min, max := 4, 3
	_, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{MinRating: &min, MaxRating: &max})
	assert.ErrorIs(t, err, util.ErrRatingBounds)

	min, max = 2, 4
	q, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{MinRating: &min, MaxRating: &max})
	require.NoError(t, err)
	assert.Equal(t, 2, q.MinRating)
	assert.Equal(t, 4, q.MaxRating)
}

func TestAddOptionRequiresChoiceType(t *testing.T) {
	svc, store, formID := newTestForm(t)
	actor := ownerClaims()

	q, err := svc.AddQuestion(formID, actor)
	require.NoError(t, err)

	_, err = svc.AddOption(formID, q.ID, actor, "stray")
	assert.ErrorIs(t, err, util.ErrOptionsUnsupported)

	stored, err := store.FindQuestionByID(q.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Options)
}

func TestRemoveOptionKeepsFloorOfTwo(t *testing.T) {
	svc, _, formID := newTestForm(t)
	actor := ownerClaims()

	q, err := svc.AddQuestion(formID, actor)
	require.NoError(t, err)
	choice := model.QuestionSingleChoice
	q, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{Type: &choice})
	require.NoError(t, err)

	// Two seed options, removal refused.
	_, err = svc.RemoveOption(formID, q.ID, actor, 0)
	assert.ErrorIs(t, err, util.ErrOptionMinimum)

	q, err = svc.AddOption(formID, q.ID, actor, "Option 3")
	require.NoError(t, err)
	require.Len(t, q.Options, 3)

	q, err = svc.RemoveOption(formID, q.ID, actor, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StringList{"Option 1", "Option 3"}, q.Options)

	_, err = svc.RemoveOption(formID, q.ID, actor, 5)
	assert.ErrorIs(t, err, util.ErrOptionIndex)
}

func TestUpdateOption(t *testing.T) {
	svc, _, formID := newTestForm(t)
	actor := ownerClaims()

	q, err := svc.AddQuestion(formID, actor)
	require.NoError(t, err)
	choice := model.QuestionMultipleChoice
	q, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{Type: &choice})
	require.NoError(t, err)

	q, err = svc.UpdateOption(formID, q.ID, actor, 1, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", q.Options[1])

	_, err = svc.UpdateOption(formID, q.ID, actor, -1, "nope")
	assert.ErrorIs(t, err, util.ErrOptionIndex)
}

func TestDeleteQuestionRenumbers(t *testing.T) {
	svc, store, formID := newTestForm(t)
	actor := ownerClaims()

	var ids []string
	for i := 0; i < 4; i++ {
		q, err := svc.AddQuestion(formID, actor)
		require.NoError(t, err)
		ids = append(ids, q.ID)
	}

	questions, err := svc.DeleteQuestion(formID, ids[1], actor)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assertGaplessOrder(t, questions)

	stored, err := store.ListQuestions(formID)
	require.NoError(t, err)
	assertGaplessOrder(t, stored)
}

func TestDuplicateQuestionAppendsIndependentCopy(t *testing.T) {
	svc, _, formID := newTestForm(t)
	actor := ownerClaims()

	first, err := svc.AddQuestion(formID, actor)
	require.NoError(t, err)
	choice := model.QuestionSingleChoice
	first, err = svc.UpdateQuestion(formID, first.ID, actor, QuestionUpdateRequest{Type: &choice})
	require.NoError(t, err)

	_, err = svc.AddQuestion(formID, actor)
	require.NoError(t, err)

	dup, err := svc.DuplicateQuestion(formID, first.ID, actor)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, dup.ID)
	assert.Equal(t, 3, dup.Order)
	assert.Equal(t, first.Options, dup.Options)

	// Editing the copy never reaches the source.
	_, err = svc.UpdateOption(formID, dup.ID, actor, 0, "changed")
	require.NoError(t, err)
	src, err := svc.UpdateOption(formID, first.ID, actor, 1, "kept")
	require.NoError(t, err)
	assert.Equal(t, "Option 1", src.Options[0])
}

func TestMoveQuestionBoundariesAreNoOps(t *testing.T) {
	svc, _, formID := newTestForm(t)
	actor := ownerClaims()

	var ids []string
	for i := 0; i < 3; i++ {
		q, err := svc.AddQuestion(formID, actor)
		require.NoError(t, err)
		ids = append(ids, q.ID)
	}

	questions, err := svc.MoveQuestion(formID, ids[0], actor, MoveUp)
	require.NoError(t, err)
	assert.Equal(t, ids[0], questions[0].ID)
	assertGaplessOrder(t, questions)

	questions, err = svc.MoveQuestion(formID, ids[2], actor, MoveDown)
	require.NoError(t, err)
	assert.Equal(t, ids[2], questions[2].ID)
	assertGaplessOrder(t, questions)
}

func TestMoveQuestionSwapsNeighbors(t *testing.T) {
	svc, _, formID := newTestForm(t)
	actor := ownerClaims()

	var ids []string
	for i := 0; i < 3; i++ {
		q, err := svc.AddQuestion(formID, actor)
		require.NoError(t, err)
		ids = append(ids, q.ID)
	}

	questions, err := svc.MoveQuestion(formID, ids[1], actor, MoveUp)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1], ids[0], ids[2]}, questionIDs(questions))
	assertGaplessOrder(t, questions)

	questions, err = svc.MoveQuestion(formID, ids[1], actor, MoveDown)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0], ids[1], ids[2]}, questionIDs(questions))
	assertGaplessOrder(t, questions)
}

func questionIDs(questions []model.FormQuestion) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func TestPublishRequiresQuestionTitles(t *testing.T) {
	svc, _, formID := newTestForm(t)
	actor := ownerClaims()

	q, err := svc.AddQuestion(formID, actor)
	require.NoError(t, err)

	_, err = svc.Publish(formID, actor)
	assert.ErrorIs(t, err, util.ErrTitleRequired)

	title := "What is your name?"
	_, err = svc.UpdateQuestion(formID, q.ID, actor, QuestionUpdateRequest{Title: &title})
	require.NoError(t, err)

	form, err := svc.Publish(formID, actor)
	require.NoError(t, err)
	assert.True(t, form.IsPublished)
	require.NotNil(t, form.PublishedAt)

	form, err = svc.Unpublish(formID, actor)
	require.NoError(t, err)
	assert.False(t, form.IsPublished)
	assert.Nil(t, form.PublishedAt)
}

func TestOwnershipIsEnforced(t *testing.T) {
	svc, _, formID := newTestForm(t)

	stranger := &util.Claims{UserID: 99, Role: model.Owner}
	_, err := svc.GetForm(formID, stranger)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.AddQuestion(formID, stranger)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	admin := &util.Claims{UserID: 99, Role: model.Admin}
	_, err = svc.GetForm(formID, admin)
	assert.NoError(t, err)
}

func TestQuestionMustBelongToForm(t *testing.T) {
	svc, _, formID := newTestForm(t)
	actor := ownerClaims()

	other, err := svc.CreateForm(1, FormRequest{Title: "Other"})
	require.NoError(t, err)
	foreign, err := svc.AddQuestion(other.ID, actor)
	require.NoError(t, err)

	_, err = svc.DeleteQuestion(formID, foreign.ID, actor)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}
