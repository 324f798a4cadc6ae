package service

import (
	"context"
	"testing"

	"leadform_backend/internal/model"
	"leadform_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessionStore struct {
	sessions map[string]model.ChatSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]model.ChatSession)}
}

func (s *memSessionStore) SaveSession(ctx context.Context, session *model.ChatSession) error {
	s.sessions[session.ID] = *session
	return nil
}

func (s *memSessionStore) FindSession(ctx context.Context, id string) (*model.ChatSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return &session, nil
}

type recordingSink struct {
	captured []*model.ChatSession
}

func (s *recordingSink) CaptureFromChat(ctx context.Context, session *model.ChatSession) error {
	s.captured = append(s.captured, session)
	return nil
}

func newChatFixture(t *testing.T, titles ...string) (*ChatService, *recordingSink, string) {
	t.Helper()
	store := newMemFormStore()
	forms := NewFormService(store)
	actor := ownerClaims()

	form, err := forms.CreateForm(1, FormRequest{Title: "Contact us", BusinessName: "Acme Studio"})
	require.NoError(t, err)
	for _, title := range titles {
		q, err := forms.AddQuestion(form.ID, actor)
		require.NoError(t, err)
		_, err = forms.UpdateQuestion(form.ID, q.ID, actor, QuestionUpdateRequest{Title: &title})
		require.NoError(t, err)
	}
	_, err = forms.Publish(form.ID, actor)
	require.NoError(t, err)

	sink := &recordingSink{}
	chat := NewChatService(newMemSessionStore(), store, sink)
	return chat, sink, form.ID
}

func TestChatWalksQuestionsOneAtATime(t *testing.T) {
	chat, sink, formID := newChatFixture(t, "What is your name?", "What is your email address?")
	ctx := context.Background()

	turn, err := chat.StartForForm(ctx, formID)
	require.NoError(t, err)
	assert.Equal(t, 0, turn.CurrentIndex)
	assert.False(t, turn.Completed)
	require.NotNil(t, turn.Field)
	assert.Equal(t, "What is your name?", turn.Field.Title)
	// Greeting plus the first question.
	require.Len(t, turn.Transcript, 2)
	assert.Equal(t, model.SpeakerBot, turn.Transcript[0].Speaker)
	assert.Contains(t, turn.Transcript[0].Content, "Acme Studio")

	turn, err = chat.SubmitAnswer(ctx, turn.SessionID, "Ada")
	require.NoError(t, err)
	assert.Equal(t, 1, turn.CurrentIndex)
	assert.False(t, turn.Completed)
	require.Len(t, turn.Transcript, 4)
	assert.Equal(t, "Ada", turn.Transcript[2].Content)
	assert.Equal(t, "What is your email address?", turn.Transcript[3].Content)
	assert.Empty(t, sink.captured)

	turn, err = chat.SubmitAnswer(ctx, turn.SessionID, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, turn.Completed)
	assert.Nil(t, turn.Field)
	// Completion appends nothing: the visitor's last entry closes the
	// transcript.
	require.Len(t, turn.Transcript, 5)
	last := turn.Transcript[len(turn.Transcript)-1]
	assert.Equal(t, model.SpeakerUser, last.Speaker)
	assert.Equal(t, "ada@example.com", last.Content)

	require.Len(t, sink.captured, 1)
	captured := sink.captured[0]
	assert.Equal(t, formID, captured.FormID)
	require.Len(t, captured.Answers, 2)
	assert.Equal(t, "Ada", captured.Answers[0].Value)
	assert.Equal(t, "ada@example.com", captured.Answers[1].Value)
}

func TestChatCompletedSessionRejectsAnswers(t *testing.T) {
	chat, _, formID := newChatFixture(t, "Only question")
	ctx := context.Background()

	turn, err := chat.StartForForm(ctx, formID)
	require.NoError(t, err)

	turn, err = chat.SubmitAnswer(ctx, turn.SessionID, "done")
	require.NoError(t, err)
	assert.True(t, turn.Completed)
	require.Len(t, turn.Transcript, 3)
	assert.Equal(t, model.SpeakerUser, turn.Transcript[2].Speaker)

	_, err = chat.SubmitAnswer(ctx, turn.SessionID, "again")
	assert.ErrorIs(t, err, util.ErrSessionCompleted)
}

func TestChatEmptySchemaCompletesImmediately(t *testing.T) {
	chat, sink, formID := newChatFixture(t)
	ctx := context.Background()

	turn, err := chat.StartForForm(ctx, formID)
	require.NoError(t, err)
	assert.True(t, turn.Completed)
	assert.Nil(t, turn.Field)
	require.Len(t, turn.Transcript, 2)
	assert.Contains(t, turn.Transcript[1].Content, "no questions here yet")

	_, err = chat.SubmitAnswer(ctx, turn.SessionID, "hello?")
	assert.ErrorIs(t, err, util.ErrSessionCompleted)
	assert.Empty(t, sink.captured)
}

func TestChatRequiresPublishedForm(t *testing.T) {
	store := newMemFormStore()
	forms := NewFormService(store)
	form, err := forms.CreateForm(1, FormRequest{Title: "Draft"})
	require.NoError(t, err)

	chat := NewChatService(newMemSessionStore(), store, &recordingSink{})
	_, err = chat.StartForForm(context.Background(), form.ID)
	assert.ErrorIs(t, err, util.ErrFormNotPublished)

	_, err = chat.StartForForm(context.Background(), "missing")
	assert.ErrorIs(t, err, util.ErrFormNotFound)
}

func TestChatPreviewNeverProducesLeads(t *testing.T) {
	sink := &recordingSink{}
	chat := NewChatService(newMemSessionStore(), newMemFormStore(), sink)
	ctx := context.Background()

	turn, err := chat.StartForPreview(ctx, ExamplePayload())
	require.NoError(t, err)
	require.NotNil(t, turn.Field)

	for !turn.Completed {
		turn, err = chat.SubmitAnswer(ctx, turn.SessionID, "preview answer")
		require.NoError(t, err)
	}

	assert.Empty(t, sink.captured)
}

func TestChatIndexNeverMovesBackwards(t *testing.T) {
	chat, _, formID := newChatFixture(t, "One", "Two", "Three")
	ctx := context.Background()

	turn, err := chat.StartForForm(ctx, formID)
	require.NoError(t, err)

	last := turn.CurrentIndex
	for !turn.Completed {
		turn, err = chat.SubmitAnswer(ctx, turn.SessionID, "x")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, turn.CurrentIndex, last)
		last = turn.CurrentIndex
	}

	reloaded, err := chat.GetTurn(ctx, turn.SessionID)
	require.NoError(t, err)
	assert.True(t, reloaded.Completed)
	assert.Equal(t, turn.CurrentIndex, reloaded.CurrentIndex)
}
