package service

import (
	"context"
	"fmt"
	"leadform_backend/internal/model"
	"leadform_backend/internal/util"
	"leadform_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// ChatSessionStore holds wizard sessions between turns. Redis in production,
// an in-memory map in tests.
type ChatSessionStore interface {
	SaveSession(ctx context.Context, session *model.ChatSession) error
	FindSession(ctx context.Context, id string) (*model.ChatSession, error)
}

// ChatLeadSink receives the collected answers once a real (non-preview)
// session completes.
type ChatLeadSink interface {
	CaptureFromChat(ctx context.Context, session *model.ChatSession) error
}

// ChatService runs the conversational surface: one question at a time over a
// schema snapshot, with an append-only transcript. The index never moves
// backwards; there is no back-navigation.
type ChatService struct {
	Sessions ChatSessionStore
	Forms    FormStore
	Sink     ChatLeadSink
}

func NewChatService(sessions ChatSessionStore, forms FormStore, sink ChatLeadSink) *ChatService {
	return &ChatService{Sessions: sessions, Forms: forms, Sink: sink}
}

// ChatTurn is what a surface needs to render the current turn.
type ChatTurn struct {
	SessionID    string              `json:"sessionId"`
	Transcript   []model.ChatMessage `json:"transcript"`
	CurrentIndex int                 `json:"currentIndex"`
	Completed    bool                `json:"completed"`
	Field        *FieldView          `json:"field,omitempty"`
	Branding     BrandingView        `json:"branding"`
}

// StartForForm opens a session against a published form. The session carries
// its own snapshot of the questions, so later edits in the builder never
// disturb a running conversation.
func (s *ChatService) StartForForm(ctx context.Context, formID string) (*ChatTurn, error) {
	form, err := s.Forms.FindFormByID(formID)
	if err != nil {
		return nil, util.ErrFormNotFound
	}
	if !form.IsPublished {
		return nil, util.ErrFormNotPublished
	}
	questions, err := s.Forms.ListQuestions(formID)
	if err != nil {
		return nil, err
	}
	session := newSession(form, questions)
	if err := s.Sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return s.turn(session, form), nil
}

// StartForPreview opens a session over a hand-off payload. FormID stays empty
// so completion never produces a lead.
func (s *ChatService) StartForPreview(ctx context.Context, payload *model.PreviewPayload) (*ChatTurn, error) {
	form := payload.Form
	form.Title = payload.Title
	if payload.Title == "" {
		form.Title = payload.Form.Title
	}
	session := newSession(&form, payload.Questions)
	session.FormID = ""
	if err := s.Sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return s.turn(session, &form), nil
}

func newSession(form *model.Form, questions []model.FormQuestion) *model.ChatSession {
	branding := BrandingFor(form)
	session := &model.ChatSession{
		ID:        model.GenerateUUID(),
		FormID:    form.ID,
		Questions: questions,
		CreatedAt: time.Now(),
		Transcript: []model.ChatMessage{
			{Speaker: model.SpeakerBot, Content: fmt.Sprintf("Hi! Thanks for reaching out to %s. I have a few quick questions for you.", branding.BusinessName)},
		},
	}

	if len(questions) == 0 {
		// The only defined degenerate case: placeholder message, no input.
		session.Completed = true
		session.Transcript = append(session.Transcript, model.ChatMessage{
			Speaker: model.SpeakerBot,
			Content: "There are no questions here yet. Please check back later.",
		})
		return session
	}

	session.Transcript = append(session.Transcript, model.ChatMessage{
		Speaker: model.SpeakerBot,
		Content: questions[0].Title,
	})
	return session
}

// SubmitAnswer appends the visitor's entry, then either advances to the next
// question or completes the session. Past transcript entries are never edited.
func (s *ChatService) SubmitAnswer(ctx context.Context, sessionID, value string) (*ChatTurn, error) {
	session, err := s.Sessions.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, util.ErrSessionCompleted
	}

	current := session.Questions[session.CurrentIndex]
	session.Transcript = append(session.Transcript, model.ChatMessage{
		Speaker: model.SpeakerUser,
		Content: value,
	})
	session.Answers = append(session.Answers, model.ChatAnswer{
		QuestionID: current.ID,
		Value:      value,
	})

	if session.CurrentIndex+1 < len(session.Questions) {
		session.CurrentIndex++
		session.Transcript = append(session.Transcript, model.ChatMessage{
			Speaker: model.SpeakerBot,
			Content: session.Questions[session.CurrentIndex].Title,
		})
	} else {
		// Terminal transition: the visitor's entry stays the last transcript
		// line; nothing further is prompted.
		session.Completed = true
		if session.FormID != "" && s.Sink != nil {
			if err := s.Sink.CaptureFromChat(ctx, session); err != nil {
				logger.Log.Error("failed to capture chat lead", zap.String("session", session.ID), zap.Error(err))
			}
		}
	}

	if err := s.Sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return s.turnForSession(ctx, session), nil
}

// GetTurn re-reads a session, e.g. after a page reload mid-conversation.
func (s *ChatService) GetTurn(ctx context.Context, sessionID string) (*ChatTurn, error) {
	session, err := s.Sessions.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.turnForSession(ctx, session), nil
}

func (s *ChatService) turnForSession(ctx context.Context, session *model.ChatSession) *ChatTurn {
	var form *model.Form
	if session.FormID != "" {
		if f, err := s.Forms.FindFormByID(session.FormID); err == nil {
			form = f
		}
	}
	if form == nil {
		form = &model.Form{}
	}
	return s.turn(session, form)
}

func (s *ChatService) turn(session *model.ChatSession, form *model.Form) *ChatTurn {
	turn := &ChatTurn{
		SessionID:    session.ID,
		Transcript:   session.Transcript,
		CurrentIndex: session.CurrentIndex,
		Completed:    session.Completed,
		Branding:     BrandingFor(form),
	}
	if !session.Completed && session.CurrentIndex < len(session.Questions) {
		field := BuildFieldView(session.Questions[session.CurrentIndex])
		turn.Field = &field
	}
	return turn
}
