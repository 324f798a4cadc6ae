package service

import (
	"context"
	"leadform_backend/internal/model"
	"leadform_backend/internal/repository"
	"leadform_backend/internal/util"
	"leadform_backend/pkg/monitoring"
)

// LeadService is the submission sink behind both rendering surfaces. A
// renderer guarantees it the question ids in schema order plus whatever
// answer state was collected; the sink records that as a lead.
type LeadService struct {
	Repo  *repository.LeadRepository
	Forms FormStore
}

func NewLeadService(repo *repository.LeadRepository, forms FormStore) *LeadService {
	return &LeadService{Repo: repo, Forms: forms}
}

type AnswerInput struct {
	QuestionID string `json:"questionId" binding:"required"`
	Value      string `json:"value"`
}

type LeadSubmissionRequest struct {
	Answers []AnswerInput `json:"answers"`
}

// Submit captures a linear-form submission. Answers are stored in schema
// order; questions left unanswered still appear with an empty value so the
// lead reads like the form did.
func (s *LeadService) Submit(formID string, source model.LeadSource, req LeadSubmissionRequest) (*model.Lead, error) {
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

	values := make(map[string]string, len(req.Answers))
	for _, a := range req.Answers {
		values[a.QuestionID] = a.Value
	}

	lead := &model.Lead{
		FormID: formID,
		Source: source,
	}
	for _, q := range questions {
		value := values[q.ID]
		lead.Answers = append(lead.Answers, model.LeadAnswer{
			QuestionID:    q.ID,
			QuestionTitle: q.Title,
			Order:         q.Order,
			Value:         value,
		})
		if lead.Email == "" && q.Type == model.QuestionEmail && value != "" {
			lead.Email = value
		}
	}

	if err := s.Repo.CreateLead(lead); err != nil {
		return nil, err
	}
	monitoring.LeadCounter.WithLabelValues(string(source)).Inc()
	return lead, nil
}

// CaptureFromChat turns a completed wizard session into a lead.
func (s *LeadService) CaptureFromChat(ctx context.Context, session *model.ChatSession) error {
	req := LeadSubmissionRequest{}
	for _, a := range session.Answers {
		req.Answers = append(req.Answers, AnswerInput{QuestionID: a.QuestionID, Value: a.Value})
	}
	_, err := s.Submit(session.FormID, model.LeadSourceChat, req)
	return err
}

func (s *LeadService) authorize(formID string, actor *util.Claims) error {
	form, err := s.Forms.FindFormByID(formID)
	if err != nil {
		return util.ErrFormNotFound
	}
	if actor.Role != model.Admin && form.OwnerID != actor.UserID {
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *LeadService) ListLeads(formID string, actor *util.Claims, page, limit int) ([]model.Lead, int64, error) {
	if err := s.authorize(formID, actor); err != nil {
		return nil, 0, err
	}
	return s.Repo.ListLeadsByForm(formID, page, limit)
}

type LeadDetail struct {
	Lead      *model.Lead          `json:"lead"`
	Questions []model.FormQuestion `json:"questions"`
}

func (s *LeadService) GetLead(id string, actor *util.Claims) (*LeadDetail, error) {
	lead, err := s.Repo.FindLeadByID(id)
	if err != nil {
		return nil, util.ErrLeadNotFound
	}
	if err := s.authorize(lead.FormID, actor); err != nil {
		return nil, err
	}
	questions, err := s.Forms.ListQuestions(lead.FormID)
	if err != nil {
		return nil, err
	}
	return &LeadDetail{Lead: lead, Questions: questions}, nil
}

func (s *LeadService) DeleteLead(id string, actor *util.Claims) error {
	lead, err := s.Repo.FindLeadByID(id)
	if err != nil {
		return util.ErrLeadNotFound
	}
	if err := s.authorize(lead.FormID, actor); err != nil {
		return err
	}
	return s.Repo.DeleteLead(id)
}
