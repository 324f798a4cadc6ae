package service

import (
	"leadform_backend/internal/model"
	"leadform_backend/internal/util"
)

// Widget names the interactive control a surface mounts for a question type.
type Widget string

const (
	WidgetTextarea      Widget = "textarea"
	WidgetEmailInput    Widget = "email-input"
	WidgetPhoneInput    Widget = "phone-input"
	WidgetRadioGroup    Widget = "radio-group"
	WidgetCheckboxGroup Widget = "checkbox-group"
	WidgetRatingScale   Widget = "rating-scale"
	WidgetDatePicker    Widget = "date-picker"
	WidgetVoiceRecorder Widget = "voice-recorder"
	WidgetFileUpload    Widget = "file-upload"
)

// WidgetForType is the shared dispatch table of both rendering surfaces.
// Anything unknown or unimplemented (conditional, calendar-integration)
// degrades to the textarea widget; never a hard failure.
func WidgetForType(t model.QuestionType) Widget {
	switch t {
	case model.QuestionText:
		return WidgetTextarea
	case model.QuestionEmail:
		return WidgetEmailInput
	case model.QuestionPhone:
		return WidgetPhoneInput
	case model.QuestionSingleChoice:
		return WidgetRadioGroup
	case model.QuestionMultipleChoice:
		return WidgetCheckboxGroup
	case model.QuestionRating:
		return WidgetRatingScale
	case model.QuestionDate:
		return WidgetDatePicker
	case model.QuestionVoice:
		return WidgetVoiceRecorder
	case model.QuestionFileUpload:
		return WidgetFileUpload
	default:
		return WidgetTextarea
	}
}

// FieldView is one question projected for a rendering surface.
type FieldView struct {
	ID          string             `json:"id"`
	Order       int                `json:"order"`
	Title       string             `json:"title"`
	Type        model.QuestionType `json:"type"`
	Widget      Widget             `json:"widget"`
	Required    bool               `json:"required"`
	Options     []string           `json:"options,omitempty"`
	Scale       []int              `json:"scale,omitempty"`
	Placeholder string             `json:"placeholder,omitempty"`
}

// BrandingView carries display-only inputs; every field has a built-in
// default so a missing value never breaks rendering.
type BrandingView struct {
	BusinessName    string `json:"businessName"`
	LogoURL         string `json:"logoUrl,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
}

// FormView is the linear surface: every question at once, in schema order,
// with one terminal submit action.
type FormView struct {
	FormID      string       `json:"formId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Branding    BrandingView `json:"branding"`
	Fields      []FieldView  `json:"fields"`
	SubmitLabel string       `json:"submitLabel"`
}

const (
	defaultBusinessName    = "Our business"
	defaultPrimaryColor    = "#2563eb"
	defaultSecondaryColor  = "#1e40af"
	defaultBackgroundColor = "#f8fafc"
)

type RenderService struct {
	Store FormStore
}

func NewRenderService(store FormStore) *RenderService {
	return &RenderService{Store: store}
}

// PublicForm builds the linear view for a published form.
func (s *RenderService) PublicForm(formID string) (*FormView, error) {
	form, err := s.Store.FindFormByID(formID)
	if err != nil {
		return nil, util.ErrFormNotFound
	}
	if !form.IsPublished {
		return nil, util.ErrFormNotPublished
	}
	questions, err := s.Store.ListQuestions(formID)
	if err != nil {
		return nil, err
	}
	view := BuildFormView(form, questions)
	return &view, nil
}

// BuildFormView projects a schema snapshot into the linear view model. The
// renderer never mutates the schema; field order equals schema order.
func BuildFormView(form *model.Form, questions []model.FormQuestion) FormView {
	fields := make([]FieldView, len(questions))
	for i, q := range questions {
		fields[i] = BuildFieldView(q)
	}
	return FormView{
		FormID:      form.ID,
		Title:       form.Title,
		Description: form.Description,
		Branding:    BrandingFor(form),
		Fields:      fields,
		SubmitLabel: "Submit",
	}
}

func BuildFieldView(q model.FormQuestion) FieldView {
	f := FieldView{
		ID:          q.ID,
		Order:       q.Order,
		Title:       q.Title,
		Type:        q.Type,
		Widget:      WidgetForType(q.Type),
		Required:    q.Required,
		Placeholder: q.Placeholder,
	}
	switch f.Widget {
	case WidgetRadioGroup, WidgetCheckboxGroup:
		f.Options = q.Options
	case WidgetRatingScale:
		f.Scale = ratingScale(q.MinRating, q.MaxRating)
	}
	return f
}

// ratingScale enumerates the selectable levels, defaulting to 1..5 when the
// bounds were never set.
func ratingScale(min, max int) []int {
	if min < model.DefaultMinRating {
		min = model.DefaultMinRating
	}
	if max < min {
		max = model.DefaultMaxRating
	}
	scale := make([]int, 0, max-min+1)
	for v := min; v <= max; v++ {
		scale = append(scale, v)
	}
	return scale
}

func BrandingFor(form *model.Form) BrandingView {
	b := BrandingView{
		BusinessName:    form.BusinessName,
		LogoURL:         form.LogoURL,
		ProfileImageURL: form.ProfileImageURL,
		PrimaryColor:    form.PrimaryColor,
		SecondaryColor:  form.SecondaryColor,
		BackgroundColor: form.BackgroundColor,
	}
	if b.BusinessName == "" {
		b.BusinessName = defaultBusinessName
	}
	if b.PrimaryColor == "" {
		b.PrimaryColor = defaultPrimaryColor
	}
	if b.SecondaryColor == "" {
		b.SecondaryColor = defaultSecondaryColor
	}
	if b.BackgroundColor == "" {
		b.BackgroundColor = defaultBackgroundColor
	}
	return b
}
