package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// QuestionType is the closed vocabulary of question variants. Conditional and
// calendar-integration are declared but not handled by either rendering
// surface; renderers fall back to the text widget for them.
type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionEmail          QuestionType = "email"
	QuestionPhone          QuestionType = "phone"
	QuestionSingleChoice   QuestionType = "single-choice"
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionRating         QuestionType = "rating"
	QuestionDate           QuestionType = "date"
	QuestionVoice          QuestionType = "voice"
	QuestionFileUpload     QuestionType = "file-upload"
	QuestionConditional    QuestionType = "conditional"
	QuestionCalendar       QuestionType = "calendar-integration"
)

const (
	DefaultMinRating = 1
	DefaultMaxRating = 5

	// A choice question never drops below two options.
	MinChoiceOptions = 2
)

// StringList stores an ordered option list as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported type for StringList")
	}
	if len(b) == 0 {
		*l = StringList{}
		return nil
	}
	return json.Unmarshal(b, l)
}

// FormQuestion is one typed entry of a form schema. Order is 1-based and kept
// gapless by the builder; the id is a uuid and stable across reordering.
// swagger:model FormQuestion
type FormQuestion struct {
	UUIDBase
	FormID      string       `gorm:"index;type:varchar(36)" json:"formId"`
	Order       int          `gorm:"default:0" json:"order"`
	Title       string       `gorm:"size:500" json:"title"`
	Type        QuestionType `gorm:"size:50;not null" json:"type"`
	Required    bool         `gorm:"default:false" json:"required"`
	Options     StringList   `gorm:"type:json" json:"options"`
	MinRating   int          `gorm:"default:0" json:"minRating"`
	MaxRating   int          `gorm:"default:0" json:"maxRating"`
	Placeholder string       `gorm:"size:255" json:"placeholder"`
}

func (FormQuestion) TableName() string {
	return "form_questions"
}

func (t QuestionType) IsChoice() bool {
	return t == QuestionSingleChoice || t == QuestionMultipleChoice
}

// Valid reports whether t belongs to the declared vocabulary.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionEmail, QuestionPhone, QuestionSingleChoice,
		QuestionMultipleChoice, QuestionRating, QuestionDate, QuestionVoice,
		QuestionFileUpload, QuestionConditional, QuestionCalendar:
		return true
	}
	return false
}

// TypeDefaults returns the canonical type-specific fields for t: two seed
// options for choice types, the 1..5 scale for rating, empty otherwise.
// Idempotent by construction.
func TypeDefaults(t QuestionType) (options StringList, minRating, maxRating int) {
	switch {
	case t.IsChoice():
		return StringList{"Option 1", "Option 2"}, 0, 0
	case t == QuestionRating:
		return StringList{}, DefaultMinRating, DefaultMaxRating
	default:
		return StringList{}, 0, 0
	}
}

// ApplyTypeDefaults switches q to t and resets the type-specific fields so
// stale options or rating bounds never leak between type changes.
func (q *FormQuestion) ApplyTypeDefaults(t QuestionType) {
	q.Type = t
	q.Options, q.MinRating, q.MaxRating = TypeDefaults(t)
}

// CanRemoveOption reports whether removing the option at index keeps the
// question valid. Always true for non-choice types; there is nothing to
// protect there.
func CanRemoveOption(q *FormQuestion, index int) bool {
	if !q.Type.IsChoice() {
		return true
	}
	if index < 0 || index >= len(q.Options) {
		return true
	}
	return len(q.Options) > MinChoiceOptions
}

// Renumber rewrites Order to match array position (1..N). Called after every
// structural mutation: add, delete, move, duplicate.
func Renumber(questions []FormQuestion) []FormQuestion {
	for i := range questions {
		questions[i].Order = i + 1
	}
	return questions
}

// CloneQuestion deep-copies q with a fresh id so later edits to either copy
// never touch the other.
func CloneQuestion(q *FormQuestion) FormQuestion {
	dup := *q
	dup.UUIDBase = UUIDBase{ID: GenerateUUID()}
	dup.Options = append(StringList{}, q.Options...)
	return dup
}
