package model

// LeadSource tells which rendering surface produced the lead.
type LeadSource string

const (
	LeadSourceForm LeadSource = "form"
	LeadSourceChat LeadSource = "chat"
)

// swagger:model Lead
type Lead struct {
	UUIDBase
	FormID string     `gorm:"index;type:varchar(36)" json:"formId"`
	Source LeadSource `gorm:"size:20;default:'form'" json:"source"`
	Email  string     `gorm:"size:150" json:"email"`

	Answers []LeadAnswer `gorm:"foreignKey:LeadID" json:"answers,omitempty"`
}

func (Lead) TableName() string {
	return "leads"
}

// LeadAnswer keeps one raw answer. Order mirrors the question's order at
// submission time so a lead stays readable even after the schema changes.
type LeadAnswer struct {
	UUIDBase
	LeadID        string `gorm:"index;type:varchar(36)" json:"leadId"`
	QuestionID    string `gorm:"index;type:varchar(36)" json:"questionId"`
	QuestionTitle string `gorm:"size:500" json:"questionTitle"`
	Order         int    `gorm:"default:0" json:"order"`
	Value         string `gorm:"type:text" json:"value"`
}

func (LeadAnswer) TableName() string {
	return "lead_answers"
}
