package repository

import (
	"leadform_backend/internal/model"

	"gorm.io/gorm"
)

type FormRepository struct {
	DB *gorm.DB
}

func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{DB: db}
}

func (r *FormRepository) CreateForm(form *model.Form) error {
	return r.DB.Create(form).Error
}

func (r *FormRepository) FindFormByID(id string) (*model.Form, error) {
	var f model.Form
	err := r.DB.Where("id = ?", id).First(&f).Error
	return &f, err
}

func (r *FormRepository) ListFormsByOwner(ownerID uint, page, limit int) ([]model.Form, int64, error) {
	var forms []model.Form
	var total int64
	query := r.DB.Model(&model.Form{}).Where("owner_id = ?", ownerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&forms).Error
	return forms, total, err
}

func (r *FormRepository) UpdateForm(form *model.Form) error {
	return r.DB.Save(form).Error
}

func (r *FormRepository) DeleteForm(id string) error {
	if err := r.DB.Where("form_id = ?", id).Delete(&model.FormQuestion{}).Error; err != nil {
		return err
	}
	return r.DB.Where("id = ?", id).Delete(&model.Form{}).Error
}

func (r *FormRepository) ListQuestions(formID string) ([]model.FormQuestion, error) {
	var qs []model.FormQuestion
	err := r.DB.Where("form_id = ?", formID).
		Order("`order` asc, created_at asc").
		Find(&qs).Error
	return qs, err
}

func (r *FormRepository) FindQuestionByID(id string) (*model.FormQuestion, error) {
	var q model.FormQuestion
	err := r.DB.Where("id = ?", id).First(&q).Error
	return &q, err
}

func (r *FormRepository) CreateQuestion(q *model.FormQuestion) error {
	return r.DB.Create(q).Error
}

func (r *FormRepository) UpdateQuestion(q *model.FormQuestion) error {
	return r.DB.Save(q).Error
}

func (r *FormRepository) DeleteQuestion(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.FormQuestion{}).Error
}

// SaveQuestions persists the whole sequence, used after renumbering passes.
func (r *FormRepository) SaveQuestions(formID string, qs []model.FormQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range qs {
			if err := tx.Save(&qs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
