package repository

import (
	"leadform_backend/internal/model"

	"gorm.io/gorm"
)

type LeadRepository struct {
	DB *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) CreateLead(lead *model.Lead) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		answers := lead.Answers
		lead.Answers = nil
		if err := tx.Create(lead).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].LeadID = lead.ID
			if err := tx.Create(&answers[i]).Error; err != nil {
				return err
			}
		}
		lead.Answers = answers
		return nil
	})
}

func (r *LeadRepository) FindLeadByID(id string) (*model.Lead, error) {
	var lead model.Lead
	err := r.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc")
	}).Where("id = ?", id).First(&lead).Error
	return &lead, err
}

func (r *LeadRepository) ListLeadsByForm(formID string, page, limit int) ([]model.Lead, int64, error) {
	var leads []model.Lead
	var total int64
	query := r.DB.Model(&model.Lead{}).Where("form_id = ?", formID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&leads).Error
	return leads, total, err
}

func (r *LeadRepository) DeleteLead(id string) error {
	if err := r.DB.Where("lead_id = ?", id).Delete(&model.LeadAnswer{}).Error; err != nil {
		return err
	}
	return r.DB.Where("id = ?", id).Delete(&model.Lead{}).Error
}
