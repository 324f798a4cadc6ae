package database

import (
	"fmt"
	"leadform_backend/internal/config"
	"leadform_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Form{},
			&model.FormQuestion{},
			&model.Lead{},
			&model.LeadAnswer{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		seedExampleForm(db)
	}

	return db, nil
}

// seedExampleForm inserts a sample intake form on an empty database so a
// fresh install has something to open in both renderers.
func seedExampleForm(db *gorm.DB) {
	var count int64
	db.Model(&model.Form{}).Count(&count)
	if count > 0 {
		return
	}

	form := &model.Form{
		Title:        "Get in touch",
		Description:  "Tell us a little about yourself and we'll get back to you.",
		BusinessName: "Acme Studio",
	}
	if err := db.Create(form).Error; err != nil {
		return
	}

	questions := []model.FormQuestion{
		{FormID: form.ID, Title: "What is your name?", Type: model.QuestionText, Required: true, Placeholder: "Your full name"},
		{FormID: form.ID, Title: "What is your email address?", Type: model.QuestionEmail, Required: true, Placeholder: "you@example.com"},
		{FormID: form.ID, Title: "How did you hear about us?", Type: model.QuestionSingleChoice, Options: model.StringList{"Search engine", "Social media", "A friend"}},
		{FormID: form.ID, Title: "How likely are you to recommend us?", Type: model.QuestionRating, MinRating: model.DefaultMinRating, MaxRating: model.DefaultMaxRating},
	}
	model.Renumber(questions)
	for i := range questions {
		db.Create(&questions[i])
	}
}
