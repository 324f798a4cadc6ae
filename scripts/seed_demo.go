// Seeds a demo form that exercises every question type.
//
// The normal startup seed only inserts a small intake form on an empty
// database. This script is for staging environments that want a form with
// the full widget set to click through.
//
// Usage: go run scripts/seed_demo.go

package main

import (
	"leadform_backend/internal/config"
	"leadform_backend/internal/model"
	"leadform_backend/pkg/database"
	"leadform_backend/pkg/logger"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	form := &model.Form{
		Title:        "Demo: every question type",
		Description:  "One question per widget, for staging walkthroughs.",
		BusinessName: "Demo Studio",
	}
	if err := db.Create(form).Error; err != nil {
		log.Fatalf("failed to create demo form: %v", err)
	}

	questions := []model.FormQuestion{
		{Title: "What is your name?", Type: model.QuestionText, Required: true},
		{Title: "What is your email address?", Type: model.QuestionEmail, Required: true},
		{Title: "What is your phone number?", Type: model.QuestionPhone},
		{Title: "Which service are you interested in?", Type: model.QuestionSingleChoice, Options: model.StringList{"Design", "Development", "Consulting"}},
		{Title: "Which channels may we use to reach you?", Type: model.QuestionMultipleChoice, Options: model.StringList{"Email", "Phone", "SMS"}},
		{Title: "How urgent is your request?", Type: model.QuestionRating, MinRating: model.DefaultMinRating, MaxRating: model.DefaultMaxRating},
		{Title: "When would you like to start?", Type: model.QuestionDate},
		{Title: "Leave us a short voice note", Type: model.QuestionVoice},
		{Title: "Attach a brief or reference file", Type: model.QuestionFileUpload},
	}
	for i := range questions {
		questions[i].FormID = form.ID
	}
	model.Renumber(questions)
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			log.Fatalf("failed to create question %d: %v", i+1, err)
		}
	}

	log.Printf("seeded demo form %s with %d questions", form.ID, len(questions))
}
