package database

import (
	"biodiv_backend/internal/config"
	"biodiv_backend/internal/model"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ShouldMigrate reports whether AutoMigrate runs on startup: always outside
// release mode, in release mode only when forced from the command line.
func ShouldMigrate(mode string, force bool) bool {
	return force || mode != "release"
}

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
			&model.Species{},
			&model.Question{},
			&model.SpeciesLog{},
			&model.LogAnswer{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		seedQuestionnaire(db)
		seedSpecies(db)
	}

	return db, nil
}

type seedQuestion struct {
	Text           string
	Type           string
	Required       bool
	Section        string
	OrderIndex     int
	Options        []string
	DependsOn      any // numeric id or question text
	DependsOnValue any // string, []string or "*"
	Details        map[string]any
}

// seedQuestionnaire installs the structured questionnaire on an empty
// database so a fresh install renders the full form. Dependencies reference
// parents by question text: seed ids are not stable across installs.
func seedQuestionnaire(db *gorm.DB) {
	var count int64
	db.Model(&model.Question{}).Count(&count)
	if count > 0 {
		return
	}

	seeds := []seedQuestion{
		{Text: "What is your occupation?", Type: "text", Section: "Socio-Economic", OrderIndex: 1},
		{Text: "How many people live in your household?", Type: "number", Section: "Socio-Economic", OrderIndex: 2,
			Details: map[string]any{"min": 1, "max": 50}},
		{Text: "What is your main source of income?", Type: "single_choice", Section: "Socio-Economic", OrderIndex: 3,
			Options: []string{"Agriculture", "Livestock", "Business", "Employment", "Other"}},
		{Text: "Have you seen elephants near your village?", Type: "boolean", Required: true, Section: "Human-Elephant", OrderIndex: 11},
		{Text: "How many elephants did you see?", Type: "number", Section: "Human-Elephant", OrderIndex: 12,
			DependsOn: "Have you seen elephants near your village?", DependsOnValue: "Yes"},
		{Text: "When did you last see them?", Type: "date", Section: "Human-Elephant", OrderIndex: 13,
			DependsOn: "Have you seen elephants near your village?", DependsOnValue: "Yes"},
		{Text: "Did elephants damage your crops?", Type: "boolean", Section: "Human-Elephant", OrderIndex: 14,
			DependsOn: "Have you seen elephants near your village?", DependsOnValue: "Yes"},
		{Text: "Which crops were damaged?", Type: "multiple_choice", Section: "Human-Elephant", OrderIndex: 15,
			Options:   []string{"Rice", "Maize", "Sugarcane", "Vegetables", "Fruit trees"},
			DependsOn: "Did elephants damage your crops?", DependsOnValue: "Yes",
			Details: map[string]any{"allow_multiple": true}},
		{Text: "Describe the damage", Type: "textarea", Section: "Human-Elephant", OrderIndex: 16,
			DependsOn: "Did elephants damage your crops?", DependsOnValue: "*",
			Details: map[string]any{"placeholder": "Extent of damage, time of day, mitigation used"}},
		{Text: "Have you seen other wildlife?", Type: "single_choice", Section: "Other Wildlife", OrderIndex: 21,
			Options: []string{"Yes", "No", "Not sure"}},
		{Text: "In which habitat did you see them?", Type: "multiple_choice", Section: "Other Wildlife", OrderIndex: 22,
			Options:   []string{"Forest", "Wetland", "Grassland", "Farmland", "Urban"},
			DependsOn: "Have you seen other wildlife?", DependsOnValue: []string{"Yes", "Not sure"},
			Details: map[string]any{"allow_multiple": true, "examples": "Forest, Wetland"}},
	}

	byText := map[string]uint{}
	for _, s := range seeds {
		q := model.Question{
			QuestionText: s.Text,
			QuestionType: s.Type,
			IsRequired:   s.Required,
			Section:      s.Section,
			OrderIndex:   s.OrderIndex,
		}
		q.Options = mustJSON(s.Options)
		q.DependsOn = mustJSON(s.DependsOn)
		q.DependsOnValue = mustJSON(s.DependsOnValue)
		q.Details = mustJSON(s.Details)
		if err := db.Create(&q).Error; err != nil {
			log.Printf("questionnaire seed failed for %q: %v", s.Text, err)
			continue
		}
		byText[s.Text] = q.ID
	}
	log.Printf("Seeded %d questionnaire questions", len(byText))
}

func seedSpecies(db *gorm.DB) {
	var count int64
	db.Model(&model.Species{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Species{
		{Name: "Asian Elephant", ScientificName: "Elephas maximus", Category: "Mammal"},
		{Name: "Bengal Tiger", ScientificName: "Panthera tigris tigris", Category: "Mammal"},
		{Name: "One-horned Rhinoceros", ScientificName: "Rhinoceros unicornis", Category: "Mammal"},
		{Name: "Sarus Crane", ScientificName: "Antigone antigone", Category: "Bird"},
	}
	for _, s := range defaults {
		db.Create(&s)
	}
}

func mustJSON(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}
