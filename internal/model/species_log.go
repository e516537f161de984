package model

// SpeciesLog is one submitted observation: species, location, optional
// photo and the questionnaire answers given at submission time.
// swagger:model SpeciesLog
type SpeciesLog struct {
	BaseModel
	UserID            uint        `gorm:"index;not null" json:"user_id"`
	SpeciesID         uint        `gorm:"index;not null" json:"species_id"`
	LocationName      string      `gorm:"size:255" json:"location_name"`
	LocationLatitude  *float64    `json:"location_latitude"`
	LocationLongitude *float64    `json:"location_longitude"`
	Notes             string      `gorm:"type:text" json:"notes"`
	PhotoPath         string      `gorm:"size:255" json:"photo_path"`
	Verified          bool        `gorm:"default:false" json:"verified"`
	Answers           []LogAnswer `gorm:"constraint:OnDelete:CASCADE" json:"answers"`
}

func (SpeciesLog) TableName() string {
	return "species_logs"
}

// LogAnswer is one questionnaire answer attached to a species log.
// QuestionText is filled from the question table when serving responses,
// never persisted.
// swagger:model LogAnswer
type LogAnswer struct {
	BaseModel
	SpeciesLogID uint   `gorm:"index;not null" json:"species_log_id"`
	QuestionID   uint   `gorm:"index;not null" json:"question_id"`
	AnswerText   string `gorm:"type:text" json:"answer_text"`
	QuestionText string `gorm:"-" json:"question_text,omitempty"`
}

func (LogAnswer) TableName() string {
	return "log_answers"
}
