package model

// swagger:model Species
type Species struct {
	BaseModel
	Name           string `gorm:"size:255;not null" json:"name"`
	ScientificName string `gorm:"size:255" json:"scientific_name"`
	Category       string `gorm:"size:100" json:"category"`
	Description    string `gorm:"type:text" json:"description"`
}

func (Species) TableName() string {
	return "species"
}
