package repository

import (
	"biodiv_backend/internal/model"

	"gorm.io/gorm"
)

type SpeciesRepository struct {
	DB *gorm.DB
}

func NewSpeciesRepository(db *gorm.DB) *SpeciesRepository {
	return &SpeciesRepository{DB: db}
}

func (r *SpeciesRepository) Create(species *model.Species) error {
	return r.DB.Create(species).Error
}

func (r *SpeciesRepository) FindByID(id uint) (*model.Species, error) {
	var species model.Species
	err := r.DB.First(&species, id).Error
	return &species, err
}

func (r *SpeciesRepository) FindAll() ([]model.Species, error) {
	var species []model.Species
	err := r.DB.Order("name").Find(&species).Error
	return species, err
}

func (r *SpeciesRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Species{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
