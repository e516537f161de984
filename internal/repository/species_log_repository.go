package repository

import (
	"biodiv_backend/internal/model"

	"gorm.io/gorm"
)

type SpeciesLogRepository struct {
	DB *gorm.DB
}

func NewSpeciesLogRepository(db *gorm.DB) *SpeciesLogRepository {
	return &SpeciesLogRepository{DB: db}
}

// Create stores the log and its answers in one transaction.
func (r *SpeciesLogRepository) Create(log *model.SpeciesLog) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(log).Error
	})
}

func (r *SpeciesLogRepository) FindByID(id uint) (*model.SpeciesLog, error) {
	var log model.SpeciesLog
	err := r.DB.Preload("Answers").First(&log, id).Error
	return &log, err
}

func (r *SpeciesLogRepository) FindByUser(userID uint) ([]model.SpeciesLog, error) {
	var logs []model.SpeciesLog
	err := r.DB.Preload("Answers").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *SpeciesLogRepository) FindAll() ([]model.SpeciesLog, int64, error) {
	var logs []model.SpeciesLog
	err := r.DB.Preload("Answers").
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.DB.Model(&model.SpeciesLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *SpeciesLogRepository) Update(log *model.SpeciesLog) error {
	return r.DB.Save(log).Error
}

func (r *SpeciesLogRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("species_log_id = ?", id).Delete(&model.LogAnswer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SpeciesLog{}, id).Error
	})
}

// LocationPoint is one observation coordinate for the public heatmap.
type LocationPoint struct {
	SpeciesID         uint     `json:"species_id"`
	SpeciesName       string   `json:"species_name"`
	LocationLatitude  *float64 `json:"location_latitude"`
	LocationLongitude *float64 `json:"location_longitude"`
}

func (r *SpeciesLogRepository) FindLocations() ([]LocationPoint, error) {
	var points []LocationPoint
	err := r.DB.Model(&model.SpeciesLog{}).
		Select("species_logs.species_id, species.name AS species_name, species_logs.location_latitude, species_logs.location_longitude").
		Joins("JOIN species ON species.id = species_logs.species_id").
		Where("species_logs.location_latitude IS NOT NULL AND species_logs.location_longitude IS NOT NULL").
		Where("species_logs.deleted_at IS NULL").
		Scan(&points).Error
	return points, err
}

// SpeciesImage maps a species to its most recent observation photo.
type SpeciesImage struct {
	SpeciesID uint   `json:"species_id"`
	PhotoPath string `json:"photo_path"`
}

func (r *SpeciesLogRepository) FindLatestImages() ([]SpeciesImage, error) {
	var images []SpeciesImage
	err := r.DB.Model(&model.SpeciesLog{}).
		Select("species_id, photo_path").
		Where("photo_path <> ''").
		Where("id IN (?)", r.DB.Model(&model.SpeciesLog{}).
			Select("MAX(id)").
			Where("photo_path <> ''").
			Group("species_id"),
		).
		Scan(&images).Error
	return images, err
}
