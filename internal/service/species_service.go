package service

import (
	"biodiv_backend/internal/model"
	"biodiv_backend/internal/repository"
	"biodiv_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	speciesCacheKey = "species:all"
	speciesCacheTTL = 10 * time.Minute
)

type SpeciesService struct {
	SpeciesRepo *repository.SpeciesRepository
	Redis       *redis.Client
}

func NewSpeciesService(speciesRepo *repository.SpeciesRepository, rdb *redis.Client) *SpeciesService {
	return &SpeciesService{
		SpeciesRepo: speciesRepo,
		Redis:       rdb,
	}
}

func (s *SpeciesService) GetAll(ctx context.Context) ([]model.Species, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, speciesCacheKey).Result()
		if err == nil {
			var cached []model.Species
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("species cache read failed", zap.Error(err))
		}
	}

	species, err := s.SpeciesRepo.FindAll()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if encoded, err := json.Marshal(species); err == nil {
			if err := s.Redis.Set(ctx, speciesCacheKey, encoded, speciesCacheTTL).Err(); err != nil {
				logger.Log.Warn("species cache write failed", zap.Error(err))
			}
		}
	}

	return species, nil
}

func (s *SpeciesService) Create(ctx context.Context, species *model.Species) error {
	if species.Name == "" {
		return errors.New("species name is required")
	}
	if err := s.SpeciesRepo.Create(species); err != nil {
		return err
	}

	if s.Redis != nil {
		if err := s.Redis.Del(ctx, speciesCacheKey).Err(); err != nil {
			logger.Log.Warn("species cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}

// NameIndex maps species id to name for export rows.
func (s *SpeciesService) NameIndex(ctx context.Context) (map[uint]string, error) {
	species, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[uint]string, len(species))
	for _, sp := range species {
		index[sp.ID] = sp.Name
	}
	return index, nil
}
