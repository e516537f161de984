package service

import (
	"biodiv_backend/internal/model"
	"biodiv_backend/internal/questionnaire"
	"biodiv_backend/internal/repository"
	"biodiv_backend/internal/util"
	"biodiv_backend/pkg/logger"
	"biodiv_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	locationsCacheKey = "species:locations"
	locationsCacheTTL = 5 * time.Minute
)

type ObservationService struct {
	LogRepo     *repository.SpeciesLogRepository
	SpeciesRepo *repository.SpeciesRepository
	Questions   *QuestionService
	Storage     *StorageService
	Redis       *redis.Client
}

func NewObservationService(
	logRepo *repository.SpeciesLogRepository,
	speciesRepo *repository.SpeciesRepository,
	questions *QuestionService,
	storage *StorageService,
	rdb *redis.Client,
) *ObservationService {
	return &ObservationService{
		LogRepo:     logRepo,
		SpeciesRepo: speciesRepo,
		Questions:   questions,
		Storage:     storage,
		Redis:       rdb,
	}
}

// Submit validates and stores one observation. The submitted answers are
// re-run through the questionnaire engine: duplicates collapse (last one
// wins), answers whose question is hidden under the submitted answer set
// are dropped as stale, and required visible questions must be answered.
func (s *ObservationService) Submit(ctx context.Context, userID uint, sub questionnaire.Submission, photo *multipart.FileHeader) (*model.SpeciesLog, error) {
	if sub.SpeciesID == nil {
		return nil, fmt.Errorf("species_id is required")
	}
	exists, err := s.SpeciesRepo.Exists(*sub.SpeciesID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrSpeciesNotFound
	}

	questions, err := s.Questions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	answerMap := questionnaire.AnswerMap(sub.Answers)
	kept := questionnaire.BuildAnswers(questions, answerMap)
	if dropped := len(sub.Answers) - len(kept); dropped > 0 {
		logger.Log.Info("dropped stale or duplicate answers from submission",
			zap.Uint("user_id", userID),
			zap.Int("dropped", dropped),
		)
	}

	if err := checkRequired(questions, answerMap); err != nil {
		monitoring.ObservationCounter.WithLabelValues("rejected").Inc()
		return nil, err
	}

	photoPath, err := s.storePhoto(ctx, photo)
	if err != nil {
		monitoring.ObservationCounter.WithLabelValues("rejected").Inc()
		return nil, err
	}

	entry := &model.SpeciesLog{
		UserID:            userID,
		SpeciesID:         *sub.SpeciesID,
		LocationName:      sub.LocationName,
		LocationLatitude:  sub.LocationLatitude,
		LocationLongitude: sub.LocationLongitude,
		Notes:             sub.Notes,
		PhotoPath:         photoPath,
	}
	for _, a := range kept {
		entry.Answers = append(entry.Answers, model.LogAnswer{
			QuestionID: a.QuestionID,
			AnswerText: a.AnswerText,
		})
	}

	if err := s.LogRepo.Create(entry); err != nil {
		monitoring.ObservationCounter.WithLabelValues("failed").Inc()
		return nil, err
	}

	monitoring.ObservationCounter.WithLabelValues("accepted").Inc()
	s.invalidateLocations(ctx)
	s.decorateOne(entry, questions)
	return entry, nil
}

// checkRequired enforces is_required for questions visible under the
// submitted answer state. Hidden required questions are exempt.
func checkRequired(questions []questionnaire.Question, answers map[uint]string) error {
	for _, q := range questionnaire.VisibleQuestions(questions, answers) {
		if !q.IsRequired {
			continue
		}
		if answers[q.ID] == "" {
			return fmt.Errorf("%w: %q", util.ErrMissingRequired, q.QuestionText)
		}
	}
	return nil
}

func (s *ObservationService) storePhoto(ctx context.Context, photo *multipart.FileHeader) (string, error) {
	if photo == nil {
		return "", nil
	}
	if photo.Size > util.MaxPhotoSize {
		return "", util.ErrPhotoTooLarge
	}

	src, err := photo.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeImage}); err != nil {
		return "", util.ErrPhotoNotImage
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("observations/%s%s", uuid.New().String(), filepath.Ext(photo.Filename))
	if _, err := s.Storage.Upload(ctx, filename, src, photo.Size, photo.Header.Get("Content-Type")); err != nil {
		return "", err
	}
	return filename, nil
}

// GetUserLogs returns the caller's own observations, answers decorated
// with their question text.
func (s *ObservationService) GetUserLogs(ctx context.Context, userID uint) ([]model.SpeciesLog, error) {
	logs, err := s.LogRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	questions, err := s.Questions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.decorate(logs, questions)
	return logs, nil
}

// GetAllLogs returns every observation with a total count, for the admin
// review screen.
func (s *ObservationService) GetAllLogs(ctx context.Context) ([]model.SpeciesLog, int64, error) {
	logs, total, err := s.LogRepo.FindAll()
	if err != nil {
		return nil, 0, err
	}
	questions, err := s.Questions.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	s.decorate(logs, questions)
	return logs, total, nil
}

// UpdateLog applies a partial admin update; currently the verify toggle
// and location fixes.
type LogPatch struct {
	Verified          *bool    `json:"verified"`
	LocationName      *string  `json:"location_name"`
	LocationLatitude  *float64 `json:"location_latitude"`
	LocationLongitude *float64 `json:"location_longitude"`
	Notes             *string  `json:"notes"`
}

func (s *ObservationService) UpdateLog(ctx context.Context, id uint, patch LogPatch) (*model.SpeciesLog, error) {
	entry, err := s.LogRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrLogNotFound
	}

	if patch.Verified != nil {
		entry.Verified = *patch.Verified
	}
	if patch.LocationName != nil {
		entry.LocationName = *patch.LocationName
	}
	if patch.LocationLatitude != nil {
		entry.LocationLatitude = patch.LocationLatitude
	}
	if patch.LocationLongitude != nil {
		entry.LocationLongitude = patch.LocationLongitude
	}
	if patch.Notes != nil {
		entry.Notes = *patch.Notes
	}

	if err := s.LogRepo.Update(entry); err != nil {
		return nil, err
	}
	s.invalidateLocations(ctx)

	questions, err := s.Questions.GetAll(ctx)
	if err == nil {
		s.decorateOne(entry, questions)
	}
	return entry, nil
}

func (s *ObservationService) DeleteLog(ctx context.Context, id uint) error {
	entry, err := s.LogRepo.FindByID(id)
	if err != nil {
		return util.ErrLogNotFound
	}
	if err := s.LogRepo.Delete(entry.ID); err != nil {
		return err
	}
	s.invalidateLocations(ctx)
	return nil
}

// GetLocations serves the public heatmap, cached in redis.
func (s *ObservationService) GetLocations(ctx context.Context) ([]repository.LocationPoint, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, locationsCacheKey).Result()
		if err == nil {
			var cached []repository.LocationPoint
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("locations cache read failed", zap.Error(err))
		}
	}

	points, err := s.LogRepo.FindLocations()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if encoded, err := json.Marshal(points); err == nil {
			if err := s.Redis.Set(ctx, locationsCacheKey, encoded, locationsCacheTTL).Err(); err != nil {
				logger.Log.Warn("locations cache write failed", zap.Error(err))
			}
		}
	}
	return points, nil
}

// GetSpeciesImages maps each species to its most recent observation photo
// URL, for the species picker preview.
func (s *ObservationService) GetSpeciesImages(ctx context.Context) ([]repository.SpeciesImage, error) {
	images, err := s.LogRepo.FindLatestImages()
	if err != nil {
		return nil, err
	}
	for i := range images {
		images[i].PhotoPath = s.Storage.GetURL(images[i].PhotoPath)
	}
	return images, nil
}

// decorate fills the transient question_text on answers from the question
// set. Deleted questions leave it empty; clients fall back to the id.
func (s *ObservationService) decorate(logs []model.SpeciesLog, questions []questionnaire.Question) {
	texts := make(map[uint]string, len(questions))
	for _, q := range questions {
		texts[q.ID] = q.QuestionText
	}
	for i := range logs {
		for j := range logs[i].Answers {
			logs[i].Answers[j].QuestionText = texts[logs[i].Answers[j].QuestionID]
		}
	}
}

func (s *ObservationService) decorateOne(entry *model.SpeciesLog, questions []questionnaire.Question) {
	texts := make(map[uint]string, len(questions))
	for _, q := range questions {
		texts[q.ID] = q.QuestionText
	}
	for i := range entry.Answers {
		entry.Answers[i].QuestionText = texts[entry.Answers[i].QuestionID]
	}
}

func (s *ObservationService) invalidateLocations(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, locationsCacheKey).Err(); err != nil {
		logger.Log.Warn("locations cache invalidation failed", zap.Error(err))
	}
}
