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
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	questionCacheKey = "questions:all"
	questionCacheTTL = 10 * time.Minute
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	Redis        *redis.Client
}

func NewQuestionService(questionRepo *repository.QuestionRepository, rdb *redis.Client) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		Redis:        rdb,
	}
}

// GetAll returns the question set in wire form, cached in redis. Cache
// misses and redis failures both fall through to the database.
func (s *QuestionService) GetAll(ctx context.Context) ([]questionnaire.Question, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, questionCacheKey).Result()
		if err == nil {
			var cached []questionnaire.Question
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("question cache read failed", zap.Error(err))
		}
	}

	rows, err := s.QuestionRepo.FindAll()
	if err != nil {
		return nil, err
	}
	questions := model.EngineQuestions(rows)
	s.reportUnresolved(questions)

	if s.Redis != nil {
		if encoded, err := json.Marshal(questions); err == nil {
			if err := s.Redis.Set(ctx, questionCacheKey, encoded, questionCacheTTL).Err(); err != nil {
				logger.Log.Warn("question cache write failed", zap.Error(err))
			}
		}
	}

	return questions, nil
}

// Overview is the public three-part questionnaire summary for the landing
// page, bucketed by order_index range.
func (s *QuestionService) Overview(ctx context.Context) (questionnaire.LegacyParts, error) {
	questions, err := s.GetAll(ctx)
	if err != nil {
		return questionnaire.LegacyParts{}, err
	}
	return questionnaire.SplitLegacyParts(questions), nil
}

// Create validates and stores a new question. Choice types without options
// are rejected before any write.
func (s *QuestionService) Create(ctx context.Context, eq questionnaire.Question) (questionnaire.Question, error) {
	if err := validateQuestion(eq); err != nil {
		return questionnaire.Question{}, err
	}

	var row model.Question
	row.ApplyEngine(eq)
	if err := s.QuestionRepo.Create(&row); err != nil {
		return questionnaire.Question{}, err
	}

	s.invalidate(ctx)
	return row.Engine(), nil
}

// QuestionPatch carries a partial question update. Nil fields are absent
// from the request and keep their stored values; pointers let a request
// set a field to its zero value (required off, order index 0, section
// cleared back to the default bucket).
type QuestionPatch struct {
	QuestionText   *string                       `json:"question_text"`
	QuestionType   *string                       `json:"question_type"`
	IsRequired     *bool                         `json:"is_required"`
	Section        *string                       `json:"section"`
	OrderIndex     *int                          `json:"order_index"`
	Options        []string                      `json:"options"`
	DependsOn      *questionnaire.ParentRef      `json:"depends_on"`
	DependsOnValue *questionnaire.DependsOnValue `json:"depends_on_value"`
	Details        map[string]any                `json:"details"`
}

func mergeQuestionPatch(base questionnaire.Question, patch QuestionPatch) questionnaire.Question {
	merged := base
	if patch.QuestionText != nil {
		merged.QuestionText = *patch.QuestionText
	}
	if patch.QuestionType != nil {
		merged.QuestionType = *patch.QuestionType
	}
	if patch.IsRequired != nil {
		merged.IsRequired = *patch.IsRequired
	}
	if patch.Section != nil {
		merged.Section = *patch.Section
	}
	if patch.OrderIndex != nil {
		merged.OrderIndex = *patch.OrderIndex
	}
	if patch.Options != nil {
		merged.Options = patch.Options
	}
	if patch.DependsOn != nil {
		merged.DependsOn = patch.DependsOn
	}
	if patch.DependsOnValue != nil {
		merged.DependsOnValue = patch.DependsOnValue
	}
	if patch.Details != nil {
		merged.Details = patch.Details
	}
	return merged
}

// Update applies a partial update: fields absent from the request keep
// their stored values, matching the PUT contract of the admin screens.
func (s *QuestionService) Update(ctx context.Context, id uint, patch QuestionPatch) (questionnaire.Question, error) {
	row, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return questionnaire.Question{}, util.ErrQuestionNotFound
	}

	merged := mergeQuestionPatch(row.Engine(), patch)

	if err := validateQuestion(merged); err != nil {
		return questionnaire.Question{}, err
	}

	row.ApplyEngine(merged)
	if err := s.QuestionRepo.Update(row); err != nil {
		return questionnaire.Question{}, err
	}

	s.invalidate(ctx)
	return row.Engine(), nil
}

func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.QuestionRepo.FindByID(id); err != nil {
		return util.ErrQuestionNotFound
	}
	if err := s.QuestionRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func validateQuestion(eq questionnaire.Question) error {
	if eq.ChoiceType() && len(eq.Options) == 0 {
		return util.ErrOptionsRequired
	}
	return nil
}

// reportUnresolved surfaces dangling depends_on references. The engine
// fails open for these, so logs and metrics are the only place authoring
// mistakes become visible.
func (s *QuestionService) reportUnresolved(questions []questionnaire.Question) {
	for _, q := range questionnaire.UnresolvedRefs(questions) {
		monitoring.UnresolvedDependencyCounter.Inc()
		logger.Log.Warn("question has unresolved dependency",
			zap.Uint("question_id", q.ID),
			zap.String("question_text", q.QuestionText),
		)
	}
}

func (s *QuestionService) invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, questionCacheKey).Err(); err != nil {
		logger.Log.Warn("question cache invalidation failed", zap.Error(err))
	}
}
