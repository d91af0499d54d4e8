package service

import (
	"context"
	"errors"
	"math"

	"finlearn_backend/internal/model"
	"finlearn_backend/internal/repository"
	"finlearn_backend/internal/util"
	"finlearn_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// ProgressService 是只读的进度推导层：课时/挑战完成度、活跃课时、完成百分比
// 都是对存储层查询结果的纯函数，本身不持有任何可变状态。
type ProgressService struct {
	UnitRepo         *repository.UnitRepository
	LessonRepo       *repository.LessonRepository
	UserProgressRepo *repository.UserProgressRepository
}

func NewProgressService(
	unitRepo *repository.UnitRepository,
	lessonRepo *repository.LessonRepository,
	userProgressRepo *repository.UserProgressRepository,
) *ProgressService {
	return &ProgressService{
		UnitRepo:         unitRepo,
		LessonRepo:       lessonRepo,
		UserProgressRepo: userProgressRepo,
	}
}

// CourseProgress 活跃课时解析结果。全部课时都已完成时两个字段皆为零值，
// 这是正常的终态而不是错误。
type CourseProgress struct {
	ActiveLesson   *model.Lesson `json:"activeLesson,omitempty"`
	ActiveLessonID uint          `json:"activeLessonId,omitempty"`
}

// challengeCompleted 统一的挑战完成规则：至少存在一条进度行，且所有行均为已完成。
// 没有进度行视为未完成。
func challengeCompleted(rows []model.ChallengeProgress) bool {
	if len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		if !row.Completed {
			return false
		}
	}
	return true
}

// lessonCompleted 课时完成：有至少一个挑战且每个挑战都已完成。
// 零挑战的课时按未完成处理。
func lessonCompleted(challenges []model.Challenge) bool {
	if len(challenges) == 0 {
		return false
	}
	for _, challenge := range challenges {
		if !challengeCompleted(challenge.Progress) {
			return false
		}
	}
	return true
}

// GetUnits 返回活跃课程的单元树，每个课时附带推导出的 completed 标记。
// 未登录或没有活跃课程时返回空切片。
func (s *ProgressService) GetUnits(ctx context.Context, userID string) ([]model.Unit, error) {
	if userID == "" {
		return []model.Unit{}, nil
	}

	userProgress, err := s.userProgress(userID)
	if err != nil {
		return nil, err
	}
	if userProgress == nil || userProgress.ActiveCourseID == nil {
		return []model.Unit{}, nil
	}

	units, err := s.UnitRepo.FindByCourseForUser(*userProgress.ActiveCourseID, userID)
	if err != nil {
		return nil, err
	}

	for i := range units {
		for j := range units[i].Lessons {
			lesson := &units[i].Lessons[j]
			lesson.Completed = lessonCompleted(lesson.Challenges)
		}
	}

	return units, nil
}

// GetCourseProgress 在 (unit_order, lesson_order) 遍历序里找到第一个含未完成
// 挑战的课时。结果按请求级缓存，同一请求内 GetLesson / GetLessonPercentage
// 不会重复发起这组查询。
func (s *ProgressService) GetCourseProgress(ctx context.Context, userID string) (*CourseProgress, error) {
	if userID == "" {
		monitoring.ActiveLessonResolutions.WithLabelValues("anonymous").Inc()
		return nil, nil
	}

	cache := util.RequestCacheFrom(ctx)
	v, err := cache.GetOrCompute("course-progress:"+userID, func() (interface{}, error) {
		return s.resolveCourseProgress(userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*CourseProgress), nil
}

func (s *ProgressService) resolveCourseProgress(userID string) (*CourseProgress, error) {
	userProgress, err := s.userProgress(userID)
	if err != nil {
		return nil, err
	}
	if userProgress == nil || userProgress.ActiveCourseID == nil {
		return &CourseProgress{}, nil
	}

	units, err := s.UnitRepo.FindByCourseForUser(*userProgress.ActiveCourseID, userID)
	if err != nil {
		return nil, err
	}

	for i := range units {
		for j := range units[i].Lessons {
			lesson := &units[i].Lessons[j]
			if lessonCompleted(lesson.Challenges) {
				continue
			}
			monitoring.ActiveLessonResolutions.WithLabelValues("resolved").Inc()
			return &CourseProgress{
				ActiveLesson:   lesson,
				ActiveLessonID: lesson.ID,
			}, nil
		}
	}

	// 所有课时均已完成
	monitoring.ActiveLessonResolutions.WithLabelValues("exhausted").Inc()
	return &CourseProgress{}, nil
}

// GetLesson 按给定 id 加载课时；id 为 0 时解析当前活跃课时。
// 课时不存在或没有任何挑战时返回 nil。
func (s *ProgressService) GetLesson(ctx context.Context, userID string, lessonID uint) (*model.Lesson, error) {
	if userID == "" {
		return nil, nil
	}

	if lessonID == 0 {
		progress, err := s.GetCourseProgress(ctx, userID)
		if err != nil {
			return nil, err
		}
		if progress == nil || progress.ActiveLessonID == 0 {
			return nil, nil
		}
		lessonID = progress.ActiveLessonID
	}

	lesson, err := s.LessonRepo.FindByIDForUser(lessonID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(lesson.Challenges) == 0 {
		return nil, nil
	}

	for i := range lesson.Challenges {
		challenge := &lesson.Challenges[i]
		challenge.Completed = challengeCompleted(challenge.Progress)
	}
	lesson.Completed = lessonCompleted(lesson.Challenges)

	return lesson, nil
}

// GetLessonPercentage 活跃课时的完成百分比，四舍五入取整。
// 解析不到课时、或课时没有挑战时返回 0，永远不会除零。
func (s *ProgressService) GetLessonPercentage(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}

	progress, err := s.GetCourseProgress(ctx, userID)
	if err != nil {
		return 0, err
	}
	if progress == nil || progress.ActiveLessonID == 0 {
		return 0, nil
	}

	lesson, err := s.GetLesson(ctx, userID, progress.ActiveLessonID)
	if err != nil {
		return 0, err
	}
	if lesson == nil || len(lesson.Challenges) == 0 {
		return 0, nil
	}

	completed := 0
	for _, challenge := range lesson.Challenges {
		if challenge.Completed {
			completed++
		}
	}

	percentage := math.Round(float64(completed) / float64(len(lesson.Challenges)) * 100)
	return int(percentage), nil
}

func (s *ProgressService) userProgress(userID string) (*model.UserProgress, error) {
	progress, err := s.UserProgressRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return progress, nil
}
