package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"finlearn_backend/internal/model"
	"finlearn_backend/internal/repository"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	courseListCacheKey = "courses:list"
	courseListCacheTTL = 5 * time.Minute
)

// CourseService 课程目录。目录不依赖调用者身份，列表走 redis 缓存，
// 管理端写操作负责失效。
type CourseService struct {
	Repo *repository.CourseRepository
	RDB  *redis.Client
}

func NewCourseService(repo *repository.CourseRepository, rdb *redis.Client) *CourseService {
	return &CourseService{Repo: repo, RDB: rdb}
}

func (s *CourseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	if s.RDB != nil {
		cached, err := s.RDB.Get(ctx, courseListCacheKey).Result()
		if err == nil {
			var courses []model.Course
			if json.Unmarshal([]byte(cached), &courses) == nil {
				return courses, nil
			}
		}
	}

	courses, err := s.Repo.FindAll()
	if err != nil {
		return nil, err
	}

	if s.RDB != nil {
		if payload, err := json.Marshal(courses); err == nil {
			s.RDB.Set(ctx, courseListCacheKey, payload, courseListCacheTTL)
		}
	}

	return courses, nil
}

// GetCourseByID 课程及其排序后的单元/课时；不存在返回 nil 而非错误。
func (s *CourseService) GetCourseByID(id uint) (*model.Course, error) {
	course, err := s.Repo.FindByIDWithUnits(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) CreateCourse(ctx context.Context, course *model.Course) error {
	if err := s.Repo.Create(course); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, course *model.Course) error {
	exists, err := s.Repo.Exists(course.ID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCourseNotFound
	}
	if err := s.Repo.Update(course); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, id uint) error {
	exists, err := s.Repo.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCourseNotFound
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *CourseService) invalidateList(ctx context.Context) {
	if s.RDB != nil {
		s.RDB.Del(ctx, courseListCacheKey)
	}
}
