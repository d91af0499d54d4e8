package service

import (
	"errors"

	"finlearn_backend/internal/model"
	"finlearn_backend/internal/repository"

	"gorm.io/gorm"
)

const (
	maxHearts          = 5
	defaultPoints      = 5
	pointsPerChallenge = 10
	pointsToRefill     = 10
)

// UserProgressService 持有用户侧的全部写路径：活跃课程切换、挑战作答、
// hearts/points 计数。读推导逻辑在 ProgressService 里。
type UserProgressService struct {
	Repo          *repository.UserProgressRepository
	CourseRepo    *repository.CourseRepository
	ChallengeRepo *repository.ChallengeRepository
	ProgressRepo  *repository.ChallengeProgressRepository
	Subscription  *SubscriptionService
}

func NewUserProgressService(
	repo *repository.UserProgressRepository,
	courseRepo *repository.CourseRepository,
	challengeRepo *repository.ChallengeRepository,
	progressRepo *repository.ChallengeProgressRepository,
	subscription *SubscriptionService,
) *UserProgressService {
	return &UserProgressService{
		Repo:          repo,
		CourseRepo:    courseRepo,
		ChallengeRepo: challengeRepo,
		ProgressRepo:  progressRepo,
		Subscription:  subscription,
	}
}

// Get 用户进度行加活跃课程；无记录返回 nil。
func (s *UserProgressService) Get(userID string) (*model.UserProgress, error) {
	if userID == "" {
		return nil, nil
	}

	progress, err := s.Repo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return progress, nil
}

// SetActiveCourse 选课。首次选课会建出 user_progress 行（默认 5 心 5 分），
// 再次选课只切换 active_course_id 并刷新展示字段。
func (s *UserProgressService) SetActiveCourse(userID, userName, userImageSrc string, courseID uint) error {
	exists, err := s.CourseRepo.Exists(courseID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrCourseNotFound
	}

	if userName == "" {
		userName = "User"
	}
	if userImageSrc == "" {
		userImageSrc = "/mascot.svg"
	}

	return s.Repo.Upsert(&model.UserProgress{
		UserID:         userID,
		UserName:       userName,
		UserImageSrc:   userImageSrc,
		ActiveCourseID: &courseID,
		Hearts:         maxHearts,
		Points:         defaultPoints,
	})
}

// CompleteChallenge 记录一次成功作答。首次完成奖励积分；重刷（已有进度行）
// 额外回一颗心。无进度行且心数为零的非会员会被拒绝。
func (s *UserProgressService) CompleteChallenge(userID string, challengeID uint) error {
	if _, err := s.ChallengeRepo.FindByID(challengeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChallengeNotFound
		}
		return err
	}

	progress, err := s.Repo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserProgressNotFound
		}
		return err
	}

	practice := true
	if _, err := s.ProgressRepo.FindByUserAndChallenge(userID, challengeID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		practice = false
	}

	if !practice && progress.Hearts == 0 {
		active, err := s.Subscription.IsActive(userID)
		if err != nil {
			return err
		}
		if !active {
			return ErrNoHearts
		}
	}

	if err := s.ProgressRepo.Upsert(&model.ChallengeProgress{
		UserID:      userID,
		ChallengeID: challengeID,
		Completed:   true,
	}); err != nil {
		return err
	}

	if practice {
		hearts := progress.Hearts + 1
		if hearts > maxHearts {
			hearts = maxHearts
		}
		return s.Repo.UpdateHeartsAndPoints(userID, hearts, progress.Points+pointsPerChallenge)
	}

	return s.Repo.AddPoints(userID, pointsPerChallenge)
}

// ReduceHearts 答错扣心。重刷已完成的挑战不扣；活跃订阅用户不扣；
// 扣到零之后再答错返回 ErrNoHearts。
func (s *UserProgressService) ReduceHearts(userID string, challengeID uint) (int, error) {
	progress, err := s.Repo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserProgressNotFound
		}
		return 0, err
	}

	if _, err := s.ProgressRepo.FindByUserAndChallenge(userID, challengeID); err == nil {
		// 重刷，不扣心
		return progress.Hearts, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	active, err := s.Subscription.IsActive(userID)
	if err != nil {
		return 0, err
	}
	if active {
		return progress.Hearts, nil
	}

	if progress.Hearts == 0 {
		return 0, ErrNoHearts
	}

	hearts := progress.Hearts - 1
	if err := s.Repo.UpdateHearts(userID, hearts); err != nil {
		return 0, err
	}
	return hearts, nil
}

// RefillHearts 花费积分回满心数。
func (s *UserProgressService) RefillHearts(userID string) (*model.UserProgress, error) {
	progress, err := s.Repo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserProgressNotFound
		}
		return nil, err
	}

	if progress.Hearts >= maxHearts {
		return nil, ErrHeartsFull
	}
	if progress.Points < pointsToRefill {
		return nil, ErrNotEnoughPoints
	}

	progress.Hearts = maxHearts
	progress.Points -= pointsToRefill
	if err := s.Repo.UpdateHeartsAndPoints(userID, progress.Hearts, progress.Points); err != nil {
		return nil, err
	}
	return progress, nil
}
