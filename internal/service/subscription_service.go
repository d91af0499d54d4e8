package service

import (
	"errors"
	"time"

	"finlearn_backend/internal/model"
	"finlearn_backend/internal/repository"

	"gorm.io/gorm"
)

type SubscriptionService struct {
	Repo  *repository.UserSubscriptionRepository
	Grace time.Duration

	// 可注入的时钟，测试用
	now func() time.Time
}

func NewSubscriptionService(repo *repository.UserSubscriptionRepository, grace time.Duration) *SubscriptionService {
	return &SubscriptionService{
		Repo:  repo,
		Grace: grace,
		now:   time.Now,
	}
}

// Get 返回订阅行并附带推导的 isActive；无记录或未登录返回 nil。
// isActive = price id 非空 且 periodEnd+宽限期 在当前时间之后。
func (s *SubscriptionService) Get(userID string) (*model.UserSubscription, error) {
	if userID == "" {
		return nil, nil
	}

	sub, err := s.Repo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	sub.IsActive = sub.StripePriceID != "" &&
		sub.StripeCurrentPeriodEnd.Add(s.Grace).After(s.now())

	return sub, nil
}

// IsActive 供心数扣减等内部判断使用
func (s *SubscriptionService) IsActive(userID string) (bool, error) {
	sub, err := s.Get(userID)
	if err != nil {
		return false, err
	}
	return sub != nil && sub.IsActive, nil
}
