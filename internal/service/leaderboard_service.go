package service

import (
	"context"
	"encoding/json"
	"time"

	"finlearn_backend/internal/model"
	"finlearn_backend/internal/repository"

	"github.com/go-redis/redis/v8"
)

const (
	leaderboardSize     = 10
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = time.Minute
)

// LeaderboardService 排行榜不含用户私有状态，可以在进程间共享缓存，
// 用 redis 短 TTL 缓存减轻热点读。
type LeaderboardService struct {
	UserProgressRepo *repository.UserProgressRepository
	RDB              *redis.Client
}

func NewLeaderboardService(userProgressRepo *repository.UserProgressRepository, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		UserProgressRepo: userProgressRepo,
		RDB:              rdb,
	}
}

// TopUsers 按 points 降序取前 10，只投影展示字段。
func (s *LeaderboardService) TopUsers(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if s.RDB != nil {
		cached, err := s.RDB.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var entries []model.LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.UserProgressRepo.FindTopByPoints(leaderboardSize)
	if err != nil {
		return nil, err
	}

	if s.RDB != nil {
		if payload, err := json.Marshal(entries); err == nil {
			s.RDB.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL)
		}
	}

	return entries, nil
}
