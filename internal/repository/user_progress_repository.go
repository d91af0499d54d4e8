package repository

import (
	"finlearn_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserProgressRepository struct {
	DB *gorm.DB
}

func NewUserProgressRepository(db *gorm.DB) *UserProgressRepository {
	return &UserProgressRepository{DB: db}
}

func (r *UserProgressRepository) FindByUserID(userID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.
		Preload("ActiveCourse").
		Where("user_id = ?", userID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Upsert 切换活跃课程时刷新展示字段；hearts/points 保持原值，不会被重置。
func (r *UserProgressRepository) Upsert(progress *model.UserProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_name", "user_image_src", "active_course_id"}),
	}).Create(progress).Error
}

func (r *UserProgressRepository) UpdateHearts(userID string, hearts int) error {
	return r.DB.Model(&model.UserProgress{}).
		Where("user_id = ?", userID).
		Update("hearts", hearts).Error
}

func (r *UserProgressRepository) AddPoints(userID string, delta int) error {
	return r.DB.Model(&model.UserProgress{}).
		Where("user_id = ?", userID).
		Update("points", gorm.Expr("points + ?", delta)).Error
}

func (r *UserProgressRepository) UpdateHeartsAndPoints(userID string, hearts, points int) error {
	return r.DB.Model(&model.UserProgress{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"hearts": hearts, "points": points}).Error
}

// FindTopByPoints 排行榜投影。points 相同按 user_id 升序，保证顺序稳定。
func (r *UserProgressRepository) FindTopByPoints(limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := r.DB.Model(&model.UserProgress{}).
		Select("user_id", "user_name", "user_image_src", "points").
		Order("points DESC").
		Order("user_id ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
