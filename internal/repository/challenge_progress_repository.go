package repository

import (
	"finlearn_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChallengeProgressRepository struct {
	DB *gorm.DB
}

func NewChallengeProgressRepository(db *gorm.DB) *ChallengeProgressRepository {
	return &ChallengeProgressRepository{DB: db}
}

func (r *ChallengeProgressRepository) FindByUserAndChallenge(userID string, challengeID uint) (*model.ChallengeProgress, error) {
	var progress model.ChallengeProgress
	err := r.DB.
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// Upsert 以 (user_id, challenge_id) 为冲突键，重复作答只更新 completed。
func (r *ChallengeProgressRepository) Upsert(progress *model.ChallengeProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed"}),
	}).Create(progress).Error
}
