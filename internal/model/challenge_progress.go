package model

// ChallengeProgress 记录某个用户对某个挑战的作答结果。
// (user_id, challenge_id) 全局唯一，避免同一挑战出现多条语义冲突的进度行。
type ChallengeProgress struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string `gorm:"size:64;not null;uniqueIndex:idx_user_challenge" json:"userId"`
	ChallengeID uint   `gorm:"not null;uniqueIndex:idx_user_challenge;index" json:"challengeId"`
	Completed   bool   `gorm:"not null;default:false" json:"completed"`
}

func (ChallengeProgress) TableName() string {
	return "challenge_progress"
}
