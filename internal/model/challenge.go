package model

type ChallengeType string

const (
	ChallengeSelect ChallengeType = "SELECT"
	ChallengeAssist ChallengeType = "ASSIST"
)

// swagger:model Challenge
type Challenge struct {
	ID       uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	LessonID uint          `gorm:"not null;index" json:"lessonId"`
	Type     ChallengeType `gorm:"size:20;not null" json:"type"`
	Question string        `gorm:"size:500;not null" json:"question"`
	Order    int           `gorm:"column:challenge_order;not null" json:"order"`

	Options  []ChallengeOption   `gorm:"constraint:OnDelete:CASCADE" json:"challengeOptions,omitempty"`
	Progress []ChallengeProgress `gorm:"constraint:OnDelete:CASCADE" json:"challengeProgress,omitempty"`

	// 非数据库字段：当前用户是否已完成该挑战
	Completed bool `gorm:"-" json:"completed"`
}

func (Challenge) TableName() string {
	return "challenges"
}
