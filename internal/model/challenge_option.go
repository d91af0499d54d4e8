package model

// swagger:model ChallengeOption
type ChallengeOption struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ChallengeID uint   `gorm:"not null;index" json:"challengeId"`
	Text        string `gorm:"size:500;not null" json:"text"`
	Correct     bool   `gorm:"not null" json:"correct"`
	ImageSrc    string `gorm:"size:255" json:"imageSrc,omitempty"`
	AudioSrc    string `gorm:"size:255" json:"audioSrc,omitempty"`
}

func (ChallengeOption) TableName() string {
	return "challenge_options"
}
