package model

// swagger:model UserProgress
type UserProgress struct {
	UserID         string `gorm:"primaryKey;size:64" json:"userId"`
	UserName       string `gorm:"size:100;not null;default:'User'" json:"userName"`
	UserImageSrc   string `gorm:"size:255;not null;default:'/mascot.svg'" json:"userImageSrc"`
	ActiveCourseID *uint  `gorm:"index" json:"activeCourseId,omitempty"`
	Hearts         int    `gorm:"not null;default:5" json:"hearts"`
	Points         int    `gorm:"not null;default:5" json:"points"`

	ActiveCourse *Course `gorm:"foreignKey:ActiveCourseID;constraint:OnDelete:CASCADE" json:"activeCourse,omitempty"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// LeaderboardEntry 排行榜投影，只暴露展示字段，不包含 hearts 等内部状态
type LeaderboardEntry struct {
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	UserImageSrc string `json:"userImageSrc"`
	Points       int    `json:"points"`
}
