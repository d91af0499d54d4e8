package model

// swagger:model Course
type Course struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	ImageSrc string `gorm:"size:255;not null" json:"imageSrc"`

	Units []Unit `gorm:"constraint:OnDelete:CASCADE" json:"units,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
