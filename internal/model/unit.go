package model

// swagger:model Unit
type Unit struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"size:500;not null" json:"description"`
	CourseID    uint   `gorm:"not null;index" json:"courseId"`
	Order       int    `gorm:"column:unit_order;not null" json:"order"`

	Lessons []Lesson `gorm:"constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

func (Unit) TableName() string {
	return "units"
}
