package model

// swagger:model Lesson
type Lesson struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title  string `gorm:"size:255;not null" json:"title"`
	UnitID uint   `gorm:"not null;index" json:"unitId"`
	Order  int    `gorm:"column:lesson_order;not null" json:"order"`

	Challenges []Challenge `gorm:"constraint:OnDelete:CASCADE" json:"challenges,omitempty"`

	// 非数据库字段：按当前用户的挑战进度归一化得出
	Completed bool `gorm:"-" json:"completed"`
}

func (Lesson) TableName() string {
	return "lessons"
}
