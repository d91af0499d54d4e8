package repository

import (
	"finlearn_backend/internal/model"

	"gorm.io/gorm"
)

type UnitRepository struct {
	DB *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{DB: db}
}

// FindByCourseForUser 加载某课程的完整内容树：单元 → 课时 → 挑战，
// 挑战只带上指定用户自己的进度行，绝不混入他人进度。
// 三层都按各自的 order 升序，遍历顺序即 (unit_order, lesson_order, challenge_order)。
func (r *UnitRepository) FindByCourseForUser(courseID uint, userID string) ([]model.Unit, error) {
	var units []model.Unit
	err := r.DB.
		Where("course_id = ?", courseID).
		Order("unit_order ASC").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_order ASC")
		}).
		Preload("Lessons.Challenges", func(db *gorm.DB) *gorm.DB {
			return db.Order("challenge_order ASC")
		}).
		Preload("Lessons.Challenges.Progress", "user_id = ?", userID).
		Find(&units).Error
	return units, err
}
