package repository

import (
	"finlearn_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

// FindByIDForUser 加载单个课时及其挑战（含选项），进度行只取指定用户的。
func (r *LessonRepository) FindByIDForUser(lessonID uint, userID string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.
		Preload("Challenges", func(db *gorm.DB) *gorm.DB {
			return db.Order("challenge_order ASC")
		}).
		Preload("Challenges.Options").
		Preload("Challenges.Progress", "user_id = ?", userID).
		First(&lesson, lessonID).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}
