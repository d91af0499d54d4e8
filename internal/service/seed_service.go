package service

import (
	"fmt"

	"finlearn_backend/internal/model"
	"finlearn_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedService 管理用的种子数据导入：清空所有表后写入演示课程内容。
// 整个过程在一个事务里，任何一步失败全部回滚并上报统一的 seeding 错误。
type SeedService struct {
	DB *gorm.DB
}

func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{DB: db}
}

func (s *SeedService) Run() error {
	logger.Log.Info("Seeding database")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// 子表先删，避免外键约束阻塞
		tables := []string{
			"challenge_progress",
			"challenge_options",
			"challenges",
			"lessons",
			"units",
			"user_progress",
			"user_subscription",
			"courses",
		}
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}

		courses := seedCourses()
		if err := tx.Create(&courses).Error; err != nil {
			return err
		}
		units := seedUnits()
		if err := tx.Create(&units).Error; err != nil {
			return err
		}
		lessons := seedLessons()
		if err := tx.Create(&lessons).Error; err != nil {
			return err
		}
		challenges := seedChallenges()
		if err := tx.Create(&challenges).Error; err != nil {
			return err
		}
		options := seedChallengeOptions()
		if err := tx.Create(&options).Error; err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		logger.Log.Error("Seeding failed", zap.Error(err))
		return fmt.Errorf("seeding failed: %w", err)
	}

	logger.Log.Info("Seeding finished")
	return nil
}

func seedCourses() []model.Course {
	return []model.Course{
		{ID: 1, Title: "Personal Finance", ImageSrc: "/pf.svg"},
		{ID: 2, Title: "Investing", ImageSrc: "/inv.svg"},
		{ID: 3, Title: "Corporate Finance", ImageSrc: "/cf.svg"},
		{ID: 4, Title: "Financial Markets", ImageSrc: "/fm.svg"},
	}
}

func seedUnits() []model.Unit {
	return []model.Unit{
		{ID: 1, CourseID: 1, Title: "Unit 1", Description: "Learn the basics of Personal Finance", Order: 1},
	}
}

func seedLessons() []model.Lesson {
	return []model.Lesson{
		{ID: 1, UnitID: 1, Title: "Budgeting", Order: 1},
		{ID: 2, UnitID: 1, Title: "Savings", Order: 2},
		{ID: 3, UnitID: 1, Title: "Verbs", Order: 3},
		{ID: 4, UnitID: 1, Title: "Verbs", Order: 4},
		{ID: 5, UnitID: 1, Title: "Verbs", Order: 5},
	}
}

func seedChallenges() []model.Challenge {
	return []model.Challenge{
		{ID: 1, LessonID: 1, Type: model.ChallengeSelect, Order: 1, Question: "Which of the following is NOT a component of a typical budget?"},
		{ID: 2, LessonID: 1, Type: model.ChallengeSelect, Order: 2, Question: "Which of the following is NOT typically considered an essential expense?"},
		{ID: 3, LessonID: 1, Type: model.ChallengeSelect, Order: 3, Question: "What is the 50/30/20 rule in budgeting?"},
	}
}

func seedChallengeOptions() []model.ChallengeOption {
	return []model.ChallengeOption{
		{ChallengeID: 1, Text: "Income", Correct: false, ImageSrc: "/man.svg", AudioSrc: "/es_man.mp3"},
		{ChallengeID: 1, Text: "Expenses", Correct: false, ImageSrc: "/woman.svg", AudioSrc: "/es_woman.mp3"},
		{ChallengeID: 1, Text: "Liabilities", Correct: true, ImageSrc: "/robot.svg", AudioSrc: "/es_robot.mp3"},
		{ChallengeID: 1, Text: "Investments", Correct: false, ImageSrc: "/robot.svg", AudioSrc: "/es_robot.mp3"},

		{ChallengeID: 2, Text: "Rent", Correct: false, AudioSrc: "/es_man.mp3"},
		{ChallengeID: 2, Text: "Groceries", Correct: false, AudioSrc: "/es_woman.mp3"},
		{ChallengeID: 2, Text: "Dining out", Correct: true, AudioSrc: "/es_robot.mp3"},
		{ChallengeID: 2, Text: "Utilities", Correct: false, AudioSrc: "/es_robot.mp3"},

		{ChallengeID: 3, Text: "50% needs, 30% wants, 20% savings", Correct: true, ImageSrc: "/man.svg", AudioSrc: "/es_man.mp3"},
		{ChallengeID: 3, Text: "50% savings, 30% needs, 20% wants", Correct: false, ImageSrc: "/woman.svg", AudioSrc: "/es_woman.mp3"},
		{ChallengeID: 3, Text: "50% wants, 30% savings, 20% needs", Correct: false, ImageSrc: "/robot.svg", AudioSrc: "/es_robot.mp3"},
		{ChallengeID: 3, Text: "50% investments, 30% savings, 20% needs", Correct: false, ImageSrc: "/robot.svg", AudioSrc: "/es_robot.mp3"},
	}
}
