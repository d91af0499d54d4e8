package database

import (
	"finlearn_backend/internal/config"
	"finlearn_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// Migrate 建表顺序遵循外键依赖：内容树自上而下，进度/订阅表最后。
// 外键均声明 ON DELETE CASCADE，删除课程会级联清理其下所有内容与进度。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Course{},
		&model.Unit{},
		&model.Lesson{},
		&model.Challenge{},
		&model.ChallengeOption{},
		&model.ChallengeProgress{},
		&model.UserProgress{},
		&model.UserSubscription{},
	)
}
