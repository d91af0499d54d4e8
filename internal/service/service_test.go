package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"finlearn_backend/internal/model"
	"finlearn_backend/pkg/database"
	"finlearn_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB 每个测试一个独立的内存库，共享缓存模式保证连接池内可见。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared&_foreign_keys=on", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createCourse(t *testing.T, db *gorm.DB, id uint, title string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Course{ID: id, Title: title, ImageSrc: "/" + title + ".svg"}).Error)
}

func createUnit(t *testing.T, db *gorm.DB, id, courseID uint, order int) {
	t.Helper()
	require.NoError(t, db.Create(&model.Unit{
		ID:          id,
		CourseID:    courseID,
		Title:       fmt.Sprintf("Unit %d", order),
		Description: "test unit",
		Order:       order,
	}).Error)
}

func createLesson(t *testing.T, db *gorm.DB, id, unitID uint, title string, order int) {
	t.Helper()
	require.NoError(t, db.Create(&model.Lesson{ID: id, UnitID: unitID, Title: title, Order: order}).Error)
}

func createChallenge(t *testing.T, db *gorm.DB, id, lessonID uint, order int) {
	t.Helper()
	require.NoError(t, db.Create(&model.Challenge{
		ID:       id,
		LessonID: lessonID,
		Type:     model.ChallengeSelect,
		Question: fmt.Sprintf("Question %d", id),
		Order:    order,
	}).Error)
}

func markChallenge(t *testing.T, db *gorm.DB, userID string, challengeID uint, completed bool) {
	t.Helper()
	require.NoError(t, db.Create(&model.ChallengeProgress{
		UserID:      userID,
		ChallengeID: challengeID,
		Completed:   completed,
	}).Error)
}

func createUser(t *testing.T, db *gorm.DB, userID string, activeCourseID uint, hearts, points int) {
	t.Helper()
	user := model.UserProgress{
		UserID:       userID,
		UserName:     "User",
		UserImageSrc: "/mascot.svg",
		Hearts:       hearts,
		Points:       points,
	}
	if activeCourseID != 0 {
		user.ActiveCourseID = &activeCourseID
	}
	require.NoError(t, db.Create(&user).Error)
	// gorm 对带 default 标签的零值列不会写入，这里显式覆写保证 hearts/points 为入参值
	require.NoError(t, db.Model(&model.UserProgress{}).Where("user_id = ?", userID).
		UpdateColumns(map[string]interface{}{"hearts": hearts, "points": points}).Error)
}
