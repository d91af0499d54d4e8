package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"finlearn_backend/internal/config"
	"finlearn_backend/internal/middleware"
	"finlearn_backend/internal/model"
	"finlearn_backend/internal/repository"
	"finlearn_backend/internal/service"
	"finlearn_backend/internal/util"
	"finlearn_backend/pkg/database"
	"finlearn_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test-secret"

var testDBSeq int64

// testEnv 起一个落在内存库上的完整路由，中间件链与生产一致
type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:ctl_test_%d?mode=memory&cache=shared&_foreign_keys=on", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret

	courseRepo := repository.NewCourseRepository(db)
	userProgressRepo := repository.NewUserProgressRepository(db)

	subscriptionSvc := service.NewSubscriptionService(repository.NewUserSubscriptionRepository(db), 24*time.Hour)
	progressSvc := service.NewProgressService(
		repository.NewUnitRepository(db),
		repository.NewLessonRepository(db),
		userProgressRepo,
	)
	userProgressSvc := service.NewUserProgressService(
		userProgressRepo,
		courseRepo,
		repository.NewChallengeRepository(db),
		repository.NewChallengeProgressRepository(db),
		subscriptionSvc,
	)
	courseSvc := service.NewCourseService(courseRepo, nil)

	courseCtl := NewCourseController(courseSvc, userProgressSvc)
	progressCtl := NewProgressController(progressSvc, userProgressSvc)
	userProgressCtl := NewUserProgressController(userProgressSvc)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestCache())

	api := router.Group("/api")
	api.GET("/courses", courseCtl.ListCourses)
	api.GET("/courses/:id", courseCtl.GetCourse)

	reads := api.Group("")
	reads.Use(middleware.TryAuthMiddleware(cfg))
	reads.GET("/units", progressCtl.GetUnits)
	reads.GET("/course-progress", progressCtl.GetCourseProgress)
	reads.GET("/lessons", progressCtl.GetLesson)
	reads.GET("/lessons/:id", progressCtl.GetLesson)
	reads.GET("/lesson-percentage", progressCtl.GetLessonPercentage)
	reads.GET("/user-progress", userProgressCtl.Get)

	writes := api.Group("")
	writes.Use(middleware.AuthMiddleware(cfg))
	writes.POST("/courses/:id/activate", courseCtl.ActivateCourse)
	writes.POST("/challenges/:id/progress", progressCtl.CompleteChallenge)
	writes.POST("/hearts/reduce", userProgressCtl.ReduceHearts)
	writes.POST("/hearts/refill", userProgressCtl.RefillHearts)

	return &testEnv{db: db, router: router}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(raw)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := util.GenerateJWT(userID, "Ada", "/ada.png", testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) util.Response {
	t.Helper()
	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (e *testEnv) seedCourseTree(t *testing.T) {
	t.Helper()
	require.NoError(t, e.db.Create(&model.Course{ID: 1, Title: "Personal Finance", ImageSrc: "/pf.svg"}).Error)
	require.NoError(t, e.db.Create(&model.Unit{ID: 1, CourseID: 1, Title: "Unit 1", Description: "basics", Order: 1}).Error)
	require.NoError(t, e.db.Create(&model.Lesson{ID: 1, UnitID: 1, Title: "Budgeting", Order: 1}).Error)
	require.NoError(t, e.db.Create(&model.Challenge{ID: 1, LessonID: 1, Type: model.ChallengeSelect, Question: "Q1", Order: 1}).Error)
	require.NoError(t, e.db.Create(&model.Challenge{ID: 2, LessonID: 1, Type: model.ChallengeSelect, Question: "Q2", Order: 2}).Error)
}

func TestCoursesEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourseTree(t)

	w := env.request(t, http.MethodGet, "/api/courses", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "success", resp.Message)

	w = env.request(t, http.MethodGet, "/api/courses/1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/courses/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/api/courses/abc", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestActivateCourseFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourseTree(t)
	token := env.token(t, "user_1")

	// 未登录写接口 401
	w := env.request(t, http.MethodPost, "/api/courses/1/activate", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodPost, "/api/courses/1/activate", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/courses/999/activate", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 选课后用户进度带上 JWT 里的展示字段
	w = env.request(t, http.MethodGet, "/api/user-progress", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Ada", data["userName"])
	assert.EqualValues(t, 1, data["activeCourseId"])
	assert.EqualValues(t, 5, data["hearts"])
}

func TestAnonymousReadsReturnNeutralResults(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourseTree(t)

	w := env.request(t, http.MethodGet, "/api/units", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/user-progress", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Nil(t, resp.Data)

	w = env.request(t, http.MethodGet, "/api/lessons", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/lesson-percentage", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChallengeCompletionFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourseTree(t)
	token := env.token(t, "user_1")

	w := env.request(t, http.MethodPost, "/api/courses/1/activate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/challenges/1/progress", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/lesson-percentage", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 50, data["percentage"])

	w = env.request(t, http.MethodPost, "/api/challenges/999/progress", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHeartsEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.seedCourseTree(t)
	token := env.token(t, "user_1")

	w := env.request(t, http.MethodPost, "/api/courses/1/activate", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/hearts/reduce", token, map[string]interface{}{"challengeId": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.EqualValues(t, 4, data["hearts"])

	// 缺 challengeId 是 400
	w = env.request(t, http.MethodPost, "/api/hearts/reduce", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 当前 4 心 5 分，积分不够回满
	w = env.request(t, http.MethodPost, "/api/hearts/refill", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
