package controller

import (
	"errors"
	"strconv"

	"finlearn_backend/internal/service"
	"finlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService     *service.ProgressService
	UserProgressService *service.UserProgressService
}

func NewProgressController(progressService *service.ProgressService, userProgressService *service.UserProgressService) *ProgressController {
	return &ProgressController{
		ProgressService:     progressService,
		UserProgressService: userProgressService,
	}
}

func callerID(ctx *gin.Context) string {
	if user := util.GetUserFromContext(ctx); user != nil {
		return user.UserID()
	}
	return ""
}

// @Summary 活跃课程的单元树
// @Description 单元 → 课时 → 挑战，课时带推导的完成标记；未登录或未选课返回空列表
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /units [get]
func (c *ProgressController) GetUnits(ctx *gin.Context) {
	units, err := c.ProgressService.GetUnits(ctx.Request.Context(), callerID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, units)
}

// @Summary 课程进度
// @Description 返回第一个含未完成挑战的课时；全部完成时两个字段为空
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /course-progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	progress, err := c.ProgressService.GetCourseProgress(ctx.Request.Context(), callerID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 课时详情
// @Description 不带 id 时解析活跃课时；挑战附带选项与当前用户的完成标记
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param id path int false "课时ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /lessons/{id} [get]
func (c *ProgressController) GetLesson(ctx *gin.Context) {
	userID := callerID(ctx)
	if userID == "" {
		util.Success(ctx, nil)
		return
	}

	var lessonID uint
	if raw := ctx.Param("id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			util.NotFound(ctx)
			return
		}
		lessonID = uint(id)
	}

	lesson, err := c.ProgressService.GetLesson(ctx.Request.Context(), userID, lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if lesson == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary 活跃课时完成百分比
// @Description 0-100 的整数；解析不到课时时返回 0
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /lesson-percentage [get]
func (c *ProgressController) GetLessonPercentage(ctx *gin.Context) {
	percentage, err := c.ProgressService.GetLessonPercentage(ctx.Request.Context(), callerID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"percentage": percentage})
}

// @Summary 完成挑战
// @Description 记录一次成功作答；重刷会回心，首次完成加积分
// @Tags 进度
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /challenges/{id}/progress [post]
func (c *ProgressController) CompleteChallenge(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	err = c.UserProgressService.CompleteChallenge(user.UserID(), uint(id))
	switch {
	case err == nil:
		util.Success(ctx, gin.H{"challengeId": id, "completed": true})
	case errors.Is(err, service.ErrChallengeNotFound),
		errors.Is(err, service.ErrUserProgressNotFound):
		util.NotFound(ctx)
	case errors.Is(err, service.ErrNoHearts):
		util.BadRequest(ctx, "hearts")
	default:
		util.LogInternalError(ctx, err)
	}
}
