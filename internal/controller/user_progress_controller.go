package controller

import (
	"errors"

	"finlearn_backend/internal/service"
	"finlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserProgressController struct {
	UserProgressService *service.UserProgressService
}

func NewUserProgressController(userProgressService *service.UserProgressService) *UserProgressController {
	return &UserProgressController{UserProgressService: userProgressService}
}

// @Summary 用户进度
// @Description 当前用户的进度行与活跃课程；未登录或无记录返回空
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /user-progress [get]
func (c *UserProgressController) Get(ctx *gin.Context) {
	progress, err := c.UserProgressService.Get(callerID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

type reduceHeartsRequest struct {
	ChallengeID uint `json:"challengeId" binding:"required"`
}

// @Summary 答错扣心
// @Description 重刷已完成的挑战、或订阅有效时不扣；心数为零返回 hearts 错误
// @Tags 用户
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body reduceHeartsRequest true "挑战ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /hearts/reduce [post]
func (c *UserProgressController) ReduceHearts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req reduceHeartsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	hearts, err := c.UserProgressService.ReduceHearts(user.UserID(), req.ChallengeID)
	switch {
	case err == nil:
		util.Success(ctx, gin.H{"hearts": hearts})
	case errors.Is(err, service.ErrNoHearts):
		util.BadRequest(ctx, "hearts")
	case errors.Is(err, service.ErrUserProgressNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 积分回心
// @Description 扣除固定积分并将心数回满
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /hearts/refill [post]
func (c *UserProgressController) RefillHearts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.UserProgressService.RefillHearts(user.UserID())
	switch {
	case err == nil:
		util.Success(ctx, gin.H{"hearts": progress.Hearts, "points": progress.Points})
	case errors.Is(err, service.ErrHeartsFull):
		util.BadRequest(ctx, "hearts already full")
	case errors.Is(err, service.ErrNotEnoughPoints):
		util.BadRequest(ctx, "not enough points")
	case errors.Is(err, service.ErrUserProgressNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
