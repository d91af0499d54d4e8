package controller

import (
	"finlearn_backend/internal/model"
	"finlearn_backend/internal/service"
	"finlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// @Summary 排行榜
// @Description 按积分降序前 10 名，仅包含展示字段；未登录返回空列表
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /leaderboard [get]
func (c *LeaderboardController) Get(ctx *gin.Context) {
	if callerID(ctx) == "" {
		util.Success(ctx, []model.LeaderboardEntry{})
		return
	}

	entries, err := c.LeaderboardService.TopUsers(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
