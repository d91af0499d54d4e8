package controller

import (
	"finlearn_backend/internal/service"
	"finlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubscriptionController struct {
	SubscriptionService *service.SubscriptionService
}

func NewSubscriptionController(subscriptionService *service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{SubscriptionService: subscriptionService}
}

// @Summary 用户订阅
// @Description 订阅行及推导的 isActive；未登录或无订阅返回空
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /user-subscription [get]
func (c *SubscriptionController) Get(ctx *gin.Context) {
	sub, err := c.SubscriptionService.Get(callerID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}
