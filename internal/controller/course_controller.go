package controller

import (
	"errors"
	"strconv"

	"finlearn_backend/internal/service"
	"finlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService       *service.CourseService
	UserProgressService *service.UserProgressService
}

func NewCourseController(courseService *service.CourseService, userProgressService *service.UserProgressService) *CourseController {
	return &CourseController{
		CourseService:       courseService,
		UserProgressService: userProgressService,
	}
}

// @Summary 课程列表
// @Description 返回全部课程，结果对所有用户相同
// @Tags 课程
// @Produce json
// @Success 200 {object} util.Response
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ListCourses(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary 课程详情
// @Description 课程及其排序后的单元与课时
// @Tags 课程
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	course, err := c.CourseService.GetCourseByID(uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if course == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, course)
}

// @Summary 选择活跃课程
// @Description 将课程设为当前用户的活跃课程，首次选课会初始化用户进度
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id}/activate [post]
func (c *CourseController) ActivateCourse(ctx *gin.Context) {
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

	err = c.UserProgressService.SetActiveCourse(user.UserID(), user.Name, user.Picture, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"activeCourseId": id})
}
