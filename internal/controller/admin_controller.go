package controller

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"finlearn_backend/internal/model"
	"finlearn_backend/internal/service"
	"finlearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	CourseService  *service.CourseService
	StorageService *service.StorageService
}

func NewAdminController(courseService *service.CourseService, storageService *service.StorageService) *AdminController {
	return &AdminController{
		CourseService:  courseService,
		StorageService: storageService,
	}
}

type courseRequest struct {
	Title    string `json:"title" binding:"required"`
	ImageSrc string `json:"imageSrc" binding:"required"`
}

// @Summary 创建课程
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body courseRequest true "课程"
// @Success 201 {object} util.Response
// @Router /admin/courses [post]
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var req courseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{Title: req.Title, ImageSrc: req.ImageSrc}
	if err := c.CourseService.CreateCourse(ctx.Request.Context(), course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary 更新课程
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body courseRequest true "课程"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/courses/{id} [put]
func (c *AdminController) UpdateCourse(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req courseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{ID: uint(id), Title: req.Title, ImageSrc: req.ImageSrc}
	err = c.CourseService.UpdateCourse(ctx.Request.Context(), course)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 删除课程
// @Description 级联删除课程下的单元、课时、挑战、选项与进度
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/courses/{id} [delete]
func (c *AdminController) DeleteCourse(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	err = c.CourseService.DeleteCourse(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 上传媒体文件
// @Description 课程图片或挑战选项音频；音频会先用 ffprobe 校验
// @Tags 管理
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "文件"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /admin/uploads [post]
func (c *AdminController) UploadMedia(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := fmt.Sprintf("media/%d%s", time.Now().UnixNano(), ext)
	contentType := file.Header.Get("Content-Type")

	isAudio := ext == ".mp3" || ext == ".wav" || ext == ".ogg"
	if isAudio {
		// 音频先落临时文件探测，可解码才接收
		tmp := filepath.Join(os.TempDir(), filepath.Base(filename))
		if err := ctx.SaveUploadedFile(file, tmp); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		defer os.Remove(tmp)

		if _, err := service.ProbeAudioDuration(tmp); err != nil {
			util.BadRequest(ctx, "invalid audio file")
			return
		}

		src, err := os.Open(tmp)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		defer src.Close()

		url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, gin.H{"url": url})
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
