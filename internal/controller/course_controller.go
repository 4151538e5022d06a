package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// ListCourses godoc
// @Summary 课程目录
// @Description 按类目、难度、关键字筛选课程列表
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   category query string false "课程类目"
// @Param   level query string false "难度等级" Enums(Beginner, Intermediate, Advanced)
// @Param   search query string false "标题关键字"
// @Success 200 {object} util.Response{data=[]model.Course} "成功"
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	filter := repository.CourseFilter{
		Category: ctx.Query("category"),
		Level:    ctx.Query("level"),
		Search:   ctx.Query("search"),
	}

	courses, err := c.CourseService.ListCourses(ctx.Request.Context(), filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程
// @Accept  json
// @Produce  json
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.CourseService.GetCourse(courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, course)
}

// Enroll godoc
// @Summary 选课
// @Description 当前用户报名指定课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 201 {object} util.Response{data=model.Enrollment} "报名成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "已报名"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.CourseService.Enroll(ctx.Request.Context(), claims.UserID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, enrollment)
}

// ListEnrollments godoc
// @Summary 我的选课
// @Description 当前用户的全部选课记录（含课程信息）
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment} "成功"
// @Router /api/enrollments [get]
func (c *CourseController) ListEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.CourseService.ListEnrollments(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, enrollments)
}

// CompleteLessonRequest 课时完成请求
type CompleteLessonRequest struct {
	LessonID string `json:"lessonId" binding:"required"`
}

// CompleteLesson godoc
// @Summary 标记课时完成
// @Description 标记某课时完成并重算课程进度，重复标记幂等
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body CompleteLessonRequest true "课时ID"
// @Success 200 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 404 {object} util.Response "未报名该课程"
// @Router /api/courses/{id}/lessons/complete [post]
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	var req CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.CourseService.CompleteLesson(claims.UserID, courseID, req.LessonID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEnrollmentNotFound), errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, enrollment)
}

// CompleteCourse godoc
// @Summary 结课
// @Description 将课程标记为已完成，进度置为100
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 404 {object} util.Response "未报名该课程"
// @Router /api/courses/{id}/complete [post]
func (c *CourseController) CompleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.CourseService.CompleteCourse(claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, enrollment)
}

// parseUintParam 解析路径中的数字 ID，失败时直接写 400 响应
func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
