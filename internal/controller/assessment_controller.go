package controller

import (
	"errors"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// ListByCourse godoc
// @Summary 课程下的测评列表
// @Description 返回脱敏后的测评，不含正确答案与解析
// @Tags 测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]service.SanitizedAssessment} "成功"
// @Router /api/courses/{id}/assessments [get]
func (c *AssessmentController) ListByCourse(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	assessments, err := c.AssessmentService.ListByCourse(courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, assessments)
}

// Get godoc
// @Summary 测评详情
// @Description 返回脱敏后的测评详情
// @Tags 测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测评ID"
// @Success 200 {object} util.Response{data=service.SanitizedAssessment} "成功"
// @Failure 404 {object} util.Response "测评不存在"
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	assessmentID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	assessment, err := c.AssessmentService.Get(assessmentID)
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, assessment)
}

// Submit godoc
// @Summary 提交测评
// @Description 判分并保存结果，及格线取测评自身配置
// @Tags 测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测评ID"
// @Param body body service.AssessmentSubmission true "答案列表"
// @Success 200 {object} util.Response{data=service.AssessmentOutcome} "成功"
// @Failure 404 {object} util.Response "测评不存在"
// @Router /api/assessments/{id}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assessmentID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	var submission service.AssessmentSubmission
	if err := ctx.ShouldBindJSON(&submission); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.AssessmentService.Submit(claims.UserID, assessmentID, submission)
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, outcome)
}

// ListResults godoc
// @Summary 我的测评结果
// @Description 当前用户的历史测评结果，按完成时间倒序
// @Tags 测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.AssessmentResult} "成功"
// @Router /api/assessments/results [get]
func (c *AssessmentController) ListResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.AssessmentService.ListUserResults(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, results)
}
