package controller

import (
	"errors"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Sessions *service.SessionManager
}

func NewQuizController(sessions *service.SessionManager) *QuizController {
	return &QuizController{Sessions: sessions}
}

// StartSession godoc
// @Summary 开始课程测验
// @Description 为当前用户生成一套题目并开启带倒计时的测验会话
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "课程ID"
// @Success 201 {object} util.Response{data=service.QuizSessionView} "会话已创建"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/quiz/{courseId}/start [post]
func (c *QuizController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, ok := parseUintParam(ctx, "courseId")
	if !ok {
		return
	}

	session, err := c.Sessions.Start(claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, session.View())
}

// GetSession godoc
// @Summary 查询测验会话
// @Description 返回会话当前状态，已作答题目附带对错反馈
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response{data=service.QuizSessionView} "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/quiz/sessions/{id} [get]
func (c *QuizController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.Sessions.Get(ctx.Param("id"), claims.UserID)
	if err != nil {
		util.NotFound(ctx, err.Error())
		return
	}

	util.Success(ctx, session.View())
}

// AnswerRequest 作答请求
type AnswerRequest struct {
	QuestionIndex int `json:"questionIndex" binding:"min=0"`
	Option        int `json:"option" binding:"min=0"`
}

// SelectAnswer godoc
// @Summary 作答
// @Description 选择某题答案并立即获得对错反馈，提交前可以改选
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param body body AnswerRequest true "题目下标与选项"
// @Success 200 {object} util.Response{data=service.QuizSessionView} "成功"
// @Failure 400 {object} util.Response "下标越界"
// @Failure 404 {object} util.Response "会话不存在"
// @Failure 409 {object} util.Response "会话已提交"
// @Router /api/quiz/sessions/{id}/answer [post]
func (c *QuizController) SelectAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Sessions.Get(ctx.Param("id"), claims.UserID)
	if err != nil {
		util.NotFound(ctx, err.Error())
		return
	}

	if err := session.SelectAnswer(req.QuestionIndex, req.Option); err != nil {
		switch {
		case errors.Is(err, util.ErrSessionSubmitted):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrQuestionOutOfRange):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session.View())
}

// NavigateRequest 切题请求：step 为 next/prev 时走顺序导航，否则按 target 跳转
type NavigateRequest struct {
	Target *int   `json:"target,omitempty"`
	Step   string `json:"step,omitempty" binding:"omitempty,oneof=next prev"`
}

// Navigate godoc
// @Summary 切换题目
// @Description 面板跳转可达任意题；step=next 时要求当前题已作答
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Param body body NavigateRequest true "目标题目下标或 next/prev"
// @Success 200 {object} util.Response{data=service.QuizSessionView} "成功"
// @Failure 400 {object} util.Response "当前题未作答或下标越界"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/quiz/sessions/{id}/navigate [post]
func (c *QuizController) Navigate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req NavigateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Sessions.Get(ctx.Param("id"), claims.UserID)
	if err != nil {
		util.NotFound(ctx, err.Error())
		return
	}

	switch {
	case req.Step == "next":
		err = session.Next()
	case req.Step == "prev":
		err = session.Prev()
	case req.Target != nil:
		err = session.Navigate(*req.Target)
	default:
		util.BadRequest(ctx, "target or step is required")
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionSubmitted):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrQuestionOutOfRange), errors.Is(err, util.ErrAnswerRequired):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, session.View())
}

// Submit godoc
// @Summary 提交测验
// @Description 结算会话并返回分数，重复提交返回首次结果；及格时自动结课
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response{data=model.QuizResult} "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/quiz/sessions/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Sessions.Submit(ctx.Param("id"), claims.UserID)
	if err != nil {
		util.NotFound(ctx, err.Error())
		return
	}

	util.Success(ctx, result)
}

// CloseSession godoc
// @Summary 放弃测验
// @Description 关闭会话并释放资源
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/quiz/sessions/{id} [delete]
func (c *QuizController) CloseSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Sessions.Close(ctx.Param("id"), claims.UserID); err != nil {
		util.NotFound(ctx, err.Error())
		return
	}

	util.Success(ctx, gin.H{"message": "session closed"})
}
