package controller

import (
	"errors"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary 注册新用户
// @Description 使用提供的信息注册新用户并返回JWT令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterRequest true "用户注册信息"
// @Success 201 {object} util.Response{data=service.AuthResponse} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Register(req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, resp)
}

// Login godoc
// @Summary 用户登录
// @Description 验证邮箱密码并返回JWT令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.LoginRequest true "用户登录凭据"
// @Success 200 {object} util.Response{data=service.AuthResponse} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}

// GoogleLogin godoc
// @Summary Google 登录
// @Description 使用 Google access token 登录，首次登录自动创建账号
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.GoogleLoginRequest true "Google access token"
// @Success 200 {object} util.Response{data=service.AuthResponse} "成功"
// @Failure 401 {object} util.Response "token 无效"
// @Router /api/auth/google [post]
func (c *AuthController) GoogleLogin(ctx *gin.Context) {
	var req service.GoogleLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.LoginWithGoogle(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrGoogleTokenInvalid), errors.Is(err, util.ErrGoogleEmailMissing), errors.Is(err, util.ErrInvalidCredentials):
			util.Unauthorized(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Description 获取当前已认证用户的个人资料
// @Tags 认证
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/auth/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.AuthService.GetCurrentUser(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}
