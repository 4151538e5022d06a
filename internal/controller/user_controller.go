package controller

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 头像上传限制
const maxAvatarSize = 5 << 20 // 5MB

var allowedAvatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type UserController struct {
	UserRepo *repository.UserRepository
	Storage  service.StorageProvider
}

func NewUserController(userRepo *repository.UserRepository, storage service.StorageProvider) *UserController {
	return &UserController{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

// UploadAvatar godoc
// @Summary 上传头像
// @Description 上传用户头像图片，返回可访问的URL
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "头像文件（jpg/png/webp，最大5MB）"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "文件类型或大小不合法"
// @Router /api/users/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	if file.Size > maxAvatarSize {
		util.BadRequest(ctx, "avatar file too large")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAvatarExts[ext] {
		util.BadRequest(ctx, "unsupported file type")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	objectName := fmt.Sprintf("avatars/%d_%d%s", claims.UserID, time.Now().Unix(), ext)
	contentType := file.Header.Get("Content-Type")

	url, err := c.Storage.Upload(ctx.Request.Context(), objectName, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	user, err := c.UserRepo.FindByID(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	user.Avatar = url
	if err := c.UserRepo.Update(user); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}
