package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest Google OAuth 登录请求，客户端传入 access token
type GoogleLoginRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

// AuthResponse 登录/注册成功后的响应
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// googleUserInfo Google userinfo 端点返回的字段子集
type googleUserInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// AuthService 注册、登录与第三方登录
type AuthService struct {
	UserRepo *repository.UserRepository
	Config   *config.Config
	http     *resty.Client
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Config:   cfg,
		http:     resty.New().SetTimeout(10 * time.Second),
	}
}

// Register 创建本地账号并签发 JWT
func (s *AuthService) Register(req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      model.Student,
		Provider:  "local",
		LastLogin: time.Now(),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Log.Info("user registered", zap.Uint("userId", user.ID), zap.String("email", user.Email))
	return s.issueToken(user)
}

// Login 邮箱密码登录
func (s *AuthService) Login(req LoginRequest) (*AuthResponse, error) {
	user, err := s.UserRepo.FindByEmail(req.Email)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.Disabled {
		return nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return s.issueToken(user)
}

// LoginWithGoogle 用 access token 向 Google 换取用户信息，首次登录自动建号
func (s *AuthService) LoginWithGoogle(req GoogleLoginRequest) (*AuthResponse, error) {
	var info googleUserInfo
	resp, err := s.http.R().
		SetAuthToken(req.AccessToken).
		SetResult(&info).
		Get(s.Config.Google.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("google userinfo request failed: %w", err)
	}
	if resp.IsError() {
		return nil, util.ErrGoogleTokenInvalid
	}
	if info.Email == "" || !info.EmailVerified {
		return nil, util.ErrGoogleEmailMissing
	}

	user, err := s.UserRepo.FindByEmail(info.Email)
	if err == gorm.ErrRecordNotFound {
		user, err = s.createGoogleUser(info)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if user.Disabled {
		return nil, util.ErrInvalidCredentials
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to update last login", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return s.issueToken(user)
}

// GetCurrentUser 按 ID 查询当前登录用户
func (s *AuthService) GetCurrentUser(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) createGoogleUser(info googleUserInfo) (*model.User, error) {
	// Google 账号无本地密码，填入随机串占位
	random := make([]byte, 32)
	if _, err := rand.Read(random); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(random)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := info.Name
	if name == "" {
		name = info.Email
	}

	user := &model.User{
		Name:      name,
		Email:     info.Email,
		Password:  string(hashed),
		Role:      model.Student,
		Provider:  "google",
		Avatar:    info.Picture,
		LastLogin: time.Now(),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Log.Info("google user created", zap.Uint("userId", user.ID), zap.String("email", user.Email))
	return user, nil
}

func (s *AuthService) issueToken(user *model.User) (*AuthResponse, error) {
	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: user}, nil
}
