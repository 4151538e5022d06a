package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCourseNotFound     = errors.New("course not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrSessionNotFound    = errors.New("quiz session not found")
	ErrSessionSubmitted   = errors.New("quiz session already submitted")
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrAnswerRequired     = errors.New("current question must be answered first")
	ErrGoogleTokenInvalid = errors.New("google access token invalid")
	ErrGoogleEmailMissing = errors.New("google account has no verified email")
)
