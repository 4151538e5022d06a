package controller

import (
	"strconv"
	"time"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	ActivityService  *service.ActivityService
	ProgressService  *service.ProgressService
	StreakService    *service.StreakService
}

func NewDashboardController(dashboardService *service.DashboardService, activityService *service.ActivityService, progressService *service.ProgressService, streakService *service.StreakService) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		ActivityService:  activityService,
		ProgressService:  progressService,
		StreakService:    streakService,
	}
}

// GetOverview godoc
// @Summary 获取仪表盘数据
// @Description 一次性返回统计、本周活动、技能进度、类目分布与连续学习天数
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.DashboardOverview} "成功"
// @Router /api/dashboard [get]
func (c *DashboardController) GetOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.DashboardService.Overview(claims.UserID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}

// GetStats godoc
// @Summary 仪表盘统计
// @Description 当月学习时长、课程总数与完成数
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.DashboardStats} "成功"
// @Router /api/dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.ActivityService.GetStats(claims.UserID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// LogActivity godoc
// @Summary 记录学习活动
// @Description 累计当日学习时长与完成数，并推进连续学习天数
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ActivityDelta true "活动增量"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "增量不能为负"
// @Router /api/dashboard/activity [post]
func (c *DashboardController) LogActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var delta service.ActivityDelta
	if err := ctx.ShouldBindJSON(&delta); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, streak, err := c.ActivityService.LogActivity(claims.UserID, delta)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"activity": activity,
		"streak":   streak,
	})
}

// GetWeeklyActivity godoc
// @Summary 本周学习时长
// @Description 周日到周六共7天，无记录的天补零
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.WeeklyActivityEntry} "成功"
// @Router /api/dashboard/weekly-activity [get]
func (c *DashboardController) GetWeeklyActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.ActivityService.GetWeeklyActivity(claims.UserID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// GetMonthlyProgress godoc
// @Summary 月度学习进度
// @Description 最近6个月中有活动记录的月份汇总，进度相对每月20小时目标
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.MonthlyProgressEntry} "成功"
// @Router /api/dashboard/monthly-progress [get]
func (c *DashboardController) GetMonthlyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.ActivityService.GetMonthlyProgress(claims.UserID, time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// GetMonthlyActivity godoc
// @Summary 单月原始活动记录
// @Description 返回指定年月内的逐日活动记录，默认当前月份
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year query int false "年份"
// @Param month query int false "月份 1-12"
// @Success 200 {object} util.Response{data=[]model.UserActivity} "成功"
// @Router /api/dashboard/monthly-activity [get]
func (c *DashboardController) GetMonthlyActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	now := time.Now()
	year, err := strconv.Atoi(ctx.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		util.BadRequest(ctx, "invalid year")
		return
	}
	month, err := strconv.Atoi(ctx.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		util.BadRequest(ctx, "invalid month")
		return
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	activities, err := c.ActivityService.GetMonthlyActivity(claims.UserID, from, to)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, activities)
}

// GetSkillProgress godoc
// @Summary 技能进度
// @Description 按技能聚合选课进度的加权平均
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.SkillProgressEntry} "成功"
// @Router /api/dashboard/progress [get]
func (c *DashboardController) GetSkillProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.ProgressService.UserSkillProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// GetCategoryDistribution godoc
// @Summary 类目分布
// @Description 用户选课在各类目下的数量与占比
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.CategoryShare} "成功"
// @Router /api/dashboard/categories [get]
func (c *DashboardController) GetCategoryDistribution(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	shares, err := c.ProgressService.UserCategoryDistribution(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, shares)
}

// GetStreak godoc
// @Summary 连续学习天数
// @Tags 仪表盘
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.LearningStreak} "成功"
// @Router /api/dashboard/streak [get]
func (c *DashboardController) GetStreak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	streak, err := c.StreakService.GetStreak(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, streak)
}
