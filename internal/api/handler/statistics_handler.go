package handler

import (
	"strconv"
	"time"

	"github.com/YuriiSoroka26/forum-api/internal/pkg/interval"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/response"
	"github.com/YuriiSoroka26/forum-api/internal/service"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsSvc service.StatisticsService
	postSvc       service.PostService
}

func NewStatisticsHandler(statisticsSvc service.StatisticsService, postSvc service.PostService) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsSvc: statisticsSvc,
		postSvc:       postSvc,
	}
}

// GetUserActivityStatistics 查询用户活跃度统计。
// 普通用户只能查自己，管理员可以通过 user_id 指定任意用户。
func (h *StatisticsHandler) GetUserActivityStatistics(c *gin.Context) {
	requesterID := c.GetUint64("user_id")
	isAdmin := hasRole(c, "ADMIN")

	start, end, iv, ok := bindStatisticsQuery(c)
	if !ok {
		return
	}

	targetUserID := requesterID
	if userIDStr := c.Query("user_id"); userIDStr != "" && isAdmin {
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		targetUserID = userID
	}

	stats, err := h.statisticsSvc.GetUserActivityStatistics(c.Request.Context(), targetUserID, start, end, iv)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// GetPostActivityStatistics 查询帖子活跃度统计。
// 非管理员必须是帖子作者。
func (h *StatisticsHandler) GetPostActivityStatistics(c *gin.Context) {
	requesterID := c.GetUint64("user_id")
	isAdmin := hasRole(c, "ADMIN")

	postIDStr := c.Query("post_id")
	postID, err := strconv.ParseUint(postIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	start, end, iv, ok := bindStatisticsQuery(c)
	if !ok {
		return
	}

	if !isAdmin {
		post, err := h.postSvc.GetPost(c.Request.Context(), postID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if post.UserID != requesterID {
			response.Error(c, service.UnauthorizedError)
			return
		}
	}

	stats, err := h.statisticsSvc.GetPostActivityStatistics(c.Request.Context(), postID, start, end, iv)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// bindStatisticsQuery 解析并校验日期范围与粒度，失败时已写好响应
func bindStatisticsQuery(c *gin.Context) (time.Time, time.Time, interval.Interval, bool) {
	start, end, err := service.ParseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return time.Time{}, time.Time{}, "", false
	}
	iv, err := interval.Parse(c.Query("interval"))
	if err != nil {
		response.Error(c, service.ErrInvalidInterval)
		return time.Time{}, time.Time{}, "", false
	}
	return start, end, iv, true
}

// hasRole 判断当前请求方是否持有指定角色
func hasRole(c *gin.Context, role string) bool {
	for _, r := range c.GetStringSlice("roles") {
		if r == role {
			return true
		}
	}
	return false
}
