package handler

import (
	"strconv"

	"github.com/YuriiSoroka26/forum-api/internal/api/dto"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/response"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/util"
	"github.com/YuriiSoroka26/forum-api/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportSvc service.ReportService
	postSvc   service.PostService
}

func NewReportHandler(reportSvc service.ReportService, postSvc service.PostService) *ReportHandler {
	return &ReportHandler{
		reportSvc: reportSvc,
		postSvc:   postSvc,
	}
}

// Generate 生成统计报表 PDF。
// post_id 指定帖子报表（作者或管理员），target_user_id 指定他人用户报表（仅管理员），
// 两者都不传则生成请求方自己的用户报表。
func (h *ReportHandler) Generate(c *gin.Context) {
	requesterID := c.GetUint64("user_id")
	isAdmin := hasRole(c, "ADMIN")

	var req dto.GenerateReportDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if postIDStr := c.Query("post_id"); postIDStr != "" {
		postID, err := strconv.ParseUint(postIDStr, 10, 64)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		if !h.checkPostAccess(c, postID, requesterID, isAdmin) {
			return
		}
		url, err := h.reportSvc.GeneratePostReport(c.Request.Context(), postID, req.StartDate, req.EndDate, req.Interval)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, dto.ReportURLDTO{URL: url})
		return
	}

	targetUserID, ok := h.resolveTargetUser(c, requesterID, isAdmin)
	if !ok {
		return
	}
	url, err := h.reportSvc.GenerateUserReport(c.Request.Context(), targetUserID, req.StartDate, req.EndDate, req.Interval)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ReportURLDTO{URL: url})
}

// Download 查询主体最近一次生成的报表 URL，不触发重新生成
func (h *ReportHandler) Download(c *gin.Context) {
	requesterID := c.GetUint64("user_id")
	isAdmin := hasRole(c, "ADMIN")

	if postIDStr := c.Query("post_id"); postIDStr != "" {
		postID, err := strconv.ParseUint(postIDStr, 10, 64)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		if !h.checkPostAccess(c, postID, requesterID, isAdmin) {
			return
		}
		url, err := h.reportSvc.GetLatestPostReportURL(c.Request.Context(), postID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, dto.ReportURLDTO{URL: url})
		return
	}

	targetUserID, ok := h.resolveTargetUser(c, requesterID, isAdmin)
	if !ok {
		return
	}
	url, err := h.reportSvc.GetLatestUserReportURL(c.Request.Context(), targetUserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ReportURLDTO{URL: url})
}

// checkPostAccess 帖子报表只有作者本人或管理员可以操作
func (h *ReportHandler) checkPostAccess(c *gin.Context, postID, requesterID uint64, isAdmin bool) bool {
	post, err := h.postSvc.GetPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return false
	}
	if !isAdmin && post.UserID != requesterID {
		response.Error(c, service.UnauthorizedError)
		return false
	}
	return true
}

// resolveTargetUser 指定他人用户报表时要求管理员权限
func (h *ReportHandler) resolveTargetUser(c *gin.Context, requesterID uint64, isAdmin bool) (uint64, bool) {
	targetUserIDStr := c.Query("target_user_id")
	if targetUserIDStr == "" {
		return requesterID, true
	}

	targetUserID, err := strconv.ParseUint(targetUserIDStr, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	if targetUserID != requesterID && !isAdmin {
		response.Error(c, service.UnauthorizedError)
		return 0, false
	}
	return targetUserID, true
}
