package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500

	// 统计与报表管线的细分业务码，对外保持稳定
	CodeInvalidDateRange     = 40001
	CodeInvalidInterval      = 40002
	CodeNoStatisticsData     = 40401
	CodeReportNotFound       = 40402
	CodeCorruptSeries        = 50001
	CodeRasterizeFailed      = 50002
	CodeArtifactUploadFailed = 50003
	CodePersistenceFailed    = 50004
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrInvalidDateRange = errors.New("日期范围无效")
	ErrInvalidInterval  = errors.New("统计粒度无效")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrPostNotFound     = errors.New("帖子不存在")
	ErrNoStatisticsData = errors.New("暂无统计数据")
	// ErrCorruptSeries 聚合产出的桶标签无法按粒度解析回日期，属于缺陷信号
	ErrCorruptSeries     = errors.New("统计数据中的日期格式无效")
	ErrTemplateNotFound  = errors.New("报表模板不存在")
	ErrRasterizeFailed   = errors.New("报表文档生成失败")
	ErrArtifactUpload    = errors.New("报表上传失败")
	ErrReportPersistence = errors.New("报表记录保存失败")
	ErrReportNotFound    = errors.New("报表不存在")
	UnauthorizedError    = errors.New("权限不足")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrInvalidDateRange:  CodeInvalidDateRange,
	ErrInvalidInterval:   CodeInvalidInterval,
	ErrUserNotFound:      NotFound,
	ErrPostNotFound:      NotFound,
	ErrNoStatisticsData:  CodeNoStatisticsData,
	ErrCorruptSeries:     CodeCorruptSeries,
	ErrTemplateNotFound:  InternalServerError,
	ErrRasterizeFailed:   CodeRasterizeFailed,
	ErrArtifactUpload:    CodeArtifactUploadFailed,
	ErrReportPersistence: CodePersistenceFailed,
	ErrReportNotFound:    CodeReportNotFound,
	UnauthorizedError:    Unauthorized,
	UnExpectedError:      InternalServerError,
}
