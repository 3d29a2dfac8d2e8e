package api

import "github.com/YuriiSoroka26/forum-api/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	StatisticsHandler *handler.StatisticsHandler
	ReportHandler     *handler.ReportHandler
}
