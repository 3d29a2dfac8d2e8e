package api

import (
	"net/http"

	"github.com/YuriiSoroka26/forum-api/internal/api/middleware"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		statisticsGroup := apiGroup.Group("/statistics")
		statisticsGroup.Use(middleware.AuthMiddleware())
		{
			statisticsGroup.GET("/user-activity", group.StatisticsHandler.GetUserActivityStatistics)
			statisticsGroup.GET("/post-activity", group.StatisticsHandler.GetPostActivityStatistics)
		}

		pdfGroup := apiGroup.Group("/pdf")
		pdfGroup.Use(middleware.AuthMiddleware())
		{
			pdfGroup.POST("/generate", group.ReportHandler.Generate)
			pdfGroup.GET("/download", group.ReportHandler.Download)
		}
	}

	return r
}
