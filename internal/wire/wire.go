package wire

import (
	"github.com/YuriiSoroka26/forum-api/internal/api"
	"github.com/YuriiSoroka26/forum-api/internal/api/config"
	"github.com/YuriiSoroka26/forum-api/internal/api/handler"
	"github.com/YuriiSoroka26/forum-api/internal/job"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/cron"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/minio"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/pdf"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/redis"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/render"
	"github.com/YuriiSoroka26/forum-api/internal/repository"
	"github.com/YuriiSoroka26/forum-api/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, engine *pdf.Engine, cfg *config.Config) (*ApplicationContainer, error) {
	eventRepo := repository.NewEventRepo(db)
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	reportRepo := repository.NewReportRepo(db)

	renderer, err := render.NewRenderer(
		cfg.Report.TemplateDir,
		cfg.Report.UserTemplate,
		cfg.Report.PostTemplate,
	)
	if err != nil {
		return nil, err
	}

	statisticsService := service.NewStatisticsService(
		eventRepo, userRepo, postRepo, userFollowRepo, redis.NewStatisticsCache(),
	)
	postService := service.NewPostService(postRepo)
	reportService := service.NewReportService(
		statisticsService, renderer, engine, minio.NewReportStore(), reportRepo,
	)

	handlers := &api.HandlersGroup{
		StatisticsHandler: handler.NewStatisticsHandler(statisticsService, postService),
		ReportHandler:     handler.NewReportHandler(reportService, postService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		job.NewReportReconcileJob(reportRepo),
		cfg.Report.ReconcileCron,
	)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
