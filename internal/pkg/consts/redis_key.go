package consts

// Redis Key 前缀
const (
	// UserStatisticsKey 用户活跃度聚合结果缓存
	UserStatisticsKey = "stats:user:"
	// PostStatisticsKey 帖子活跃度聚合结果缓存
	PostStatisticsKey = "stats:post:"
)
