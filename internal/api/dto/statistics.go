package dto

// 统计指标名，同时也是报表模板里的序列名
const (
	MetricPosts    = "posts"
	MetricLikes    = "likes"
	MetricComments = "comments"
)

// BucketDTO 一个带标签的时间桶及其事件计数
type BucketDTO struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// UserStatisticsDTO 用户活跃度统计结果。
// Statistics 的键为指标名（posts/likes/comments），值为稀疏的桶序列：
// 区间内没有事件的标签不会出现，聚合阶段不保证顺序。
type UserStatisticsDTO struct {
	UserID         uint64                 `json:"user_id"`
	StartDate      string                 `json:"start_date"`
	EndDate        string                 `json:"end_date"`
	Interval       string                 `json:"interval"`
	Statistics     map[string][]BucketDTO `json:"statistics"`
	FollowersCount int64                  `json:"followers_count"`
	FollowingCount int64                  `json:"following_count"`
}

// PostStatisticsDTO 帖子活跃度统计结果，指标为 likes/comments
type PostStatisticsDTO struct {
	PostID     uint64                 `json:"post_id"`
	StartDate  string                 `json:"start_date"`
	EndDate    string                 `json:"end_date"`
	Interval   string                 `json:"interval"`
	Statistics map[string][]BucketDTO `json:"statistics"`
}
