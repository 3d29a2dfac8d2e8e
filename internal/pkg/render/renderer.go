package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/YuriiSoroka26/forum-api/internal/api/dto"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/interval"

	"github.com/goccy/go-json"
)

var (
	// ErrTemplateNotFound 模板文件缺失
	ErrTemplateNotFound = errors.New("template file not found")
	// ErrCorruptSeries 桶标签无法按粒度解析回日期，说明聚合侧产出了坏数据
	ErrCorruptSeries = errors.New("invalid or missing date format in statistics data")
)

// Renderer 将统计结果代入命名模板, 产出报表 HTML 文档
type Renderer struct {
	userTpl *template.Template
	postTpl *template.Template
}

// NewRenderer 加载用户/帖子两套报表模板，文件缺失直接失败
func NewRenderer(templateDir, userTemplate, postTemplate string) (*Renderer, error) {
	userTpl, err := loadTemplate(filepath.Join(templateDir, userTemplate))
	if err != nil {
		return nil, err
	}
	postTpl, err := loadTemplate(filepath.Join(templateDir, postTemplate))
	if err != nil {
		return nil, err
	}
	return &Renderer{userTpl: userTpl, postTpl: postTpl}, nil
}

func loadTemplate(path string) (*template.Template, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}
	tpl, err := template.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	return tpl, nil
}

type userReportVars struct {
	Type           string
	Period         string
	Interval       string
	UserID         uint64
	FollowersCount int64
	FollowingCount int64
	Posts          []dto.BucketDTO
	Likes          []dto.BucketDTO
	Comments       []dto.BucketDTO
	PostsJSON      template.JS
	LikesJSON      template.JS
	CommentsJSON   template.JS
}

type postReportVars struct {
	Type         string
	Period       string
	Interval     string
	PostID       uint64
	Likes        []dto.BucketDTO
	Comments     []dto.BucketDTO
	LikesJSON    template.JS
	CommentsJSON template.JS
}

// RenderUserReport 渲染用户报表，输入不被修改
func (r *Renderer) RenderUserReport(stats *dto.UserStatisticsDTO, period string) (string, error) {
	iv := interval.Interval(stats.Interval)

	posts, err := sortedBuckets(stats.Statistics[dto.MetricPosts], iv)
	if err != nil {
		return "", err
	}
	likes, err := sortedBuckets(stats.Statistics[dto.MetricLikes], iv)
	if err != nil {
		return "", err
	}
	comments, err := sortedBuckets(stats.Statistics[dto.MetricComments], iv)
	if err != nil {
		return "", err
	}

	vars := userReportVars{
		Type:           "User",
		Period:         period,
		Interval:       stats.Interval,
		UserID:         stats.UserID,
		FollowersCount: stats.FollowersCount,
		FollowingCount: stats.FollowingCount,
		Posts:          posts,
		Likes:          likes,
		Comments:       comments,
	}
	if vars.PostsJSON, err = seriesJSON(posts); err != nil {
		return "", err
	}
	if vars.LikesJSON, err = seriesJSON(likes); err != nil {
		return "", err
	}
	if vars.CommentsJSON, err = seriesJSON(comments); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err = r.userTpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to execute user report template: %w", err)
	}
	return buf.String(), nil
}

// RenderPostReport 渲染帖子报表，输入不被修改
func (r *Renderer) RenderPostReport(stats *dto.PostStatisticsDTO, period string) (string, error) {
	iv := interval.Interval(stats.Interval)

	likes, err := sortedBuckets(stats.Statistics[dto.MetricLikes], iv)
	if err != nil {
		return "", err
	}
	comments, err := sortedBuckets(stats.Statistics[dto.MetricComments], iv)
	if err != nil {
		return "", err
	}

	vars := postReportVars{
		Type:     "Post",
		Period:   period,
		Interval: stats.Interval,
		PostID:   stats.PostID,
		Likes:    likes,
		Comments: comments,
	}
	if vars.LikesJSON, err = seriesJSON(likes); err != nil {
		return "", err
	}
	if vars.CommentsJSON, err = seriesJSON(comments); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err = r.postTpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to execute post report template: %w", err)
	}
	return buf.String(), nil
}

// sortedBuckets 返回按标签日期升序排好的副本。
// 标签解析失败视为数据损坏，立即中止渲染而不是吞掉。
func sortedBuckets(buckets []dto.BucketDTO, iv interval.Interval) ([]dto.BucketDTO, error) {
	type keyed struct {
		bucket dto.BucketDTO
		at     time.Time
	}
	items := make([]keyed, len(buckets))
	for i, b := range buckets {
		t, err := interval.LabelTime(b.Label, iv)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrCorruptSeries, b.Label)
		}
		items[i] = keyed{bucket: b, at: t}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].at.Equal(items[j].at) {
			return items[i].bucket.Label < items[j].bucket.Label
		}
		return items[i].at.Before(items[j].at)
	})

	sorted := make([]dto.BucketDTO, len(items))
	for i, item := range items {
		sorted[i] = item.bucket
	}
	return sorted, nil
}

// seriesJSON 序列化成前端图表用的 JSON 片段
func seriesJSON(buckets []dto.BucketDTO) (template.JS, error) {
	raw, err := json.Marshal(buckets)
	if err != nil {
		return "", fmt.Errorf("failed to marshal series: %w", err)
	}
	return template.JS(raw), nil
}
