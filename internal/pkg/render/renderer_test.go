package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/YuriiSoroka26/forum-api/internal/api/dto"
	"github.com/YuriiSoroka26/forum-api/internal/pkg/interval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userTplBody = `<html><body>
<h1>{{.Type}} Report {{.UserID}}</h1>
<p>{{.Period}} | {{.Interval}}</p>
<p>followers: {{.FollowersCount}} following: {{.FollowingCount}}</p>
{{range .Posts}}<tr><td>{{.Label}}</td><td>{{.Count}}</td></tr>{{end}}
<script>const posts = {{.PostsJSON}};</script>
</body></html>`

const postTplBody = `<html><body>
<h1>{{.Type}} Report {{.PostID}}</h1>
{{range .Likes}}<tr><td>{{.Label}}</td><td>{{.Count}}</td></tr>{{end}}
<script>const likes = {{.LikesJSON}};</script>
</body></html>`

func writeTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.html"), []byte(userTplBody), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post.html"), []byte(postTplBody), 0644))
	return dir
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	dir := writeTemplates(t)
	r, err := NewRenderer(dir, "user.html", "post.html")
	require.NoError(t, err)
	return r
}

func userStats(buckets map[string][]dto.BucketDTO) *dto.UserStatisticsDTO {
	return &dto.UserStatisticsDTO{
		UserID:         1,
		StartDate:      "2024-03-10",
		EndDate:        "2024-03-15",
		Interval:       "day",
		Statistics:     buckets,
		FollowersCount: 8,
		FollowingCount: 2,
	}
}

func TestNewRendererMissingTemplate(t *testing.T) {
	dir := writeTemplates(t)

	_, err := NewRenderer(dir, "missing.html", "post.html")
	assert.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = NewRenderer(dir, "user.html", "missing.html")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRenderUserReport(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.RenderUserReport(userStats(map[string][]dto.BucketDTO{
		dto.MetricPosts:    {{Label: "2024-03-10", Count: 2}},
		dto.MetricLikes:    {},
		dto.MetricComments: {},
	}), "2024-03-10 to 2024-03-15")
	require.NoError(t, err)

	assert.Contains(t, html, "User Report 1")
	assert.Contains(t, html, "2024-03-10 to 2024-03-15")
	assert.Contains(t, html, "followers: 8 following: 2")
	assert.Contains(t, html, "<td>2024-03-10</td><td>2</td>")
	assert.Contains(t, html, `const posts = [{"label":"2024-03-10","count":2}];`)
}

func TestRenderUserReportSortsUnorderedSeries(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.RenderUserReport(userStats(map[string][]dto.BucketDTO{
		dto.MetricPosts: {
			{Label: "2024-03-14", Count: 1},
			{Label: "2024-03-10", Count: 2},
			{Label: "2024-03-12", Count: 3},
		},
	}), "2024-03-10 to 2024-03-15")
	require.NoError(t, err)

	first := strings.Index(html, "2024-03-10")
	second := strings.Index(html, "2024-03-12")
	third := strings.Index(html, "2024-03-14")
	require.NotEqual(t, -1, first)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestRenderUserReportDoesNotMutateInput(t *testing.T) {
	r := newTestRenderer(t)

	buckets := []dto.BucketDTO{
		{Label: "2024-03-14", Count: 1},
		{Label: "2024-03-10", Count: 2},
	}
	stats := userStats(map[string][]dto.BucketDTO{dto.MetricPosts: buckets})

	_, err := r.RenderUserReport(stats, "2024-03-10 to 2024-03-15")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-14", buckets[0].Label)
	assert.Equal(t, "2024-03-10", buckets[1].Label)
}

func TestRenderUserReportCorruptLabel(t *testing.T) {
	r := newTestRenderer(t)

	_, err := r.RenderUserReport(userStats(map[string][]dto.BucketDTO{
		dto.MetricPosts: {{Label: "garbage", Count: 1}},
	}), "2024-03-10 to 2024-03-15")

	assert.ErrorIs(t, err, ErrCorruptSeries)
	assert.Contains(t, err.Error(), `"garbage"`)
}

func TestRenderUserReportLabelIntervalMismatch(t *testing.T) {
	r := newTestRenderer(t)

	// day 粒度的标签混进 hour 粒度的序列
	stats := userStats(map[string][]dto.BucketDTO{
		dto.MetricPosts: {{Label: "2024-03-10", Count: 1}},
	})
	stats.Interval = "hour"

	_, err := r.RenderUserReport(stats, "2024-03-10 to 2024-03-15")
	assert.ErrorIs(t, err, ErrCorruptSeries)
}

func TestRenderUserReportAcceptsGeneratedLabels(t *testing.T) {
	r := newTestRenderer(t)

	for _, iv := range []interval.Interval{interval.Hour, interval.Day, interval.Week, interval.Month} {
		label, err := interval.Label(time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC), iv)
		require.NoError(t, err)

		stats := userStats(map[string][]dto.BucketDTO{
			dto.MetricPosts: {{Label: label, Count: 1}},
		})
		stats.Interval = string(iv)

		html, err := r.RenderUserReport(stats, "2024-03-10 to 2024-03-15")
		require.NoError(t, err, "interval %s", iv)
		assert.Contains(t, html, label)
	}
}

func TestRenderPostReport(t *testing.T) {
	r := newTestRenderer(t)

	html, err := r.RenderPostReport(&dto.PostStatisticsDTO{
		PostID:   7,
		Interval: "day",
		Statistics: map[string][]dto.BucketDTO{
			dto.MetricLikes: {
				{Label: "2024-03-12", Count: 5},
				{Label: "2024-03-10", Count: 1},
			},
			dto.MetricComments: {},
		},
	}, "2024-03-10 to 2024-03-15")
	require.NoError(t, err)

	assert.Contains(t, html, "Post Report 7")
	assert.Contains(t, html, `const likes = [{"label":"2024-03-10","count":1},{"label":"2024-03-12","count":5}];`)
}
