package interval

import (
	"errors"
	"time"
)

// Interval 统计粒度
type Interval string

const (
	Hour  Interval = "hour"
	Day   Interval = "day"
	Week  Interval = "week"
	Month Interval = "month"
)

// ErrUnknownInterval 不是 hour/day/week/month 中的任何一个
var ErrUnknownInterval = errors.New("unknown interval")

const (
	hourLayout  = "2006-01-02T15"
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Parse 解析粒度字符串
func Parse(s string) (Interval, error) {
	switch Interval(s) {
	case Hour, Day, Week, Month:
		return Interval(s), nil
	default:
		return "", ErrUnknownInterval
	}
}

// Label 将时间戳归入对应粒度的桶标签，时间统一按 UTC 处理。
// week 的桶锚点是该时间所在周的周日。
func Label(t time.Time, iv Interval) (string, error) {
	t = t.UTC()
	switch iv {
	case Hour:
		return t.Format(hourLayout), nil
	case Day:
		return t.Format(dateLayout), nil
	case Week:
		weekStart := t.AddDate(0, 0, -int(t.Weekday()))
		return weekStart.Format(dateLayout), nil
	case Month:
		return t.Format(monthLayout), nil
	default:
		return "", ErrUnknownInterval
	}
}

// LabelTime 将桶标签按粒度对应的格式解析回时间，用于排序。
// 解析失败说明标签不是本包生成的，属于数据损坏。
func LabelTime(label string, iv Interval) (time.Time, error) {
	switch iv {
	case Hour:
		return time.ParseInLocation(hourLayout, label, time.UTC)
	case Day, Week:
		return time.ParseInLocation(dateLayout, label, time.UTC)
	case Month:
		return time.ParseInLocation(monthLayout, label, time.UTC)
	default:
		return time.Time{}, ErrUnknownInterval
	}
}
