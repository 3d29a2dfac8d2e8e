package model

import "time"

// 报表主体类型
const (
	SubjectUser = "user"
	SubjectPost = "post"
)

// GeneratedReport 一次成功生成的统计报表记录，只追加，不修改。
// 同一主体可以存在多条历史记录，"最新"按 generated_at 倒序取第一条。
type GeneratedReport struct {
	ID          uint64    `gorm:"primaryKey"`
	SubjectType string    `gorm:"type:varchar(10);not null;index:idx_subject" json:"subject_type"`
	SubjectID   uint64    `gorm:"not null;index:idx_subject" json:"subject_id"`
	URL         string    `gorm:"type:varchar(512);not null" json:"url"`
	GeneratedAt time.Time `gorm:"not null" json:"generated_at"`
}

func (GeneratedReport) TableName() string {
	return "generated_reports"
}
