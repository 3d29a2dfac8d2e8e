package dto

// GenerateReportDTO 报表生成请求体，日期为 YYYY-MM-DD
type GenerateReportDTO struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Interval  string `json:"interval" validate:"required,oneof=hour day week month"`
}

// ReportURLDTO 报表产物地址
type ReportURLDTO struct {
	URL string `json:"url"`
}
