package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"database"`
	Redis  RedisConfig  `mapstructure:"redis"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
	Report ReportConfig `mapstructure:"report"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	ReportBucket string `mapstructure:"report_bucket"`
	UseSSL       bool   `mapstructure:"use_ssl"`
}

// ReportConfig 统计报表管线配置
type ReportConfig struct {
	TemplateDir      string `mapstructure:"template_dir"`
	UserTemplate     string `mapstructure:"user_template"`
	PostTemplate     string `mapstructure:"post_template"`
	RasterizeTimeout int    `mapstructure:"rasterize_timeout"` // 秒
	ReconcileCron    string `mapstructure:"reconcile_cron"`
}
