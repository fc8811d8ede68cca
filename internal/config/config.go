package config

import (
	"github.com/blues/cfp/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuthConfig 身份认证配置
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"` // HMAC签名密钥
}

// ReconcilerConfig 金额对账配置
type ReconcilerConfig struct {
	MaxRetries int `mapstructure:"max_retries"` // 对账写入最大重试次数
	BackoffMs  int `mapstructure:"backoff_ms"`  // 初始退避时间（毫秒）
	PoolSize   int `mapstructure:"pool_size"`   // 对账协程池大小
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	SweepInterval int `mapstructure:"sweep_interval"` // 对账巡检间隔（秒）
}

// StorageConfig 图片存储配置
type StorageConfig struct {
	ImageDir string `mapstructure:"image_dir"` // 图片落盘目录
	BaseURL  string `mapstructure:"base_url"`  // 图片访问URL前缀
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cfp")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "crowdfunding")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("reconciler.max_retries", 3)
	viper.SetDefault("reconciler.backoff_ms", 200)
	viper.SetDefault("reconciler.pool_size", 16)
	viper.SetDefault("scheduler.sweep_interval", 300)
	viper.SetDefault("storage.image_dir", "data/images")
	viper.SetDefault("storage.base_url", "/images")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
