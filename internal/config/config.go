// Package config 提供应用程序的配置加载
// 使用 TOML 配置文件，.env 与 MYSIC_* 环境变量可覆盖部分字段
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName string `toml:"appName"` // 应用名称
	Host    string `toml:"host"`    // 监听地址，如 "0.0.0.0"
	Port    int    `toml:"port"`    // 监听端口，如 8000
	Mode    string `toml:"mode"`    // gin 模式：debug / release / test
	Locale  string `toml:"locale"`  // 参数校验提示语言：zh / en
}

// MysqlConfig 数据库连接配置
// Driver 为 "sqlite" 时使用 SqlitePath，便于本地开发
type MysqlConfig struct {
	Driver       string `toml:"driver"`       // mysql / sqlite
	Host         string `toml:"host"`         // MySQL 服务器地址
	Port         int    `toml:"port"`         // MySQL 端口，默认 3306
	User         string `toml:"user"`         // 数据库用户名
	Password     string `toml:"password"`     // 数据库密码
	DatabaseName string `toml:"databaseName"` // 数据库名称
	SqlitePath   string `toml:"sqlitePath"`   // sqlite 文件路径
	MaxOpenConns int    `toml:"maxOpenConns"` // 连接池最大连接数
	MaxIdleConns int    `toml:"maxIdleConns"` // 连接池最大空闲连接数
}

// DSN 构建 MySQL 连接串
func (m MysqlConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		m.User, m.Password, m.Host, m.Port, m.DatabaseName)
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Enabled      bool   `toml:"enabled"`      // 是否启用缓存
	Host         string `toml:"host"`         // Redis 服务器地址
	Port         int    `toml:"port"`         // Redis 端口，默认 6379
	Password     string `toml:"password"`     // Redis 密码，无密码留空
	Db           int    `toml:"db"`           // Redis 数据库编号
	Workers      int    `toml:"workers"`      // 异步缓存任务 worker 数
	TaskChanSize int    `toml:"taskChanSize"` // 异步缓存任务缓冲区大小
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// KafkaConfig 通知推送的消息模式配置
type KafkaConfig struct {
	MessageMode       string        `toml:"messageMode"`       // "channel" 或 "kafka"
	HostPort          string        `toml:"hostPort"`          // Kafka 地址，如 "localhost:9092"
	NotificationTopic string        `toml:"notificationTopic"` // 通知推送主题
	GroupID           string        `toml:"groupId"`           // 消费者组
	Timeout           time.Duration `toml:"timeout"`           // 超时时间（秒）
}

// JWTConfig JWT 认证配置
type JWTConfig struct {
	Secret            string `toml:"secret"`            // 签名密钥
	Algorithm         string `toml:"algorithm"`         // 签名算法，默认 HS256
	AccessTokenExpiry int    `toml:"accessTokenExpiry"` // Access Token 有效期（分钟）
}

// CorsConfig 跨域配置
type CorsConfig struct {
	AllowOrigins []string `toml:"allowOrigins"` // 允许的来源
}

// StorageConfig 录音文件对象存储（MinIO / S3 兼容）
type StorageConfig struct {
	Enabled   bool   `toml:"enabled"`
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"accessKey"`
	SecretKey string `toml:"secretKey"`
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	UseSSL    bool   `toml:"useSSL"`
}

// SecureConfig 安全响应头与 HTTPS 跳转
type SecureConfig struct {
	SSLRedirect bool   `toml:"sslRedirect"`
	SSLHost     string `toml:"sslHost"`
	IsDev       bool   `toml:"isDev"`
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig    `toml:"mainConfig"`
	MysqlConfig   `toml:"mysqlConfig"`
	RedisConfig   `toml:"redisConfig"`
	LogConfig     `toml:"logConfig"`
	KafkaConfig   `toml:"kafkaConfig"`
	JWTConfig     `toml:"jwtConfig"`
	CorsConfig    `toml:"corsConfig"`
	StorageConfig `toml:"storageConfig"`
	SecureConfig  `toml:"secureConfig"`
}

// Default 返回带默认值的配置
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName: "mysic",
			Host:    "0.0.0.0",
			Port:    8000,
			Mode:    "debug",
			Locale:  "zh",
		},
		MysqlConfig: MysqlConfig{
			Driver:       "mysql",
			Host:         "127.0.0.1",
			Port:         3306,
			User:         "root",
			DatabaseName: "mysic",
			SqlitePath:   "mysic.db",
			MaxOpenConns: 50,
			MaxIdleConns: 10,
		},
		RedisConfig: RedisConfig{
			Host:         "127.0.0.1",
			Port:         6379,
			Workers:      15,
			TaskChanSize: 3000,
		},
		LogConfig: LogConfig{
			LogPath: "logs",
			Level:   "info",
		},
		KafkaConfig: KafkaConfig{
			MessageMode:       "channel",
			HostPort:          "127.0.0.1:9092",
			NotificationTopic: "notification",
			GroupID:           "mysic",
			Timeout:           1,
		},
		JWTConfig: JWTConfig{
			Algorithm:         "HS256",
			AccessTokenExpiry: 30,
		},
		CorsConfig: CorsConfig{
			AllowOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		StorageConfig: StorageConfig{
			Bucket: "mysic-recordings",
		},
	}
}

// Load 读取配置文件并应用环境变量覆盖
// path 为空时只使用默认值与环境变量
func Load(path string) (*Config, error) {
	conf := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, conf); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	// .env 不存在时忽略，不会覆盖已有环境变量
	_ = godotenv.Load()
	conf.applyEnv()

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// applyEnv 使用 MYSIC_* 环境变量覆盖配置
func (c *Config) applyEnv() {
	setString(&c.MysqlConfig.Driver, "MYSIC_DB_DRIVER")
	setString(&c.MysqlConfig.Host, "MYSIC_DB_HOST")
	setInt(&c.MysqlConfig.Port, "MYSIC_DB_PORT")
	setString(&c.MysqlConfig.User, "MYSIC_DB_USER")
	setString(&c.MysqlConfig.Password, "MYSIC_DB_PASSWORD")
	setString(&c.MysqlConfig.DatabaseName, "MYSIC_DB_NAME")
	setString(&c.MysqlConfig.SqlitePath, "MYSIC_SQLITE_PATH")
	setString(&c.JWTConfig.Secret, "MYSIC_JWT_SECRET")
	setString(&c.JWTConfig.Algorithm, "MYSIC_JWT_ALGORITHM")
	setInt(&c.JWTConfig.AccessTokenExpiry, "MYSIC_JWT_EXPIRE_MINUTES")
	setString(&c.RedisConfig.Host, "MYSIC_REDIS_HOST")
	setString(&c.RedisConfig.Password, "MYSIC_REDIS_PASSWORD")
	setString(&c.StorageConfig.AccessKey, "MYSIC_STORAGE_ACCESS_KEY")
	setString(&c.StorageConfig.SecretKey, "MYSIC_STORAGE_SECRET_KEY")
	if v := os.Getenv("MYSIC_CORS_ORIGINS"); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CorsConfig.AllowOrigins = origins
	}
}

// Validate 校验关键配置
func (c *Config) Validate() error {
	if c.JWTConfig.Secret == "" {
		return errors.New("jwtConfig.secret is required")
	}
	switch c.KafkaConfig.MessageMode {
	case "channel", "kafka":
	default:
		return fmt.Errorf("unknown kafkaConfig.messageMode %q", c.KafkaConfig.MessageMode)
	}
	switch c.MysqlConfig.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unknown mysqlConfig.driver %q", c.MysqlConfig.Driver)
	}
	return nil
}

// Addr 返回服务监听地址
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.MainConfig.Host, c.MainConfig.Port)
}

// TokenExpiry 返回 Access Token 有效期
func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.JWTConfig.AccessTokenExpiry) * time.Minute
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
