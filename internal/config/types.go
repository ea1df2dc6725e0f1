// Package config 统一配置管理
//
// 配置加载优先级（高→低）：
//  1. 环境变量（通过 .env 文件或 shell/systemd 注入）
//  2. YAML 配置文件（common.yaml → {env}.yaml）
//  3. 代码硬编码默认值
//
// 凭据单一数据源：
//
//	数据库密码、令牌密钥、支付密钥只存在环境变量中（YAML 中不存储任何密码）。
//
// 配置路径确定策略：
//  1. --config 命令行参数（SetConfigDir）
//  2. CONFIG_DIR 环境变量
//  3. 按 APP_ENV 选择默认路径：
//     - prod → /etc/dancefusion/
//     - dev/test → ./configs/
package config

import "time"

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

// 数据库驱动
const (
	DriverMongo  = "mongodb"
	DriverMemory = "memory"
)

// YAMLConfig YAML 配置文件结构
type YAMLConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Payment  PaymentConfig  `yaml:"payment"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string `yaml:"port"` // 监听端口，PORT 环境变量覆盖
	// ProtectMutations 角色提升与课程审核路由是否要求 Bearer Token
	ProtectMutations bool          `yaml:"protect_mutations"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "mongodb"（默认）或 "memory"
	Scheme   string `yaml:"scheme"` // mongodb+srv 或 mongodb
	Host     string `yaml:"host"`   // DB_HOST 环境变量覆盖
	User     string `yaml:"-"`      // 只从 DB_USER 环境变量读取
	Password string `yaml:"-"`      // 只从 DB_PASS 环境变量读取
	Name     string `yaml:"name"`   // DB_NAME 环境变量覆盖
	Options  string `yaml:"options"`
	URI      string `yaml:"-"` // MONGO_URI 直接指定完整连接串，优先于上述字段
}

// RedisConfig Redis 配置，URL 为空时不启用缓存
type RedisConfig struct {
	URL string `yaml:"url"` // REDIS_URL 环境变量覆盖
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret string        `yaml:"-"` // 只从 ACCESS_TOKEN_SECRET 环境变量读取
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// PaymentConfig 支付配置
type PaymentConfig struct {
	SecretKey   string   `yaml:"-"` // 只从 PAYMENT_SECRET_KEY 环境变量读取
	Currency    string   `yaml:"currency"`
	MethodTypes []string `yaml:"method_types"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	ClassTTL time.Duration `yaml:"class_ttl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`  // LOG_LEVEL 环境变量覆盖
	Format string `yaml:"format"` // LOG_FORMAT 环境变量覆盖
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env              Environment
	DatabaseDriver   string
	DatabaseURL      string
	DatabaseName     string
	RedisURL         string
	Port             string
	ProtectMutations bool
	ShutdownTimeout  time.Duration
	Auth             AuthConfig
	Payment          PaymentConfig
	Cache            CacheConfig
	Log              LogConfig
	ConfigFilePath   string // 实际加载的配置文件路径
}

// yamlConfigInternal 内部包装，记录配置文件来源（不参与 YAML 序列化）
type yamlConfigInternal struct {
	YAMLConfig `yaml:",inline"`
	loadedFrom string
}
