package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// 默认值
const (
	DefaultPort         = "5000"
	DefaultDatabaseName = "danceFusionDB"
	DefaultTokenTTL     = time.Hour
	DefaultClassTTL     = 5 * time.Minute
)

// ErrInvalidConfig 配置不完整或取值非法
var ErrInvalidConfig = errors.New("invalid config")

// Load 加载配置
//  1. 加载 .env（敏感信息 + APP_ENV）
//  2. 根据 APP_ENV 加载 common.yaml 与 {env}.yaml
//  3. 环境变量覆盖并构建最终配置
func Load() (*Config, error) {
	env := parseEnv(getEnv("APP_ENV", "dev"))
	loadEnvFiles(env)
	// .env 中可能声明了 APP_ENV
	env = parseEnv(getEnv("APP_ENV", string(env)))

	yamlCfg, err := loadYAMLConfig(env)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(&yamlCfg.YAMLConfig)

	dbURL := buildDatabaseURL(yamlCfg.Database)
	cfg := &Config{
		Env:              env,
		DatabaseDriver:   detectDatabaseDriver(yamlCfg.Database.Driver, dbURL),
		DatabaseURL:      dbURL,
		DatabaseName:     yamlCfg.Database.Name,
		RedisURL:         yamlCfg.Redis.URL,
		Port:             yamlCfg.Server.Port,
		ProtectMutations: yamlCfg.Server.ProtectMutations,
		ShutdownTimeout:  yamlCfg.Server.ShutdownTimeout,
		Auth:             yamlCfg.Auth,
		Payment:          yamlCfg.Payment,
		Cache:            yamlCfg.Cache,
		Log:              yamlCfg.Log,
		ConfigFilePath:   yamlCfg.loadedFrom,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaults 代码硬编码默认值
func defaults() YAMLConfig {
	return YAMLConfig{
		Server:   ServerConfig{Port: DefaultPort, ShutdownTimeout: 10 * time.Second},
		Database: DatabaseConfig{Driver: DriverMongo, Scheme: "mongodb+srv", Name: DefaultDatabaseName, Options: "retryWrites=true&w=majority"},
		Auth:     AuthConfig{TokenTTL: DefaultTokenTTL},
		Payment:  PaymentConfig{Currency: "usd", MethodTypes: []string{"card"}},
		Cache:    CacheConfig{ClassTTL: DefaultClassTTL},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// loadYAMLConfig 加载 YAML 配置文件
// 加载顺序：默认值 → common.yaml → {env}.yaml，文件不存在时跳过
func loadYAMLConfig(env Environment) (*yamlConfigInternal, error) {
	cfg := &yamlConfigInternal{YAMLConfig: defaults()}
	paths := effectiveConfigPaths(env)

	for _, name := range []string{"common.yaml", fmt.Sprintf("%s.yaml", env)} {
		path := findFile(paths, name)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg.YAMLConfig); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.loadedFrom = path
	}
	return cfg, nil
}

// applyEnvOverrides 环境变量覆盖 YAML 配置
func applyEnvOverrides(c *YAMLConfig) {
	c.Database.User = firstEnv("DB_USER")
	c.Database.Password = firstEnv("DB_PASS", "DB_PASSWORD")
	c.Database.URI = firstEnv("MONGO_URI", "DATABASE_URL")
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)

	c.Server.Port = getEnv("PORT", c.Server.Port)
	if v, err := strconv.ParseBool(os.Getenv("PROTECT_MUTATIONS")); err == nil {
		c.Server.ProtectMutations = v
	}

	c.Redis.URL = getEnv("REDIS_URL", c.Redis.URL)
	c.Auth.JWTSecret = firstEnv("ACCESS_TOKEN_SECRET")
	c.Payment.SecretKey = firstEnv("PAYMENT_SECRET_KEY")
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

// Validate 检查必填项并填充零值默认值
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: ACCESS_TOKEN_SECRET is required", ErrInvalidConfig)
	}
	if c.DatabaseDriver == DriverMongo && c.DatabaseURL == "" {
		return fmt.Errorf("%w: database host or MONGO_URI is required", ErrInvalidConfig)
	}
	if c.Env == EnvProduction && c.Payment.SecretKey == "" {
		return fmt.Errorf("%w: PAYMENT_SECRET_KEY is required in production", ErrInvalidConfig)
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("%w: invalid port %q", ErrInvalidConfig, c.Port)
	}
	if c.DatabaseName == "" {
		c.DatabaseName = DefaultDatabaseName
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = DefaultTokenTTL
	}
	if c.Cache.ClassTTL <= 0 {
		c.Cache.ClassTTL = DefaultClassTTL
	}
	return nil
}

// IsTest 是否为测试环境
func (c *Config) IsTest() bool {
	return c.Env == EnvTest
}

// Addr 返回 HTTP 监听地址
func (c *Config) Addr() string {
	return ":" + c.Port
}
