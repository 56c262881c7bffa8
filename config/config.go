package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

type Config struct {
	Server   ServerConfig   `yaml:"server" envPrefix:"SERVER_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`
	Store    StoreConfig    `yaml:"store" envPrefix:"STORE_"`
	Preview  PreviewConfig  `yaml:"preview" envPrefix:"PREVIEW_"`
	Builder  BuilderConfig  `yaml:"builder" envPrefix:"BUILDER_"`
	Data     DataConfig     `yaml:"data" envPrefix:"DATA_"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT"`
	Mode string `yaml:"mode" env:"MODE"` // debug, release
	// PublicOrigin 嵌入代码中使用的站点地址
	PublicOrigin string   `yaml:"public_origin" env:"PUBLIC_ORIGIN"`
	CORSOrigins  []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
}

type DatabaseConfig struct {
	Type string `yaml:"type" env:"TYPE"` // sqlite, mysql
	DSN  string `yaml:"dsn" env:"DSN"`
}

// StoreConfig 存储操作的模拟延迟
type StoreConfig struct {
	Latency LatencyConfig `yaml:"latency" envPrefix:"LATENCY_"`
}

type LatencyConfig struct {
	List   time.Duration `yaml:"list" env:"LIST"`
	Get    time.Duration `yaml:"get" env:"GET"`
	Create time.Duration `yaml:"create" env:"CREATE"`
	Update time.Duration `yaml:"update" env:"UPDATE"`
	Delete time.Duration `yaml:"delete" env:"DELETE"`
	Submit time.Duration `yaml:"submit" env:"SUBMIT"`
}

type PreviewConfig struct {
	SubmitDelay time.Duration `yaml:"submit_delay" env:"SUBMIT_DELAY"`
}

type BuilderConfig struct {
	// NodeID 字段 id 生成器的节点号，0-1023
	NodeID int64 `yaml:"node_id" env:"NODE_ID"`
}

type DataConfig struct {
	Dir string `yaml:"dir" env:"DIR"`
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config.yaml"
		}
		c, err := Load(configPath, ".env")
		if err != nil {
			klog.Warningf("加载配置失败，使用默认配置: %v", err)
			c = Default()
		}
		cfg = c
	})
	return cfg
}

// Default 内置默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			Mode:         "debug",
			PublicOrigin: "http://localhost:8080",
			CORSOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/app.db",
		},
		Store: StoreConfig{
			Latency: LatencyConfig{
				List:   300 * time.Millisecond,
				Get:    100 * time.Millisecond,
				Create: 500 * time.Millisecond,
				Update: 400 * time.Millisecond,
				Delete: 300 * time.Millisecond,
				Submit: 600 * time.Millisecond,
			},
		},
		Preview: PreviewConfig{
			SubmitDelay: time.Second,
		},
		Builder: BuilderConfig{
			NodeID: 1,
		},
		Data: DataConfig{
			Dir: "./data",
		},
	}
}

// Load 依次应用默认值、YAML 文件、.env 文件和环境变量，后者优先。
// 两个文件缺失都不算错误
func Load(configPath, dotenvPath string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", configPath, err)
	}

	// .env 不覆盖已存在的环境变量
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return config, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func UpdateConfig(newCfg *Config) {
	cfg = newCfg
}
