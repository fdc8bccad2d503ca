package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mzhuravlev/shopcourse/internal/platform/envutil"
)

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		Shop: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{5 * time.Second},
			IdleTimeout:       Duration{2 * time.Minute},
			ShutdownTimeout:   Duration{15 * time.Second},
		},
		Users: ServerConfig{
			Addr:              ":8090",
			ReadHeaderTimeout: Duration{5 * time.Second},
			IdleTimeout:       Duration{2 * time.Minute},
			ShutdownTimeout:   Duration{15 * time.Second},
		},
		Calc: ServerConfig{
			Addr:              ":8070",
			ReadHeaderTimeout: Duration{5 * time.Second},
			IdleTimeout:       Duration{2 * time.Minute},
			ShutdownTimeout:   Duration{15 * time.Second},
		},
		MetricsAddr: ":8001",
		CORSOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "superSecretAdminPassword123",
		},
	}
}

// Load builds the config from defaults, an optional YAML file
// (SHOPCOURSE_CONFIG or ./config/config.yaml), then env overrides. A .env
// file is folded into the environment first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("SHOPCOURSE_CONFIG"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.Shop.Addr = envutil.String("SHOP_ADDR", cfg.Shop.Addr)
	cfg.Users.Addr = envutil.String("USERS_ADDR", cfg.Users.Addr)
	cfg.Calc.Addr = envutil.String("CALC_ADDR", cfg.Calc.Addr)
	cfg.MetricsAddr = envutil.String("METRICS_ADDR", cfg.MetricsAddr)
	cfg.Admin.Username = envutil.String("ADMIN_USERNAME", cfg.Admin.Username)
	cfg.Admin.Password = envutil.String("ADMIN_PASSWORD", cfg.Admin.Password)

	return cfg, nil
}
