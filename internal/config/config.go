package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("duration must look like \"5s\": %w", err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

type ServerConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
}

// AdminConfig seeds the bootstrap admin so user promotion is reachable on a
// fresh store.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Config struct {
	Env         string       `yaml:"env"`
	Shop        ServerConfig `yaml:"shop"`
	Users       ServerConfig `yaml:"users"`
	Calc        ServerConfig `yaml:"calc"`
	MetricsAddr string       `yaml:"metrics_addr"`
	CORSOrigins []string     `yaml:"cors_origins"`
	Admin       AdminConfig  `yaml:"admin"`
}
