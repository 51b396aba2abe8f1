package config

import (
	"github.com/caarlos0/env"
)

// EnvConfig holds the settings that can be overridden from the environment.
type EnvConfig struct {
	ConfigDir     string `env:"COPR_CONFIG_DIR" envDefault:"/etc/dnf/plugins"`
	ReposDir      string `env:"COPR_REPOS_DIR" envDefault:"/etc/yum.repos.d"`
	OSReleasePath string `env:"COPR_OS_RELEASE" envDefault:"/etc/os-release"`
	Hub           string `env:"COPR_HUB" envDefault:"copr.fedorainfracloud.org"`
}

// LoadEnv reads EnvConfig from the environment.
func LoadEnv() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
