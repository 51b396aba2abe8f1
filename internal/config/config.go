// Package config reads the Copr plugin configuration and detects the local
// system's distribution, release and architecture.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ralt/coprctl/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// DefaultHub is the hub used when none is given.
const DefaultHub = "copr.fedorainfracloud.org"

const (
	mainSection = "main"

	keyDistribution = "distribution"
	keyReleasever   = "releasever"
	keyNameVersion  = "name_version"
	keyArch         = "arch"

	keyHostname = "hostname"
	keyProtocol = "protocol"
	keyPort     = "port"
)

// CoprConfig is the merged content of the plugin's configuration files.
type CoprConfig struct {
	file *ini.File
}

// ConfigFiles returns the configuration files read from configDir, in the
// order they are applied.
func ConfigFiles(configDir string) []string {
	files := []string{
		filepath.Join(configDir, "copr.vendor.conf"),
		filepath.Join(configDir, "copr.conf"),
	}
	dropIns, _ := filepath.Glob(filepath.Join(configDir, "copr.d", "*.conf"))
	sort.Strings(dropIns)
	return append(files, dropIns...)
}

// Load reads the configuration files of configDir. Files that don't exist
// are skipped; keys of later files override earlier ones.
func Load(configDir string) (*CoprConfig, error) {
	cfg := &CoprConfig{file: ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})}

	for _, path := range ConfigFiles(configDir) {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			logrus.Debug(&models.CoprError{
				Type: models.ErrConfigMissing,
				Err:  fmt.Errorf("%s does not exist", path),
			})
			continue
		}

		logrus.Debugf("Loading configuration file: %s", path)
		if err := cfg.file.Append(path); err != nil {
			return nil, &models.CoprError{
				Type: models.ErrInvalidConfig,
				Err:  fmt.Errorf("failed to parse %s: %w", path, err),
			}
		}
	}

	return cfg, nil
}

// Has reports whether section contains key.
func (c *CoprConfig) Has(section, key string) bool {
	sec, err := c.file.GetSection(section)
	if err != nil {
		return false
	}
	return sec.HasKey(key)
}

// Get returns the value of key in section, or "" when absent.
func (c *CoprConfig) Get(section, key string) string {
	sec, err := c.file.GetSection(section)
	if err != nil {
		return ""
	}
	k, err := sec.GetKey(key)
	if err != nil {
		return ""
	}
	return k.String()
}

// SetDefault sets key in section unless it already has a non-empty value.
func (c *CoprConfig) SetDefault(section, key, value string) {
	current := c.Get(section, key)
	if models.SetOnce(&current, value) {
		c.file.Section(section).Key(key).SetValue(current)
	}
}

// Configure fills the [main] values the configuration files don't set from
// the detected system.
func (c *CoprConfig) Configure(release *OSRelease, arch string) {
	if release != nil {
		c.SetDefault(mainSection, keyDistribution, release.ID)
		c.SetDefault(mainSection, keyReleasever, release.VersionID)
	}

	distribution := c.Get(mainSection, keyDistribution)
	releasever := c.Get(mainSection, keyReleasever)
	if distribution != "" && releasever != "" {
		c.SetDefault(mainSection, keyNameVersion, distribution+"-"+releasever)
	}
	c.SetDefault(mainSection, keyArch, arch)
}

// CheckSystem returns an InvalidConfig error when the distribution or the
// architecture could neither be detected nor read from [main].
func (c *CoprConfig) CheckSystem() error {
	if c.NameVersion() == "" {
		err := fmt.Errorf("unable to detect the distribution, set %s and %s (or %s) in the [%s] section of copr.conf",
			keyDistribution, keyReleasever, keyNameVersion, mainSection)
		return &models.CoprError{
			Type: models.ErrInvalidConfig,
			Err:  err,
		}
	}
	if c.Arch() == "" {
		return &models.CoprError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("unable to detect the architecture, set %s in the [%s] section of copr.conf", keyArch, mainSection),
		}
	}
	return nil
}

// NameVersion returns the configured distribution-releasever.
func (c *CoprConfig) NameVersion() string {
	return c.Get(mainSection, keyNameVersion)
}

// Arch returns the configured architecture.
func (c *CoprConfig) Arch() string {
	return c.Get(mainSection, keyArch)
}

// HubHostname returns the hostname of a hub alias; a hubspec without a
// section is a hostname already.
func (c *CoprConfig) HubHostname(hubspec string) string {
	if !c.Has(hubspec, keyHostname) {
		return hubspec
	}
	return c.Get(hubspec, keyHostname)
}

// HubURL returns the frontend URL of a hub, e.g.
// https://copr.fedorainfracloud.org or http://localhost:5000.
func (c *CoprConfig) HubURL(hubspec string) string {
	protocol := "https"
	if c.Has(hubspec, keyProtocol) {
		protocol = c.Get(hubspec, keyProtocol)
	}

	port := ""
	if c.Has(hubspec, keyPort) {
		port = ":" + c.Get(hubspec, keyPort)
	}

	return protocol + "://" + c.HubHostname(hubspec) + port
}

// RepoURL returns the URL of a project's rpmrepo descriptor.
func (c *CoprConfig) RepoURL(hubspec, owner, dirname, nameVersion string) string {
	return c.HubURL(hubspec) + "/api_3/rpmrepo/" + owner + "/" + dirname + "/" + nameVersion + "/"
}

// Environment returns the resolved local settings for hubspec.
func (c *CoprConfig) Environment(hubspec string) models.EnvironmentConfig {
	return models.EnvironmentConfig{
		Distribution:   c.Get(mainSection, keyDistribution),
		ReleaseVersion: c.Get(mainSection, keyReleasever),
		Arch:           c.Arch(),
		NameVersion:    c.NameVersion(),
		HubHostname:    c.HubHostname(hubspec),
	}
}
