package config

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
	"gopkg.in/ini.v1"
)

// OSRelease holds the os-release fields used to build the name-version.
type OSRelease struct {
	ID        string
	VersionID string
}

// ParseOSRelease reads an os-release(5) file.
func ParseOSRelease(path string) (*OSRelease, error) {
	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	sec := f.Section(ini.DefaultSection)
	return &OSRelease{
		ID:        sec.Key("ID").String(),
		VersionID: sec.Key("VERSION_ID").String(),
	}, nil
}

var machine = sync.OnceValues(func() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", fmt.Errorf("uname: %w", err)
	}
	return strings.TrimRight(string(uts.Machine[:]), "\x00"), nil
})

// DetectArch returns the machine hardware name of the host, e.g. x86_64.
func DetectArch() (string, error) {
	return machine()
}
