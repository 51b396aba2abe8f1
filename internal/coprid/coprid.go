// Package coprid converts between the three names a Copr project has on a
// system: the dnf repo id (copr:hub:owner:project), the Copr id
// (hub/@owner/project) and the repo file name (_copr:hub:owner:project.repo).
package coprid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ralt/coprctl/internal/models"
)

const (
	// RepoPrefix starts every repo id managed by this tool.
	RepoPrefix = "copr:"
	// DependencyPrefix starts ids of repositories enabled as project dependencies.
	DependencyPrefix = "coprdep:"

	groupMarker   = "@"
	groupStorage  = "group_"
	multilibMark  = ":ml"
	fileNameStart = "_copr:"
	fileNameEnd   = ".repo"
)

var projectSpecRegex = regexp.MustCompile(`^(([^/]+)/)?([^/]+)/([^/]*)$`)

// OwnerToStorageForm turns a group owner "@name" into "group_name".
func OwnerToStorageForm(owner string) string {
	if strings.HasPrefix(owner, groupMarker) {
		return groupStorage + strings.TrimPrefix(owner, groupMarker)
	}
	return owner
}

// RepoID builds the repo id of a project's main repository.
func RepoID(hubHostname, owner, dirname string) string {
	return RepoPrefix + hubHostname + ":" + OwnerToStorageForm(owner) + ":" + dirname
}

// MultilibSuffix returns the suffix for the n-th multilib repository, counted
// from zero. The first one is plain ":ml".
func MultilibSuffix(n int) string {
	if n == 0 {
		return multilibMark
	}
	return multilibMark + strconv.Itoa(n)
}

// IsMultilibID reports whether id belongs to a multilib repository of a project.
func IsMultilibID(id string) bool {
	if !strings.HasPrefix(id, RepoPrefix) {
		return false
	}
	// hub, owner and project must precede the marker
	fields := strings.Split(strings.TrimPrefix(id, RepoPrefix), ":")
	if len(fields) < 4 {
		return false
	}
	last := fields[len(fields)-1]
	if !strings.HasPrefix(last, "ml") {
		return false
	}
	digits := strings.TrimPrefix(last, "ml")
	if digits == "" {
		return true
	}
	_, err := strconv.Atoi(digits)
	return err == nil
}

// IsDependencyID reports whether id belongs to a dependency repository.
func IsDependencyID(id string) bool {
	return strings.HasPrefix(id, DependencyPrefix)
}

// RepoIDToProjectID converts a repo id to the Copr id, e.g.
// copr:copr.fedorainfracloud.org:group_copr:copr:suffix becomes
// copr.fedorainfracloud.org/@copr/copr:suffix. The boolean is false when the
// repo is not managed by Copr.
//
// Only the first two colons after the prefix separate hub, owner and project;
// anything after them belongs to the project directory.
func RepoIDToProjectID(repoID string) (string, bool) {
	if !strings.HasPrefix(repoID, RepoPrefix) {
		return "", false
	}

	rest := strings.TrimPrefix(repoID, RepoPrefix)
	hub, rest, found := strings.Cut(rest, ":")
	if !found {
		return stripMultilib(hub), true
	}

	owner, project, found := strings.Cut(rest, ":")
	if strings.HasPrefix(owner, groupStorage) {
		owner = groupMarker + strings.TrimPrefix(owner, groupStorage)
	}

	projectID := hub + "/" + owner
	if found {
		projectID += "/" + project
	}
	return stripMultilib(projectID), true
}

// ProjectIDToConfigFilename converts a Copr id to its repo file name, e.g.
// copr.fedorainfracloud.org/@copr/copr-pull-requests:pr:2545 becomes
// _copr:copr.fedorainfracloud.org:group_copr:copr-pull-requests:pr:2545.repo.
func ProjectIDToConfigFilename(projectID string) string {
	name := stripMultilib(projectID)
	name = strings.ReplaceAll(name, "/", ":")
	name = strings.ReplaceAll(name, groupMarker, groupStorage)
	return fileNameStart + name + fileNameEnd
}

// IsConfigFilename reports whether a file base name was produced by
// ProjectIDToConfigFilename.
func IsConfigFilename(name string) bool {
	return strings.HasPrefix(name, fileNameStart) && strings.HasSuffix(name, fileNameEnd)
}

// ProjectName strips the directory suffix from a project directory name:
// "project:custom:123" becomes "project".
func ProjectName(dirname string) string {
	name, _, _ := strings.Cut(dirname, ":")
	return name
}

// ProjectSpec is a parsed OWNER/PROJECT or HUB/OWNER/PROJECT argument.
type ProjectSpec struct {
	Hub     string
	Owner   string
	Dirname string
}

// ParseProjectSpec parses a project spec. Hub is empty when the spec has
// no hub part.
func ParseProjectSpec(spec string) (*ProjectSpec, error) {
	match := projectSpecRegex.FindStringSubmatch(spec)
	if match == nil {
		return nil, &models.CoprError{
			Type: models.ErrMalformedProjectSpec,
			Err:  fmt.Errorf("invalid PROJECT_SPEC format '%s'", spec),
		}
	}
	return &ProjectSpec{
		Hub:     match[2],
		Owner:   match[3],
		Dirname: match[4],
	}, nil
}

func stripMultilib(id string) string {
	return strings.TrimSuffix(id, multilibMark)
}
