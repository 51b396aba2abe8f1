package repo

import (
	"strings"

	"github.com/ralt/coprctl/internal/coprid"
)

// Set is one enabled Copr project: its main repository first, followed by
// multilib and dependency repositories.
type Set struct {
	id    string // Copr id, groups are like "@group"
	Parts []*Part
}

// ID returns the Copr id, e.g. copr.fedorainfracloud.org/@copr/copr-dev.
func (s *Set) ID() string {
	return s.id
}

// SetIDFromRepoID sets the Copr id from a repo id. Only the first Copr
// managed repo id is used; later calls and foreign ids are ignored.
func (s *Set) SetIDFromRepoID(repoID string) {
	if s.id != "" {
		return
	}
	if projectID, ok := coprid.RepoIDToProjectID(repoID); ok {
		s.id = projectID
	}
}

// AddLocalPart records a repository found in the local configuration.
func (s *Set) AddLocalPart(id string, enabled bool) {
	s.SetIDFromRepoID(id)
	s.Parts = append(s.Parts, NewLocalPart(id, enabled))
}

// Enabled reports whether any part is enabled.
func (s *Set) Enabled() bool {
	for _, p := range s.Parts {
		if p.Enabled {
			return true
		}
	}
	return false
}

// HasExternalDeps reports whether any part is a dependency repository.
func (s *Set) HasExternalDeps() bool {
	for _, p := range s.Parts {
		if coprid.IsDependencyID(p.ID) {
			return true
		}
	}
	return false
}

// Multilib reports whether any part is a multilib repository.
func (s *Set) Multilib() bool {
	for _, p := range s.Parts {
		if coprid.IsMultilibID(p.ID) {
			return true
		}
	}
	return false
}

// Filename returns the base name of the set's .repo file.
func (s *Set) Filename() string {
	return coprid.ProjectIDToConfigFilename(s.id)
}

// Render returns the .repo file content: the part stanzas separated by an
// empty line.
func (s *Set) Render() string {
	stanzas := make([]string, 0, len(s.Parts))
	for _, p := range s.Parts {
		stanzas = append(stanzas, p.Render())
	}
	return strings.Join(stanzas, "\n")
}
