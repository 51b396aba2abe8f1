package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ralt/coprctl/internal/coprid"
	"github.com/ralt/coprctl/internal/models"
	"github.com/ralt/coprctl/internal/utils"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// RepoFilePerm is added to the permissions of written .repo files.
const RepoFilePerm os.FileMode = 0644

// Save writes the set to its .repo file in reposDir and returns the path.
// The file is overwritten, not replaced atomically.
func (s *Set) Save(reposDir string) (string, error) {
	if s.id == "" {
		return "", &models.CoprError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("repository set has no Copr id"),
		}
	}

	path := filepath.Join(reposDir, s.Filename())
	if err := utils.WriteFile(path, []byte(s.Render()), RepoFilePerm); err != nil {
		return "", &models.CoprError{
			Type:    models.ErrFileOp,
			Project: s.id,
			Err:     fmt.Errorf("failed to write %s: %w", path, err),
		}
	}

	logrus.Infof("Repository configuration file written to: %s", path)
	return path, nil
}

// LoadLocal rebuilds the Copr projects configured in the .repo files of
// reposDir. Repositories not managed by Copr are skipped, and dependency
// repositories are only picked up from files written by Save. The result is
// sorted by Copr id.
func LoadLocal(reposDir string) ([]*Set, error) {
	files, err := filepath.Glob(filepath.Join(reposDir, "*.repo"))
	if err != nil {
		return nil, &models.CoprError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to list %s: %w", reposDir, err),
		}
	}
	sort.Strings(files)

	byID := make(map[string]*Set)
	var ids []string
	for _, file := range files {
		set, err := loadRepoFile(file)
		if err != nil {
			logrus.Warnf("Failed to read %s: %v", file, err)
			continue
		}
		if set.ID() == "" {
			continue
		}

		existing, ok := byID[set.ID()]
		if !ok {
			byID[set.ID()] = set
			ids = append(ids, set.ID())
			continue
		}
		existing.Parts = append(existing.Parts, set.Parts...)
	}

	sort.Strings(ids)
	sets := make([]*Set, 0, len(ids))
	for _, id := range ids {
		sets = append(sets, byID[id])
	}
	return sets, nil
}

func loadRepoFile(path string) (*Set, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return nil, err
	}

	ownFile := coprid.IsConfigFilename(filepath.Base(path))
	set := &Set{}
	for _, section := range cfg.Sections() {
		id := section.Name()
		if id == ini.DefaultSection {
			continue
		}

		_, managed := coprid.RepoIDToProjectID(id)
		if !managed && !(ownFile && coprid.IsDependencyID(id)) {
			continue
		}

		enabled := section.Key("enabled").MustBool(true)
		logrus.Debugf("Found repository %s in %s (enabled: %t)", id, path, enabled)
		set.AddLocalPart(id, enabled)
	}
	return set, nil
}
