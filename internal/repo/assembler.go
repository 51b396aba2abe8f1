package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/ralt/coprctl/internal/chroot"
	"github.com/ralt/coprctl/internal/coprid"
	"github.com/ralt/coprctl/internal/descriptor"
	"github.com/ralt/coprctl/internal/models"
	"github.com/sirupsen/logrus"
)

// HubConfig resolves hub aliases to hostnames and descriptor URLs.
type HubConfig interface {
	HubHostname(hubspec string) string
	RepoURL(hubspec, owner, dirname, nameVersion string) string
}

// Assembler builds the repository Set of a project from its descriptor
type Assembler struct {
	fetcher descriptor.Fetcher
	hubs    HubConfig
}

// NewAssembler creates a new Assembler
func NewAssembler(fetcher descriptor.Fetcher, hubs HubConfig) *Assembler {
	return &Assembler{
		fetcher: fetcher,
		hubs:    hubs,
	}
}

// Assemble fetches the project's descriptor, resolves the chroot and expands
// the main, multilib and dependency repositories. Nothing is written.
func (a *Assembler) Assemble(ctx context.Context, req *models.EnableRequest) (*Set, error) {
	// Step 1: Fetch and parse the descriptor
	url := a.hubs.RepoURL(req.Hubspec, req.Owner, req.Dirname, req.NameVersion)
	desc, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	// Step 2: Resolve the chroot
	available := chroot.NewSet(desc.AvailableChroots()...)
	res, err := chroot.Resolve(available, req.NameVersion, req.Arch, req.Chroot)
	if err != nil {
		return nil, &models.CoprError{
			Type:    models.ErrChrootNotFound,
			Project: req.ProjectSpec(),
			Err:     err,
		}
	}
	logrus.Debugf("Using chroot %s (selector %s, arch %s)", res.BaseURLChroot, res.Selector, res.Arch)

	detail, ok := desc.Chroot(res.Selector, res.Arch)
	if !ok {
		return nil, &models.CoprError{
			Type:    models.ErrDescriptorParse,
			Project: req.ProjectSpec(),
			Err:     fmt.Errorf("descriptor has no entry for %s/%s", res.Selector, res.Arch),
		}
	}

	// Step 3: Expand the repositories
	set := &Set{}
	repoID := coprid.RepoID(a.hubs.HubHostname(req.Hubspec), req.Owner, req.Dirname)
	set.SetIDFromRepoID(repoID)

	name := fmt.Sprintf("Copr repo for %s owned by %s", req.Dirname, req.Owner)
	gpgKey := coprGPGKeyURL(desc.ResultsURL, req.Owner, coprid.ProjectName(req.Dirname))

	mainPart := NewPart(repoID, name, coprBaseURL(desc.ResultsURL, req.Owner, req.Dirname, res.BaseURLChroot), gpgKey)
	mainPart.ApplyOptions(detail.Opts)
	set.Parts = append(set.Parts, mainPart)

	if !res.Explicit {
		set.Parts = append(set.Parts, multilibParts(desc, req, detail, repoID, name, gpgKey, res.BaseURLChroot)...)
	}

	set.Parts = append(set.Parts, dependencyParts(desc, res.BaseURLChroot)...)

	if err := checkUniqueIDs(set.Parts); err != nil {
		return nil, &models.CoprError{
			Type:    models.ErrDescriptorParse,
			Project: req.ProjectSpec(),
			Err:     err,
		}
	}

	logrus.Debugf("Assembled %d repositories for %s", len(set.Parts), set.ID())
	return set, nil
}

func multilibParts(desc *descriptor.Descriptor, req *models.EnableRequest, detail descriptor.ChrootDetail, repoID, name, gpgKey, baseURLChroot string) []*Part {
	var parts []*Part
	for i, arch := range detail.Multilib.Keys() {
		ml, _ := detail.Multilib.Get(arch)
		mlChroot := strings.ReplaceAll(baseURLChroot, "$basearch", arch)

		p := NewPart(
			repoID+coprid.MultilibSuffix(i),
			fmt.Sprintf("%s (%s)", name, arch),
			coprBaseURL(desc.ResultsURL, req.Owner, req.Dirname, mlChroot),
			gpgKey,
		)
		p.ApplyOptions(detail.Opts)
		p.ApplyOptions(ml.Opts)
		parts = append(parts, p)
	}
	return parts
}

func dependencyParts(desc *descriptor.Descriptor, baseURLChroot string) []*Part {
	var parts []*Part
	for _, dep := range desc.Dependencies {
		switch dep.Type {
		case descriptor.DependencyCopr:
			parts = append(parts, NewCoprDependencyPart(dep, desc.ResultsURL, baseURLChroot))
		case descriptor.DependencyExternalURL:
			parts = append(parts, NewExternalDependencyPart(dep, baseURLChroot))
		default:
			logrus.Debug(&models.CoprError{
				Type: models.ErrUnrecognizedDependency,
				Err:  fmt.Errorf("skipping dependency of type %q", dep.Type),
			})
		}
	}
	return parts
}

// checkUniqueIDs ensures every part has its own non-empty section name.
func checkUniqueIDs(parts []*Part) error {
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if p.ID == "" {
			return fmt.Errorf("repository %q has no id", p.BaseURL)
		}
		if seen[p.ID] {
			return fmt.Errorf("repository id %s is used more than once", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
