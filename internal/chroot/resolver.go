// Package chroot picks the chroot of a Copr project that matches the local
// system and turns it into a baseurl segment.
package chroot

import (
	"sort"
	"strings"

	"github.com/ralt/coprctl/internal/models"
	"github.com/sirupsen/logrus"
)

// Set is the set of chroots a project provides, e.g. "fedora-39-x86_64".
type Set map[string]struct{}

// NewSet creates a Set from chroot names.
func NewSet(chroots ...string) Set {
	s := make(Set, len(chroots))
	for _, c := range chroots {
		s.Add(c)
	}
	return s
}

// Add inserts a chroot.
func (s Set) Add(chroot string) {
	s[chroot] = struct{}{}
}

// Contains reports whether the chroot is available.
func (s Set) Contains(chroot string) bool {
	_, ok := s[chroot]
	return ok
}

// Sorted returns the chroots in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Resolution is the outcome of a successful resolve.
type Resolution struct {
	// BaseURLChroot is the chroot segment of the baseurl, possibly with
	// $releasever and $basearch placeholders.
	BaseURLChroot string
	// Selector is the name-version key of the descriptor's repos map.
	Selector string
	// Arch is the architecture key under the selector.
	Arch string
	// Explicit is true when the chroot was given by the caller.
	Explicit bool
}

// Fallbacks returns the name-version guesses tried in order for the local
// system. Only the configured name-version is tried for now.
func Fallbacks(nameVersion string) []string {
	return []string{nameVersion}
}

// Resolve finds the chroot to enable. An explicit chroot is used verbatim;
// otherwise the fallback guesses for nameVersion are matched against the
// available chroots.
func Resolve(available Set, nameVersion, arch, explicit string) (*Resolution, error) {
	if explicit != "" {
		return resolveExplicit(available, explicit)
	}

	for _, guess := range Fallbacks(nameVersion) {
		candidate := guess + "-" + arch
		logrus.Debugf("Trying chroot %s", candidate)
		if !available.Contains(candidate) {
			continue
		}
		return &Resolution{
			BaseURLChroot: Template(guess),
			Selector:      guess,
			Arch:          arch,
		}, nil
	}

	return nil, &models.ChrootNotFoundError{
		Chroot:    nameVersion + "-" + arch,
		Available: available.Sorted(),
	}
}

// resolveExplicit does not substitute $releasever/$basearch: the user may
// have asked for a different distribution or a cross-arch chroot on purpose.
func resolveExplicit(available Set, explicit string) (*Resolution, error) {
	if !available.Contains(explicit) {
		return nil, &models.ChrootNotFoundError{
			Chroot:    explicit,
			Available: available.Sorted(),
		}
	}

	cut := strings.LastIndex(explicit, "-")
	if cut < 0 {
		return nil, &models.ChrootNotFoundError{
			Chroot:    explicit,
			Available: available.Sorted(),
		}
	}

	return &Resolution{
		BaseURLChroot: explicit,
		Selector:      explicit[:cut],
		Arch:          explicit[cut+1:],
		Explicit:      true,
	}, nil
}

// Template maps a matched name-version to the baseurl chroot template of
// its distribution family.
func Template(nameVersion string) string {
	switch {
	case nameVersion == "fedora-eln":
		return "fedora-eln-$basearch"
	case strings.HasPrefix(nameVersion, "fedora-"):
		return "fedora-$releasever-$basearch"
	case strings.HasPrefix(nameVersion, "opensuse-leap-"):
		return "opensuse-leap-$releasever-$basearch"
	case strings.HasPrefix(nameVersion, "mageia"):
		if strings.HasSuffix(nameVersion, "cauldron") {
			return "mageia-cauldron-$basearch"
		}
		return "mageia-$releasever-$basearch"
	default:
		return nameVersion + "-$basearch"
	}
}
