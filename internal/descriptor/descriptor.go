// Package descriptor models the rpmrepo document a Copr hub publishes for a
// project and fetches it.
package descriptor

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dependency types understood by the assembler. Others are skipped.
const (
	DependencyCopr        = "copr"
	DependencyExternalURL = "external_baseurl"
)

// Descriptor is the rpmrepo document of a project.
type Descriptor struct {
	Repos        OrderedMap[NameVersion] `json:"repos"`
	ResultsURL   string                  `json:"results_url"`
	Dependencies []Dependency            `json:"dependencies"`
}

// NameVersion holds the chroots of one distribution release, keyed by arch.
type NameVersion struct {
	Arch OrderedMap[ChrootDetail] `json:"arch"`
}

// ChrootDetail describes one chroot. Multilib entries are keyed by the
// secondary architecture and carry their own options.
type ChrootDetail struct {
	Opts     *Options                 `json:"opts,omitempty"`
	Multilib OrderedMap[ChrootDetail] `json:"multilib"`
}

// Dependency is an extra repository the project needs enabled.
type Dependency struct {
	Type string         `json:"type"`
	Data DependencyData `json:"data"`
	Opts *Options       `json:"opts,omitempty"`
}

// DependencyData holds the type specific fields of a dependency.
type DependencyData struct {
	// copr
	Owner       string `json:"owner"`
	ProjectName string `json:"projectname"`
	// external_baseurl
	Pattern string `json:"pattern"`
}

// Options are per repository overrides. Nil fields were not present.
type Options struct {
	Cost           *int
	Priority       *int
	ModuleHotfixes *bool
	ID             *string
	Name           *string
}

// UnmarshalJSON reads the known keys and ignores the rest. Hubs send
// cost and priority either as numbers or as numeric strings.
func (o *Options) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		var err error
		switch key {
		case "cost":
			o.Cost, err = parseInt(value)
		case "priority":
			o.Priority, err = parseInt(value)
		case "module_hotfixes":
			o.ModuleHotfixes, err = parseBool(value)
		case "id":
			o.ID, err = parseString(value)
		case "name":
			o.Name, err = parseString(value)
		}
		if err != nil {
			return fmt.Errorf("opts.%s: %w", key, err)
		}
	}
	return nil
}

// Parse decodes and validates a descriptor.
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Descriptor) validate() error {
	if d.ResultsURL == "" {
		return fmt.Errorf("descriptor has no results_url")
	}
	seen := make(map[string]int)
	for i, dep := range d.Dependencies {
		switch dep.Type {
		case DependencyCopr:
			if dep.Data.Owner == "" || dep.Data.ProjectName == "" {
				return fmt.Errorf("dependency %d: copr dependency needs owner and projectname", i)
			}
		case DependencyExternalURL:
			if dep.Data.Pattern == "" {
				return fmt.Errorf("dependency %d: external_baseurl dependency needs a pattern", i)
			}
		default:
			continue
		}

		// the id becomes the section name of the repository
		if dep.Opts == nil || dep.Opts.ID == nil || *dep.Opts.ID == "" {
			return fmt.Errorf("dependency %d: %s dependency has no opts.id", i, dep.Type)
		}
		if j, ok := seen[*dep.Opts.ID]; ok {
			return fmt.Errorf("dependency %d: id %s already used by dependency %d", i, *dep.Opts.ID, j)
		}
		seen[*dep.Opts.ID] = i
	}
	return nil
}

// AvailableChroots lists every name-version and arch pair as "nv-arch".
func (d *Descriptor) AvailableChroots() []string {
	var chroots []string
	for _, nameVersion := range d.Repos.Keys() {
		nv, _ := d.Repos.Get(nameVersion)
		for _, arch := range nv.Arch.Keys() {
			chroots = append(chroots, nameVersion+"-"+arch)
		}
	}
	return chroots
}

// Chroot returns the detail of a chroot by name-version and arch.
func (d *Descriptor) Chroot(nameVersion, arch string) (ChrootDetail, bool) {
	nv, ok := d.Repos.Get(nameVersion)
	if !ok {
		return ChrootDetail{}, false
	}
	return nv.Arch.Get(arch)
}

func parseInt(raw json.RawMessage) (*int, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return atoi(n.String())
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("not an integer: %s", raw)
	}
	return atoi(strings.TrimSpace(s))
}

// atoi accepts integers and integral floats such as 10.0 or 1e3.
func atoi(s string) (*int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return &v, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	v := int(f)
	return &v, nil
}

func parseBool(raw json.RawMessage) (*bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return &b, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("not a boolean: %s", raw)
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseString(raw json.RawMessage) (*string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
