// Package repo builds the dnf repositories that make up an enabled Copr
// project and writes them as a .repo file.
package repo

import (
	"fmt"
	"strings"

	"github.com/ralt/coprctl/internal/descriptor"
)

// DefaultPriority is dnf's default repository priority. It is never written.
const DefaultPriority = 99

// Part is one dnf repository of a project: the main one, a multilib one, or
// a dependency.
type Part struct {
	ID             string
	Enabled        bool
	BaseURL        string
	Name           string
	GPGKeyURL      string // empty disables gpgcheck
	Priority       int
	Cost           int
	ModuleHotfixes bool
}

// NewPart creates an enabled part with default priority and cost.
func NewPart(id, name, baseURL, gpgKeyURL string) *Part {
	return &Part{
		ID:        id,
		Enabled:   true,
		BaseURL:   baseURL,
		Name:      name,
		GPGKeyURL: gpgKeyURL,
		Priority:  DefaultPriority,
	}
}

// NewLocalPart creates a part from a repository already configured on the
// system. Only the id and enabled state are known; it is never rendered.
func NewLocalPart(id string, enabled bool) *Part {
	return &Part{
		ID:       id,
		Enabled:  enabled,
		Priority: DefaultPriority,
	}
}

// NewCoprDependencyPart creates the part of a dependency on another Copr
// project of the same hub.
func NewCoprDependencyPart(dep descriptor.Dependency, resultsURL, chroot string) *Part {
	owner := dep.Data.Owner
	project := dep.Data.ProjectName

	p := NewPart("", "", coprBaseURL(resultsURL, owner, project, chroot), coprGPGKeyURL(resultsURL, owner, project))
	p.ApplyOptions(dep.Opts)
	return p
}

// NewExternalDependencyPart creates the part of a dependency on a repository
// outside Copr. The $chroot placeholder of its pattern is replaced by chroot.
func NewExternalDependencyPart(dep descriptor.Dependency, chroot string) *Part {
	p := NewPart("", "", strings.Replace(dep.Data.Pattern, "$chroot", chroot, 1), "")
	p.ApplyOptions(dep.Opts)
	return p
}

// ApplyOptions overrides the fields present in opts. It may be called
// several times; the last call wins per field.
func (p *Part) ApplyOptions(opts *descriptor.Options) {
	if opts == nil {
		return
	}
	if opts.Cost != nil {
		p.Cost = *opts.Cost
	}
	if opts.Priority != nil {
		p.Priority = *opts.Priority
	}
	if opts.ModuleHotfixes != nil {
		p.ModuleHotfixes = *opts.ModuleHotfixes
	}
	if opts.ID != nil {
		p.ID = *opts.ID
	}
	if opts.Name != nil {
		p.Name = *opts.Name
	}
}

// Render returns the part's .repo stanza. The key order is fixed; default
// priority, zero cost and disabled module_hotfixes are left out.
func (p *Part) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s]\n", p.ID)
	fmt.Fprintf(&b, "name=%s\n", p.Name)
	fmt.Fprintf(&b, "baseurl=%s\n", p.BaseURL)
	b.WriteString("type=rpm-md\n")
	b.WriteString("skip_if_unavailable=True\n")
	if p.GPGKeyURL != "" {
		b.WriteString("gpgcheck=1\n")
		fmt.Fprintf(&b, "gpgkey=%s\n", p.GPGKeyURL)
	} else {
		b.WriteString("gpgcheck=0\n")
	}
	b.WriteString("repo_gpgcheck=0\n")
	if p.Cost != 0 {
		fmt.Fprintf(&b, "cost=%d\n", p.Cost)
	}
	b.WriteString("enabled=1\n")
	b.WriteString("enabled_metadata=1\n")
	if p.Priority != DefaultPriority {
		fmt.Fprintf(&b, "priority=%d\n", p.Priority)
	}
	if p.ModuleHotfixes {
		b.WriteString("module_hotfixes=1\n")
	}

	return b.String()
}

func coprBaseURL(resultsURL, owner, dirname, chroot string) string {
	return resultsURL + "/" + owner + "/" + dirname + "/" + chroot + "/"
}

func coprGPGKeyURL(resultsURL, owner, project string) string {
	return resultsURL + "/" + owner + "/" + project + "/pubkey.gpg"
}
