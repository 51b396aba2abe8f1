package models

// EnableRequest contains everything needed to enable one Copr project
type EnableRequest struct {
	// Project
	Hubspec string // hub hostname or alias from the hub configuration
	Owner   string // user name, or @group
	Dirname string // project name, optionally with a ":suffix" directory

	// Chroot is the explicit NAME-RELEASE-ARCH chroot; empty means detect.
	Chroot string

	// Local system
	NameVersion string
	Arch        string
}

// ProjectSpec returns the request's project as HUB/OWNER/PROJECT.
func (r *EnableRequest) ProjectSpec() string {
	return r.Hubspec + "/" + r.Owner + "/" + r.Dirname
}
