package models

// EnvironmentConfig contains the resolved local settings used to match a
// project's chroots.
type EnvironmentConfig struct {
	Distribution   string
	ReleaseVersion string
	Arch           string
	NameVersion    string // distribution-releasever
	HubHostname    string
}

// SetOnce assigns value to *field only when the field is still empty.
// It reports whether the assignment happened.
func SetOnce(field *string, value string) bool {
	if *field != "" || value == "" {
		return false
	}
	*field = value
	return true
}
