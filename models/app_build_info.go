package models

import "strings"

const notAvailable = "N/A"

// AppBuildInfo is the linker-injected build metadata reported by
// `reqsync version` and GET /api/version.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// NewAppBuildInfo fills blank values with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

// String formats the info for the user-agent of outbound calls and logs.
func (a AppBuildInfo) String() string {
	return "go-req-sync/" + orNA(a.Version) + " (" + orNA(a.Commit) + ")"
}

func orNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return notAvailable
	}
	return v
}
