// Package buildinfo exposes what binary is running and since when
package buildinfo

import "time"

// Set via -ldflags "-X github.com/Sguobi-git/Orders-App/internal/buildinfo.CommitHash=..."
var (
	BuildTime  string
	CommitHash string
	Version    = "dev"
)

// StartTime is recorded when the process starts
var StartTime = time.Now().UTC()

// Info is the build report served by the health endpoint
type Info struct {
	Version    string `json:"version"`
	BuildTime  string `json:"buildTime,omitempty"`
	CommitHash string `json:"commitHash,omitempty"`
	StartTime  string `json:"startTime"`
	Uptime     string `json:"uptime"`
}

// Current reports the build of this process at now
func Current(now time.Time) Info {
	return Info{
		Version:    Version,
		BuildTime:  BuildTime,
		CommitHash: CommitHash,
		StartTime:  StartTime.Format(time.RFC3339),
		Uptime:     now.Sub(StartTime).Truncate(time.Second).String(),
	}
}
