package linguachain

// Version information for linguachain.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/linguachain.GitCommit=$(git rev-parse HEAD)"
const (
	// Name is the application name.
	Name = "linguachain"

	// Description is a short description of the application.
	Description = "Fallback translation across free providers with romanized pronunciation"

	// Version is the semantic version of the application.
	Version = "0.1.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/linguachain"

	// License is the software license.
	License = "MIT"
)

// BuildInfo contains build-time information.
// These are typically set via ldflags during build.
var (
	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// FullVersion returns the version string with optional build info.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent is sent on every provider request that does not set its own.
func UserAgent() string {
	return Name + "/" + Version + " (+" + Repository + ")"
}
