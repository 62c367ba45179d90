package version

// EmptyValue is the version of binaries that weren't built by the release
// scripts, such as unit tests.
const EmptyValue = "set-by-make"

// Version is set at link time to the git tag of the release.
var Version = EmptyValue

// UserAgent identifies bolt-sync in requests to the API server.
func UserAgent() string {
	return "bolt-sync/" + Version
}
