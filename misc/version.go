// Package misc keeps build time information injected by the linker.
package misc

var (
	appName = "themec"
	version = "development"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
