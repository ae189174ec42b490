// Package version はビルド時に埋め込まれるバージョン情報を提供する。
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version はビルド時に -ldflags で設定される
	Version = "dev"
	// Commit はビルド時に設定されるGitコミットハッシュ
	Commit = "none"
	// Date はビルド時に設定されるビルド日時
	Date = "unknown"
)

// Info はバージョン情報
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Get は現在のバージョン情報を返す
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("triage version %s (commit: %s, built: %s, %s)", i.Version, i.Commit, i.Date, i.GoVersion)
}

// UserAgent は GitHub API リクエストに付ける User-Agent
func UserAgent() string {
	return "triage/" + Version
}
