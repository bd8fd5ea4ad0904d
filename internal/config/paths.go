// ABOUTME: Standard filesystem locations for hooks declarations
// ABOUTME: Resolves ~/.pi-go/ for global and .pi-go/ for project-local files

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".pi-go"
	projectDirName = ".pi-go"
	hooksFileName  = "hooks.json"
	localHooksName = "hooks.local.json"
)

// GlobalDir returns the user-global config directory (~/.pi-go/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory.
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalHooksFile returns the user-global hooks file.
func GlobalHooksFile() string {
	return filepath.Join(GlobalDir(), hooksFileName)
}

// ProjectHooksFile returns the project hooks file.
func ProjectHooksFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), hooksFileName)
}

// LocalHooksFile returns the gitignored per-checkout hooks file.
func LocalHooksFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), localHooksName)
}

// ExistingHooksFiles returns, in load order (global, project, local), the
// standard hooks files that exist.
func ExistingHooksFiles(projectRoot string) []string {
	var found []string
	for _, p := range []string{GlobalHooksFile(), ProjectHooksFile(projectRoot), LocalHooksFile(projectRoot)} {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			found = append(found, p)
		}
	}
	return found
}
