// ABOUTME: Standard filesystem paths for rawsh configuration
// ABOUTME: Resolves ~/.rawsh/ for global and .rawsh/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".rawsh"
	projectDirName = ".rawsh"
)

// GlobalDir returns the user-global config directory (~/.rawsh/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.rawsh/ in root).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), "config.yaml")
}
