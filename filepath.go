package main

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

var (
	workingDir     string
	workingDirOnce sync.Once
)

func getWorkspaceDir() string {
	workingDirOnce.Do(func() {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			logFatal(err)
		}
		workingDir = filepath.Join(homeDir, ".samcount")
		stat, err := os.Stat(workingDir)
		switch {
		case err == nil:
			if !stat.IsDir() {
				logFatal(errors.New(workingDir + " is not a directory"))
			}
		case os.IsNotExist(err):
			if err = os.MkdirAll(workingDir, 0755); err != nil {
				logFatal(err)
			}
		default:
			logFatal(err)
		}
	})
	return workingDir
}

func getDatabasePath() string {
	if SamConfig.Database != "" {
		return SamConfig.Database
	}
	return filepath.Join(getWorkspaceDir(), "samcount.sqlite")
}

func getConfig() *os.File {
	workspaceDir := getWorkspaceDir()
	configPath := filepath.Join(workspaceDir, "config.yaml")
open:
	file, err := os.Open(configPath)
	if err != nil {
		if filepath.Ext(configPath) == ".yaml" && os.IsNotExist(err) {
			configPath = filepath.Join(workspaceDir, "config.yml")
			goto open
		}
		return nil
	}
	return file
}
