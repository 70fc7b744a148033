package config

import (
	"os/exec"
	"strings"
	"time"
)

// MetadataCollector records when and from which commit a config was written
type MetadataCollector struct {
	timestamp time.Time
	gitCommit string
}

// NewMetadataCollector stamps the current time. Outside a git checkout the
// commit is left empty.
func NewMetadataCollector() *MetadataCollector {
	gitCommit, _ := getCurrentGitCommit()
	return &MetadataCollector{
		timestamp: time.Now().UTC(),
		gitCommit: gitCommit,
	}
}

func getCurrentGitCommit() (string, error) {
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (mc *MetadataCollector) PopulateMetadata(config *Config) {
	config.Metadata.Timestamp = mc.timestamp.Format("2006-01-02 15:04:05")
	config.Metadata.GitCommit = mc.gitCommit
}
