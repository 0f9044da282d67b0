package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	if Current().Version != Version {
		t.Errorf("Current().Version = %q", Current().Version)
	}
}

func TestColored(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc.1"
	if got := Colored(false); got != "1.2.3-rc.1" {
		t.Errorf("Colored(false) = %q", got)
	}
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc.1") {
		t.Errorf("Colored(true) = %q", got)
	}

	Version = "dev"
	if got := Colored(true); got != "dev" {
		t.Errorf("non-semver = %q", got)
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"
	info := Current()
	if info.GitCommit != "abc123def456" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("Current() = %+v", info)
	}
}
