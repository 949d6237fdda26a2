package chattr

import "testing"

func TestFullVersion(t *testing.T) {
	orig := GitCommit
	defer func() { GitCommit = orig }()

	GitCommit = "unknown"
	if FullVersion() != Version {
		t.Errorf("FullVersion() = %q, want %q", FullVersion(), Version)
	}

	GitCommit = "0123456789abcdef"
	if FullVersion() != Version+"+0123456" {
		t.Errorf("FullVersion() = %q", FullVersion())
	}
}
