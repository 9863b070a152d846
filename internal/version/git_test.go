package version

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		describe string
		tag      string
		commits  int
		commit   string
		dirty    bool
	}{
		{"v1.2.3", "v1.2.3", 0, "", false},
		{"v1.2.3-dirty", "v1.2.3", 0, "", true},
		{"v1.2.3-4-g1a2b3c4", "v1.2.3", 4, "1a2b3c4", false},
		{"v1.2.3-4-g1a2b3c4-dirty", "v1.2.3", 4, "1a2b3c4", true},
		{"release-2024-10-gabcdef0", "release-2024", 10, "abcdef0", false},
		{"1a2b3c4", "", 0, "1a2b3c4", false},
		{"1a2b3c4-dirty", "", 0, "1a2b3c4", true},
	}

	for _, tt := range tests {
		t.Run(tt.describe, func(t *testing.T) {
			v := Parse(tt.describe)
			if v.String() != tt.describe {
				t.Errorf("String() = %q, want %q", v.String(), tt.describe)
			}
			if v.Tag != tt.tag {
				t.Errorf("Tag = %q, want %q", v.Tag, tt.tag)
			}
			if v.Commits != tt.commits {
				t.Errorf("Commits = %d, want %d", v.Commits, tt.commits)
			}
			if v.Commit != tt.commit {
				t.Errorf("Commit = %q, want %q", v.Commit, tt.commit)
			}
			if v.IsDirty != tt.dirty {
				t.Errorf("IsDirty = %v, want %v", v.IsDirty, tt.dirty)
			}
		})
	}
}

func TestFromGitOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	_, err := FromGit(context.Background(), t.TempDir())
	if !errors.Is(err, ErrNotRepository) {
		t.Errorf("FromGit error = %v, want %v", err, ErrNotRepository)
	}
}
