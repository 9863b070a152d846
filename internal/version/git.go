package version

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// ErrNotRepository is returned when dir is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Version describes the state of a project checkout.
type Version struct {
	Describe string
	Tag      string
	Commits  int
	Commit   string
	IsDirty  bool
}

// String returns the git describe output.
func (v *Version) String() string {
	return v.Describe
}

// Format: v1.2.3, v1.2.3-4-g1a2b3c4, or a bare hash with --always; any of them
// may end in -dirty.
var describeRe = regexp.MustCompile(`^(?:(.+)-(\d+)-g([0-9a-f]+)|(.+?))(-dirty)?$`)

// FromGit describes the checkout containing dir.
func FromGit(ctx context.Context, dir string) (*Version, error) {
	if !IsGitRepo(ctx, dir) {
		return nil, ErrNotRepository
	}

	cmd := exec.CommandContext(ctx, "git", "describe", "--tags", "--always", "--dirty")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run git describe: %w", err)
	}

	return Parse(strings.TrimSpace(string(output))), nil
}

// Parse splits git describe output into its parts.
func Parse(describe string) *Version {
	v := &Version{Describe: describe}

	m := describeRe.FindStringSubmatch(describe)
	if m == nil {
		return v
	}
	v.IsDirty = m[5] != ""
	if m[1] != "" {
		v.Tag = m[1]
		fmt.Sscanf(m[2], "%d", &v.Commits)
		v.Commit = m[3]
		return v
	}

	// A bare hash means there is no tag to describe from.
	if isHash(m[4]) {
		v.Commit = m[4]
	} else {
		v.Tag = m[4]
	}
	return v
}

func isHash(s string) bool {
	if len(s) < 7 {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return false
		}
	}
	return true
}

// IsGitRepo checks if the directory is inside a git work tree
func IsGitRepo(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir
	return cmd.Run() == nil
}
