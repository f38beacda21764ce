package dto

import (
	"fmt"
	"strings"
)

// MergeStrategy decides whether a parent preset's stage runs before (post)
// or after (pre) the child's stage.
type MergeStrategy string

const (
	MergePost MergeStrategy = "post"
	MergePre  MergeStrategy = "pre"
)

// ParseMergeStrategy accepts "", "post" and "pre". The empty string maps to MergePost.
func ParseMergeStrategy(s string) (MergeStrategy, error) {
	switch MergeStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MergePost:
		return MergePost, nil
	case MergePre:
		return MergePre, nil
	default:
		return "", fmt.Errorf("unknown merge strategy: %q", s)
	}
}
