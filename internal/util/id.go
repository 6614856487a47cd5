// Package util provides shared utility functions.
package util

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultShortIDLength is the number of characters shown for an ID in lists.
	DefaultShortIDLength = 8
	// MaxAmbiguousCandidates is the max number of candidates to show in ambiguous error.
	MaxAmbiguousCandidates = 5
)

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// ShortID returns the first n characters of id.
// If n is 0 or negative, DefaultShortIDLength (8) is used.
//
//	ShortID("3f2a9c1e-77b0-4a51-9d0e-6c1b2f3e4d5a", 0) → "3f2a9c1e"
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// IDPrefixResolver finds task IDs by prefix. Implemented by task.Store.
type IDPrefixResolver interface {
	FindTaskIDsByPrefix(ctx context.Context, prefix string) ([]string, error)
}

// SubtaskPrefixResolver finds subtask IDs of one task by prefix.
type SubtaskPrefixResolver interface {
	FindSubtaskIDsByPrefix(ctx context.Context, taskID, prefix string) ([]string, error)
}

// ResolveTaskID resolves a task ID or prefix to a full task ID.
//
// Resolution rules:
//  1. If idOrPrefix matches exactly one task ID prefix, return that ID.
//  2. If one candidate equals idOrPrefix exactly, it wins over longer matches.
//  3. If multiple matches, return ErrAmbiguousID with candidates.
//  4. If no matches, return ErrNotFound.
func ResolveTaskID(ctx context.Context, resolver IDPrefixResolver, idOrPrefix string) (string, error) {
	prefix := normalize(idOrPrefix)
	if prefix == "" {
		return "", fmt.Errorf("task ID: %w", ErrNotFound)
	}

	candidates, err := resolver.FindTaskIDsByPrefix(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("find task IDs: %w", err)
	}

	return resolveFromCandidates(prefix, candidates, "task")
}

// ResolveSubtaskID resolves a subtask ID or prefix within one task.
func ResolveSubtaskID(ctx context.Context, resolver SubtaskPrefixResolver, taskID, idOrPrefix string) (string, error) {
	prefix := normalize(idOrPrefix)
	if prefix == "" {
		return "", fmt.Errorf("subtask ID: %w", ErrNotFound)
	}

	candidates, err := resolver.FindSubtaskIDsByPrefix(ctx, taskID, prefix)
	if err != nil {
		return "", fmt.Errorf("find subtask IDs: %w", err)
	}

	return resolveFromCandidates(prefix, candidates, "subtask")
}

func normalize(idOrPrefix string) string {
	return strings.ToLower(strings.TrimSpace(idOrPrefix))
}

// resolveFromCandidates handles the common resolution logic.
func resolveFromCandidates(prefix string, candidates []string, entityType string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%s with prefix %q: %w", entityType, prefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		for _, c := range candidates {
			if c == prefix {
				return c, nil
			}
		}
		shown := candidates
		if len(shown) > MaxAmbiguousCandidates {
			shown = shown[:MaxAmbiguousCandidates]
		}
		return "", fmt.Errorf("%w: prefix %q matches %d %ss: %v",
			ErrAmbiguousID, prefix, len(candidates), entityType, shown)
	}
}
