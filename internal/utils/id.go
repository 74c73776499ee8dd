package utils

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID generates a new identifier in ObjectID hex form. Both store backends
// use the same format so ids stay portable between them.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is a well-formed identifier.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// NormalizeID lowercases id so hex case never affects equality. Stored ids
// are always lowercase.
func NormalizeID(id string) string {
	return strings.ToLower(id)
}

// NormalizeIDs applies NormalizeID to every id. A nil input stays nil.
func NormalizeIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = NormalizeID(id)
	}
	return result
}

// AllValidIDs reports whether every id in ids is well-formed.
func AllValidIDs(ids []string) bool {
	for _, id := range ids {
		if !IsValidID(id) {
			return false
		}
	}
	return true
}

// UniqueIDs removes duplicate ids, keeping the first occurrence of each.
// The result is never nil.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result
}

// SameIDSet reports whether a and b contain the same ids, ignoring order and
// duplicates.
func SameIDSet(a, b []string) bool {
	left := make(map[string]struct{}, len(a))
	for _, id := range a {
		left[id] = struct{}{}
	}
	right := make(map[string]struct{}, len(b))
	for _, id := range b {
		if _, ok := left[id]; !ok {
			return false
		}
		right[id] = struct{}{}
	}
	return len(left) == len(right)
}
