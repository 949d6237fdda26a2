package locale

import "sort"

// DiffResult represents the difference between two versions of a table.
// Every slice holds keys in sorted order.
type DiffResult struct {
	// Added contains keys that are new (not in the previous version).
	Added []string

	// Removed contains keys that are gone from the new version.
	Removed []string

	// Changed contains keys present in both versions with different text.
	Changed []string

	// Unchanged contains keys with identical text in both versions.
	Unchanged []string
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int
	Removed   int
	Changed   int
	Unchanged int
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Changed:   len(d.Changed),
		Unchanged: len(d.Unchanged),
	}
}

// HasChanges returns true if there are any differences.
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0
}

// NeedsTranslation returns the added and changed keys, sorted.
func (d *DiffResult) NeedsTranslation() []string {
	keys := make([]string, 0, len(d.Added)+len(d.Changed))
	keys = append(keys, d.Added...)
	keys = append(keys, d.Changed...)
	sort.Strings(keys)
	return keys
}

// Diff compares two versions of a table.
func Diff(oldEntries, newEntries map[string]string) *DiffResult {
	result := &DiffResult{}

	for k, oldText := range oldEntries {
		newText, exists := newEntries[k]
		switch {
		case !exists:
			result.Removed = append(result.Removed, k)
		case newText != oldText:
			result.Changed = append(result.Changed, k)
		default:
			result.Unchanged = append(result.Unchanged, k)
		}
	}

	for k := range newEntries {
		if _, exists := oldEntries[k]; !exists {
			result.Added = append(result.Added, k)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Strings(result.Changed)
	sort.Strings(result.Unchanged)

	return result
}
