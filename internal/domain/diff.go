package domain

import "strings"

// FileChange holds the added lines of one file in a staged diff, in diff
// order.
type FileChange struct {
	Path  string
	Added []string
}

// ScanDiff extracts per-file added lines from unified diff text. File order
// follows first appearance in the diff so downstream results are
// deterministic. Removed lines and file markers are skipped; blank added
// lines are ignored.
func ScanDiff(diffText string) []FileChange {
	var (
		files   []FileChange
		current = -1
	)

	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			fields := strings.Fields(line)
			path := strings.TrimPrefix(fields[len(fields)-1], "b/")
			current = indexOfFile(files, path)
			if current < 0 {
				files = append(files, FileChange{Path: path})
				current = len(files) - 1
			}
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// file markers, not content
		case strings.HasPrefix(line, "+"):
			if current < 0 {
				continue
			}
			added := strings.TrimSpace(line[1:])
			if added != "" {
				files[current].Added = append(files[current].Added, added)
			}
		}
	}

	return files
}

func indexOfFile(files []FileChange, path string) int {
	for i, f := range files {
		if f.Path == path {
			return i
		}
	}
	return -1
}
