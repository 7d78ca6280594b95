package chatflow

import (
	"regexp"
	"strconv"
)

// targetNotePattern matches the documented free-text fallback an admin may
// leave in the notes, e.g. "Target user ID: 77".
var targetNotePattern = regexp.MustCompile(`Target user ID:\s*(\d+)`)

// ParseTargetFromNotes extracts a target user id from accumulated admin notes.
// This is a fallback only: callers must check the structured target field
// first. When the pattern appears more than once the last occurrence wins,
// since notes accumulate chronologically.
func ParseTargetFromNotes(notes string) (uint, bool) {
	matches := targetNotePattern.FindAllStringSubmatch(notes, -1)
	if len(matches) == 0 {
		return 0, false
	}
	raw := matches[len(matches)-1][1]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
