package chatflow_test

import (
	"testing"

	"pawlink/backend/internal/chatflow"

	"github.com/stretchr/testify/assert"
)

func TestParseTargetFromNotes(t *testing.T) {
	tests := []struct {
		name   string
		notes  string
		wantID uint
		wantOK bool
	}{
		{"simple", "Target user ID: 77", 77, true},
		{"no space", "Target user ID:77", 77, true},
		{"embedded", "Called at 14:00, owner confirmed.\nTarget user ID: 12\nClosing.", 12, true},
		{"last one wins", "Target user ID: 5\ncorrection after re-check\nTarget user ID: 6", 6, true},
		{"zero rejected", "Target user ID: 0", 0, false},
		{"overflow rejected", "Target user ID: 99999999999999999999", 0, false},
		{"case sensitive", "target user id: 77", 0, false},
		{"absent", "owner unreachable, keep pending", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := chatflow.ParseTargetFromNotes(tt.notes)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
