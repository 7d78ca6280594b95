package models_test

import (
	"reflect"
	"testing"

	"pawlink/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

// TestChatRequestTerminal verifies which statuses close the state machine.
func TestChatRequestTerminal(t *testing.T) {
	tests := []struct {
		status   string
		terminal bool
	}{
		{models.StatusPending, false},
		{models.StatusAdminVerifying, false},
		{models.StatusAdminApproved, false},
		{models.StatusActive, true},
		{models.StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			req := &models.ChatRequest{Status: tt.status}
			assert.Equal(t, tt.terminal, req.Terminal())
		})
	}
}

func TestValidRequestType(t *testing.T) {
	assert.True(t, models.ValidRequestType(models.RequestTypeClaim))
	assert.True(t, models.ValidRequestType(models.RequestTypeAdoption))
	assert.True(t, models.ValidRequestType(models.RequestTypeGeneral))
	assert.False(t, models.ValidRequestType(""))
	assert.False(t, models.ValidRequestType("CLAIM"), "types are case sensitive")
	assert.False(t, models.ValidRequestType("ransom"))
}

// TestChatRequestStructTags verifies that struct tags are correctly defined
// (useful for catching accidental tag removal during refactoring).
func TestChatRequestStructTags(t *testing.T) {
	reqType := reflect.TypeOf(models.ChatRequest{})

	statusField, found := reqType.FieldByName("Status")
	assert.True(t, found, "Status field should exist")
	assert.Contains(t, statusField.Tag.Get("gorm"), "index", "Status is filtered in admin queues and must be indexed")

	targetField, found := reqType.FieldByName("TargetID")
	assert.True(t, found, "TargetID field should exist")
	assert.Equal(t, reflect.Ptr, targetField.Type.Kind(), "TargetID must be nullable until verification resolves it")

	hashField, found := reflect.TypeOf(models.User{}).FieldByName("PasswordHash")
	assert.True(t, found, "PasswordHash field should exist")
	assert.Equal(t, "-", hashField.Tag.Get("json"), "PasswordHash must never serialize")
}

// TestIdentityIsAdmin verifies role checks on the actor view.
func TestIdentityIsAdmin(t *testing.T) {
	assert.True(t, models.Identity{Role: models.RoleAdmin}.IsAdmin())
	assert.False(t, models.Identity{Role: models.RoleUser}.IsAdmin())
	assert.False(t, models.Identity{}.IsAdmin())

	u := models.User{Name: "Rita", Email: "rita@example.com", Role: models.RoleAdmin}
	u.ID = 5
	id := u.Identity()
	assert.Equal(t, uint(5), id.ID)
	assert.True(t, id.IsAdmin())
}
