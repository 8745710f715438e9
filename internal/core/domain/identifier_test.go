package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNoteID(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		field    string
		wantID   string
		wantOK   bool
	}{
		{
			name:     "string id is returned",
			metadata: map[string]any{"id": "note-abc"},
			field:    "id",
			wantID:   "note-abc",
			wantOK:   true,
		},
		{
			name:     "configured field name is honoured",
			metadata: map[string]any{"uid": "u-1", "id": "wrong"},
			field:    "uid",
			wantID:   "u-1",
			wantOK:   true,
		},
		{
			name:     "missing field is absent",
			metadata: map[string]any{"title": "hello"},
			field:    "id",
			wantOK:   false,
		},
		{
			name:     "nil metadata is absent",
			metadata: nil,
			field:    "id",
			wantOK:   false,
		},
		{
			name:     "empty string is absent",
			metadata: map[string]any{"id": ""},
			field:    "id",
			wantOK:   false,
		},
		{
			name:     "whitespace-only string is absent",
			metadata: map[string]any{"id": "   "},
			field:    "id",
			wantOK:   false,
		},
		{
			name:     "surrounding whitespace is trimmed",
			metadata: map[string]any{"id": "  abc  "},
			field:    "id",
			wantID:   "abc",
			wantOK:   true,
		},
		{
			name:     "integer id is stringified",
			metadata: map[string]any{"id": 20240117},
			field:    "id",
			wantID:   "20240117",
			wantOK:   true,
		},
		{
			name:     "int64 id is stringified",
			metadata: map[string]any{"id": int64(42)},
			field:    "id",
			wantID:   "42",
			wantOK:   true,
		},
		{
			name:     "float id avoids exponent notation",
			metadata: map[string]any{"id": 1.5},
			field:    "id",
			wantID:   "1.5",
			wantOK:   true,
		},
		{
			name:     "unusable type is absent",
			metadata: map[string]any{"id": []string{"a"}},
			field:    "id",
			wantOK:   false,
		},
		{
			name:     "empty field name is absent",
			metadata: map[string]any{"id": "abc"},
			field:    "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ResolveNoteID(tt.metadata, tt.field)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}
