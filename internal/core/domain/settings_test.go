package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() Settings {
	s := DefaultSettings()
	s.VaultPath = "/tmp/vault"
	return s
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, DefaultQdrantURL, s.QdrantURL)
	assert.Equal(t, DefaultCollection, s.Collection)
	assert.Equal(t, DefaultVectorSize, s.VectorSize)
	assert.Equal(t, DefaultStoreBatchSize, s.StoreBatchSize)
	assert.Equal(t, DefaultEmbedBatchSize, s.EmbedBatchSize)
	assert.Equal(t, DefaultIDField, s.IDField)
	assert.Empty(t, s.VaultPath, "vault path has no default")
	assert.Empty(t, s.EmbeddingAPIKey, "credentials have no default")
}

func TestSettings_DebounceDelay(t *testing.T) {
	s := Settings{DebounceDelayMS: 3000}
	assert.Equal(t, 3*time.Second, s.DebounceDelay())
}

func TestSettings_Validate(t *testing.T) {
	t.Run("defaults with vault path are valid", func(t *testing.T) {
		require.NoError(t, validSettings().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"missing vault path", func(s *Settings) { s.VaultPath = "" }},
		{"missing qdrant url", func(s *Settings) { s.QdrantURL = "" }},
		{"missing collection", func(s *Settings) { s.Collection = "" }},
		{"zero vector size", func(s *Settings) { s.VectorSize = 0 }},
		{"zero store batch size", func(s *Settings) { s.StoreBatchSize = 0 }},
		{"zero embed batch size", func(s *Settings) { s.EmbedBatchSize = 0 }},
		{"zero chunk size", func(s *Settings) { s.ChunkSize = 0 }},
		{"negative overlap", func(s *Settings) { s.ChunkOverlap = -1 }},
		{"overlap not below chunk size", func(s *Settings) { s.ChunkOverlap = s.ChunkSize }},
		{"negative debounce", func(s *Settings) { s.DebounceDelayMS = -1 }},
		{"missing id field", func(s *Settings) { s.IDField = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)

			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
