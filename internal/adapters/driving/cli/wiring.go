package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/notesync-cli/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/notesync-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/notesync-cli/internal/adapters/driven/vectorstore/qdrant"
	"github.com/custodia-labs/notesync-cli/internal/chunker"
	"github.com/custodia-labs/notesync-cli/internal/connectors/vault"
	"github.com/custodia-labs/notesync-cli/internal/core/domain"
	"github.com/custodia-labs/notesync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/notesync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/notesync-cli/internal/core/services"
	"github.com/custodia-labs/notesync-cli/internal/logger"
	"github.com/custodia-labs/notesync-cli/internal/normalisers/frontmatter"
)

// vaultSource is the connector surface the sync and watch commands use.
type vaultSource interface {
	Scan(ctx context.Context, enqueue vault.EnqueueFunc) error
	Watch(ctx context.Context, enqueue vault.EnqueueFunc) error
	Close() error
}

// appStack is the fully wired sync pipeline.
type appStack struct {
	settings domain.Settings
	engine   driving.SyncEngine
	source   vaultSource
	journal  driven.SyncJournal
	closers  []func() error
}

// stackBuilder constructs the pipeline from settings. Replaced in tests.
type stackBuilder func(ctx context.Context, settings domain.Settings) (*appStack, error)

// Close releases the stack's resources in reverse construction order.
func (s *appStack) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Warn("closing resource: %v", err)
		}
	}
}

// newAppStack wires the production adapters behind the sync engine and
// ensures the vector store collection exists.
func newAppStack(ctx context.Context, settings domain.Settings) (*appStack, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	stack := &appStack{settings: settings}
	ok := false
	defer func() {
		if !ok {
			stack.Close()
		}
	}()

	embedder, err := openai.NewEmbeddingService(openai.Config{
		APIKey:    settings.EmbeddingAPIKey,
		BaseURL:   settings.EmbeddingBaseURL,
		Model:     settings.EmbeddingModel,
		BatchSize: settings.EmbedBatchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedding service: %w", err)
	}
	stack.closers = append(stack.closers, embedder.Close)

	store, err := qdrant.NewStore(qdrant.Config{
		URL:        settings.QdrantURL,
		APIKey:     settings.QdrantAPIKey,
		Collection: settings.Collection,
		VectorSize: settings.VectorSize,
		BatchSize:  settings.StoreBatchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}
	stack.closers = append(stack.closers, store.Close)

	if err := store.EnsureCollection(ctx); err != nil {
		return nil, err
	}

	dataDir := configDirFlag
	if dataDir != "" {
		dataDir = filepath.Join(dataDir, "data")
	}
	db, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening sync journal: %w", err)
	}
	stack.closers = append(stack.closers, db.Close)
	stack.journal = db.SyncJournal()

	connector := vault.New(settings.VaultPath, settings.IDField)
	stack.closers = append(stack.closers, connector.Close)
	stack.source = connector

	queue := services.NewEventQueue(settings.DebounceDelay())
	stack.engine = services.NewSyncEngine(
		queue,
		connector,
		frontmatter.Strip,
		chunker.New(
			chunker.WithChunkSize(settings.ChunkSize),
			chunker.WithOverlap(settings.ChunkOverlap),
		),
		embedder,
		store,
		stack.journal,
		settings,
	)

	ok = true
	return stack, nil
}
