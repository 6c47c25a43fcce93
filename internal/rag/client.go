// Package rag confines all rago API usage: embedding, chunked
// ingestion into the vector store, retrieval-only queries, and direct
// LLM generation.
package rag

import (
	"context"
	"fmt"

	ragoconfig "github.com/liliang-cn/rago/v2/pkg/config"
	ragodomain "github.com/liliang-cn/rago/v2/pkg/domain"
	"github.com/liliang-cn/rago/v2/pkg/providers"
	ragoclient "github.com/liliang-cn/rago/v2/pkg/rag"

	"github.com/wealthmate/captionrag/internal/config"
	"github.com/wealthmate/captionrag/internal/domain"
)

// Client wraps the rago RAG client and LLM provider behind the narrow
// operations the pipeline needs.
type Client struct {
	cfg       *config.Config
	ragClient *ragoclient.Client
	embedder  ragodomain.EmbedderProvider
	generator ragodomain.Generator
}

// NewClient builds the embedder, LLM provider, and RAG client from
// configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	ragoCfg := &ragoconfig.Config{
		Sqvect: ragoconfig.SqvectConfig{
			DBPath:    cfg.RAG.DBPath,
			IndexType: cfg.RAG.IndexType,
		},
		Chunker: ragoconfig.ChunkerConfig{
			ChunkSize: cfg.RAG.ChunkSize,
			Overlap:   cfg.RAG.ChunkOverlap,
		},
		Ingest: ragoconfig.IngestConfig{
			MetadataExtraction: ragoconfig.MetadataExtractionConfig{
				Enable: false,
			},
		},
	}

	factory := providers.NewFactory()

	providerCfg := &ragodomain.OpenAIProviderConfig{
		BaseURL:        cfg.LLM.BaseURL,
		APIKey:         cfg.LLM.APIKey,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		LLMModel:       cfg.LLM.LLMModel,
	}

	ctx := context.Background()

	embedder, err := factory.CreateEmbedderProvider(ctx, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	llmProvider, err := factory.CreateLLMProvider(ctx, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	ragClient, err := ragoclient.NewClient(ragoCfg, embedder, llmProvider, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create RAG client: %w", err)
	}

	return &Client{
		cfg:       cfg,
		ragClient: ragClient,
		embedder:  embedder,
		generator: llmProvider,
	}, nil
}

// IngestText chunks text and embeds it into the vector store tagged
// with the given metadata.
func (c *Client) IngestText(ctx context.Context, text, source string, metadata map[string]any) (*ragodomain.IngestResponse, error) {
	opts := &ragoclient.IngestOptions{
		ChunkSize: c.cfg.RAG.ChunkSize,
		Overlap:   c.cfg.RAG.ChunkOverlap,
		Metadata:  metadata,
	}
	return c.ragClient.IngestText(ctx, text, source, opts)
}

// IngestCaption embeds one caption record, tagging every chunk with
// the parent record's id, title, and url plus the collection name.
func (c *Client) IngestCaption(ctx context.Context, record domain.CaptionRecord) (int, error) {
	metadata := map[string]any{
		domain.MetadataKeyRecordID: record.ID,
		domain.MetadataKeyTitle:    record.Title,
		domain.MetadataKeyURL:      record.URL,
		"collection":               c.cfg.RAG.Collection,
	}

	resp, err := c.IngestText(ctx, record.Text, record.URL, metadata)
	if err != nil {
		return 0, err
	}
	return resp.ChunkCount, nil
}

// Retrieve performs a retrieval-only query (no generation tokens) and
// maps the scored chunks to passages with their parent record metadata.
func (c *Client) Retrieve(ctx context.Context, query string, k int) ([]domain.Passage, error) {
	opts := &ragoclient.QueryOptions{
		TopK:        k,
		Temperature: 0,
		MaxTokens:   0,
		ShowSources: true,
	}

	resp, err := c.ragClient.Query(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	passages := make([]domain.Passage, len(resp.Sources))
	for i, src := range resp.Sources {
		passages[i] = domain.Passage{
			RecordID: src.DocumentID,
			Content:  src.Content,
			Score:    src.Score,
		}
		if src.Metadata != nil {
			if title, ok := src.Metadata[domain.MetadataKeyTitle].(string); ok {
				passages[i].Title = title
			}
			if url, ok := src.Metadata[domain.MetadataKeyURL].(string); ok {
				passages[i].URL = url
			}
			if id, ok := src.Metadata[domain.MetadataKeyRecordID].(string); ok {
				passages[i].RecordID = id
			}
		}
	}

	return passages, nil
}

// Generate runs a single deterministic-leaning completion.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	opts := &ragodomain.GenerationOptions{
		Temperature: 0,
	}
	return c.generator.Generate(ctx, prompt, opts)
}

// Close releases the vector store.
func (c *Client) Close() error {
	return c.ragClient.Close()
}
