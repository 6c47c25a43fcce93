package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/wealthmate/captionrag/internal/domain"
)

// Config holds all configuration for CaptionRAG
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Database DatabaseConfig `mapstructure:"database"`
	Corpus   CorpusConfig   `mapstructure:"corpus"`
	RAG      RAGConfig      `mapstructure:"rag"`
	LLM      LLMConfig      `mapstructure:"llm"`
	TTS      TTSConfig      `mapstructure:"tts"`
	Chat     ChatConfig     `mapstructure:"chat"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// AdminConfig holds API authentication configuration
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// DatabaseConfig holds the transcript database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// CorpusConfig holds the caption corpus file configuration
type CorpusConfig struct {
	Path       string `mapstructure:"path"`
	Thumbnails string `mapstructure:"thumbnails"`
}

// RAGConfig holds vector store and retrieval configuration
type RAGConfig struct {
	DBPath        string `mapstructure:"db_path"`
	IndexType     string `mapstructure:"index_type"`
	Collection    string `mapstructure:"collection"`
	ChunkSize     int    `mapstructure:"chunk_size"`
	ChunkOverlap  int    `mapstructure:"chunk_overlap"`
	TopK          int    `mapstructure:"top_k"`
	MaxSources    int    `mapstructure:"max_sources"`
	HistoryWindow int    `mapstructure:"history_window"`
}

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	Provider       string `mapstructure:"provider"`
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	LLMModel       string `mapstructure:"llm_model"`
}

// TTSConfig holds text-to-speech configuration
type TTSConfig struct {
	Model string `mapstructure:"model"`
	Voice string `mapstructure:"voice"`
}

// ChatConfig holds conversational pipeline configuration
type ChatConfig struct {
	// Rewriter selects the follow-up rewriting strategy: "rule" or "model".
	Rewriter string `mapstructure:"rewriter"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("CAPTIONRAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks settings that must be fatal at startup.
func (c *Config) Validate() error {
	if c.LLM.Provider == "openai" && c.LLM.APIKey == "" {
		return domain.ErrMissingAPIKey
	}
	if c.RAG.TopK <= 0 {
		return fmt.Errorf("rag.top_k must be positive, got %d", c.RAG.TopK)
	}
	if c.RAG.MaxSources <= 0 {
		return fmt.Errorf("rag.max_sources must be positive, got %d", c.RAG.MaxSources)
	}
	switch c.Chat.Rewriter {
	case "rule", "model":
	default:
		return fmt.Errorf("chat.rewriter must be \"rule\" or \"model\", got %q", c.Chat.Rewriter)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("admin.api_key", "")

	v.SetDefault("database.path", "./data/captionrag.db")

	v.SetDefault("corpus.path", "./data/playlist_captions.json")
	v.SetDefault("corpus.thumbnails", "./data/thumbnails")

	v.SetDefault("rag.db_path", "./data/rag.db")
	v.SetDefault("rag.index_type", "hnsw")
	v.SetDefault("rag.collection", "youtube_captions")
	v.SetDefault("rag.chunk_size", 800)
	v.SetDefault("rag.chunk_overlap", 150)
	v.SetDefault("rag.top_k", 10)
	v.SetDefault("rag.max_sources", 4)
	v.SetDefault("rag.history_window", 20)

	v.SetDefault("llm.provider", "ollama")
	v.SetDefault("llm.base_url", "http://localhost:11434/v1")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.embedding_model", "nomic-embed-text")
	v.SetDefault("llm.llm_model", "qwen2.5:7b")

	v.SetDefault("tts.model", "gpt-4o-mini-tts")
	v.SetDefault("tts.voice", "alloy")

	v.SetDefault("chat.rewriter", "rule")
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
