package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort        int    `mapstructure:"APP_PORT"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	UploadDir      string `mapstructure:"UPLOAD_DIR"`
	MaxUploadBytes int64  `mapstructure:"MAX_UPLOAD_BYTES"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogFormat      string `mapstructure:"LOG_FORMAT"`

	LLMProvider         string `mapstructure:"LLM_PROVIDER"`
	OllamaURL           string `mapstructure:"OLLAMA_URL"`
	OpenAIBaseURL       string `mapstructure:"OPENAI_BASE_URL"`
	OpenAIAPIKey        string `mapstructure:"OPENAI_API_KEY"`
	ChatModel           string `mapstructure:"CHAT_MODEL"`
	EmbeddingModel      string `mapstructure:"EMBEDDING_MODEL"`
	EmbeddingDimensions int    `mapstructure:"EMBEDDING_DIMENSIONS"`
	EmbeddingMaxInput   int    `mapstructure:"EMBEDDING_MAX_INPUT"`

	VectorStore    string `mapstructure:"VECTOR_STORE"`
	ChunkSize      int    `mapstructure:"CHUNK_SIZE"`
	ChunkOverlap   int    `mapstructure:"CHUNK_OVERLAP"`
	EmbedBatchSize int    `mapstructure:"EMBED_BATCH_SIZE"`

	SearchLimit              int `mapstructure:"SEARCH_LIMIT"`
	GeneralSearchK           int `mapstructure:"GENERAL_SEARCH_K"`
	GeneralFallbackThreshold int `mapstructure:"GENERAL_FALLBACK_THRESHOLD"`
	GeneralFallbackCap       int `mapstructure:"GENERAL_FALLBACK_CAP"`

	MaxToolRounds        int    `mapstructure:"MAX_TOOL_ROUNDS"`
	WebSearchMaxResults  int    `mapstructure:"WEB_SEARCH_MAX_RESULTS"`
	GoogleAPIKey         string `mapstructure:"GOOGLE_API_KEY"`
	GoogleSearchEngineID string `mapstructure:"GOOGLE_SEARCH_ENGINE_ID"`

	LLMTimeout       time.Duration `mapstructure:"LLM_TIMEOUT"`
	EmbedTimeout     time.Duration `mapstructure:"EMBED_TIMEOUT"`
	WebSearchTimeout time.Duration `mapstructure:"WEB_SEARCH_TIMEOUT"`
}

func setDefaults() {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/docuchat.db")
	viper.SetDefault("UPLOAD_DIR", "/data/uploads")
	viper.SetDefault("MAX_UPLOAD_BYTES", 20<<20)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("LOG_FORMAT", "json")

	viper.SetDefault("LLM_PROVIDER", "openai")
	viper.SetDefault("OLLAMA_URL", "http://localhost:11434")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("CHAT_MODEL", "gpt-4o-mini")
	viper.SetDefault("EMBEDDING_MODEL", "text-embedding-3-small")
	viper.SetDefault("EMBEDDING_DIMENSIONS", 0)
	viper.SetDefault("EMBEDDING_MAX_INPUT", 8000)

	viper.SetDefault("VECTOR_STORE", "sqlite")
	viper.SetDefault("CHUNK_SIZE", 1000)
	viper.SetDefault("CHUNK_OVERLAP", 200)
	viper.SetDefault("EMBED_BATCH_SIZE", 5)

	viper.SetDefault("SEARCH_LIMIT", 5)
	viper.SetDefault("GENERAL_SEARCH_K", 25)
	viper.SetDefault("GENERAL_FALLBACK_THRESHOLD", 10)
	viper.SetDefault("GENERAL_FALLBACK_CAP", 50)

	viper.SetDefault("MAX_TOOL_ROUNDS", 5)
	viper.SetDefault("WEB_SEARCH_MAX_RESULTS", 5)
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("GOOGLE_SEARCH_ENGINE_ID", "")

	viper.SetDefault("LLM_TIMEOUT", "120s")
	viper.SetDefault("EMBED_TIMEOUT", "30s")
	viper.SetDefault("WEB_SEARCH_TIMEOUT", "15s")
}

func LoadConfig() (*Config, error) {
	setDefaults()

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {

			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
