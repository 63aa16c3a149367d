package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"support-chatbot-be/internal/config"
	"support-chatbot-be/internal/model"
	"support-chatbot-be/internal/pkg/logger"
	"support-chatbot-be/internal/repository/contract"
	"support-chatbot-be/internal/repository/filestore"
	"support-chatbot-be/internal/repository/relational"
	"support-chatbot-be/internal/repository/replicated"
	"support-chatbot-be/internal/repository/unitofwork"
	"support-chatbot-be/pkg/llm/factory"
	"support-chatbot-be/pkg/rag/lexicon"
	"support-chatbot-be/pkg/rag/response"
	"support-chatbot-be/pkg/rag/retrieval"
	"support-chatbot-be/pkg/search"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// LoadLexicon returns the built-in tables unless LEXICON_PATH points at a file.
func LoadLexicon(cfg *config.Config) (*lexicon.Lexicon, error) {
	if cfg.Retrieval.LexiconPath == "" {
		return lexicon.Default(), nil
	}
	lex, err := lexicon.Load(cfg.Retrieval.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("load lexicon %s: %w", cfg.Retrieval.LexiconPath, err)
	}
	return lex, nil
}

// NewSearchBackend builds the Azure client, wrapped in a hit cache when a TTL is set.
// Redis is used when reachable, the in-process cache otherwise.
func NewSearchBackend(cfg *config.Config) search.Backend {
	var backend search.Backend = search.NewAzureClient(
		cfg.Search.Endpoint,
		cfg.Search.APIKey,
		cfg.Search.APIVersion,
		map[search.Collection]string{
			search.Products: cfg.Search.ProductIdx,
			search.Policies: cfg.Search.PolicyIdx,
		},
	)
	if cfg.Search.CacheTTL <= 0 {
		return backend
	}

	if rdb := connectRedis(cfg.App.RedisURL); rdb != nil {
		log.Printf("[INFO] Search cache: redis (ttl %s)", cfg.Search.CacheTTL)
		return search.NewCachedBackend(backend, search.NewRedisCache(rdb, cfg.Search.CachePrefix), cfg.Search.CacheTTL)
	}
	log.Printf("[INFO] Search cache: in-process (ttl %s)", cfg.Search.CacheTTL)
	return search.NewCachedBackend(backend, search.NewMemoryCache(cfg.Search.CacheTTL), cfg.Search.CacheTTL)
}

func connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func NewRetriever(cfg *config.Config, lex *lexicon.Lexicon, sysLogger logger.ILogger) *retrieval.Pipeline {
	return retrieval.New(NewSearchBackend(cfg), lex, sysLogger, retrieval.WithTimeout(cfg.Search.Timeout))
}

func NewGenerator(cfg *config.Config, lex *lexicon.Lexicon, sysLogger logger.ILogger) (*response.Generator, error) {
	provider, err := factory.NewLLMProvider(factory.Settings{
		Provider:        cfg.Completion.Provider,
		Model:           cfg.Completion.Model,
		AzureEndpoint:   cfg.Completion.AzureEndpoint,
		AzureAPIVersion: cfg.Completion.AzureAPIVersion,
		AzureAPIKey:     cfg.Completion.AzureAPIKey,
		OpenAIAPIKey:    cfg.Completion.OpenAIAPIKey,
		OpenAIBaseURL:   cfg.Completion.OpenAIBaseURL,
		OllamaBaseURL:   cfg.Completion.OllamaBaseURL,
	})
	if err != nil {
		return nil, err
	}

	params := response.Params{
		Model:       cfg.Completion.Model,
		MaxTokens:   cfg.Completion.MaxTokens,
		Temperature: cfg.Completion.Temperature,
	}
	return response.NewGenerator(provider, params, lex.Prompt().Apology, sysLogger), nil
}

// NewSessionStore replicates over the relational backend (when db is set) and the
// per-session file backend, in that order.
func NewSessionStore(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *replicated.Store {
	var backends []contract.SessionBackend
	if db != nil {
		if err := model.AutoMigrate(db); err != nil {
			sysLogger.Error("SESSION_STORE", "Failed to migrate chat tables", map[string]interface{}{"error": err.Error()})
		}
		backends = append(backends, relational.NewSessionBackend(unitofwork.NewRepositoryFactory(db)))
	}
	backends = append(backends, filestore.NewSessionStore(cfg.Storage.SessionsDir))

	return replicated.New(sysLogger, backends)
}
