package config

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks that the configuration carries everything the given run
// mode needs. Collected problems are reported together.
func (c *Config) Validate(mode string) error {
	var problems []string

	requireStore := func() {
		switch c.Store.Driver {
		case "sqlite":
			if c.Store.Path == "" {
				problems = append(problems, "store.path is required for the sqlite driver")
			}
		case "postgres":
			if c.Store.DatabaseURL == "" {
				problems = append(problems, "store.database_url is required for the postgres driver")
			}
		default:
			problems = append(problems, "store.driver must be sqlite or postgres")
		}
	}

	switch mode {
	case "search":
		requireStore()
		if c.Search.Key == "" {
			problems = append(problems, "search.key is required")
		}
		if c.Search.CX == "" {
			problems = append(problems, "search.cx is required")
		}
		if c.Anthropic.UseLLM && c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required when anthropic.use_llm is set")
		}
	case "ingest":
		requireStore()
		if c.Anthropic.UseLLM && c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required when anthropic.use_llm is set")
		}
	case "enrich":
		requireStore()
		switch c.Enrich.Provider {
		case "anthropic":
			if c.Anthropic.Key == "" {
				problems = append(problems, "anthropic.key is required for the anthropic provider")
			}
		case "perplexity":
			if c.Perplexity.Key == "" {
				problems = append(problems, "perplexity.key is required for the perplexity provider")
			}
		default:
			problems = append(problems, "enrich.provider must be anthropic or perplexity")
		}
		if c.Enrich.Concurrency < 1 || c.Enrich.Concurrency > 32 {
			problems = append(problems, "enrich.concurrency must be between 1 and 32")
		}
	case "serve":
		requireStore()
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "store":
		requireStore()
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid for %s mode: %s", mode, strings.Join(problems, "; "))
	}
	return nil
}
