package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// ElasticsearchRepository implements the Repository interface using Elasticsearch
type ElasticsearchRepository struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticsearchRepository creates a new Elasticsearch repository
func NewElasticsearchRepository(config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	prefix := config.IndexPrefix
	if prefix == "" {
		prefix = "gamesvc"
	}

	return &ElasticsearchRepository{
		client: client,
		index:  prefix + "-settled-games",
	}, nil
}

// IndexSettledGame stores one settled game
func (r *ElasticsearchRepository) IndexSettledGame(ctx context.Context, game *SettledGame) error {
	body, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("error encoding settled game: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: game.ID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error indexing settled game: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("error response indexing settled game: %s: %s", res.Status(), msg)
	}

	return nil
}

// Close closes the Elasticsearch client. The underlying transport does
// not hold closable resources, so this is a no-op kept for interface
// symmetry with the other repositories.
func (r *ElasticsearchRepository) Close() error {
	return nil
}
