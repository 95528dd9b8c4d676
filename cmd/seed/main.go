package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/phonestore/backend/config"
	"github.com/phonestore/backend/models"
	"github.com/phonestore/backend/observability"
	"github.com/phonestore/backend/repositories/postgres"
	"go.uber.org/zap"
)

// seedProduct is the on-disk shape of a catalog entry
type seedProduct struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
}

func main() {
	var file string
	flag.StringVar(&file, "file", "products.json", "path to the product catalog JSON file")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger, file); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger, file string) error {
	products, err := loadProducts(file)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = factory.Close() }()

	if err := factory.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	repo := factory.NewRepositories().Products
	for _, p := range products {
		if err := repo.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to insert %q: %w", p.Name, err)
		}
		logger.Info("product seeded",
			zap.String("name", p.Name),
			zap.String("brand", string(p.Brand)))
	}

	logger.Info("catalog seeded", zap.Int("count", len(products)))
	return nil
}

func loadProducts(file string) ([]*models.Product, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	var entries []seedProduct
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%s contains no products", file)
	}

	now := time.Now().UTC()
	products := make([]*models.Product, 0, len(entries))
	for i, e := range entries {
		brand := models.Brand(e.Brand)
		if !brand.Valid() {
			return nil, fmt.Errorf("entry %d: unknown brand %q", i, e.Brand)
		}
		if e.Name == "" || e.Price <= 0 {
			return nil, fmt.Errorf("entry %d: name and a positive price are required", i)
		}

		products = append(products, &models.Product{
			ID:          uuid.New(),
			Name:        e.Name,
			Brand:       brand,
			Price:       e.Price,
			Description: e.Description,
			ImageURL:    e.ImageURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return products, nil
}
