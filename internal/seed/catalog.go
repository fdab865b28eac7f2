package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"log"

	"mindbridge/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed resources.yaml
var resourceCatalogYAML []byte

type catalogResource struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Type        string `yaml:"type"`
	Category    string `yaml:"category"`
	URL         string `yaml:"url"`
	Thumbnail   string `yaml:"thumbnail"`
	Duration    int    `yaml:"duration"`
	Author      string `yaml:"author"`
	Source      string `yaml:"source"`
	IsFree      bool   `yaml:"is_free"`
	IsFeatured  bool   `yaml:"is_featured"`
}

type resourceCatalog struct {
	Resources []catalogResource `yaml:"resources"`
}

// LoadResourceCatalog parses the embedded starter catalog.
func LoadResourceCatalog() ([]*models.Resource, error) {
	var catalog resourceCatalog
	if err := yaml.Unmarshal(resourceCatalogYAML, &catalog); err != nil {
		return nil, fmt.Errorf("parse resource catalog: %w", err)
	}

	resources := make([]*models.Resource, 0, len(catalog.Resources))
	for _, cr := range catalog.Resources {
		r := &models.Resource{
			Title:       cr.Title,
			Description: cr.Description,
			Type:        models.ResourceType(cr.Type),
			Category:    models.ResourceCategory(cr.Category),
			URL:         cr.URL,
			Thumbnail:   cr.Thumbnail,
			Duration:    cr.Duration,
			Author:      cr.Author,
			Source:      cr.Source,
			IsFree:      cr.IsFree,
			IsFeatured:  cr.IsFeatured,
			IsActive:    true,
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", cr.Title, err)
		}
		resources = append(resources, r)
	}
	return resources, nil
}

// SeedResourceCatalog inserts the starter catalog, skipping entries whose URL
// already exists so it is safe to run on every boot.
func SeedResourceCatalog(db *gorm.DB) (int, error) {
	resources, err := LoadResourceCatalog()
	if err != nil {
		return 0, err
	}

	created := 0
	for _, r := range resources {
		var existing models.Resource
		err := db.Where("url = ?", r.URL).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}
		if err := db.Create(r).Error; err != nil {
			return created, fmt.Errorf("create resource %q: %w", r.Title, err)
		}
		created++
	}

	if created > 0 {
		log.Printf("✓ %d catalog resources created", created)
	}
	return created, nil
}
