package store

import (
	"gorm.io/gorm"

	"github.com/MellowMango/apartment-search-sub004/internal/database"
)

// GormPropertyDataSource reads property batches for the cleaning pass
type GormPropertyDataSource struct {
	db *gorm.DB
}

// NewGormPropertyDataSource creates a data source over the given database
func NewGormPropertyDataSource(db *gorm.DB) *GormPropertyDataSource {
	return &GormPropertyDataSource{db: db}
}

// FetchAll returns every property in insertion order
func (s *GormPropertyDataSource) FetchAll() ([]database.Property, error) {
	var properties []database.Property
	if err := s.db.Order("id asc").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// FetchByBroker returns the properties scraped from one broker
func (s *GormPropertyDataSource) FetchByBroker(broker string) ([]database.Property, error) {
	var properties []database.Property
	if err := s.db.Where("broker = ?", broker).Order("id asc").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// FetchByID returns a single property by UUID
func (s *GormPropertyDataSource) FetchByID(id string) (*database.Property, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	var p database.Property
	if err := s.db.Where("uuid = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
