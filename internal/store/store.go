package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrDuplicate is returned by Add when the barcode already exists.
// The existing record is left untouched.
var ErrDuplicate = errors.New("barcode already exists")

// Product is one catalog entry, keyed by its barcode.
type Product struct {
	Barcode     string `gorm:"primaryKey" json:"barcode"`
	ProductName string `json:"product_name"`
	Brand       string `json:"brand"`
	Allergies   string `gorm:"default:none" json:"allergies"`
}

// TableName keeps the historical table name used by existing databases.
func (Product) TableName() string { return "barcodes" }

// Catalog is the durable barcode-to-product mapping. Every operation is
// an independent database round trip; there is no in-memory cache, so a
// lookup always sees the latest HTTP-facade writes.
type Catalog struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the SQLite catalog at path and
// ensures the schema exists. Use ":memory:" for an ephemeral catalog.
func Open(path string) (*Catalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if err := db.AutoMigrate(&Product{}); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Add inserts a new product. Empty allergies are stored as the literal
// "none". Adding an existing barcode fails with ErrDuplicate and does
// not modify the stored record.
func (c *Catalog) Add(p Product) (Product, error) {
	if p.Allergies == "" {
		p.Allergies = "none"
	}
	if err := c.db.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Product{}, fmt.Errorf("barcode %q: %w", p.Barcode, ErrDuplicate)
		}
		return Product{}, fmt.Errorf("failed to add barcode %q: %w", p.Barcode, err)
	}
	return p, nil
}

// Get looks a barcode up by exact key. A missing record is not an
// error; the second return value reports presence.
func (c *Catalog) Get(barcode string) (Product, bool, error) {
	var p Product
	err := c.db.First(&p, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, fmt.Errorf("failed to look up barcode %q: %w", barcode, err)
	}
	return p, true, nil
}

// All returns every product in the catalog, in no particular order.
func (c *Catalog) All() ([]Product, error) {
	var products []Product
	if err := c.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list barcodes: %w", err)
	}
	return products, nil
}

// Delete removes a barcode and reports whether a record was removed.
// Deleting an absent barcode is not an error.
func (c *Catalog) Delete(barcode string) (bool, error) {
	res := c.db.Delete(&Product{}, "barcode = ?", barcode)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete barcode %q: %w", barcode, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Close releases the underlying database connection.
func (c *Catalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
