package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/skulab/stockroom/internal/database"
	"github.com/skulab/stockroom/internal/models"
	"github.com/skulab/stockroom/internal/repository"
)

// Demo rows inserted by the seed command. SKUs are fixed (not generated)
// so reruns recognize rows that already exist.
var demoBrands = []struct {
	name string
	code string
}{
	{"Northwind", "NW"},
	{"Apex Goods", "APX"},
	{"Hearthside", "HSD"},
}

var demoProducts = []struct {
	name        string
	sku         string
	category    string
	subcategory string
	quantity    int
	dims        models.Dimensions
	brand       string
}{
	{"Wireless Desk Speaker", "WIRE7SPKR1", "Electronics", "Audio", 24, models.Dimensions{Length: 20, Width: 12, Height: 9, Weight: 0.8}, "Northwind"},
	{"Merino Field Jacket", "MERI4JCKT1", "Apparel", "Outerwear", 12, models.Dimensions{Length: 40, Width: 30, Height: 6, Weight: 1.1}, "Apex Goods"},
	{"Cast Iron Kettle", "CAST2KETL1", "Homeware", "Kitchen", 30, models.Dimensions{Length: 22, Width: 18, Height: 20, Weight: 2.4}, "Hearthside"},
}

// SeedCommand returns the seed command
func SeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Insert demo catalog rows for manual testing",
		Action: func(c *cli.Context) error {
			if err := database.Connect(); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			if err := database.RunMigrations(); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			return runSeed(repository.NewProductRepository(), repository.NewBrandRepository())
		},
	}
}

func runSeed(productRepo *repository.ProductRepository, brandRepo *repository.BrandRepository) error {
	brandIDs := make(map[string]int64)

	for _, b := range demoBrands {
		brand, err := models.NewBrand(b.name, b.code)
		if err != nil {
			return fmt.Errorf("invalid demo brand %q: %w", b.name, err)
		}

		err = brandRepo.CreateBrand(brand)
		switch {
		case err == nil:
			color.Green("✓ Created brand: %s", brand.Name)
		case errors.Is(err, repository.ErrDuplicateBrand):
			existing, lookupErr := brandRepo.GetBrandByName(b.name)
			if lookupErr != nil {
				return fmt.Errorf("failed to look up brand %q: %w", b.name, lookupErr)
			}
			brand = existing
			color.Green("✓ Brand exists: %s", brand.Name)
		default:
			return fmt.Errorf("failed to seed brand %q: %w", b.name, err)
		}

		brandIDs[b.name] = brand.ID
	}

	for _, p := range demoProducts {
		_, err := productRepo.GetProductBySKU(p.sku)
		if err == nil {
			color.Green("✓ Product exists: %s (%s)", p.name, p.sku)
			continue
		}
		if !errors.Is(err, repository.ErrProductNotFound) {
			return fmt.Errorf("failed to check product %q: %w", p.sku, err)
		}

		product, err := models.NewProduct(p.name, p.category, p.subcategory)
		if err != nil {
			return fmt.Errorf("invalid demo product %q: %w", p.name, err)
		}
		product.SKU = p.sku

		if err := productRepo.CreateProduct(product); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.name, err)
		}
		if err := productRepo.UpdateDimensions(product.ID, p.dims, p.quantity); err != nil {
			return fmt.Errorf("failed to seed dimensions for %q: %w", p.name, err)
		}
		if err := productRepo.UpdateStatus(product.ID, models.ProductStatusActive); err != nil {
			return fmt.Errorf("failed to activate %q: %w", p.name, err)
		}
		if id, ok := brandIDs[p.brand]; ok {
			if err := productRepo.UpdateBrand(product.ID, id); err != nil {
				return fmt.Errorf("failed to link brand for %q: %w", p.name, err)
			}
		}
		color.Green("✓ Created product: %s (%s)", p.name, p.sku)
	}

	return nil
}
