package main

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const unsplash = "https://images.unsplash.com/"

// SeedCatalog fills an empty store with the demo catalog: six categories,
// sixteen products and five reviews on each of the first five products.
// A store that already holds products is left alone.
func SeedCatalog(ctx context.Context, store *repositories.Store, catalog *services.CatalogService, log zerolog.Logger) error {
	existing, err := catalog.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect catalog: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Int("products", len(existing)).Msg("catalog already seeded")
		return nil
	}

	for _, category := range seedCategories() {
		if err := catalog.CreateCategory(ctx, &category); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", category.Name, err)
		}
	}

	products := seedProducts()
	for i := range products {
		if err := catalog.CreateProduct(ctx, &products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
	}

	// Seed reviews carry helpful counts, which the review service never sets.
	reviewed := 0
	for _, product := range products[:5] {
		for _, sample := range seedReviews() {
			review := sample
			review.ProductID = product.ID
			if err := store.Reviews.Create(ctx, &review); err != nil {
				return fmt.Errorf("failed to seed review for %s: %w", product.Name, err)
			}
			reviewed++
		}
	}

	log.Info().
		Int("categories", len(seedCategories())).
		Int("products", len(products)).
		Int("reviews", reviewed).
		Msg("catalog seeded")
	return nil
}

func seedCategories() []models.Category {
	return []models.Category{
		{Name: "Electronics", Icon: "smartphone", Image: unsplash + "photo-1498049794561-7780e7231661?w=400&h=400&fit=crop"},
		{Name: "Fashion", Icon: "shirt", Image: unsplash + "photo-1445205170230-053b83016050?w=400&h=400&fit=crop"},
		{Name: "Home", Icon: "home", Image: unsplash + "photo-1484101403633-562f891dc89a?w=400&h=400&fit=crop"},
		{Name: "Beauty", Icon: "sparkles", Image: unsplash + "photo-1596462502278-27bfdc403348?w=400&h=400&fit=crop"},
		{Name: "Books", Icon: "book", Image: unsplash + "photo-1495446815901-a7297e633e8d?w=400&h=400&fit=crop"},
		{Name: "Sports", Icon: "dumbbell", Image: unsplash + "photo-1461896836934-ffe607ba8211?w=400&h=400&fit=crop"},
	}
}

// product builds a seed product; photos are Unsplash ids.
func product(name, description, price, original string, discount int, category, rating string, reviews int, brand string, specs []string, photos ...string) models.Product {
	images := make([]string, len(photos))
	for i, photo := range photos {
		images[i] = unsplash + photo + "?w=500&h=500&fit=crop"
	}
	return models.Product{
		Name:           name,
		Description:    description,
		Price:          models.MustMoney(price),
		OriginalPrice:  models.MoneyPtr(original),
		Discount:       discount,
		Image:          images[0],
		Images:         images,
		Category:       category,
		Rating:         decimal.RequireFromString(rating),
		ReviewCount:    reviews,
		InStock:        true,
		Brand:          brand,
		Specifications: specs,
	}
}

func seedProducts() []models.Product {
	return []models.Product{
		product("Wireless Noise Cancelling Headphones",
			"Premium over-ear headphones with active noise cancellation, 30-hour battery life, and superior sound quality. Perfect for travel and daily commute.",
			"199.99", "299.99", 33, "Electronics", "4.5", 1248, "AudioTech",
			[]string{"Battery: 30 hours", "Weight: 250g", "Bluetooth 5.0", "Active Noise Cancellation"},
			"photo-1505740420928-5e560c06d30e", "photo-1484704849700-f032a568e944"),
		product("4K Ultra HD Smart TV 55 inch",
			"Experience stunning 4K resolution with HDR support, built-in streaming apps, and voice control. Transform your living room into a cinema.",
			"549.99", "799.99", 31, "Electronics", "4.7", 892, "VisionMax",
			[]string{"Screen: 55 inches", "Resolution: 4K UHD", "HDR10+", "Smart TV Features"},
			"photo-1593359677879-a4bb92f829d1"),
		product("Smartphone 128GB - Latest Model",
			"Flagship smartphone with triple camera system, 6.7-inch OLED display, 5G connectivity, and all-day battery life.",
			"899.99", "1099.99", 18, "Electronics", "4.6", 2341, "TechPhone",
			[]string{"Storage: 128GB", "RAM: 8GB", "Display: 6.7-inch OLED", "5G Enabled"},
			"photo-1511707171634-5f897ff02aa9", "photo-1592286927505-c5b2e3daa40e"),
		product("Wireless Bluetooth Speaker",
			"Portable waterproof speaker with 360-degree sound, 12-hour battery, and deep bass. Perfect for outdoor adventures.",
			"79.99", "129.99", 38, "Electronics", "4.4", 567, "SoundWave",
			[]string{"Battery: 12 hours", "Waterproof: IPX7", "Bluetooth 5.0", "360° Sound"},
			"photo-1608043152269-423dbba4e7e1"),
		product("Men's Premium Cotton T-Shirt",
			"Ultra-soft 100% cotton t-shirt with modern fit. Available in multiple colors. Perfect for casual everyday wear.",
			"24.99", "39.99", 37, "Fashion", "4.3", 423, "StyleCo",
			[]string{"Material: 100% Cotton", "Fit: Modern", "Machine Washable", "Sizes: S-XXL"},
			"photo-1521572163474-6864f9cf17ab"),
		product("Women's Designer Handbag",
			"Elegant leather handbag with adjustable strap and multiple compartments. Perfect for work or special occasions.",
			"149.99", "249.99", 40, "Fashion", "4.8", 765, "LuxeBag",
			[]string{"Material: Genuine Leather", "Dimensions: 30x25x12cm", "Multiple Pockets", "Adjustable Strap"},
			"photo-1584917865442-de89df76afd3"),
		product("Running Shoes - Athletic Performance",
			"Lightweight running shoes with responsive cushioning and breathable mesh upper. Engineered for speed and comfort.",
			"89.99", "139.99", 36, "Fashion", "4.5", 1034, "SpeedFit",
			[]string{"Weight: 240g", "Breathable Mesh", "Cushioned Sole", "Sizes: 6-13"},
			"photo-1542291026-7eec264c27ff"),
		product("Robot Vacuum Cleaner with Mapping",
			"Smart robot vacuum with laser navigation, automatic charging, and app control. Keep your home spotlessly clean effortlessly.",
			"299.99", "499.99", 40, "Home", "4.6", 891, "CleanBot",
			[]string{"Battery: 120 min", "Laser Navigation", "App Control", "Auto Charging"},
			"photo-1558317374-067fb5f30001"),
		product("Air Purifier with HEPA Filter",
			"Remove 99.97% of airborne particles with this powerful air purifier. Quiet operation and smart sensors for optimal air quality.",
			"179.99", "259.99", 31, "Home", "4.7", 654, "PureAir",
			[]string{"HEPA Filter", "Coverage: 500 sq ft", "Noise: 25dB", "Smart Sensors"},
			"photo-1585771724684-38269d6639fd"),
		product("Coffee Maker with Grinder",
			"Wake up to freshly ground coffee every morning. Programmable timer, thermal carafe, and adjustable strength settings.",
			"129.99", "199.99", 35, "Home", "4.4", 423, "BrewMaster",
			[]string{"Built-in Grinder", "Programmable", "12-Cup Capacity", "Thermal Carafe"},
			"photo-1517668808822-9ebb02f2a0e6"),
		product("Anti-Aging Face Serum",
			"Powerful anti-aging serum with hyaluronic acid and vitamin C. Reduces wrinkles and brightens skin tone for a youthful glow.",
			"49.99", "89.99", 44, "Beauty", "4.6", 1123, "GlowSkin",
			[]string{"Volume: 30ml", "Hyaluronic Acid", "Vitamin C", "Dermatologist Tested"},
			"photo-1620916566398-39f1143ab7be"),
		product("Professional Hair Dryer",
			"Salon-quality hair dryer with ionic technology and multiple heat settings. Achieve smooth, frizz-free results at home.",
			"69.99", "119.99", 42, "Beauty", "4.5", 678, "HairPro",
			[]string{"Power: 1800W", "Ionic Technology", "3 Heat Settings", "Cool Shot Button"},
			"photo-1522338242992-e1a54906a8da"),
		product("The Art of Modern Living",
			"A comprehensive guide to minimalist living and mindful consumption. Transform your life with practical tips and inspiring stories.",
			"19.99", "29.99", 33, "Books", "4.7", 892, "Mindful Press",
			[]string{"Pages: 320", "Hardcover", "Language: English", "ISBN: 978-1234567890"},
			"photo-1544947950-fa07a98d237f"),
		product("Complete Cookbook Collection",
			"Over 500 recipes from around the world. From quick weeknight dinners to impressive dinner party dishes.",
			"34.99", "49.99", 30, "Books", "4.8", 1456, "Gourmet Books",
			[]string{"Pages: 450", "Hardcover", "500+ Recipes", "Full Color Photos"},
			"photo-1490645935967-10de6ba17061"),
		product("Yoga Mat - Extra Thick Non-Slip",
			"Premium yoga mat with superior cushioning and grip. Eco-friendly materials, perfect for all types of yoga and fitness.",
			"39.99", "69.99", 43, "Sports", "4.6", 734, "ZenFit",
			[]string{"Thickness: 6mm", "Non-Slip Surface", "Eco-Friendly", "Includes Carry Strap"},
			"photo-1601925260368-ae2f83cf8b7f"),
		product("Dumbbell Set - Adjustable Weight",
			"Space-saving adjustable dumbbells with easy weight selection. Perfect for home workouts and strength training.",
			"249.99", "399.99", 37, "Sports", "4.7", 567, "PowerFit",
			[]string{"Weight Range: 5-50 lbs", "Quick Adjust", "Compact Design", "Durable Construction"},
			"photo-1517836357463-d25dfeac3438"),
	}
}

func seedReviews() []models.Review {
	return []models.Review{
		{Rating: 5, Comment: "Excellent product! Exceeded my expectations.", ReviewerName: "Sarah M.", Helpful: 12},
		{Rating: 4, Comment: "Great quality, fast delivery. Highly recommend!", ReviewerName: "John D.", Helpful: 8},
		{Rating: 5, Comment: "Best purchase I've made this year. Worth every penny!", ReviewerName: "Emily R.", Helpful: 15},
		{Rating: 4, Comment: "Good value for money. Very satisfied with my purchase.", ReviewerName: "Michael T.", Helpful: 6},
		{Rating: 3, Comment: "It's okay, does the job but nothing special.", ReviewerName: "Lisa K.", Helpful: 3},
	}
}
