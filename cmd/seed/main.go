// Command seed fills the database with demo vendors, accounts and products.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/campusthreads/marketplace-api/initializers"
	"github.com/campusthreads/marketplace-api/models"
	"github.com/campusthreads/marketplace-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	categories = []string{"tees", "hoodies", "sweatshirts", "caps", "beanies", "jackets", "accessories"}
	colors     = []string{"black", "white", "navy", "red", "green", "purple"}
	sizes      = []string{"XS", "S", "M", "L", "XL"}
	adjectives = []string{"Classic", "Vintage", "Oversized", "Cozy", "Retro", "Essential"}
	groups     = []string{"Campus", "Dorm", "Club", "Society"}
	garments   = []string{"Tee", "Hoodie", "Crewneck", "Cap", "Beanie", "Jacket", "Tote"}
)

type options struct {
	Vendors   int
	Customers int
	Products  int
	Password  string
	Seed      uint64
}

func main() {
	opts := options{}
	flag.IntVar(&opts.Vendors, "vendors", 12, "number of demo vendors")
	flag.IntVar(&opts.Customers, "customers", 8, "number of demo customers")
	flag.IntVar(&opts.Products, "products", 100, "number of demo products")
	flag.Uint64Var(&opts.Seed, "seed", 1, "random seed")
	flag.Parse()

	opts.Password = os.Getenv("DEMO_PASSWORD")
	if opts.Password == "" {
		opts.Password = "password123"
	}

	initializers.LoadEnv()
	initializers.LoadConfig()
	initializers.ConnectToDB()
	initializers.SyncDatabase()

	if err := seed(initializers.DB, opts); err != nil {
		log.Fatal("Seeding failed: ", err)
	}
	log.Printf("Inserted %d products across %d vendors.", opts.Products, opts.Vendors)
}

// seed replaces the catalog and vendors and upserts the demo accounts.
func seed(db *gorm.DB, opts options) error {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	hash, err := utils.HashPassword(opts.Password)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.ProductVariant{}, &models.ProductCategory{}, &models.Product{}, &models.Vendor{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
				return err
			}
		}

		vendors := make([]models.Vendor, 0, opts.Vendors)
		for i := range opts.Vendors {
			vendor := models.Vendor{
				StoreName: fmt.Sprintf("%s %s Threads", pick(rng, adjectives), pick(rng, groups)),
				Bio:       "Student-run merch from around campus.",
				Rating:    float64(30+rng.IntN(21)) / 10,
			}
			if err := tx.Create(&vendor).Error; err != nil {
				return err
			}
			vendors = append(vendors, vendor)

			if err := upsertUser(tx, fmt.Sprintf("vendor%d@example.edu", i+1), hash, models.RoleVendor, &vendor.ID); err != nil {
				return err
			}
		}

		for i := range opts.Customers {
			if err := upsertUser(tx, fmt.Sprintf("customer%d@example.com", i+1), hash, models.RoleCustomer, nil); err != nil {
				return err
			}
		}
		if err := upsertUser(tx, "admin@example.com", hash, models.RoleAdmin, nil); err != nil {
			return err
		}

		if len(vendors) == 0 {
			return nil
		}
		for i := range opts.Products {
			product := demoProduct(rng, vendors[rng.IntN(len(vendors))].ID, i)
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func demoProduct(rng *rand.Rand, vendorID uint, n int) models.Product {
	name := fmt.Sprintf("%s %s %s", pick(rng, adjectives), pick(rng, groups), pick(rng, garments))

	variants := make([]models.VariantInput, 0, len(sizes))
	for _, size := range sizes[:2+rng.IntN(len(sizes)-1)] {
		variants = append(variants, models.VariantInput{Size: size, Color: pick(rng, colors), Stock: rng.IntN(51)})
	}

	return models.Product{
		VendorID:    vendorID,
		Name:        name,
		Description: "Soft, durable and made for campus life.",
		Price:       float64(1000+rng.IntN(11001)) / 100,
		Images:      []string{fmt.Sprintf("https://picsum.photos/seed/product-%d/800/800", n)},
		Variants:    models.BuildVariants(variants),
		Tags:        models.BuildTags([]string{pick(rng, categories), pick(rng, categories)}),
	}
}

func upsertUser(tx *gorm.DB, email, hash, role string, vendorID *uint) error {
	user := models.User{Email: email, PasswordHash: hash, Role: role, VendorID: vendorID}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role", "vendor_id"}),
	}).Create(&user).Error
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}
