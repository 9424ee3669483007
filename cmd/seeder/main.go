package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"cloud.google.com/go/datastore"
	"github.com/procurehub/procurement-gateway/internal/config"
	"github.com/procurehub/procurement-gateway/internal/database"
	"github.com/procurehub/procurement-gateway/internal/logger"
)

func main() {
	// Define flags
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	preset := flag.String("preset", "medium", "Data preset: small, medium, large")
	suppliers := flag.Int("suppliers", 0, "Number of suppliers (overrides preset)")
	orders := flag.Int("orders", 0, "Number of orders per supplier (overrides preset)")
	parts := flag.Int("parts", 0, "Max parts per order (overrides preset)")

	flag.Parse()

	ctx := context.Background()

	fmt.Println("🚀 Procurement Data Seeder")

	if err := config.LoadEnvConfig(); err != nil {
		log.Fatalf("Failed to load env config: %v", err)
	}
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:            config.DefaultEnvConfig.DB_HOST,
		Port:            config.DefaultEnvConfig.DB_PORT,
		User:            config.DefaultEnvConfig.DB_USER,
		Password:        config.DefaultEnvConfig.DB_PASSWORD,
		DBName:          config.DefaultEnvConfig.DB_NAME,
		SSLMode:         config.DefaultEnvConfig.DB_SSL_MODE,
		MaxOpenConns:    config.DefaultEnvConfig.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    config.DefaultEnvConfig.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: config.DefaultEnvConfig.DB_CONN_MAX_LIFETIME,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Logos only get uploaded when the store is configured
	var logoStore *database.LogoStore
	if projectID := config.DefaultEnvConfig.GCP_PROJECT_ID; projectID != "" {
		dsClient, err := datastore.NewClient(ctx, projectID)
		if err != nil {
			fmt.Printf("⚠️  Logo store unavailable, skipping logo upload: %v\n", err)
		} else {
			logoStore = database.WrapLogoStore(dsClient)
		}
	}

	seeder := database.NewDataSeeder(db, logoStore)

	switch *action {
	case "seed":
		numSuppliers, ordersPerSupplier, partsPerOrder := database.GetPresetConfig(database.SeedPreset(*preset))
		if *suppliers > 0 && *orders > 0 && *parts > 0 {
			numSuppliers, ordersPerSupplier, partsPerOrder = *suppliers, *orders, *parts
			fmt.Printf("📊 Using custom configuration: %d suppliers, %d orders each, up to %d parts\n",
				numSuppliers, ordersPerSupplier, partsPerOrder)
		} else {
			fmt.Printf("📊 Using preset: %s\n", *preset)
		}
		if err := seeder.SeedData(ctx, numSuppliers, ordersPerSupplier, partsPerOrder); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}

	case "clear":
		fmt.Println("⚠️  This will delete all seeded data!")
		fmt.Print("Continue? (yes/no): ")

		var response string
		fmt.Scanln(&response)
		if response != "yes" {
			fmt.Println("Cancelled.")
			return
		}
		if err := seeder.ClearData(ctx); err != nil {
			log.Fatalf("❌ Clear failed: %v", err)
		}

	default:
		fmt.Printf("❌ Unknown action: %s\n", *action)
		flag.PrintDefaults()
	}

	fmt.Println("\n✅ Done!")
}
