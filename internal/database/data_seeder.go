package database

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/disintegration/imaging"
)

type DataSeeder struct {
	db        *sql.DB
	logoStore *LogoStore
}

func NewDataSeeder(db *sql.DB, logoStore *LogoStore) *DataSeeder {
	return &DataSeeder{db: db, logoStore: logoStore}
}

var (
	supplierNames = []string{"Acme Industrial", "Nordic Fasteners", "Pacific Metalworks", "Summit Components", "Delta Precision", "Orion Castings", "Vertex Tooling", "Crestline Alloys", "Harbor Machining", "Atlas Bearings"}
	contactNames  = []string{"Alex Morgan", "Sam Chen", "Jordan Ruiz", "Casey Nguyen", "Riley Park", "Dana Kovac", "Morgan Reyes", "Quinn Tanaka"}
	partCatalog   = []struct {
		name string
		desc string
	}{
		{"Hex Bolt M8x40", "Stainless steel, DIN 933"},
		{"Flange Bearing", "Self-aligning, cast housing"},
		{"Shaft Coupling", "Flexible jaw type"},
		{"O-Ring Kit", "NBR 70, metric assortment"},
		{"Linear Rail 400mm", "Ground, with carriage"},
		{"Stepper Motor NEMA23", "1.8 deg, 2.8A"},
		{"Aluminum Plate 6061", "10mm, mill finish"},
		{"Timing Belt HTD5", "15mm wide, closed loop"},
		{"Proximity Sensor", "Inductive, M12, PNP"},
		{"Cable Gland M16", "Nylon, IP68"},
	}
	specKeys = map[string][]string{
		"material": {"steel", "stainless 304", "aluminum 6061", "brass", "nylon"},
		"finish":   {"zinc plated", "anodized", "raw", "powder coated"},
		"grade":    {"8.8", "10.9", "A2-70", "A4-80"},
		"standard": {"DIN 933", "ISO 4762", "ANSI B18.3"},
	}
	configSamples = []string{
		"",
		"header_color: \"#1F4E79\"\naccent_color: \"#DCE6F1\"\n",
		"tax_rate: 0.08\nbank_details:\n  - \"Bank: Harbor Trust\"\n  - \"Account: 1111-2222-3333\"\n",
	}
)

const seedSchema = `
CREATE TABLE IF NOT EXISTS suppliers (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	contact_person TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	payment_terms TEXT NOT NULL DEFAULT '',
	logo_ref TEXT NOT NULL DEFAULT '',
	template_type TEXT NOT NULL DEFAULT '',
	template_config TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS orders (
	id BIGSERIAL PRIMARY KEY,
	order_number TEXT NOT NULL UNIQUE,
	order_date TIMESTAMPTZ NOT NULL,
	expected_delivery TIMESTAMPTZ NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL DEFAULT 'normal',
	status TEXT NOT NULL DEFAULT 'open',
	supplier_id BIGINT REFERENCES suppliers(id)
);
CREATE TABLE IF NOT EXISTS order_parts (
	id BIGSERIAL PRIMARY KEY,
	order_id BIGINT NOT NULL REFERENCES orders(id),
	position INT NOT NULL,
	part_number TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	specifications JSONB,
	quantity INT NOT NULL,
	unit_price NUMERIC(12,2) NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS export_history (
	id BIGSERIAL PRIMARY KEY,
	order_id BIGINT NOT NULL,
	export_type TEXT NOT NULL,
	exported_by TEXT NOT NULL DEFAULT '',
	filename TEXT NOT NULL,
	exported_at TIMESTAMPTZ NOT NULL
);
`

// SeedData creates the schema if needed and fills it with sample
// suppliers, orders and parts. Logo uploads only happen when a logo
// store is configured.
func (ds *DataSeeder) SeedData(ctx context.Context, numSuppliers, ordersPerSupplier, partsPerOrder int) error {
	start := time.Now()
	fmt.Println("🚀 Seeding data...")

	if numSuppliers > len(supplierNames) {
		numSuppliers = len(supplierNames)
	}

	if _, err := ds.db.ExecContext(ctx, seedSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	fmt.Println("🏭 Creating suppliers and orders...")
	totalOrders, totalParts := 0, 0
	for i := 0; i < numSuppliers; i++ {
		templateType := "generic"
		if i%2 == 1 {
			templateType = "branded"
		}

		supplierID, err := ds.insertSupplier(ctx, i, templateType)
		if err != nil {
			return fmt.Errorf("inserting supplier: %w", err)
		}

		for o := 0; o < ordersPerSupplier; o++ {
			orderID, err := ds.insertOrder(ctx, supplierID, i*ordersPerSupplier+o)
			if err != nil {
				return fmt.Errorf("inserting order: %w", err)
			}
			totalOrders++

			n := rand.Intn(partsPerOrder) + 1
			if err := ds.insertParts(ctx, orderID, n); err != nil {
				return fmt.Errorf("inserting parts: %w", err)
			}
			totalParts += n
		}
	}
	fmt.Printf("✅ Created %d suppliers, %d orders, %d parts\n", numSuppliers, totalOrders, totalParts)

	if ds.logoStore != nil {
		fmt.Println("🖼️  Uploading template logos...")
		if err := ds.uploadLogos(ctx); err != nil {
			return fmt.Errorf("uploading logos: %w", err)
		}
		fmt.Println("✅ Uploaded logos for generic and branded templates")
	}

	fmt.Printf("🎉 Done in %v\n", time.Since(start))
	return nil
}

func (ds *DataSeeder) insertSupplier(ctx context.Context, idx int, templateType string) (int64, error) {
	name := supplierNames[idx]
	contact := contactNames[idx%len(contactNames)]
	cfg := configSamples[idx%len(configSamples)]

	var id int64
	err := ds.db.QueryRowContext(ctx, `
		INSERT INTO suppliers (name, contact_person, email, phone, address, payment_terms, logo_ref, template_type, template_config)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, name, contact,
		fmt.Sprintf("quotes@%s.example.com", sanitizeEmail(name)),
		fmt.Sprintf("+1-555-01%02d", idx),
		fmt.Sprintf("%d Industrial Way, Springfield", 100+idx),
		"Net 30", templateType, templateType, cfg).Scan(&id)
	return id, err
}

func (ds *DataSeeder) insertOrder(ctx context.Context, supplierID int64, seq int) (int64, error) {
	orderDate := time.Now().AddDate(0, 0, -rand.Intn(30))
	var id int64
	err := ds.db.QueryRowContext(ctx, `
		INSERT INTO orders (order_number, order_date, expected_delivery, notes, priority, status, supplier_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, fmt.Sprintf("PO-2026-%04d", seq+1), orderDate, orderDate.AddDate(0, 0, 21+rand.Intn(21)),
		"Quote all lines", randomPick([]string{"low", "normal", "high"}), "open", supplierID).Scan(&id)
	return id, err
}

func (ds *DataSeeder) insertParts(ctx context.Context, orderID int64, count int) error {
	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO order_parts (order_id, position, part_number, name, description, specifications, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for p := 0; p < count; p++ {
		item := partCatalog[rand.Intn(len(partCatalog))]

		specs := make(map[string]string)
		for key, values := range specKeys {
			if rand.Intn(2) == 0 {
				specs[key] = values[rand.Intn(len(values))]
			}
		}
		rawSpecs, _ := json.Marshal(specs)

		_, err := stmt.ExecContext(ctx, orderID, p+1,
			fmt.Sprintf("PRT-%05d", rand.Intn(90000)+10000),
			item.name, item.desc, rawSpecs,
			rand.Intn(200)+1, float64(rand.Intn(20000))/100)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// uploadLogos generates solid-color placeholder images so local setups
// have something to embed without shipping binary assets.
func (ds *DataSeeder) uploadLogos(ctx context.Context) error {
	logos := map[string]color.NRGBA{
		"generic": {R: 0x44, G: 0x54, B: 0x6A, A: 0xFF},
		"branded": {R: 0x1F, G: 0x4E, B: 0x79, A: 0xFF},
	}
	for templateType, fill := range logos {
		img := imaging.New(240, 80, fill)
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return err
		}
		if err := ds.logoStore.SaveLogo(ctx, templateType, buf.Bytes(), ".png"); err != nil {
			return err
		}
	}
	return nil
}

func (ds *DataSeeder) ClearData(ctx context.Context) error {
	fmt.Println("🗑️  Clearing data...")

	// Children before parents
	for _, table := range []string{"export_history", "order_parts", "orders", "suppliers"} {
		if _, err := ds.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	fmt.Println("✅ Cleared SQL data")
	return nil
}

// Presets
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
)

// GetPresetConfig returns configuration for a preset
func GetPresetConfig(preset SeedPreset) (numSuppliers, ordersPerSupplier, partsPerOrder int) {
	switch preset {
	case PresetSmall:
		return 2, 3, 4
	case PresetMedium:
		return 5, 8, 6
	case PresetLarge:
		return 10, 20, 8
	default:
		return 5, 8, 6
	}
}

func randomPick(items []string) string {
	return items[rand.Intn(len(items))]
}

func sanitizeEmail(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}
	return string(out)
}
