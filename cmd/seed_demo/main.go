package main

import (
	"fmt"
	"log"
	"time"

	"github.com/surcoapps/mantgo/internal/config"
	"github.com/surcoapps/mantgo/internal/database"
	"github.com/surcoapps/mantgo/internal/models"
	"github.com/surcoapps/mantgo/internal/store"
	"github.com/surcoapps/mantgo/internal/utils"
)

func main() {
	fmt.Println("🌱 MantGo Demo Data Seeder")

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	st := store.New(db)

	// Run migrations first
	fmt.Println("🔨 Running database migrations...")
	if err := st.Migrate(); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")

	// Equipment catalog
	if err := st.EnsureSeedClasses(); err != nil {
		log.Fatalf("❌ Class seeding failed: %v", err)
	}

	classes, err := st.ListClasses()
	if err != nil || len(classes) == 0 {
		log.Fatalf("❌ No equipment classes available: %v", err)
	}

	// Admin account
	if _, err := st.UserByEmail("admin@mantgo.local"); err != nil {
		hash, err := utils.HashPassword("admin123")
		if err != nil {
			log.Fatalf("❌ Failed to hash password: %v", err)
		}
		admin := models.UserAuth{
			Email:    "admin@mantgo.local",
			Password: hash,
			Name:     "Administrador",
			Role:     "admin",
		}
		if err := st.CreateUser(&admin); err != nil {
			log.Fatalf("❌ Failed to create admin user: %v", err)
		}
		fmt.Println("👤 Created admin user admin@mantgo.local (password admin123)")
	} else {
		fmt.Println("👤 Admin user already exists, skipping")
	}

	// Demo maintenance events
	var eventCount int64
	db.Model(&models.MaintenanceEvent{}).Count(&eventCount)
	if eventCount > 0 {
		fmt.Printf("⚠️  Database already has %d maintenance events. Nothing to do.\n", eventCount)
		return
	}

	fmt.Println()
	fmt.Println("📦 Creating demo maintenance events...")

	executed := time.Date(time.Now().Year(), time.March, 14, 0, 0, 0, 0, time.UTC)

	events := []models.MaintenanceEvent{
		{
			Area:             models.AreaMechanical,
			Location:         "Batería Norte",
			MaintenanceType:  "Preventivo",
			AssetDescription: "Bomba de transferencia P-101",
			MaintenanceCode:  "MP-MEC-001",
			ScheduledMonth:   3,
			Status:           models.StatusCompleted,
			ExecutionDate:    &executed,
			Author:           "J. Quispe",
			Supervisor:       "R. Salazar",
			UserDetail:       "Cambio de sello mecánico y rodamientos. Alineación del conjunto motor-bomba.",
			ClassID:          classes[0].ID,
		},
		{
			Area:             models.AreaInstrumentation,
			Location:         "Planta de Inyección",
			MaintenanceType:  "Correctivo",
			AssetDescription: "Transmisor de presión PT-204",
			MaintenanceCode:  "MC-INS-014",
			ScheduledMonth:   5,
			Status:           models.StatusInProgress,
			Author:           "M. Flores",
			Supervisor:       "R. Salazar",
			ClassID:          classes[len(classes)-1].ID,
		},
		{
			Area:             models.AreaPlumbing,
			Location:         "Campamento Base",
			MaintenanceType:  "Preventivo",
			AssetDescription: "Red de agua sanitaria",
			MaintenanceCode:  "MP-GAS-007",
			ScheduledMonth:   8,
			Status:           models.StatusScheduled,
			ClassID:          classes[0].ID,
		},
	}

	for i := range events {
		if err := st.CreateEvent(&events[i]); err != nil {
			log.Fatalf("❌ Failed to create demo event %s: %v", events[i].MaintenanceCode, err)
		}
		fmt.Printf("  ✅ %s (%s)\n", events[i].MaintenanceCode, events[i].Status)
	}

	fmt.Println()
	fmt.Println("✅ Demo data ready")
}
