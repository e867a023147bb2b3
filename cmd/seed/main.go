package main

import (
	"fmt"
	"log"

	"courtly/internal/rates"
	"courtly/internal/shared/config"
	"courtly/internal/shared/database"
	"courtly/internal/stations"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Courtly database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.AutoMigrate(db.GetPostgreSQL()); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"booking_stations",
		"bookings",
		"intent_stations",
		"booking_intents",
		"rates",
		"stations",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll seeds two demo clubs with stations and a full rate card each
func (s *Seeder) SeedAll() error {
	clubs := []struct {
		name     string
		stations []stations.Station
	}{
		{
			name: "Riverside Racquet Club",
			stations: []stations.Station{
				{Name: "Court 1", Type: stations.TypeCourt},
				{Name: "Court 2", Type: stations.TypeCourt},
				{Name: "Court 3", Type: stations.TypeCourt},
				{Name: "Table 1", Type: stations.TypeTable},
			},
		},
		{
			name: "Downtown Game Lounge",
			stations: []stations.Station{
				{Name: "Console Bay A", Type: stations.TypeConsole},
				{Name: "Console Bay B", Type: stations.TypeConsole},
				{Name: "Lane 1", Type: stations.TypeLane},
				{Name: "Lane 2", Type: stations.TypeLane},
			},
		},
	}

	// Base hourly rates per station type; coaching and tournament bookings
	// carry a multiplier on top.
	baseRates := map[stations.Type]float64{
		stations.TypeCourt:   40,
		stations.TypeTable:   15,
		stations.TypeConsole: 20,
		stations.TypeLane:    30,
	}
	multipliers := map[string]float64{
		"STANDARD":   1.0,
		"COACHING":   1.5,
		"TOURNAMENT": 2.0,
	}

	for _, club := range clubs {
		clubID := uuid.New()

		seen := make(map[stations.Type]struct{})
		for i := range club.stations {
			st := club.stations[i]
			st.ID = uuid.New()
			st.ClubID = clubID
			st.Status = "ACTIVE"

			if err := s.db.GetPostgreSQL().Create(&st).Error; err != nil {
				return fmt.Errorf("failed to seed station %s: %w", st.Name, err)
			}
			seen[st.Type] = struct{}{}
		}

		for stationType := range seen {
			for bookingType, mult := range multipliers {
				rate := rates.Rate{
					ID:          uuid.New(),
					ClubID:      clubID,
					StationType: stationType.String(),
					BookingType: bookingType,
					HourlyRate:  baseRates[stationType] * mult,
					Currency:    "USD",
				}
				if err := s.db.GetPostgreSQL().Create(&rate).Error; err != nil {
					return fmt.Errorf("failed to seed rate %s/%s: %w", stationType, bookingType, err)
				}
			}
		}

		fmt.Printf("  Seeded club %q (%s) with %d stations\n", club.name, clubID, len(club.stations))
	}

	return nil
}
