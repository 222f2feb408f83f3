// Command seed loads demo reference data and an admin user.
// Usage: go run ./cmd/seed
package main

import (
	"os"
	"time"

	"github.com/abhishek972986/porter-managment/internal/config"
	"github.com/abhishek972986/porter-managment/internal/infra"
	"github.com/abhishek972986/porter-managment/internal/model"
	"github.com/abhishek972986/porter-managment/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@porter.com"
	adminPassword = "admin123"
)

var carriers = []model.Carrier{
	{Name: model.CarrierPorter, CapacityKg: 20},
	{Name: model.CarrierSmallDonkey, CapacityKg: 40},
	{Name: model.CarrierPickupTruck, CapacityKg: 1500},
}

var locations = []model.Location{
	{Code: "WH01", Name: "Main Warehouse"},
	{Code: "WH02", Name: "North Depot"},
	{Code: "WH03", Name: "South Depot"},
	{Code: "PST1", Name: "Forward Post 1"},
	{Code: "PST2", Name: "Forward Post 2"},
}

var porters = []model.Porter{
	{UID: "P001", Name: "Arjun Thapa", Designation: "Senior Porter", AccountNo: "100200300401", FatherName: "Ram Thapa"},
	{UID: "P002", Name: "Bhola Gurung", Designation: "Porter", AccountNo: "100200300402", FatherName: "Hari Gurung"},
	{UID: "P003", Name: "Chandan Rai", Designation: "Porter", AccountNo: "100200300403", FatherName: "Mohan Rai"},
	{UID: "P004", Name: "Dawa Sherpa", Designation: "Senior Porter", AccountNo: "100200300404", FatherName: "Pemba Sherpa"},
	{UID: "P005", Name: "Ganesh Magar", Designation: "Porter", AccountNo: "100200300405", FatherName: "Bir Magar"},
	{UID: "P006", Name: "Hemant Negi", Designation: "Porter", AccountNo: "100200300406", FatherName: "Kishan Negi"},
	{UID: "P007", Name: "Kamal Bisht", Designation: "Muleteer", AccountNo: "100200300407", FatherName: "Gopal Bisht"},
	{UID: "P008", Name: "Lakpa Tamang", Designation: "Porter", AccountNo: "100200300408", FatherName: "Nima Tamang"},
}

// Route prices between the first two locations, by carrier.
var routePrices = map[string]int64{
	model.CarrierPorter:      250,
	model.CarrierSmallDonkey: 400,
	model.CarrierPickupTruck: 1500,
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	if err := db.Transaction(seed); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Str("email", adminEmail).Str("password", adminPassword).Msg("seed complete")
}

func seed(tx *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), service.BcryptCost)
	if err != nil {
		return err
	}
	admin := model.User{Email: adminEmail}
	if err := tx.Where(model.User{Email: adminEmail}).
		Assign(model.User{Name: "Admin", PasswordHash: string(hash), Role: model.RoleAdmin, Active: true}).
		FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	byName := make(map[string]model.Carrier, len(carriers))
	for _, c := range carriers {
		row := c
		row.Active = true
		if err := tx.Where(model.Carrier{Name: c.Name}).FirstOrCreate(&row).Error; err != nil {
			return err
		}
		byName[c.Name] = row
	}

	seeded := make([]model.Location, 0, len(locations))
	for _, l := range locations {
		row := l
		row.Active = true
		if err := tx.Where(model.Location{Code: l.Code}).FirstOrCreate(&row).Error; err != nil {
			return err
		}
		seeded = append(seeded, row)
	}

	for _, p := range porters {
		row := p
		row.Active = true
		if err := tx.Where(model.Porter{UID: p.UID}).FirstOrCreate(&row).Error; err != nil {
			return err
		}
	}

	from, to := seeded[0], seeded[1]
	for name, price := range routePrices {
		for _, pair := range [][2]model.Location{{from, to}, {to, from}} {
			cost := model.CommuteCost{
				FromLocationID: pair[0].ID,
				ToLocationID:   pair[1].ID,
				CarrierID:      byName[name].ID,
			}
			if err := tx.Where(cost).
				Attrs(model.CommuteCost{Cost: decimal.NewFromInt(price), Active: true}).
				FirstOrCreate(&cost).Error; err != nil {
				return err
			}
		}
	}
	log.Info().
		Int("carriers", len(carriers)).
		Int("locations", len(locations)).
		Int("porters", len(porters)).
		Msg("reference data ready")
	return nil
}
