// scripts/seed_roles.go
//
// Stamps the faculty/warden roles onto already-signed-in accounts so the
// reviewers don't have to re-login after a config change:
//
//	FACULTY_EMAIL=... WARDEN_EMAIL=... go run ./scripts
package main

import (
	"fmt"
	"log"

	"github.com/JohnsonOduri/Ur-OrbIIIT/config"
	"github.com/JohnsonOduri/Ur-OrbIIIT/database"
	"github.com/JohnsonOduri/Ur-OrbIIIT/logging"
	"github.com/JohnsonOduri/Ur-OrbIIIT/models"
)

func main() {
	cfg := config.Load()
	logger, err := logging.Init(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	database.Connect(cfg, logger)

	assign := map[string]string{
		cfg.FacultyEmail: models.RoleFaculty,
		cfg.WardenEmail:  models.RoleWarden,
	}
	for email, role := range assign {
		if email == "" {
			continue
		}
		res := database.DB.Model(&models.User{}).
			Where("email = ?", email).
			Update("role", role)
		if res.Error != nil {
			log.Fatalf("failed to update role for %s: %v", email, res.Error)
		}
		if res.RowsAffected == 0 {
			fmt.Printf("no account for %s yet; role will apply at first sign-in\n", email)
			continue
		}
		fmt.Printf("set %s → %s\n", email, role)
	}
}
