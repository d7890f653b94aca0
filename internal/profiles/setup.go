package profiles

import (
	"log"

	"github.com/BrieflyAI/Briefly-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_profiles"); err != nil {
		log.Fatal("Failed to ensure schema app_profiles: ", err)
	}

	if err := db.DB.AutoMigrate(&Profile{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
