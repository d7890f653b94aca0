package feedback

import (
	"log"

	"github.com/BrieflyAI/Briefly-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "app_feedback"); err != nil {
		log.Fatal("Failed to ensure schema app_feedback: ", err)
	}

	if err := db.DB.AutoMigrate(&Feedback{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
