package billing

import (
	"log"
	"os"

	"github.com/BrieflyAI/Briefly-Backend/internal/billing/provider"

	// Import providers to register them via init()
	_ "github.com/BrieflyAI/Briefly-Backend/internal/billing/flutterwave"
)

func Init() {
	catalogPath := os.Getenv("PLANS_FILE")
	if catalogPath == "" {
		catalogPath = "plans.yaml"
	}

	catalog, err := LoadCatalog(catalogPath)
	if err != nil {
		log.Fatal("Failed to load pricing catalog: ", err)
	}
	Pricing = catalog

	cfg := provider.LoadFromEnv()
	p, err := provider.NewProvider(cfg)
	if err != nil {
		// Cancellation responds 502 until a provider key is configured;
		// everything else keeps working.
		log.Printf("[Billing] payment provider disabled: %v", err)
		return
	}
	Provider = p
	log.Printf("[Billing] payment provider: %s", p.Name())
}
