package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"mfgtwin/pkg/api/companies"
	"mfgtwin/pkg/api/intake"
	"mfgtwin/pkg/api/recommendation"
	"mfgtwin/pkg/api/simulate"
	"mfgtwin/pkg/api/upload"
	"mfgtwin/pkg/core/levers"
	"mfgtwin/pkg/core/questionnaire"
	"mfgtwin/pkg/core/recommend"
	"mfgtwin/pkg/core/scenario"
	"mfgtwin/pkg/core/store"
)

// ServerConfig is read from config/server.yaml.
type ServerConfig struct {
	Port        string `yaml:"port"`
	GeminiModel string `yaml:"gemini_model"`
	LeversFile  string `yaml:"levers_file"`
	DatabaseURL string `yaml:"database_url"`
}

func loadServerConfig() ServerConfig {
	cfg := ServerConfig{
		Port:        "8080",
		GeminiModel: "gemini-2.0-flash",
		LeversFile:  "config/levers.hjson",
	}
	data, err := os.ReadFile("config/server.yaml")
	if err != nil {
		fmt.Printf("[CONFIG] No server.yaml, using defaults: %v\n", err)
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[WARNING] Bad server.yaml, using defaults: %v\n", err)
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := loadServerConfig()

	// Lever calibration: hjson file with fallback to built-in defaults.
	constants, err := levers.LoadConstants(cfg.LeversFile)
	if err != nil {
		fmt.Printf("[CONFIG] No lever calibration file, using defaults: %v\n", err)
		constants = levers.DefaultConstants()
	} else {
		fmt.Printf("[CONFIG] Lever calibration loaded from %s\n", cfg.LeversFile)
	}

	// Database is optional; handlers degrade to stateless operation.
	ctx := context.Background()
	if err := store.InitDB(ctx, cfg.DatabaseURL); err != nil {
		fmt.Printf("[WARNING] Database unavailable, persistence disabled: %v\n", err)
	} else {
		fmt.Println("[STORE] Database pool initialized")
	}
	defer store.Close()

	// Recommendation provider and pain-point analyzer: Gemini when a key is
	// present, keyword rules otherwise.
	var provider recommend.Provider
	var painAnalyzer recommendation.PainAnalyzer
	if os.Getenv("GEMINI_API_KEY") != "" {
		provider = &recommend.GeminiProvider{Model: cfg.GeminiModel}
		fmt.Printf("[RECOMMEND] Gemini provider enabled (%s)\n", cfg.GeminiModel)

		analyzer, err := questionnaire.NewAnalyzer(ctx)
		if err != nil {
			fmt.Printf("[WARNING] Pain-point analyzer unavailable, keyword analysis only: %v\n", err)
		} else {
			painAnalyzer = analyzer
			defer analyzer.Close()
		}
	} else {
		fmt.Println("[RECOMMEND] No GEMINI_API_KEY, rule-based recommendations only")
	}

	upload.InitHandler()
	simulate.InitHandler(scenario.NewModel(constants))
	companies.InitHandler()
	recommendation.InitHandler(recommend.NewService(provider), painAnalyzer)
	intake.InitHandler()

	r := chi.NewRouter()
	r.Post("/api/upload", upload.HandleUpload)
	r.Options("/api/upload", upload.HandleUpload)
	r.Post("/api/scenario/simulate", simulate.HandleSimulate)
	r.Options("/api/scenario/simulate", simulate.HandleSimulate)
	r.Get("/api/scenarios", simulate.HandleListScenarios)
	r.HandleFunc("/api/companies", companies.HandleCompanies)
	r.Post("/api/recommendations", recommendation.HandleRecommend)
	r.Options("/api/recommendations", recommendation.HandleRecommend)
	r.Get("/api/questionnaire", intake.HandleQuestions)
	r.Post("/api/questionnaire/answer", intake.HandleAnswer)

	addr := ":" + cfg.Port
	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - POST /api/upload")
	fmt.Println("  - POST /api/scenario/simulate")
	fmt.Println("  - GET  /api/scenarios?company_id=...")
	fmt.Println("  - GET/POST /api/companies")
	fmt.Println("  - POST /api/recommendations")
	fmt.Println("  - GET  /api/questionnaire")
	fmt.Println("  - POST /api/questionnaire/answer")

	if err := http.ListenAndServe(addr, r); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
