package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"voyant/internal/ai"
	"voyant/internal/service"
)

// Small CLI to exercise the generation pipeline without the HTTP server.
// With no VOYANT_AI_API_KEY set this runs fully offline on the mock provider.
func main() {
	ctx := context.Background()

	provider, err := ai.NewProvider(ctx, ai.ProviderConfig{
		Backend: os.Getenv("VOYANT_AI_BACKEND"),
		APIKey:  os.Getenv("VOYANT_AI_API_KEY"),
		Model:   os.Getenv("VOYANT_AI_MODEL"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}

	planner := service.NewPlanner(provider, nil, nil)

	start := time.Now().AddDate(0, 0, 7)
	req := ai.GenerationRequest{
		Destination: "Lisbon",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 2),
		Interests:   []string{"food", "history"},
		Budget:      900,
		Travelers:   2,
	}

	plan, err := planner.BuildPlan(ctx, req)
	if err != nil {
		log.Fatalf("Error generating plan: %v", err)
	}

	fmt.Printf("Summary: %s\n", plan.Summary)
	fmt.Printf("Map center: %.4f, %.4f\n", plan.MapCenter.Lat, plan.MapCenter.Lng)
	fmt.Printf("Budget used: %.2f of %.2f\n", plan.BudgetUsed, plan.TotalBudget)
	for _, day := range plan.Days {
		fmt.Printf("\nDay %d (%s): %s\n", day.Day, day.Date, day.Title)
		for _, a := range day.Activities {
			fmt.Printf("  %s  %s (%.2f)\n", a.Time, a.Title, a.Cost)
		}
	}
}
