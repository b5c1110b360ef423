// README: AI itinerary-plan handlers (generate, alternatives, replacement).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"voyant/internal/ai"
	"voyant/internal/http/middleware"
	"voyant/internal/modules/aiusage"
	"voyant/internal/service"
)

// generationTimeout bounds one provider round-trip; live completions can
// take a while for week-long itineraries.
const generationTimeout = 60 * time.Second

type PlanHandler struct {
	planner *service.Planner
	quota   *aiusage.Service // nil disables quota enforcement
}

func NewPlanHandler(planner *service.Planner, quota *aiusage.Service) *PlanHandler {
	return &PlanHandler{planner: planner, quota: quota}
}

type aiPlanReq struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Interests   []string `json:"interests"`
	Budget      *float64 `json:"budget"`
	Travelers   int      `json:"travelers"`
}

// toGenerationRequest validates the wire request and converts it.
// Validation failures are returned as user-facing messages; no provider
// call happens for an invalid request.
func (r aiPlanReq) toGenerationRequest() (ai.GenerationRequest, string) {
	if strings.TrimSpace(r.Destination) == "" {
		return ai.GenerationRequest{}, "missing destination"
	}
	if r.StartDate == "" || r.EndDate == "" {
		return ai.GenerationRequest{}, "missing startDate or endDate"
	}
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return ai.GenerationRequest{}, "invalid startDate"
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return ai.GenerationRequest{}, "invalid endDate"
	}
	if end.Before(start) {
		return ai.GenerationRequest{}, "endDate must not be before startDate"
	}

	req := ai.GenerationRequest{
		Destination: strings.TrimSpace(r.Destination),
		StartDate:   start,
		EndDate:     end,
		Interests:   r.Interests,
		Travelers:   r.Travelers,
	}
	if r.Budget != nil {
		if *r.Budget < 0 {
			return ai.GenerationRequest{}, "budget must not be negative"
		}
		req.Budget = *r.Budget
	}
	if req.Travelers <= 0 {
		req.Travelers = 1
	}
	return req, ""
}

// Generate handles POST /api/trips/ai-plan.
func (h *PlanHandler) Generate(c *gin.Context) {
	var req aiPlanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	genReq, msg := req.toGenerationRequest()
	if msg != "" {
		writeError(c, http.StatusBadRequest, msg)
		return
	}
	if !h.useQuota(c) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generationTimeout)
	defer cancel()

	plan, err := h.planner.BuildPlan(ctx, genReq)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true, "itinerary": plan})
}

type aiAlternativesReq struct {
	aiPlanReq
	CurrentDays []ai.Day `json:"currentDays"`
}

// Alternatives handles POST /api/trips/ai-plan/alternatives.
func (h *PlanHandler) Alternatives(c *gin.Context) {
	var req aiAlternativesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	genReq, msg := req.toGenerationRequest()
	if msg != "" {
		writeError(c, http.StatusBadRequest, msg)
		return
	}
	if !h.useQuota(c) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generationTimeout)
	defer cancel()

	days, err := h.planner.GenerateAlternativeItinerary(ctx, genReq, req.CurrentDays)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true, "days": days})
}

type aiReplaceReq struct {
	aiPlanReq
	Original ai.Activity `json:"original"`
}

// ReplaceActivity handles POST /api/trips/ai-plan/replace-activity.
func (h *PlanHandler) ReplaceActivity(c *gin.Context) {
	var req aiReplaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	genReq, msg := req.toGenerationRequest()
	if msg != "" {
		writeError(c, http.StatusBadRequest, msg)
		return
	}
	if req.Original.Title == "" {
		writeError(c, http.StatusBadRequest, "missing original activity")
		return
	}
	if !h.useQuota(c) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), generationTimeout)
	defer cancel()

	activity, err := h.planner.SuggestReplacement(ctx, ai.ReplacementRequest{
		GenerationRequest: genReq,
		Original:          req.Original,
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true, "activity": activity})
}

// useQuota burns one generation for the caller. Writes the response and
// returns false when the caller is over quota.
func (h *PlanHandler) useQuota(c *gin.Context) bool {
	if h.quota == nil {
		return true
	}
	err := h.quota.UseGeneration(c.Request.Context(), middleware.CallerUID(c))
	if errors.Is(err, aiusage.ErrQuotaExhausted) {
		writeError(c, http.StatusTooManyRequests, err.Error())
		return false
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return false
	}
	return true
}
