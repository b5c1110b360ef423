// README: Trip handlers for CRUD, itinerary save, and activity edits.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyant/internal/http/middleware"
	"voyant/internal/modules/trip"
	"voyant/internal/types"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(svc *trip.Service) *TripHandler {
	return &TripHandler{trips: svc}
}

type createTripReq struct {
	Title       string  `json:"title"`
	Destination string  `json:"destination"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Budget      float64 `json:"budget"`
}

type tripResp struct {
	ID          string        `json:"id"`
	OwnerUID    string        `json:"ownerUid"`
	Title       string        `json:"title"`
	Destination string        `json:"destination"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	Budget      float64       `json:"budget"`
	Status      string        `json:"status"`
	Summary     string        `json:"summary,omitempty"`
	HeroImage   string        `json:"heroImage,omitempty"`
	MapCenter   types.LatLng  `json:"mapCenter"`
	Days        []dayResp     `json:"days,omitempty"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type dayResp struct {
	ID         string         `json:"id"`
	Day        int            `json:"day"`
	Date       string         `json:"date"`
	Title      string         `json:"title"`
	Activities []activityResp `json:"activities"`
}

type activityResp struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Coordinates types.LatLng `json:"coordinates"`
	Time        string       `json:"time"`
	Cost        float64      `json:"cost"`
	ImageURL    string       `json:"imageUrl,omitempty"`
}

func toTripResp(t *trip.Trip, days []trip.Day) tripResp {
	resp := tripResp{
		ID:          string(t.ID),
		OwnerUID:    t.OwnerUID,
		Title:       t.Title,
		Destination: t.Destination,
		StartDate:   t.StartDate.Format("2006-01-02"),
		EndDate:     t.EndDate.Format("2006-01-02"),
		Budget:      t.Budget,
		Status:      string(t.Status),
		Summary:     t.Summary,
		HeroImage:   t.HeroImage,
		MapCenter:   t.MapCenter,
		UpdatedAt:   t.UpdatedAt,
	}
	for _, d := range days {
		dr := dayResp{
			ID:         string(d.ID),
			Day:        d.DayNumber,
			Date:       d.Date.Format("2006-01-02"),
			Title:      d.Title,
			Activities: []activityResp{},
		}
		for _, a := range d.Activities {
			dr.Activities = append(dr.Activities, activityResp{
				ID:          string(a.ID),
				Title:       a.Title,
				Description: a.Description,
				Location:    a.Location,
				Coordinates: a.Coordinates,
				Time:        a.TimeLabel,
				Cost:        a.Cost,
				ImageURL:    a.ImageURL,
			})
		}
		resp.Days = append(resp.Days, dr)
	}
	return resp
}

func (h *TripHandler) Create(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid startDate")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid endDate")
		return
	}

	t, err := h.trips.Create(c.Request.Context(), trip.CreateCommand{
		OwnerUID:    middleware.CallerUID(c),
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      req.Budget,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, toTripResp(t, nil))
}

func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.trips.ListByUser(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	out := make([]tripResp, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResp(t, nil))
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": out})
}

func (h *TripHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	t, days, err := h.trips.Get(c.Request.Context(), types.ID(id), middleware.CallerUID(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toTripResp(t, days))
}

type updateTripReq struct {
	Title       *string  `json:"title"`
	Destination *string  `json:"destination"`
	StartDate   *string  `json:"startDate"`
	EndDate     *string  `json:"endDate"`
	Budget      *float64 `json:"budget"`
	Status      *string  `json:"status"`
}

func (h *TripHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	var req updateTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	cmd := trip.UpdateCommand{
		TripID:      types.ID(id),
		ActorUID:    middleware.CallerUID(c),
		Title:       req.Title,
		Destination: req.Destination,
		Budget:      req.Budget,
	}
	if req.StartDate != nil {
		d, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid startDate")
			return
		}
		cmd.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid endDate")
			return
		}
		cmd.EndDate = &d
	}
	if req.Status != nil {
		st := trip.Status(*req.Status)
		cmd.Status = &st
	}

	t, err := h.trips.Update(c.Request.Context(), cmd)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toTripResp(t, nil))
}

func (h *TripHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	if err := h.trips.Delete(c.Request.Context(), types.ID(id), middleware.CallerUID(c)); err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"deleted": true})
}

type saveItineraryReq struct {
	Summary   string       `json:"summary"`
	HeroImage string       `json:"heroImage"`
	MapCenter types.LatLng `json:"mapCenter"`
	Days      []saveDayReq `json:"days"`
}

type saveDayReq struct {
	Date       string            `json:"date"`
	Title      string            `json:"title"`
	Activities []saveActivityReq `json:"activities"`
}

type saveActivityReq struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Coordinates types.LatLng `json:"coordinates"`
	Time        string       `json:"time"`
	Cost        float64      `json:"cost"`
	ImageURL    string       `json:"imageUrl"`
}

// SaveItinerary handles POST /api/trips/:id/itinerary — accepting a
// generated plan into durable storage.
func (h *TripHandler) SaveItinerary(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	var req saveItineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	days := make([]trip.Day, 0, len(req.Days))
	for _, d := range req.Days {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid day date")
			return
		}
		day := trip.Day{Date: date, Title: d.Title}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, trip.Activity{
				Title:       a.Title,
				Description: a.Description,
				Location:    a.Location,
				Coordinates: a.Coordinates,
				TimeLabel:   a.Time,
				Cost:        a.Cost,
				ImageURL:    a.ImageURL,
			})
		}
		days = append(days, day)
	}

	err := h.trips.SaveItinerary(c.Request.Context(), trip.SaveItineraryCommand{
		TripID:    types.ID(id),
		ActorUID:  middleware.CallerUID(c),
		Summary:   req.Summary,
		HeroImage: req.HeroImage,
		MapCenter: req.MapCenter,
		Days:      days,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"saved": true})
}

// AddActivity handles POST /api/trips/:id/days/:dayID/activities.
func (h *TripHandler) AddActivity(c *gin.Context) {
	dayID := c.Param("dayID")
	if !isValidID(dayID) {
		writeError(c, http.StatusBadRequest, "invalid day id")
		return
	}
	var req saveActivityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	a, err := h.trips.AddActivity(c.Request.Context(), types.ID(dayID), middleware.CallerUID(c), trip.Activity{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Coordinates: req.Coordinates,
		TimeLabel:   req.Time,
		Cost:        req.Cost,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, activityResp{
		ID:          string(a.ID),
		Title:       a.Title,
		Description: a.Description,
		Location:    a.Location,
		Coordinates: a.Coordinates,
		Time:        a.TimeLabel,
		Cost:        a.Cost,
		ImageURL:    a.ImageURL,
	})
}

type updateActivityReq struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Location    *string       `json:"location"`
	Coordinates *types.LatLng `json:"coordinates"`
	Time        *string       `json:"time"`
	Cost        *float64      `json:"cost"`
	ImageURL    *string       `json:"imageUrl"`
	Position    *int          `json:"position"`
}

func (h *TripHandler) UpdateActivity(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid activity id")
		return
	}
	var req updateActivityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	a, err := h.trips.UpdateActivity(c.Request.Context(), types.ID(id), middleware.CallerUID(c), trip.ActivityUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Coordinates: req.Coordinates,
		TimeLabel:   req.Time,
		Cost:        req.Cost,
		ImageURL:    req.ImageURL,
		Position:    req.Position,
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, activityResp{
		ID:          string(a.ID),
		Title:       a.Title,
		Description: a.Description,
		Location:    a.Location,
		Coordinates: a.Coordinates,
		Time:        a.TimeLabel,
		Cost:        a.Cost,
		ImageURL:    a.ImageURL,
	})
}

func (h *TripHandler) DeleteActivity(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid activity id")
		return
	}
	if err := h.trips.DeleteActivity(c.Request.Context(), types.ID(id), middleware.CallerUID(c)); err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"deleted": true})
}
