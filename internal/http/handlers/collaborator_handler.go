// README: Collaborator handlers (invite, list, remove).
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyant/internal/http/middleware"
	"voyant/internal/modules/trip"
	"voyant/internal/types"
)

type CollaboratorHandler struct {
	trips *trip.Service
}

func NewCollaboratorHandler(svc *trip.Service) *CollaboratorHandler {
	return &CollaboratorHandler{trips: svc}
}

type addCollaboratorReq struct {
	UID  string `json:"uid"`
	Role string `json:"role"`
}

type collaboratorResp struct {
	UID       string    `json:"uid"`
	Role      string    `json:"role"`
	InvitedBy string    `json:"invitedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *CollaboratorHandler) Add(c *gin.Context) {
	tripID := c.Param("id")
	if !isValidID(tripID) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	var req addCollaboratorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Role == "" {
		req.Role = string(trip.RoleViewer)
	}

	err := h.trips.AddCollaborator(c.Request.Context(), trip.AddCollaboratorCommand{
		TripID:   types.ID(tripID),
		ActorUID: middleware.CallerUID(c),
		UID:      req.UID,
		Role:     trip.Role(req.Role),
	})
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"added": true})
}

func (h *CollaboratorHandler) List(c *gin.Context) {
	tripID := c.Param("id")
	if !isValidID(tripID) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	collabs, err := h.trips.ListCollaborators(c.Request.Context(), types.ID(tripID), middleware.CallerUID(c))
	if err != nil {
		writeTripError(c, err)
		return
	}
	out := make([]collaboratorResp, 0, len(collabs))
	for _, col := range collabs {
		out = append(out, collaboratorResp{
			UID:       col.UID,
			Role:      string(col.Role),
			InvitedBy: col.InvitedBy,
			CreatedAt: col.CreatedAt,
		})
	}
	writeJSON(c, http.StatusOK, gin.H{"collaborators": out})
}

func (h *CollaboratorHandler) Remove(c *gin.Context) {
	tripID := c.Param("id")
	uid := c.Param("uid")
	if !isValidID(tripID) || uid == "" {
		writeError(c, http.StatusBadRequest, "invalid trip or collaborator id")
		return
	}
	err := h.trips.RemoveCollaborator(c.Request.Context(), types.ID(tripID), middleware.CallerUID(c), uid)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"removed": true})
}
