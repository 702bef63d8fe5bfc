package handlers

import (
	"net/http"

	"helphub-api/models"

	"github.com/gin-gonic/gin"
)

// GetAllRequests returns every request for CSR triage, filterable by status.
func GetAllRequests(c *gin.Context) {
	reqs, err := svc.ListRequests(currentActor(c), models.RequestStatus(c.Query("status")))
	if err != nil {
		fail(c, err)
		return
	}

	summary := map[string]int{}
	for _, r := range reqs {
		summary[string(r.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{
		"request_summary": summary,
		"count":           len(reqs),
		"requests":        reqs,
	})
}

// GetEligibleVolunteers lists assignable volunteers for a request.
func GetEligibleVolunteers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	vols, err := svc.EligibleVolunteers(id, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(vols), "volunteers": vols})
}

// AcceptRequest triages a pending request (Pending -> Accepted).
func AcceptRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, err := svc.AcceptRequest(id, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Request accepted successfully",
		"request": req,
	})
}

type AssignRequestBody struct {
	VolunteerID uint `json:"volunteer_id" binding:"required"`
}

// AssignRequest attaches a volunteer to a request.
func AssignRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body AssignRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := svc.AssignRequest(id, body.VolunteerID, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Request assigned successfully",
		"request": req,
	})
}

// CompleteRequest closes out an assigned request (CSR path).
func CompleteRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, err := svc.CompleteRequest(id, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Request completed successfully",
		"request": req,
	})
}

// DeleteRequest removes a request entirely.
func DeleteRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := svc.DeleteRequest(id, currentActor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request deleted successfully"})
}

// ShortlistRequest bookmarks a request for the CSR.
func ShortlistRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entry, err := svc.ShortlistRequest(id, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Request added to shortlist",
		"shortlist": entry,
	})
}

// GetShortlist returns the CSR's bookmarked requests.
func GetShortlist(c *gin.Context) {
	entries, err := svc.ListShortlist(currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "shortlist": entries})
}
