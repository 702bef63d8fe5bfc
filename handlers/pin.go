package handlers

import (
	"net/http"
	"time"

	"helphub-api/service"

	"github.com/gin-gonic/gin"
)

type CreateRequestBody struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	CategoryID  uint      `json:"category_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// CreateRequest opens a new help request (PIN only).
func CreateRequest(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := svc.CreateRequest(currentActor(c), service.CreateRequestInput{
		Title:       body.Title,
		Description: body.Description,
		CategoryID:  body.CategoryID,
		ScheduledAt: body.ScheduledAt,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Request created successfully",
		"request": req,
	})
}

// GetMyRequests returns the logged-in PIN user's requests.
func GetMyRequests(c *gin.Context) {
	reqs, err := svc.ListRequestsForCreator(currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reqs), "requests": reqs})
}

// GetRequestDetail returns one of the user's requests with history and
// bumps its view counter.
func GetRequestDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, err := svc.GetRequestForCreator(id, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req})
}

type SubmitReviewBody struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// SubmitReview records the single review on a completed request.
func SubmitReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body SubmitReviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := svc.SubmitReview(id, body.Rating, body.Comment, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you for your review",
		"review":  review,
	})
}
