package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CategoryBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory adds a new request category (Platform Manager).
func CreateCategory(c *gin.Context) {
	var body CategoryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := svc.CreateCategory(body.Name, body.Description, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": cat,
	})
}

// UpdateCategory edits a category's name or description.
func UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body CategoryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := svc.UpdateCategory(id, body.Name, body.Description, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": cat,
	})
}

// DeleteCategory removes a category, detaching its volunteers.
func DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := svc.DeleteCategory(id, currentActor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// GetPlatformStats returns the platform manager dashboard aggregates.
func GetPlatformStats(c *gin.Context) {
	stats, err := svc.GetPlatformStats(currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
