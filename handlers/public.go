package handlers

import (
	"net/http"

	"helphub-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListCategories returns all request categories (public).
func ListCategories(c *gin.Context) {
	cats, err := svc.ListCategories()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(cats), "categories": cats})
}

// GetStateMachineInfo returns the request lifecycle for documentation.
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{
			"from": t.From,
			"to":   t.To,
			"role": t.Role,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"Completed"},
		"description":     "Help Request Lifecycle State Machine",
	})
}
