package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetMyTasks returns the volunteer's dashboard: active and completed tasks
// plus review summary.
func GetMyTasks(c *gin.Context) {
	tasks, err := svc.ListTasksForVolunteer(currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// StartTask confirms the volunteer has begun an assigned task.
func StartTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, err := svc.StartRequest(id, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Task started. Good luck!",
		"request": req,
	})
}

// DeclineTask hands an assigned task back to the pool.
func DeclineTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, err := svc.DeclineRequest(id, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Task declined and returned to the pool",
		"request": req,
	})
}

// CompleteTask closes out the volunteer's own task.
func CompleteTask(c *gin.Context) {
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
		"message": "Congratulations, task completed!",
		"request": req,
	})
}
