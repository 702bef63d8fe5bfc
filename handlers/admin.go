package handlers

import (
	"net/http"

	"helphub-api/models"

	"github.com/gin-gonic/gin"
)

// AdminGetAllUsers returns all accounts, optionally filtered by role.
func AdminGetAllUsers(c *gin.Context) {
	users, err := svc.ListUsers(currentActor(c), models.UserRole(c.Query("role")))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminActivateUser flips an account to Active.
func AdminActivateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := svc.ActivateUser(id, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": user.Name + " activated", "user": user})
}

// AdminSuspendUser flips an account to Suspended.
func AdminSuspendUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := svc.SuspendUser(id, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": user.Name + " suspended", "user": user})
}

type UpdateUserBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// AdminUpdateUser edits a user's name and email. Role is immutable.
func AdminUpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body UpdateUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := svc.UpdateUserProfile(id, body.Name, body.Email, currentActor(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// AdminDeleteUser removes an account with its full cascade.
func AdminDeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := svc.DeleteUser(id, currentActor(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
