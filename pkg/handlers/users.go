package handlers

import (
	"net/http"
	"time"

	"github.com/filmboard/filmboard-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// UpdateProfileRequest carries a partial profile edit; nil fields are left
// untouched. Email and role changes go through their own endpoints.
type UpdateProfileRequest struct {
	FullName       *string    `json:"fullName"`
	FirstName      *string    `json:"firstName"`
	LastName       *string    `json:"lastName"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
	ProfilePicture *string    `json:"profilePicture"`
}

// UpdateProfile edits a user's profile fields.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ResponseWithError(c, http.StatusNotFound, "User not found")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugf("UpdateProfile: Invalid request body: %v", err)
		utils.ResponseWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.store.FindUserByID(id)
	if err != nil {
		log.Errorf("UpdateProfile: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error updating profile")
		return
	}
	if user == nil {
		utils.ResponseWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if req.FullName != nil && *req.FullName != "" {
		user.FullName = *req.FullName
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}

	if err := h.store.UpdateUser(user); err != nil {
		log.Errorf("UpdateProfile: %v", err)
		utils.ResponseWithError(c, http.StatusInternalServerError, "Error updating profile")
		return
	}
	c.JSON(http.StatusOK, user.Public())
}
