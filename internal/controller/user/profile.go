package user

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// UpsertProfile creates the user's extended profile or merges the
// supplied fields into the existing one. Absent fields keep their
// prior values.
// @Summary Create or update the candidate profile
// @Tags User
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body model.EditableProfileInfo true "Profile fields to set"
// @Success 200 {object} model.UserProfile "Stored profile"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/profile [post]
func (uc *UserController) UpsertProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	var info model.EditableProfileInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail(
			fmt.Sprintf("Invalid request body: %s", err.Error()),
		))
		return
	}

	profile := model.UserProfile{}
	err = uc.DB.Where("user_id = ?", user.ID).First(&profile).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = model.UserProfile{
			UserID:              user.ID,
			EditableProfileInfo: info,
		}
		if err := uc.DB.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Fail(
				fmt.Sprintf("Failed to create profile: %s", err.Error()),
			))
			return
		}

	case err == nil:
		utilities.MergeNonEmpty(&profile.EditableProfileInfo, &info)
		if err := uc.DB.Model(&model.UserProfile{}).
			Where("id = ?", profile.ID).
			Select("*").
			Omit("id", "user_id", "created_at").
			Updates(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.Fail(
				fmt.Sprintf("Failed to update profile: %s", err.Error()),
			))
			return
		}

	default:
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Database error: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// GetProfile returns the user's extended profile.
// @Summary Get the candidate profile
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.UserProfile "Stored profile"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/profile [get]
func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	profile := model.UserProfile{}
	if err := uc.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.Fail("Profile not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// DeleteProfile clears the user's extended profile. The account and
// its applications stay.
// @Summary Delete the candidate profile
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.MessageResponse "Profile deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Profile not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /api/profile [delete]
func (uc *UserController) DeleteProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.Fail(err.Error()))
		return
	}

	result := uc.DB.Where("user_id = ?", user.ID).Delete(&model.UserProfile{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.Fail(
			fmt.Sprintf("Failed to delete profile: %s", result.Error.Error()),
		))
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, utilities.Fail("Profile not found"))
		return
	}

	c.JSON(http.StatusOK, utilities.OK("Profile deleted"))
}
