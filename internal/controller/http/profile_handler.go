package http

import (
	"errors"
	"net/http"

	"postboard/internal/entity"
	"postboard/internal/usecase"
	"postboard/pkg/authz"
	"postboard/pkg/logger"
	"postboard/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ProfileHandler struct {
	profileUseCase usecase.ProfileUseCase
	logger         *logger.Logger
}

func NewProfileHandler(profileUseCase usecase.ProfileUseCase, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

func (h *ProfileHandler) formatProfileResponse(profile *entity.Profile, callerID uint) map[string]interface{} {
	return map[string]interface{}{
		"id":         profile.ID,
		"owner_id":   profile.OwnerID,
		"owner":      profile.Owner,
		"name":       profile.Name,
		"content":    profile.Content,
		"image":      profile.Image,
		"is_owner":   authz.IsOwner(callerID, profile.OwnerID),
		"created_at": profile.CreatedAt,
		"updated_at": profile.UpdatedAt,
	}
}

type UpdateProfileRequest struct {
	Name    *string `json:"name" form:"name" binding:"omitempty,max=255"`
	Content *string `json:"content" form:"content"`
}

// ListProfiles godoc
// @Summary      List profiles
// @Tags         profiles
// @Produce      json
// @Param        limit query int false "Number of profiles to return (max 100)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /profiles/ [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	var query PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profiles, err := h.profileUseCase.ListProfiles(c.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		respondError(c, h.logger, err, "fetch profiles")
		return
	}

	callerID := middleware.UserID(c)
	response := make([]map[string]interface{}, len(profiles))
	for i, profile := range profiles {
		response[i] = h.formatProfileResponse(profile, callerID)
	}

	c.JSON(http.StatusOK, gin.H{"profiles": response, "count": len(response)})
}

// GetProfile godoc
// @Summary      Get profile by ID
// @Tags         profiles
// @Produce      json
// @Param        id path int true "Profile ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /profiles/{id}/ [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profileID, ok := pathID(c, entity.ErrProfileNotFound)
	if !ok {
		return
	}

	profile, err := h.profileUseCase.GetProfile(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, h.logger, err, "fetch profile")
		return
	}

	c.JSON(http.StatusOK, h.formatProfileResponse(profile, middleware.UserID(c)))
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Update name, content and image of your own profile. Omitted fields are left unchanged.
// @Tags         profiles
// @Accept       multipart/form-data,json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Profile ID"
// @Param        name formData string false "Display name"
// @Param        content formData string false "About text"
// @Param        image formData file false "Profile image (jpg/jpeg/png/gif)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /profiles/{id}/ [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	profileID, ok := pathID(c, entity.ErrProfileNotFound)
	if !ok {
		return
	}
	callerID := middleware.UserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.UpdateProfileInput{
		Name:    req.Name,
		Content: req.Content,
	}

	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		fileHeader, err := c.FormFile("image")
		switch {
		case err == nil:
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
				return
			}
			defer file.Close()
			input.Image = &usecase.ImageUpload{
				File:        file,
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
			}
		case !errors.Is(err, http.ErrMissingFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	profile, err := h.profileUseCase.UpdateProfile(c.Request.Context(), callerID, profileID, input)
	if err != nil {
		respondError(c, h.logger, err, "update profile")
		return
	}

	c.JSON(http.StatusOK, h.formatProfileResponse(profile, callerID))
}
