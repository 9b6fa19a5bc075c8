package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayfinder/internal/app/dto"
	domainlistings "stayfinder/internal/domain/listings"
	domainuser "stayfinder/internal/domain/user"
)

type AdminHTTP interface {
	ListUsers(c *gin.Context)
	UploadListingPhoto(c *gin.Context)
}

// AdminHandler serves the admin dashboard. Routes using it sit behind
// RequireAuth + RequireAdmin.
type AdminHandler struct {
	Users   domainuser.Repository
	Listing ListingHandler
	Respond ErrorResponder
}

// ListUsers returns every account, passwords excluded by the DTO.
func (h AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		h.Respond.ServerError(c, err, "failed to fetch users")
		return
	}
	profiles := make([]dto.UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, dto.MapUserProfile(user))
	}
	c.JSON(http.StatusOK, profiles)
}

// UploadListingPhoto accepts a multipart image, stores it in object storage
// and saves the public URL on the listing.
func (h AdminHandler) UploadListingPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		h.Respond.ServerError(c, err, "cannot read uploaded photo")
		return
	}
	defer src.Close()

	listing, err := h.Listing.Service.AttachPhoto(
		c.Request.Context(),
		domainlistings.ListingID(c.Param("id")),
		file.Filename,
		src,
		file.Header.Get("Content-Type"),
	)
	if err != nil {
		if errors.Is(err, domainlistings.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		h.Respond.ServerError(c, err, "photo upload failed")
		return
	}
	c.JSON(http.StatusOK, dto.MapListing(listing))
}

var _ AdminHTTP = AdminHandler{}
