package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/goalpath/internal/pkg/filestore"
	"github.com/xyz-asif/goalpath/internal/pkg/response"
	apperrors "github.com/xyz-asif/goalpath/pkg/errors"
)

// DefaultMaxUploadBytes bounds multipart bodies when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

type Handler struct {
	service        *Service
	maxUploadBytes int64
}

func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user ID", "INVALID_ID")
		return 0, false
	}
	return id, true
}

// writeError reports file-store failures as UPLOAD_FAILED and defers the rest to response.FromError.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrInternal) {
		_ = c.Error(err)
		response.InternalServerError(c, err.Error(), "UPLOAD_FAILED")
		return
	}
	response.FromError(c, err)
}

func (h *Handler) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// Register godoc
// @Summary Register a user
// @Description Stores the submitted user as given; the id is assigned by the server
// @Tags users
// @Accept json
// @Produce json
// @Param request body User true "User data"
// @Success 200 {object} User
// @Failure 400 {object} response.ErrorResponse
// @Router /users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var user User
	if err := c.ShouldBindJSON(&user); err != nil {
		response.BindJSONError(c, err)
		return
	}

	created, err := h.service.Register(c.Request.Context(), &user)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, created)
}

// Login godoc
// @Summary Log in
// @Description Returns the stored user when username and password match
// @Tags users
// @Accept json
// @Produce json
// @Param request body Credentials true "Login credentials"
// @Success 200 {object} User
// @Failure 401 {object} response.ErrorResponse
// @Router /users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var creds Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		response.BindJSONError(c, err)
		return
	}

	user, err := h.service.Login(c.Request.Context(), &creds)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} User
// @Router /users [get]
func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, users)
}

// Get godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} User
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// Update godoc
// @Summary Update a user
// @Description Multipart form with a `userDetails` JSON part and an optional `file` image part. A plain JSON body is accepted too.
// @Tags users
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param userDetails formData string true "Details as JSON"
// @Param file formData file false "New profile image"
// @Success 200 {object} User
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var details Details
		if err := c.ShouldBindJSON(&details); err != nil {
			response.BindJSONError(c, err)
			return
		}
		h.update(c, id, &details, nil)
		return
	}

	h.limitBody(c)
	if _, err := c.MultipartForm(); err != nil {
		if isTooLarge(err) {
			response.BadRequest(c, "Upload exceeds size limit", "FILE_TOO_LARGE")
			return
		}
		response.BadRequest(c, "Invalid multipart form", "PARSE_ERROR")
		return
	}

	raw, err := userDetailsPart(c)
	if err != nil {
		response.BadRequest(c, err.Error(), "MISSING_FIELD")
		return
	}

	var details Details
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		response.BadRequest(c, "Error parsing userDetails", "PARSE_ERROR")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Size == 0 {
		h.update(c, id, &details, nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file", "PARSE_ERROR")
		return
	}
	defer file.Close()

	h.update(c, id, &details, &Upload{Filename: fileHeader.Filename, Content: file})
}

func (h *Handler) update(c *gin.Context, id int64, details *Details, upload *Upload) {
	user, err := h.service.Update(c.Request.Context(), id, details, upload)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, user)
}

// userDetailsPart reads the details either as a form value or as a JSON file part.
func userDetailsPart(c *gin.Context) (string, error) {
	if raw, ok := c.GetPostForm("userDetails"); ok {
		return raw, nil
	}

	fh, err := c.FormFile("userDetails")
	if err != nil {
		return "", errors.New("userDetails part is required")
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("could not read userDetails: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("could not read userDetails: %w", err)
	}
	return string(data), nil
}

// UploadImage godoc
// @Summary Upload a profile image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "User ID"
// @Param file formData file true "Image file"
// @Success 200 {object} User
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /users/{id}/upload [post]
func (h *Handler) UploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	h.limitBody(c)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			response.BadRequest(c, "Upload exceeds size limit", "FILE_TOO_LARGE")
			return
		}
		response.BadRequest(c, "File is required", "MISSING_FILE")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file", "PARSE_ERROR")
		return
	}
	defer file.Close()

	user, err := h.service.UploadImage(c.Request.Context(), id, Upload{Filename: fileHeader.Filename, Content: file})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, user)
}

// GetImage godoc
// @Summary Fetch a stored profile image
// @Tags users
// @Produce octet-stream
// @Param filename path string true "Stored file name"
// @Success 200 {file} file
// @Failure 404 {object} response.ErrorResponse
// @Router /users/uploads/{filename} [get]
func (h *Handler) GetImage(c *gin.Context) {
	name := c.Param("filename")

	rc, err := h.service.OpenImage(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotExist) {
			response.NotFound(c, "Image not found", "NOT_FOUND")
			return
		}
		response.FromError(c, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}

// Delete godoc
// @Summary Delete a user
// @Description Removes the user and its stored image
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}

	response.Message(c, fmt.Sprintf("User with ID %d deleted successfully.", id))
}

// Follow godoc
// @Summary Follow a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} User
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id}/follow [put]
func (h *Handler) Follow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.service.Follow(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

// Unfollow godoc
// @Summary Unfollow a user
// @Description Decrements the follower count, never below zero
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} User
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id}/unfollow [put]
func (h *Handler) Unfollow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.service.Unfollow(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}
