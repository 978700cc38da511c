package v1

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

const resumeFileName = "resume.pdf"

var assetNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+\.(pdf|jpg|png|jpeg)$`)

var assetContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type DownloadHandler struct {
	assets storage.AssetStore
}

func NewDownloadHandler(r *gin.RouterGroup, assets storage.AssetStore) {
	handler := &DownloadHandler{
		assets: assets,
	}

	download := r.Group("/download")
	{
		download.GET("/resume", handler.Resume)
		download.GET("/view/resume", handler.ViewResume)
		download.GET("/asset/:filename", handler.Asset)
	}
}

// Resume serves the resume inline, or as an attachment when the request
// came from a download page.
func (h *DownloadHandler) Resume(c *gin.Context) {
	headers := map[string]string{}
	if strings.Contains(c.GetHeader("Referer"), "/download") {
		headers["Content-Disposition"] = `attachment; filename="` + resumeFileName + `"`
	}
	h.serve(c, resumeFileName, "Resume file not found. Please contact the administrator.", headers)
}

// ViewResume keeps the old viewer link working
func (h *DownloadHandler) ViewResume(c *gin.Context) {
	c.Redirect(http.StatusFound, "/api/download/resume")
}

// Asset serves a whitelisted file type from the asset store
func (h *DownloadHandler) Asset(c *gin.Context) {
	name := c.Param("filename")
	if !assetNamePattern.MatchString(name) {
		response.Error(c, http.StatusBadRequest, "Invalid filename", "The requested filename format is not allowed.")
		return
	}
	h.serve(c, name, "The requested file was not found.", nil)
}

// serve streams name to the client after checking that its leading bytes
// match the extension.
func (h *DownloadHandler) serve(c *gin.Context, name, notFoundMessage string, headers map[string]string) {
	asset, err := h.assets.Open(c.Request.Context(), name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.Error(c, http.StatusNotFound, "File not found", notFoundMessage)
		return
	case errors.Is(err, storage.ErrForbidden):
		response.Error(c, http.StatusForbidden, "Access denied", "Security violation detected.")
		return
	case err != nil:
		_ = c.Error(err)
		return
	}
	defer asset.Close()

	head := make([]byte, security.SniffLen)
	n, err := io.ReadFull(asset.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		_ = c.Error(err)
		return
	}
	head = head[:n]
	if !security.MatchesExtension(name, head) {
		response.Error(c, http.StatusForbidden, "Access denied", "Security violation detected.")
		return
	}

	contentType, ok := assetContentTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, asset.Size, contentType, io.MultiReader(bytes.NewReader(head), asset.Body), headers)
}
