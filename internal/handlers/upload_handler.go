package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/fashionhub/internal/assets"
	"github.com/gin-gonic/gin"
)

// saveUpload stores the optional image in form field `field`. It returns nil
// when the field is absent. On failure it has already written the response.
func (h *Handlers) saveUpload(c *gin.Context, field string) (*string, bool) {
	file, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, true
	}
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid file upload")
		return nil, false
	}

	publicPath, err := h.Images.SaveImage(file)
	switch {
	case errors.Is(err, assets.ErrTooLarge), errors.Is(err, assets.ErrUnsupportedType):
		fail(c, http.StatusBadRequest, err.Error())
		return nil, false
	case err != nil:
		h.Log.Error().Err(err).Str("field", field).Msg("save upload")
		fail(c, http.StatusInternalServerError, "Failed to save file")
		return nil, false
	}

	h.Log.Info().Str("path", publicPath).Msg("image uploaded")
	return &publicPath, true
}

// discardUpload removes a file saved earlier in a request that then failed,
// or one that has just been replaced.
func (h *Handlers) discardUpload(publicPath *string) {
	if publicPath == nil {
		return
	}
	if err := h.Images.Remove(*publicPath); err != nil {
		h.Log.Warn().Err(err).Str("path", *publicPath).Msg("remove image")
	}
}
