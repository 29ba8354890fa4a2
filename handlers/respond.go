package handlers

import (
	"errors"
	"net/http"

	"homefood-api/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps the error taxonomy onto HTTP status codes in one place
func respondError(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
		return
	}
	var nfe *apperrors.NotFoundError
	if errors.As(err, &nfe) {
		c.JSON(http.StatusNotFound, gin.H{"error": nfe.Error()})
		return
	}
	var ite *apperrors.InvalidTransitionError
	if errors.As(err, &ite) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "invalid state transition",
			"current_status": ite.From,
			"requested":      ite.To,
		})
		return
	}
	if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if apperrors.IsUnavailable(err) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "backing store unavailable, try again"})
		return
	}
	Log.Error("unhandled error", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// bindingError converts gin/validator binding failures into the same
// field-level shape the store produces
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidation().Add("body", err.Error())
	}
	ve := apperrors.NewValidation()
	for _, fe := range verrs {
		ve.Add(fe.Field(), "failed on rule '"+fe.Tag()+"'")
	}
	return ve
}
