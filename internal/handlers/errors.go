package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apierrors "github.com/erfnk/kanban-board-api/internal/errors"
	"github.com/erfnk/kanban-board-api/internal/services"
)

// respondServiceError maps service sentinel errors onto the API error
// taxonomy. Anything unmatched is a 500 and gets logged.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAccessDenied),
		errors.Is(err, services.ErrNotOrganizationMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrColumnNotInBoard),
		errors.Is(err, services.ErrTaskNotInBoard),
		errors.Is(err, services.ErrTaskNotInColumn):
		apierrors.BadRequest(c, err.Error())
	default:
		logrus.WithError(err).Error("unhandled service error")
		apierrors.InternalError(c, "")
	}
}
