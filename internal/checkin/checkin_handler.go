package checkin

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  Service
	presence *PresenceBoard
}

func NewHandler(service Service, presence *PresenceBoard) *Handler {
	return &Handler{service: service, presence: presence}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Record(c *gin.Context) {
	companyID := c.GetString("company_id")
	workerID := c.GetString("worker_id")

	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Record(c.Request.Context(), companyID, workerID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Status(c *gin.Context) {
	companyID := c.GetString("company_id")
	workerID := c.GetString("worker_id")

	resp, err := h.service.Status(c.Request.Context(), companyID, workerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// PresenceList serves the who-is-in board the consumer binary maintains.
func (h *Handler) PresenceList(c *gin.Context) {
	companyID := c.GetString("company_id")

	entries, err := h.presence.Board(c.Request.Context(), companyID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries, nil)
}
