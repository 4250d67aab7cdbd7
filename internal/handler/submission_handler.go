package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"MedAI_LandingSite/internal/form"
	"MedAI_LandingSite/internal/variants"
)

// 제출 성공 응답
type SubmissionResponse struct {
	Title        string `json:"title" example:"Demo Scheduled!"`
	Message      string `json:"message" example:"We'll contact you shortly to confirm your demo appointment."`
	Record       any    `json:"record"`
	ResetAfterMS int64  `json:"resetAfterMs" example:"2000"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error" example:"email is required"`
	Fields map[string]string `json:"fields"`
}

// ListForms godoc
// @Summary      폼 종류 목록
// @Description  데모 요청, 콜백 요청 폼의 문구와 선택지를 반환합니다.
// @Tags         Forms
// @Produce      json
// @Success      200 {array} variants.Variant
// @Router       /api/forms [get]
func (h *Handler) ListForms(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.All())
}

// GetForm godoc
// @Summary      폼 정보 조회
// @Tags         Forms
// @Produce      json
// @Param        variant path string true "폼 종류 (demo 또는 call)"
// @Success      200 {object} variants.Variant
// @Failure      404 {object} handler.ErrorResponse
// @Router       /api/forms/{variant} [get]
func (h *Handler) GetForm(c *gin.Context) {
	v, err := h.registry.Get(c.Param("variant"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown form"})
		return
	}
	c.JSON(http.StatusOK, v)
}

// SubmitDemoRequest godoc
// @Summary      데모 요청 제출
// @Description  데모 요청을 저장하고, 설정된 경우 외부 릴레이로 전달합니다. 릴레이 실패는 응답에 영향을 주지 않습니다.
// @Tags         Forms
// @Accept       json
// @Produce      json
// @Param        request body form.DemoInput true "데모 요청 정보"
// @Success      201 {object} handler.SubmissionResponse
// @Failure      400 {object} handler.ValidationErrorResponse
// @Failure      429 {object} handler.ErrorResponse
// @Router       /api/demo-requests [post]
func (h *Handler) SubmitDemoRequest(c *gin.Context) {
	var in form.DemoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	record, err := h.submitter.SubmitDemo(c.Request.Context(), in)
	h.respondSubmission(c, variants.Demo, record, err)
}

// SubmitCallRequest godoc
// @Summary      콜백 요청 제출
// @Tags         Forms
// @Accept       json
// @Produce      json
// @Param        request body form.CallInput true "콜백 요청 정보"
// @Success      201 {object} handler.SubmissionResponse
// @Failure      400 {object} handler.ValidationErrorResponse
// @Failure      429 {object} handler.ErrorResponse
// @Router       /api/call-requests [post]
func (h *Handler) SubmitCallRequest(c *gin.Context) {
	var in form.CallInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	record, err := h.submitter.SubmitCall(c.Request.Context(), in)
	h.respondSubmission(c, variants.Call, record, err)
}

func (h *Handler) respondSubmission(c *gin.Context, variantKey string, record any, err error) {
	if err != nil {
		var ve *form.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: ve.Error(), Fields: ve.Fields})
			return
		}
		h.logger.Error("respondSubmission(): submission failed", zap.String("variant", variantKey), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit request"})
		return
	}

	v, _ := h.registry.Get(variantKey)
	c.JSON(http.StatusCreated, SubmissionResponse{
		Title:        v.SuccessTitle,
		Message:      v.SuccessMessage,
		Record:       record,
		ResetAfterMS: h.resetDelay.Milliseconds(),
	})
}
