/**
* Name: 			admin_handler.go
* Description: 		관리자 패널 핸들러
* Workflow: 		로그인, 목록 조회, JSON/CSV 내보내기, 전체 삭제
 */
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"MedAI_LandingSite/internal/app"
	"MedAI_LandingSite/internal/auth"
	"MedAI_LandingSite/internal/export"
)

// /admin/login 요청 바디
type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"password123"`
}

type LoginSuccessResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// 목록 조회 응답
type RecordsResponse struct {
	Collection string `json:"collection" example:"demo-requests"`
	Total      int    `json:"total" example:"3"`
	Records    any    `json:"records"`
}

type ClearResponse struct {
	Cleared bool   `json:"cleared"`
	Archive string `json:"archive,omitempty" example:"data/archive/demo-requests-20261017T093015.250Z.json"`
}

// Login godoc
// @Summary      관리자 로그인
// @Description  관리자 계정으로 로그인하고 JWT 토큰을 발급받습니다.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body handler.LoginRequest true "로그인 요청 정보"
// @Success      200 {object} handler.LoginSuccessResponse
// @Failure      400 {object} handler.ErrorResponse "잘못된 요청"
// @Failure      401 {object} handler.ErrorResponse "인증 실패"
// @Router       /admin/login [post]
func (h *Handler) Login(c *gin.Context) {
	var credentials LoginRequest
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	// " "으로 입력되는 케이스 방지
	if strings.TrimSpace(credentials.Username) == "" || credentials.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.tokens.Login(credentials.Username, credentials.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.logger.Error("Login(): failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginSuccessResponse{Token: token})
}

// ListRecords godoc
// @Summary      제출 목록 조회
// @Description  저장된 제출을 저장 순서대로 반환합니다. 새로고침은 같은 요청을 다시 보내면 됩니다.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "demo-requests 또는 call-requests"
// @Success      200 {object} handler.RecordsResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      404 {object} handler.ErrorResponse
// @Router       /admin/api/{collection} [get]
func (h *Handler) ListRecords(c *gin.Context) {
	view, ok := h.viewFor(c)
	if !ok {
		return
	}

	records, total := view.Records()
	c.JSON(http.StatusOK, RecordsResponse{
		Collection: view.Variant().ExportPrefix,
		Total:      total,
		Records:    records,
	})
}

// ExportJSON godoc
// @Summary      JSON 내보내기
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        collection path string true "demo-requests 또는 call-requests"
// @Success      200 {file} file "demo-requests-YYYY-MM-DD.json"
// @Failure      404 {object} handler.ErrorResponse
// @Router       /admin/api/{collection}/export.json [get]
func (h *Handler) ExportJSON(c *gin.Context) {
	view, ok := h.viewFor(c)
	if !ok {
		return
	}

	data, _, err := view.Export("json")
	if err != nil {
		h.logger.Error("ExportJSON(): export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export"})
		return
	}
	h.download(c, export.Filename(view.Variant().ExportPrefix, "json", h.now()), export.ContentTypeJSON, data)
}

// ExportCSV godoc
// @Summary      CSV 내보내기
// @Description  제출이 없으면 다운로드 없이 안내 메시지를 반환합니다.
// @Tags         Admin
// @Produce      text/csv
// @Security     BearerAuth
// @Param        collection path string true "demo-requests 또는 call-requests"
// @Success      200 {file} file "demo-requests-YYYY-MM-DD.csv"
// @Failure      404 {object} handler.ErrorResponse "내보낼 제출 없음"
// @Router       /admin/api/{collection}/export.csv [get]
func (h *Handler) ExportCSV(c *gin.Context) {
	view, ok := h.viewFor(c)
	if !ok {
		return
	}

	data, _, err := view.Export("csv")
	if errors.Is(err, export.ErrNothingToExport) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No " + strings.ReplaceAll(view.Variant().ExportPrefix, "-", " ") + " to export"})
		return
	}
	if err != nil {
		h.logger.Error("ExportCSV(): export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export"})
		return
	}
	h.download(c, export.Filename(view.Variant().ExportPrefix, "csv", h.now()), export.ContentTypeCSV, data)
}

// ClearRecords godoc
// @Summary      전체 삭제
// @Description  되돌릴 수 없는 작업이므로 `confirm=true`가 필요합니다. 삭제 전 JSON 스냅샷을 보관합니다.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        collection path  string true "demo-requests 또는 call-requests"
// @Param        confirm    query bool   true "삭제 확인"
// @Success      200 {object} handler.ClearResponse
// @Failure      400 {object} handler.ErrorResponse "확인 누락"
// @Failure      500 {object} handler.ErrorResponse
// @Router       /admin/api/{collection} [delete]
func (h *Handler) ClearRecords(c *gin.Context) {
	view, ok := h.viewFor(c)
	if !ok {
		return
	}

	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Confirmation required: this action cannot be undone, repeat with confirm=true"})
		return
	}

	prefix := view.Variant().ExportPrefix
	var (
		archivePath   string
		archiveFailed bool
	)
	var archive func([]byte) error
	if h.archiver != nil {
		archive = func(snapshot []byte) error {
			path, err := h.archiver.Save(prefix, "json", snapshot, h.now())
			if err != nil {
				archiveFailed = true
				return err
			}
			archivePath = path
			return nil
		}
	}

	cleared, err := view.Clear(func() bool { return true }, archive)
	if err != nil {
		if archiveFailed {
			h.logger.Error("ClearRecords(): snapshot failed, collection kept", zap.String("collection", prefix), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive records before clearing"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear records"})
		return
	}
	h.logger.Info("ClearRecords(): collection cleared",
		zap.String("collection", prefix),
		zap.String("by", c.GetString("username")),
		zap.String("archive", archivePath))
	c.JSON(http.StatusOK, ClearResponse{Cleared: cleared, Archive: archivePath})
}

// AdminPage godoc
// @Summary      관리자 패널 (HTML)
// @Tags         Admin
// @Produce      html
// @Description  유효한 토큰이 없으면 로그인 폼을 401과 함께 반환합니다.
// @Param        token query string false "JWT 토큰 (Header 사용 불가 시)"
// @Success      200 {string} string "HTML"
// @Failure      401 {string} string "로그인 폼 HTML"
// @Router       /admin [get]
func (h *Handler) AdminPage(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.HTML(http.StatusUnauthorized, "admin.tmpl", gin.H{"LoggedIn": false, "LoginError": ""})
		return
	}
	if _, err := h.tokens.ValidateToken(token); err != nil {
		c.HTML(http.StatusUnauthorized, "admin.tmpl", gin.H{"LoggedIn": false, "LoginError": "Session expired, please sign in again"})
		return
	}

	type section struct {
		Title   string
		Prefix  string
		Total   int
		Header  []string
		Rows    [][]string
		SubTime int
	}

	var sections []section
	for _, v := range h.registry.All() {
		view, ok := h.views[v.ExportPrefix]
		if !ok {
			continue
		}
		header, rows := view.Table()
		sections = append(sections, section{
			Title:   v.Name,
			Prefix:  v.ExportPrefix,
			Total:   len(rows),
			Header:  header,
			Rows:    rows,
			SubTime: len(header) - 1,
		})
	}

	c.HTML(http.StatusOK, "admin.tmpl", gin.H{
		"LoggedIn": true,
		"Sections": sections,
		"Token":    token,
	})
}

func (h *Handler) viewFor(c *gin.Context) (app.View, bool) {
	view, ok := h.views[c.Param("collection")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown collection"})
		return nil, false
	}
	return view, true
}

func (h *Handler) download(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
