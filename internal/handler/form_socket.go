/**
* Name: 			form_socket.go
* Description: 		폼 상태 머신을 WebSocket으로 노출
* Workflow: 		variant 검증 → 업그레이드 → update/submit/close 메시지 처리 → 상태 변경마다 push
 */
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"MedAI_LandingSite/internal/form"
	"MedAI_LandingSite/internal/variants"
)

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// 클라이언트 → 서버 메시지
type FormClientMessage struct {
	Type   string            `json:"type" example:"update"`
	Fields map[string]string `json:"fields,omitempty"`
}

// 서버 → 클라이언트 메시지
type FormServerMessage struct {
	Type      string            `json:"type" example:"state"`
	SessionID string            `json:"sessionId,omitempty"`
	Variant   string            `json:"variant,omitempty"`
	Form      *form.Snapshot    `json:"form,omitempty"`
	Error     string            `json:"error,omitempty"`
	Copy      *variants.Variant `json:"copy,omitempty"`
}

// HandleFormSession godoc
// @Summary      폼 세션 WebSocket 연결
// @Description  폼 상태 머신(idle → submitting → success → idle)을 실시간으로 구동합니다.
// @Description  <br>
// @Description  **참고: 이것은 표준 HTTP API가 아닙니다.**
// @Description  클라이언트는 `ws://` 또는 `wss://` 스킴으로 연결하고 `{"type":"update","fields":{...}}`, `{"type":"submit"}`, `{"type":"close"}` 메시지를 보냅니다.
// @Tags         WebSocket (Forms)
// @Param        variant query    string true "폼 종류 (demo 또는 call)"
// @Success      101     {string} string "101 Switching Protocols"
// @Failure      400     {object} handler.ErrorResponse "잘못된 variant"
// @Router       /ws/forms [get]
func (h *Handler) HandleFormSession(c *gin.Context) {
	variantKey := c.Query("variant")
	variant, err := h.registry.Get(variantKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form variant"})
		return
	}

	var submit form.SubmitFunc
	switch variant.Key {
	case variants.Demo:
		submit = h.submitter.DemoForm()
	case variants.Call:
		submit = h.submitter.CallForm()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form variant"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("HandleFormSession(): failed to upgrade to WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	h.manageFormSession(conn, variant, submit)
}

func (h *Handler) manageFormSession(conn *websocket.Conn, variant variants.Variant, submit form.SubmitFunc) {
	sessionID := uuid.NewString()
	logger := h.logger.With(zap.String("session", sessionID), zap.String("variant", variant.Key))
	logger.Info("Form session started")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan FormServerMessage, 8)
	writerDone := make(chan struct{})

	// 연결에 쓰는 goroutine은 하나만 둔다
	go func() {
		defer close(writerDone)
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-out:
				if err := conn.WriteJSON(msg); err != nil {
					logger.Warn("manageFormSession(): write failed", zap.Error(err))
					cancel()
					return
				}
			}
		}
	}()

	send := func(msg FormServerMessage) {
		select {
		case out <- msg:
		case <-ctx.Done():
		}
	}

	machine := form.NewMachine(submit, h.resetDelay)
	machine.OnChange(func(snap form.Snapshot) {
		send(FormServerMessage{Type: "state", Form: &snap})
	})

	initial := machine.Snapshot()
	send(FormServerMessage{
		Type:      "session",
		SessionID: sessionID,
		Variant:   variant.Key,
		Form:      &initial,
		Copy:      &variant,
	})

ReadLoop:
	for {
		var msg FormClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("manageFormSession(): read ended", zap.Error(err))
			}
			break ReadLoop
		}

		switch msg.Type {
		case "update":
			if err := machine.Update(msg.Fields); err != nil {
				send(FormServerMessage{Type: "error", Error: err.Error()})
			}
		case "submit":
			if msg.Fields != nil {
				if err := machine.Update(msg.Fields); err != nil {
					send(FormServerMessage{Type: "error", Error: err.Error()})
					continue
				}
			}
			if _, err := machine.Submit(ctx); err != nil && errors.Is(err, form.ErrBusy) {
				send(FormServerMessage{Type: "error", Error: err.Error()})
			}
		case "close":
			break ReadLoop
		default:
			send(FormServerMessage{Type: "error", Error: "unsupported message type: " + msg.Type})
		}
	}

	machine.Close()
	cancel()
	<-writerDone
	logger.Info("Form session ended")
}
