/**
* Name: 			client.go
* Description: 		외부 폼 릴레이(Formspree 등) 전송 클라이언트
* Workflow: 		레코드 -> 릴레이 payload 변환, POST, 응답 확인
 */

package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"MedAI_LandingSite/internal/models"
)

// 릴레이 provider가 보여주는 submittedAt 형식
const displayTimeLayout = "1/2/2006, 3:04:05 PM"

var ErrRelayStatus = errors.New("relay responded with non-2xx status")

// Payload is the JSON body the relay provider turns into an email.
type Payload struct {
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone"`
	Practice      string `json:"practice"`
	PreferredDate string `json:"preferredDate,omitempty"`
	PreferredTime string `json:"preferredTime,omitempty"`
	Urgency       string `json:"urgency,omitempty"`
	SubmittedAt   string `json:"submittedAt"`
	Message       string `json:"message"`
	Subject       string `json:"_subject"`
	ReplyTo       string `json:"_replyto,omitempty"`
	Template      string `json:"_template"`
}

type Client struct {
	url        string
	httpClient *http.Client
	location   *time.Location
}

func NewClient(url string, timeout time.Duration, loc *time.Location) *Client {
	if loc == nil {
		loc = time.UTC
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		location:   loc,
	}
}

func (c *Client) SendDemoRequest(ctx context.Context, r models.SubmissionRecord) (map[string]any, error) {
	return c.post(ctx, DemoPayload(r, c.location))
}

func (c *Client) SendCallRequest(ctx context.Context, r models.CallRequestRecord) (map[string]any, error) {
	return c.post(ctx, CallPayload(r, c.location))
}

func DemoPayload(r models.SubmissionRecord, loc *time.Location) Payload {
	return Payload{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Practice:      r.Practice,
		PreferredDate: r.Date,
		PreferredTime: r.Time,
		SubmittedAt:   displayTime(r.SubmittedAt, loc),
		Message: fmt.Sprintf("New demo request from %s at %s. They would like to schedule a demo on %s at %s.",
			r.Name, r.Practice, r.Date, r.Time),
		Subject:  fmt.Sprintf("New Demo Request from %s - %s", r.Name, r.Practice),
		ReplyTo:  r.Email,
		Template: "box",
	}
}

func CallPayload(r models.CallRequestRecord, loc *time.Location) Payload {
	when := r.PreferredTime
	if when == "" {
		when = "any time"
	}
	return Payload{
		Name:          r.Name,
		Phone:         r.Phone,
		Practice:      r.Practice,
		PreferredTime: r.PreferredTime,
		Urgency:       r.Urgency,
		SubmittedAt:   displayTime(r.SubmittedAt, loc),
		Message: fmt.Sprintf("New call-back request from %s at %s (%s). Best time to call: %s.",
			r.Name, r.Practice, r.Urgency, when),
		Subject:  fmt.Sprintf("New Call Request from %s - %s", r.Name, r.Practice),
		Template: "box",
	}
}

func (c *Client) post(ctx context.Context, payload Payload) (map[string]any, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrRelayStatus, resp.Status)
	}

	var result map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode relay response: %w", err)
	}
	return result, nil
}

func displayTime(submittedAt string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339Nano, submittedAt)
	if err != nil {
		return submittedAt
	}
	return t.In(loc).Format(displayTimeLayout)
}
