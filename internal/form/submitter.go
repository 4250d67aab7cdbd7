package form

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"MedAI_LandingSite/internal/models"
	"MedAI_LandingSite/internal/storage"
)

// JS Date.toISOString과 같은 형식
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Relay forwards a stored submission to the external form endpoint.
type Relay interface {
	SendDemoRequest(ctx context.Context, r models.SubmissionRecord) (map[string]any, error)
	SendCallRequest(ctx context.Context, r models.CallRequestRecord) (map[string]any, error)
}

type SubmitterConfig struct {
	Demo  *storage.Collection[models.SubmissionRecord]
	Calls *storage.Collection[models.CallRequestRecord]

	// Relay is optional; nil disables forwarding.
	Relay        Relay
	RelayTimeout time.Duration

	// SubmitDelay is held after the record is stored, before Submit returns.
	SubmitDelay time.Duration

	Now    func() time.Time
	NewID  func() string
	Logger *zap.Logger
}

// Submitter validates form input, stores the resulting record and hands it to
// the relay in the background. Local storage is the source of truth: relay
// failures are logged and never surface to the caller.
type Submitter struct {
	cfg    SubmitterConfig
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewSubmitter(cfg SubmitterConfig) *Submitter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = newRecordID
	}
	if cfg.RelayTimeout <= 0 {
		cfg.RelayTimeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Submitter{cfg: cfg, logger: cfg.Logger}
}

func (s *Submitter) SubmitDemo(ctx context.Context, in DemoInput) (models.SubmissionRecord, error) {
	in.normalize()
	if err := validateInput(&in); err != nil {
		return models.SubmissionRecord{}, err
	}

	record := models.SubmissionRecord{
		ID:          s.cfg.NewID(),
		Name:        in.Name,
		Email:       in.Email,
		Date:        in.Date,
		Time:        in.Time,
		Practice:    in.Practice,
		Phone:       in.Phone,
		SubmittedAt: s.cfg.Now().UTC().Format(isoLayout),
	}
	s.logger.Info("SubmitDemo(): demo request submission", zap.String("id", record.ID), zap.String("practice", record.Practice))

	if err := s.cfg.Demo.Append(record); err != nil {
		s.logger.Warn("SubmitDemo(): record not persisted", zap.String("id", record.ID), zap.Error(err))
	}

	if s.cfg.Relay != nil {
		s.launchRelay(record.ID, func(ctx context.Context) (map[string]any, error) {
			return s.cfg.Relay.SendDemoRequest(ctx, record)
		})
	}

	s.hold(ctx)
	return record, nil
}

func (s *Submitter) SubmitCall(ctx context.Context, in CallInput) (models.CallRequestRecord, error) {
	in.normalize()
	if err := validateInput(&in); err != nil {
		return models.CallRequestRecord{}, err
	}

	record := models.CallRequestRecord{
		ID:            s.cfg.NewID(),
		Name:          in.Name,
		Phone:         in.Phone,
		Practice:      in.Practice,
		PreferredTime: in.PreferredTime,
		Urgency:       in.Urgency,
		SubmittedAt:   s.cfg.Now().UTC().Format(isoLayout),
	}
	s.logger.Info("SubmitCall(): call request submission", zap.String("id", record.ID), zap.String("urgency", record.Urgency))

	if err := s.cfg.Calls.Append(record); err != nil {
		s.logger.Warn("SubmitCall(): record not persisted", zap.String("id", record.ID), zap.Error(err))
	}

	if s.cfg.Relay != nil {
		s.launchRelay(record.ID, func(ctx context.Context) (map[string]any, error) {
			return s.cfg.Relay.SendCallRequest(ctx, record)
		})
	}

	s.hold(ctx)
	return record, nil
}

// Wait blocks until every in-flight relay task finished or ctx is done.
func (s *Submitter) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// 요청 컨텍스트와 분리된 일회성 작업, 재시도 없음
func (s *Submitter) launchRelay(id string, send func(ctx context.Context) (map[string]any, error)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RelayTimeout)
		defer cancel()

		result, err := send(ctx)
		if err != nil {
			s.logger.Warn("relay delivery failed", zap.String("id", id), zap.Error(err))
			return
		}
		s.logger.Info("relay delivery succeeded", zap.String("id", id), zap.Any("response", result))
	}()
}

func (s *Submitter) hold(ctx context.Context) {
	if s.cfg.SubmitDelay <= 0 {
		return
	}
	t := time.NewTimer(s.cfg.SubmitDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func newRecordID() string {
	return uuid.Must(uuid.NewV7()).String()
}
