package form

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"MedAI_LandingSite/internal/models"
	"MedAI_LandingSite/internal/relay"
	"MedAI_LandingSite/internal/storage"
)

type fakeRelay struct {
	mu    sync.Mutex
	demo  []models.SubmissionRecord
	calls []models.CallRequestRecord
	err   error
}

func (f *fakeRelay) SendDemoRequest(_ context.Context, r models.SubmissionRecord) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.demo = append(f.demo, r)
	return map[string]any{"ok": f.err == nil}, f.err
}

func (f *fakeRelay) SendCallRequest(_ context.Context, r models.CallRequestRecord) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r)
	return map[string]any{"ok": f.err == nil}, f.err
}

type fixture struct {
	submitter *Submitter
	demo      *storage.Collection[models.SubmissionRecord]
	calls     *storage.Collection[models.CallRequestRecord]
}

func newFixture(t *testing.T, r Relay, mutate func(*SubmitterConfig)) fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	kv := storage.NewMemoryKV()
	cfg := SubmitterConfig{
		Demo:   storage.NewCollection[models.SubmissionRecord](kv, "demoRequests", logger),
		Calls:  storage.NewCollection[models.CallRequestRecord](kv, "callRequests", logger),
		Relay:  r,
		Logger: logger,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return fixture{submitter: NewSubmitter(cfg), demo: cfg.Demo, calls: cfg.Calls}
}

func johnSmith() DemoInput {
	return DemoInput{
		Name:     "Dr. John Smith",
		Email:    "john@x.nl",
		Date:     "2025-03-01",
		Time:     "10:00",
		Practice: "Amsterdam Medical Center",
		Phone:    "+31201234567",
	}
}

func TestSubmitDemo_StoresTimestampedRecord(t *testing.T) {
	fx := newFixture(t, nil, nil)

	before := time.Now().UTC().Truncate(time.Millisecond)
	record, err := fx.submitter.SubmitDemo(context.Background(), johnSmith())
	require.NoError(t, err)

	records := fx.demo.ReadAll()
	require.Len(t, records, 1)
	assert.Equal(t, record, records[0])
	assert.Equal(t, "Dr. John Smith", record.Name)
	assert.NotEmpty(t, record.ID)

	submittedAt, err := time.Parse(time.RFC3339Nano, record.SubmittedAt)
	require.NoError(t, err)
	assert.False(t, submittedAt.Before(before), "submittedAt %s is before %s", submittedAt, before)
	assert.Equal(t, "Z", record.SubmittedAt[len(record.SubmittedAt)-1:])
}

func TestSubmitDemo_UniqueIDsInOrder(t *testing.T) {
	fx := newFixture(t, nil, nil)

	const n = 50
	for i := 0; i < n; i++ {
		_, err := fx.submitter.SubmitDemo(context.Background(), johnSmith())
		require.NoError(t, err)
	}

	records := fx.demo.ReadAll()
	require.Len(t, records, n)
	seen := make(map[string]bool, n)
	for i, r := range records {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
		if i > 0 {
			// uuid v7 ids sort by creation time
			assert.Less(t, records[i-1].ID, r.ID)
		}
	}
}

func TestSubmitDemo_TrimsInput(t *testing.T) {
	fx := newFixture(t, nil, nil)
	in := johnSmith()
	in.Name = "  Dr. John Smith  "

	record, err := fx.submitter.SubmitDemo(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Dr. John Smith", record.Name)
}

func TestSubmitDemo_ValidationBlocksSubmission(t *testing.T) {
	fx := newFixture(t, nil, nil)

	_, err := fx.submitter.SubmitDemo(context.Background(), DemoInput{Name: "   ", Email: "not-an-email", Date: "2025-03-01"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name is required", ve.Fields["name"])
	assert.Equal(t, "email must be a valid email address", ve.Fields["email"])
	assert.Equal(t, "time is required", ve.Fields["time"])
	assert.NotContains(t, ve.Fields, "date")
	assert.NotContains(t, ve.Fields, "practice")

	assert.Empty(t, fx.demo.ReadAll())
}

func TestSubmitCall_DefaultsAndOptions(t *testing.T) {
	fx := newFixture(t, nil, nil)

	record, err := fx.submitter.SubmitCall(context.Background(), CallInput{Name: "Dr. Jansen", Phone: "+31 20 123 4567"})
	require.NoError(t, err)
	assert.Equal(t, "general", record.Urgency)
	assert.Len(t, fx.calls.ReadAll(), 1)
	assert.Empty(t, fx.demo.ReadAll())

	_, err = fx.submitter.SubmitCall(context.Background(), CallInput{Name: "Dr. Jansen", Phone: "+31", Urgency: "whenever"})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = fx.submitter.SubmitCall(context.Background(), CallInput{Name: "Dr. Jansen"})
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Len(t, fx.calls.ReadAll(), 1)
}

func TestSubmit_RelaysInBackground(t *testing.T) {
	defer goleak.VerifyNone(t)

	fr := &fakeRelay{}
	fx := newFixture(t, fr, nil)

	demo, err := fx.submitter.SubmitDemo(context.Background(), johnSmith())
	require.NoError(t, err)
	call, err := fx.submitter.SubmitCall(context.Background(), CallInput{Name: "Dr. Jansen", Phone: "+31"})
	require.NoError(t, err)

	require.NoError(t, fx.submitter.Wait(context.Background()))

	fr.mu.Lock()
	defer fr.mu.Unlock()
	require.Len(t, fr.demo, 1)
	require.Len(t, fr.calls, 1)
	assert.Equal(t, demo, fr.demo[0])
	assert.Equal(t, call, fr.calls[0])
}

func TestSubmit_RelayFailureKeepsLocalRecord(t *testing.T) {
	defer goleak.VerifyNone(t)

	fx := newFixture(t, &fakeRelay{err: errors.New("relay down")}, nil)

	_, err := fx.submitter.SubmitDemo(context.Background(), johnSmith())
	require.NoError(t, err)
	require.NoError(t, fx.submitter.Wait(context.Background()))
	assert.Len(t, fx.demo.ReadAll(), 1)
}

func TestSubmit_RelayHTTP500(t *testing.T) {
	hits := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- struct{}{}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	fx := newFixture(t, relay.NewClient(srv.URL, time.Second, nil), nil)

	before := len(fx.demo.ReadAll())
	_, err := fx.submitter.SubmitDemo(context.Background(), johnSmith())
	require.NoError(t, err)
	assert.Equal(t, before+1, len(fx.demo.ReadAll()))

	require.NoError(t, fx.submitter.Wait(context.Background()))
	select {
	case <-hits:
	default:
		t.Fatal("relay endpoint was never called")
	}
}

func TestSubmit_StorageFailureStillSucceeds(t *testing.T) {
	fx := newFixture(t, nil, func(cfg *SubmitterConfig) {
		cfg.Demo = storage.NewCollection[models.SubmissionRecord](failingKV{}, "demoRequests", cfg.Logger)
	})

	record, err := fx.submitter.SubmitDemo(context.Background(), johnSmith())
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
}

func TestSubmit_DelayHonoursContext(t *testing.T) {
	fx := newFixture(t, nil, func(cfg *SubmitterConfig) {
		cfg.SubmitDelay = time.Hour
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := fx.submitter.SubmitDemo(ctx, johnSmith())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Minute)
	assert.Len(t, fx.demo.ReadAll(), 1)
}

func TestWait_RespectsDeadline(t *testing.T) {
	fx := newFixture(t, nil, nil)
	release := make(chan struct{})
	fx.submitter.launchRelay("slow", func(ctx context.Context) (map[string]any, error) {
		<-release
		return nil, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, fx.submitter.Wait(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, fx.submitter.Wait(context.Background()))
}

type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("unavailable") }
func (failingKV) Set(string, string) error          { return errors.New("quota exceeded") }
func (failingKV) Delete(string) error               { return errors.New("unavailable") }
