package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/edgard/agrobot/internal/database"
	"github.com/edgard/agrobot/internal/i18n"
	"github.com/edgard/agrobot/internal/session"
	"github.com/edgard/agrobot/internal/vision"
	"github.com/edgard/agrobot/internal/weather"
)

// memStore is an in-memory session.Store for router tests.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]session.Session)}
}

func (m *memStore) Get(userID string) session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return session.Session{Language: i18n.Default}
	}
	return s
}

func (m *memStore) Update(userID string, fn func(*session.Session)) session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = session.Session{Language: i18n.Default}
	}
	fn(&s)
	m.sessions[userID] = s
	return s
}

func (m *memStore) set(userID string, s session.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
}

// fakeAI implements ai.Client with per-method hooks. A nil hook means the
// test does not expect that call.
type fakeAI struct {
	leafCheck        func(context.Context, []byte) (bool, error)
	topicAllowed     func(context.Context, string) (bool, error)
	normalizeCrop    func(context.Context, string, []string) (string, error)
	diagnoseImage    func(context.Context, []byte, string, i18n.Lang) (string, error)
	explainDiagnosis func(context.Context, string, string, float64, i18n.Lang) (string, error)
	rewrite          func(context.Context, string, i18n.Lang) (string, error)
}

func (f *fakeAI) LeafCheck(ctx context.Context, image []byte) (bool, error) {
	if f.leafCheck == nil {
		return false, errors.New("unexpected LeafCheck call")
	}
	return f.leafCheck(ctx, image)
}

func (f *fakeAI) TopicAllowed(ctx context.Context, text string) (bool, error) {
	if f.topicAllowed == nil {
		return false, errors.New("unexpected TopicAllowed call")
	}
	return f.topicAllowed(ctx, text)
}

func (f *fakeAI) NormalizeCrop(ctx context.Context, raw string, allowed []string) (string, error) {
	if f.normalizeCrop == nil {
		return "", errors.New("unexpected NormalizeCrop call")
	}
	return f.normalizeCrop(ctx, raw, allowed)
}

func (f *fakeAI) DiagnoseImage(ctx context.Context, image []byte, crop string, lang i18n.Lang) (string, error) {
	if f.diagnoseImage == nil {
		return "", errors.New("unexpected DiagnoseImage call")
	}
	return f.diagnoseImage(ctx, image, crop, lang)
}

func (f *fakeAI) ExplainDiagnosis(ctx context.Context, crop, disease string, confidence float64, lang i18n.Lang) (string, error) {
	if f.explainDiagnosis == nil {
		return "", errors.New("unexpected ExplainDiagnosis call")
	}
	return f.explainDiagnosis(ctx, crop, disease, confidence, lang)
}

func (f *fakeAI) Rewrite(ctx context.Context, text string, lang i18n.Lang) (string, error) {
	if f.rewrite == nil {
		return "", errors.New("unexpected Rewrite call")
	}
	return f.rewrite(ctx, text, lang)
}

// fakeWeather implements weather.Client.
type fakeWeather struct {
	forecast *weather.Forecast
	err      error
	gotDays  int
}

func (f *fakeWeather) Forecast(ctx context.Context, lat, lon float64, days int) (*weather.Forecast, error) {
	f.gotDays = days
	if f.err != nil {
		return nil, f.err
	}
	return f.forecast, nil
}

// fakeDB implements database.Store, recording writes.
type fakeDB struct {
	reports   []database.Report
	diagnoses []database.DiagnosisRecord
	saveErr   error
}

func (f *fakeDB) Ping(ctx context.Context) error { return nil }

func (f *fakeDB) SaveReport(ctx context.Context, report *database.Report) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.reports = append(f.reports, *report)
	return nil
}

func (f *fakeDB) GetReportsByUser(ctx context.Context, userID string, limit int) ([]database.Report, error) {
	return f.reports, nil
}

func (f *fakeDB) SaveDiagnosis(ctx context.Context, record *database.DiagnosisRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.diagnoses = append(f.diagnoses, *record)
	return nil
}

func (f *fakeDB) GetDiagnosesByUser(ctx context.Context, userID string, limit int) ([]database.DiagnosisRecord, error) {
	return f.diagnoses, nil
}

func (f *fakeDB) RunSQLMaintenance(ctx context.Context) error { return nil }

// fakeClassifier implements Classifier.
type fakeClassifier struct {
	result vision.Result
	err    error
	called bool
}

func (f *fakeClassifier) Classify(data []byte) (vision.Result, error) {
	f.called = true
	if f.err != nil {
		return vision.Result{}, f.err
	}
	return f.result, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(sessions session.Store, db database.Store, aiClient *fakeAI, wc weather.Client, cls Classifier) *Router {
	return New(Deps{
		Logger:         discardLogger(),
		Sessions:       sessions,
		Store:          db,
		AI:             aiClient,
		Weather:        wc,
		Classifier:     cls,
		GatewayTimeout: 5 * time.Second,
	})
}

func menuText(key string) string {
	return i18n.T(i18n.Default, key)
}

func TestSendPhotoIntentStartsCropFlow(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{Language: i18n.Default, CropName: "stale"})
	r := newTestRouter(sessions, &fakeDB{}, &fakeAI{}, &fakeWeather{}, nil)

	replies := r.HandleText(context.Background(), "u1", "📸 "+menuText("send_photo"))

	if len(replies) != 1 || replies[0].Text != menuText("ask_crop_name_first") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	got := sessions.Get("u1")
	if got.PendingStep != session.StepAwaitingCrop {
		t.Errorf("step = %q, want %q", got.PendingStep, session.StepAwaitingCrop)
	}
	if got.CropName != "" {
		t.Errorf("stale crop name not cleared: %q", got.CropName)
	}
}

func TestCropInputNormalizesViaGateway(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{Language: i18n.Default, PendingStep: session.StepAwaitingCrop})
	aiClient := &fakeAI{
		normalizeCrop: func(_ context.Context, raw string, allowed []string) (string, error) {
			if raw != "tomatoo" {
				t.Errorf("NormalizeCrop got %q, want %q", raw, "tomatoo")
			}
			if len(allowed) == 0 {
				t.Error("NormalizeCrop got empty allowed list")
			}
			return "tomato", nil
		},
	}
	r := newTestRouter(sessions, &fakeDB{}, aiClient, &fakeWeather{}, nil)

	replies := r.HandleText(context.Background(), "u1", "Tomatoo")

	if len(replies) != 1 || replies[0].Text != menuText("send_photo_now") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	got := sessions.Get("u1")
	if got.CropName != "tomato" {
		t.Errorf("crop name = %q, want %q", got.CropName, "tomato")
	}
	if got.PendingStep != session.StepNone {
		t.Errorf("step = %q, want none", got.PendingStep)
	}
}

func TestCropInputUnmatchedKeepsUserText(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{Language: i18n.Default, PendingStep: session.StepAwaitingCrop})
	aiClient := &fakeAI{
		normalizeCrop: func(context.Context, string, []string) (string, error) { return "", nil },
	}
	r := newTestRouter(sessions, &fakeDB{}, aiClient, &fakeWeather{}, nil)

	r.HandleText(context.Background(), "u1", "Wheat")

	if got := sessions.Get("u1").CropName; got != "wheat" {
		t.Errorf("crop name = %q, want %q", got, "wheat")
	}
}

func TestCropInputGatewayErrorKeepsState(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{Language: i18n.Default, PendingStep: session.StepAwaitingCrop})
	aiClient := &fakeAI{
		normalizeCrop: func(context.Context, string, []string) (string, error) {
			return "", errors.New("gateway down")
		},
	}
	r := newTestRouter(sessions, &fakeDB{}, aiClient, &fakeWeather{}, nil)

	replies := r.HandleText(context.Background(), "u1", "tomato")

	if len(replies) != 1 || replies[0].Text != menuText("general_error") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	got := sessions.Get("u1")
	if got.PendingStep != session.StepAwaitingCrop || got.CropName != "" {
		t.Errorf("state changed on gateway error: %+v", got)
	}
}

func TestPhotoWithoutCropNameIsRejected(t *testing.T) {
	sessions := newMemStore()
	r := newTestRouter(sessions, &fakeDB{}, &fakeAI{}, &fakeWeather{}, nil)

	replies := r.HandlePhoto(context.Background(), "u1", []byte("img"))

	if len(replies) != 1 || replies[0].Text != menuText("please_type_crop") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
}

func TestPhotoLocalDiagnosis(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{Language: i18n.Default, CropName: "tomato"})
	db := &fakeDB{}
	cls := &fakeClassifier{result: vision.Result{
		RawLabel:   "Tomato___Early_blight",
		Crop:       "Tomato",
		Disease:    "Early Blight",
		Confidence: 97.31,
	}}
	aiClient := &fakeAI{
		leafCheck: func(context.Context, []byte) (bool, error) { return true, nil },
		explainDiagnosis: func(_ context.Context, crop, disease string, confidence float64, _ i18n.Lang) (string, error) {
			if disease != "Early Blight" || confidence != 97.31 {
				t.Errorf("ExplainDiagnosis got (%q, %v)", disease, confidence)
			}
			return "treatment advice", nil
		},
	}
	r := newTestRouter(sessions, db, aiClient, &fakeWeather{}, cls)

	replies := r.HandlePhoto(context.Background(), "u1", []byte("img"))

	if len(replies) != 1 || replies[0].Text != "treatment advice" {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	if !cls.called {
		t.Error("classifier was not called for supported crop")
	}
	if len(db.diagnoses) != 1 || db.diagnoses[0].Disease != "Early Blight" {
		t.Errorf("diagnosis history = %+v", db.diagnoses)
	}
	got := sessions.Get("u1")
	if got.CropName != "" {
		t.Error("crop name must be consumed by the photo")
	}
	if got.LastDiagnosis == nil || got.LastDiagnosis.ConfidenceText != "97.31%" {
		t.Errorf("last diagnosis = %+v", got.LastDiagnosis)
	}
}

func TestPhotoNotLeafClearsCropName(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{Language: i18n.Default, CropName: "tomato"})
	aiClient := &fakeAI{
		leafCheck: func(context.Context, []byte) (bool, error) { return false, nil },
	}
	r := newTestRouter(sessions, &fakeDB{}, aiClient, &fakeWeather{}, &fakeClassifier{})

	replies := r.HandlePhoto(context.Background(), "u1", []byte("img"))

	if len(replies) != 1 || replies[0].Text != menuText("not_leaf") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	if got := sessions.Get("u1").CropName; got != "" {
		t.Errorf("crop name = %q, want cleared", got)
	}
}

func TestPhotoUnsupportedCropUsesVisionGateway(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{Language: i18n.Default, CropName: "wheat"})
	cls := &fakeClassifier{}
	aiClient := &fakeAI{
		leafCheck: func(context.Context, []byte) (bool, error) { return true, nil },
		diagnoseImage: func(_ context.Context, _ []byte, crop string, _ i18n.Lang) (string, error) {
			if crop != "wheat" {
				t.Errorf("DiagnoseImage got crop %q", crop)
			}
			return "raw diagnosis", nil
		},
		rewrite: func(_ context.Context, text string, _ i18n.Lang) (string, error) {
			return "clean: " + text, nil
		},
	}
	r := newTestRouter(sessions, &fakeDB{}, aiClient, &fakeWeather{}, cls)

	replies := r.HandlePhoto(context.Background(), "u1", []byte("img"))

	if len(replies) != 1 || replies[0].Text != "clean: raw diagnosis" {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	if cls.called {
		t.Error("local classifier must not run for unsupported crops")
	}
	if got := sessions.Get("u1").CropName; got != "" {
		t.Errorf("crop name = %q, want cleared", got)
	}
}

func TestPhotoDecodeErrorKeepsCropName(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{Language: i18n.Default, CropName: "tomato"})
	cls := &fakeClassifier{err: fmt.Errorf("decode: %w", vision.ErrDecode)}
	aiClient := &fakeAI{
		leafCheck: func(context.Context, []byte) (bool, error) { return true, nil },
	}
	r := newTestRouter(sessions, &fakeDB{}, aiClient, &fakeWeather{}, cls)

	replies := r.HandlePhoto(context.Background(), "u1", []byte("img"))

	if len(replies) != 1 || replies[0].Text != menuText("not_valid_image") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	if got := sessions.Get("u1").CropName; got != "tomato" {
		t.Errorf("crop name = %q, want retained so the user can retry", got)
	}
}

func TestWeatherIntentWithoutLocation(t *testing.T) {
	sessions := newMemStore()
	r := newTestRouter(sessions, &fakeDB{}, &fakeAI{}, &fakeWeather{}, nil)

	replies := r.HandleText(context.Background(), "u1", "🌦 "+menuText("weather"))

	if len(replies) != 1 || replies[0].Text != menuText("location_not_set") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	if got := sessions.Get("u1").PendingStep; got != session.StepNone {
		t.Errorf("step = %q, want none", got)
	}
}

func TestWeatherFlow(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{
		Language: i18n.Default,
		Location: &session.Location{Lat: 41.3, Lon: 69.2},
	})
	wc := &fakeWeather{forecast: &weather.Forecast{Days: []weather.Day{
		{Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Code: 0, TempMax: 30, TempMin: 18, WindMax: 10},
	}}}
	r := newTestRouter(sessions, &fakeDB{}, &fakeAI{}, wc, nil)

	replies := r.HandleText(context.Background(), "u1", "🌦 "+menuText("weather"))
	if len(replies) != 1 || replies[0].Keyboard != KeyboardWeatherDays {
		t.Fatalf("unexpected replies after weather intent: %+v", replies)
	}
	if got := sessions.Get("u1").PendingStep; got != session.StepAwaitingWeatherDays {
		t.Fatalf("step = %q, want %q", got, session.StepAwaitingWeatherDays)
	}

	replies = r.HandleText(context.Background(), "u1", "5️⃣ "+menuText("weather_5"))
	if wc.gotDays != 5 {
		t.Errorf("forecast requested for %d days, want 5", wc.gotDays)
	}
	if len(replies) != 1 || !strings.Contains(replies[0].Text, "01/06") {
		t.Fatalf("unexpected forecast reply: %+v", replies)
	}
	if got := sessions.Get("u1").PendingStep; got != session.StepNone {
		t.Errorf("step = %q, want none after forecast", got)
	}
}

// The English 15-day caption ends with the 5-day caption, so the matcher
// must prefer the longer one.
func TestWeatherFifteenDaysNotMistakenForFive(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{
		Language:    i18n.Default,
		PendingStep: session.StepAwaitingWeatherDays,
		Location:    &session.Location{Lat: 41.3, Lon: 69.2},
	})
	wc := &fakeWeather{forecast: &weather.Forecast{Days: []weather.Day{{Date: time.Now()}}}}
	r := newTestRouter(sessions, &fakeDB{}, &fakeAI{}, wc, nil)

	r.HandleText(context.Background(), "u1", "1️⃣5️⃣ "+menuText("weather_15"))

	if wc.gotDays != 15 {
		t.Errorf("forecast requested for %d days, want 15", wc.gotDays)
	}
}

func TestWeatherDaysUnrecognizedInputIsSilent(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{
		Language:    i18n.Default,
		PendingStep: session.StepAwaitingWeatherDays,
		Location:    &session.Location{Lat: 41.3, Lon: 69.2},
	})
	r := newTestRouter(sessions, &fakeDB{}, &fakeAI{}, &fakeWeather{}, nil)

	replies := r.HandleText(context.Background(), "u1", "hello there")

	if replies != nil {
		t.Fatalf("expected no reply, got %+v", replies)
	}
	if got := sessions.Get("u1").PendingStep; got != session.StepAwaitingWeatherDays {
		t.Errorf("step = %q, want unchanged", got)
	}
}

func TestWeatherGatewayError(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{
		Language:    i18n.Default,
		PendingStep: session.StepAwaitingWeatherDays,
		Location:    &session.Location{Lat: 41.3, Lon: 69.2},
	})
	wc := &fakeWeather{err: errors.New("open-meteo unreachable")}
	r := newTestRouter(sessions, &fakeDB{}, &fakeAI{}, wc, nil)

	replies := r.HandleText(context.Background(), "u1", "🔟 "+menuText("weather_10"))

	if len(replies) != 1 || replies[0].Text != menuText("weather_error") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	if got := sessions.Get("u1").PendingStep; got != session.StepNone {
		t.Errorf("step = %q, want none", got)
	}
}

func TestReportFlowPersistsVerbatim(t *testing.T) {
	sessions := newMemStore()
	db := &fakeDB{}
	r := newTestRouter(sessions, db, &fakeAI{}, &fakeWeather{}, nil)

	r.HandleText(context.Background(), "u1", "🛠 "+menuText("report"))
	if got := sessions.Get("u1").PendingStep; got != session.StepAwaitingReport {
		t.Fatalf("step = %q, want %q", got, session.StepAwaitingReport)
	}

	const content = "  the bot mixed up two diseases  "
	replies := r.HandleText(context.Background(), "u1", content)

	if len(replies) != 1 || replies[0].Text != menuText("report_success") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	if len(db.reports) != 1 || db.reports[0].Content != content {
		t.Errorf("stored reports = %+v, want verbatim content", db.reports)
	}
	if got := sessions.Get("u1").PendingStep; got != session.StepNone {
		t.Errorf("step = %q, want none", got)
	}
}

func TestReportPersistenceErrorKeepsState(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{Language: i18n.Default, PendingStep: session.StepAwaitingReport})
	db := &fakeDB{saveErr: errors.New("disk full")}
	r := newTestRouter(sessions, db, &fakeAI{}, &fakeWeather{}, nil)

	replies := r.HandleText(context.Background(), "u1", "something broke")

	if len(replies) != 1 || replies[0].Text != menuText("general_error") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	if got := sessions.Get("u1").PendingStep; got != session.StepAwaitingReport {
		t.Errorf("step = %q, want unchanged so the user can retry", got)
	}
}

func TestFreeTextTopicGuard(t *testing.T) {
	sessions := newMemStore()
	aiClient := &fakeAI{
		topicAllowed: func(context.Context, string) (bool, error) { return false, nil },
	}
	r := newTestRouter(sessions, &fakeDB{}, aiClient, &fakeWeather{}, nil)

	replies := r.HandleText(context.Background(), "u1", "what is the capital of France")

	if len(replies) != 1 || replies[0].Text != menuText("topic_not_allowed") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
}

func TestFreeTextAllowedTopicIsAnswered(t *testing.T) {
	sessions := newMemStore()
	aiClient := &fakeAI{
		topicAllowed: func(context.Context, string) (bool, error) { return true, nil },
		rewrite: func(_ context.Context, text string, _ i18n.Lang) (string, error) {
			return "answer about aphids", nil
		},
	}
	r := newTestRouter(sessions, &fakeDB{}, aiClient, &fakeWeather{}, nil)

	replies := r.HandleText(context.Background(), "u1", "how do I treat aphids on apple trees")

	if len(replies) != 1 || replies[0].Text != "answer about aphids" {
		t.Fatalf("unexpected replies: %+v", replies)
	}
}

// Menu buttons outrank pending-step text capture: a user stuck in the
// report flow can still press the weather button.
func TestMenuButtonOutranksPendingStep(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{Language: i18n.Default, PendingStep: session.StepAwaitingReport})
	db := &fakeDB{}
	r := newTestRouter(sessions, db, &fakeAI{}, &fakeWeather{}, nil)

	replies := r.HandleText(context.Background(), "u1", "🌦 "+menuText("weather"))

	if len(replies) != 1 || replies[0].Text != menuText("location_not_set") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	if len(db.reports) != 0 {
		t.Errorf("button press recorded as report: %+v", db.reports)
	}
}

func TestLanguageSelection(t *testing.T) {
	var caption string
	for c, lang := range i18n.LanguageButtons {
		if lang == i18n.LangRussian {
			caption = c
			break
		}
	}
	if caption == "" {
		t.Fatal("no russian language button registered")
	}

	sessions := newMemStore()
	r := newTestRouter(sessions, &fakeDB{}, &fakeAI{}, &fakeWeather{}, nil)

	replies := r.HandleText(context.Background(), "u1", caption)

	if len(replies) != 1 || replies[0].Text != i18n.T(i18n.LangRussian, "welcome") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	if replies[0].Keyboard != KeyboardMainMenu {
		t.Errorf("keyboard = %v, want main menu", replies[0].Keyboard)
	}
	if got := sessions.Get("u1").Language; got != i18n.LangRussian {
		t.Errorf("language = %q, want %q", got, i18n.LangRussian)
	}
}

func TestStartResetsSessionAndAsksLanguage(t *testing.T) {
	sessions := newMemStore()
	sessions.set("u1", session.Session{
		Language:    i18n.LangRussian,
		PendingStep: session.StepAwaitingCrop,
		CropName:    "tomato",
	})
	r := newTestRouter(sessions, &fakeDB{}, &fakeAI{}, &fakeWeather{}, nil)

	replies := r.HandleStart(context.Background(), "u1")

	if len(replies) != 1 || replies[0].Keyboard != KeyboardLanguage {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	got := sessions.Get("u1")
	if got.PendingStep != session.StepNone || got.CropName != "" {
		t.Errorf("session not reset: %+v", got)
	}
	if got.Language != i18n.LangRussian {
		t.Errorf("start must not change language, got %q", got.Language)
	}
}

func TestLocationSaved(t *testing.T) {
	sessions := newMemStore()
	r := newTestRouter(sessions, &fakeDB{}, &fakeAI{}, &fakeWeather{}, nil)

	replies := r.HandleLocation(context.Background(), "u1", 41.31, 69.24)

	if len(replies) != 1 || replies[0].Text != menuText("location_saved") {
		t.Fatalf("unexpected replies: %+v", replies)
	}
	loc := sessions.Get("u1").Location
	if loc == nil || loc.Lat != 41.31 || loc.Lon != 69.24 {
		t.Errorf("location = %+v", loc)
	}
}
