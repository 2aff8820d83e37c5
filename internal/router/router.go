// Package router implements the dialogue state machine. Inbound text is
// mapped to an intent once at the boundary by a priority-ordered matcher,
// then the router switches on the intent, transitions the user's session,
// and calls the injected gateways. The router knows nothing about the
// transport: it returns replies for the caller to deliver.
package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/edgard/agrobot/internal/ai"
	"github.com/edgard/agrobot/internal/database"
	"github.com/edgard/agrobot/internal/i18n"
	"github.com/edgard/agrobot/internal/labels"
	"github.com/edgard/agrobot/internal/session"
	"github.com/edgard/agrobot/internal/vision"
	"github.com/edgard/agrobot/internal/weather"
)

// Keyboard tells the transport which reply keyboard to attach.
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardMainMenu
	KeyboardLanguage
	KeyboardWeatherDays
)

// Reply is one outbound message produced by the router.
type Reply struct {
	Text     string
	Keyboard Keyboard
}

// Classifier produces a local diagnosis from raw image bytes.
// *vision.Classifier satisfies it.
type Classifier interface {
	Classify(data []byte) (vision.Result, error)
}

// Deps are the injected collaborators of the router.
type Deps struct {
	Logger     *slog.Logger
	Sessions   session.Store
	Store      database.Store
	AI         ai.Client
	Weather    weather.Client
	Classifier Classifier

	// GatewayTimeout bounds every external call so a hung gateway cannot
	// hold a per-user flow forever.
	GatewayTimeout time.Duration
}

// Router dispatches inbound messages through the per-user dialogue FSM.
type Router struct {
	deps Deps
	log  *slog.Logger
}

// New creates a Router. GatewayTimeout falls back to a minute when unset.
func New(deps Deps) *Router {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.GatewayTimeout <= 0 {
		deps.GatewayTimeout = time.Minute
	}
	return &Router{
		deps: deps,
		log:  deps.Logger.With("component", "router"),
	}
}

func (r *Router) gatewayCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.deps.GatewayTimeout)
}

// reply is shorthand for a single localized reply.
func reply(lang i18n.Lang, key string, kb Keyboard) []Reply {
	return []Reply{{Text: i18n.T(lang, key), Keyboard: kb}}
}

// intent is the classified meaning of one inbound text message.
type intent int

const (
	intentLanguageSelect intent = iota
	intentChangeLanguage
	intentWeather
	intentWeatherDays
	intentSendPhoto
	intentCropInput
	intentReport
	intentReportText
	intentAskQuestion
	intentFreeText
)

// matches reports whether text addresses the menu entry for key. Buttons
// are rendered with a leading icon, so matching is suffix-based. Two
// captions where one is a suffix of the other are resolved by the fixed
// priority order in detectIntent.
func matches(lang i18n.Lang, text, key string) bool {
	return strings.HasSuffix(text, i18n.T(lang, key))
}

// detectIntent classifies text using the fixed priority order:
// language > weather > weather-day-selection > send-photo >
// crop-name-input > report > report-text-input > ask-question > free
// text. Changing this order silently swallows messages into the wrong
// branch.
func detectIntent(lang i18n.Lang, text string, sess session.Session) (intent, int) {
	if _, ok := i18n.LanguageButtons[text]; ok {
		return intentLanguageSelect, 0
	}
	if matches(lang, text, "change_language") {
		return intentChangeLanguage, 0
	}
	if matches(lang, text, "weather") {
		return intentWeather, 0
	}
	if sess.PendingStep == session.StepAwaitingWeatherDays {
		// "15 days" ends with "5 days", so the longer caption is
		// tested first.
		switch {
		case matches(lang, text, "weather_15"):
			return intentWeatherDays, 15
		case matches(lang, text, "weather_10"):
			return intentWeatherDays, 10
		case matches(lang, text, "weather_5"):
			return intentWeatherDays, 5
		}
		return intentWeatherDays, 0
	}
	if matches(lang, text, "send_photo") {
		return intentSendPhoto, 0
	}
	if sess.PendingStep == session.StepAwaitingCrop {
		return intentCropInput, 0
	}
	if matches(lang, text, "report") {
		return intentReport, 0
	}
	if sess.PendingStep == session.StepAwaitingReport {
		return intentReportText, 0
	}
	if matches(lang, text, "ask_question") {
		return intentAskQuestion, 0
	}
	return intentFreeText, 0
}

// HandleStart initializes the user's session and asks for a language.
func (r *Router) HandleStart(ctx context.Context, userID string) []Reply {
	r.deps.Sessions.Update(userID, func(s *session.Session) {
		s.PendingStep = session.StepNone
		s.CropName = ""
	})
	return []Reply{{Text: i18n.ChooseLanguagePrompt, Keyboard: KeyboardLanguage}}
}

// HandleLocation saves the user's location for weather requests.
func (r *Router) HandleLocation(ctx context.Context, userID string, lat, lon float64) []Reply {
	sess := r.deps.Sessions.Update(userID, func(s *session.Session) {
		s.Location = &session.Location{Lat: lat, Lon: lon}
	})
	return reply(sess.Language, "location_saved", KeyboardMainMenu)
}

// HandleText routes one inbound text message through the FSM.
func (r *Router) HandleText(ctx context.Context, userID, text string) []Reply {
	sess := r.deps.Sessions.Get(userID)
	lang := sess.Language

	// Matching sees the trimmed text, but report content is persisted
	// exactly as the user typed it.
	it, days := detectIntent(lang, strings.TrimSpace(text), sess)
	switch it {
	case intentLanguageSelect:
		return r.selectLanguage(userID, strings.TrimSpace(text))

	case intentChangeLanguage:
		return []Reply{{Text: i18n.ChooseLanguagePrompt, Keyboard: KeyboardLanguage}}

	case intentWeather:
		if sess.Location == nil {
			r.deps.Sessions.Update(userID, func(s *session.Session) {
				s.PendingStep = session.StepNone
			})
			return reply(lang, "location_not_set", KeyboardMainMenu)
		}
		r.deps.Sessions.Update(userID, func(s *session.Session) {
			s.PendingStep = session.StepAwaitingWeatherDays
		})
		return reply(lang, "weather_choose_days", KeyboardWeatherDays)

	case intentWeatherDays:
		return r.weatherForecast(ctx, userID, sess, days)

	case intentSendPhoto:
		// Entering the crop flow must never keep a stale crop name from
		// a previous flow.
		r.deps.Sessions.Update(userID, func(s *session.Session) {
			s.PendingStep = session.StepAwaitingCrop
			s.CropName = ""
		})
		return reply(lang, "ask_crop_name_first", KeyboardNone)

	case intentCropInput:
		return r.cropInput(ctx, userID, lang, strings.TrimSpace(text))

	case intentReport:
		r.deps.Sessions.Update(userID, func(s *session.Session) {
			s.PendingStep = session.StepAwaitingReport
			s.CropName = ""
		})
		return reply(lang, "report_prompt", KeyboardNone)

	case intentReportText:
		return r.saveReport(ctx, userID, lang, text)

	case intentAskQuestion:
		return reply(lang, "ask_question_prompt", KeyboardNone)

	default:
		return r.freeText(ctx, userID, lang, text)
	}
}

func (r *Router) selectLanguage(userID, caption string) []Reply {
	lang := i18n.LanguageButtons[caption]
	r.deps.Sessions.Update(userID, func(s *session.Session) {
		s.Language = lang
		s.PendingStep = session.StepNone
		s.CropName = ""
	})
	return reply(lang, "welcome", KeyboardMainMenu)
}

// weatherForecast handles day selection while in the weather flow.
// Unrecognized input is a deliberate silent no-op: no reply, no state
// change.
func (r *Router) weatherForecast(ctx context.Context, userID string, sess session.Session, days int) []Reply {
	if days == 0 {
		return nil
	}
	lang := sess.Language

	if sess.Location == nil {
		r.deps.Sessions.Update(userID, func(s *session.Session) {
			s.PendingStep = session.StepNone
		})
		return reply(lang, "location_not_set", KeyboardMainMenu)
	}

	wctx, cancel := r.gatewayCtx(ctx)
	defer cancel()
	forecast, err := r.deps.Weather.Forecast(wctx, sess.Location.Lat, sess.Location.Lon, days)

	r.deps.Sessions.Update(userID, func(s *session.Session) {
		s.PendingStep = session.StepNone
	})

	if err != nil {
		r.log.ErrorContext(ctx, "Weather fetch failed", "user_id", userID, "error", err)
		return reply(lang, "weather_error", KeyboardMainMenu)
	}
	return []Reply{{Text: weather.Render(forecast, days, lang), Keyboard: KeyboardMainMenu}}
}

func (r *Router) cropInput(ctx context.Context, userID string, lang i18n.Lang, text string) []Reply {
	actx, cancel := r.gatewayCtx(ctx)
	defer cancel()
	normalized, err := r.deps.AI.NormalizeCrop(actx, strings.ToLower(text), labels.Crops)
	if err != nil {
		r.log.ErrorContext(ctx, "Crop normalization failed", "user_id", userID, "error", err)
		return reply(lang, "general_error", KeyboardNone)
	}

	crop := normalized
	if crop == "" {
		crop = strings.ToLower(text)
	}

	// Presence of CropName, not a dedicated step, is what arms the photo
	// handler.
	r.deps.Sessions.Update(userID, func(s *session.Session) {
		s.CropName = crop
		s.PendingStep = session.StepNone
	})
	return reply(lang, "send_photo_now", KeyboardNone)
}

func (r *Router) saveReport(ctx context.Context, userID string, lang i18n.Lang, text string) []Reply {
	dctx, cancel := r.gatewayCtx(ctx)
	defer cancel()
	if err := r.deps.Store.SaveReport(dctx, &database.Report{UserID: userID, Content: text}); err != nil {
		r.log.ErrorContext(ctx, "Failed to persist report", "user_id", userID, "error", err)
		return reply(lang, "general_error", KeyboardNone)
	}

	r.deps.Sessions.Update(userID, func(s *session.Session) {
		s.PendingStep = session.StepNone
	})
	return reply(lang, "report_success", KeyboardMainMenu)
}

func (r *Router) freeText(ctx context.Context, userID string, lang i18n.Lang, text string) []Reply {
	gctx, cancel := r.gatewayCtx(ctx)
	defer cancel()
	allowed, err := r.deps.AI.TopicAllowed(gctx, text)
	if err != nil {
		r.log.ErrorContext(ctx, "Topic guard call failed", "user_id", userID, "error", err)
		return reply(lang, "general_error", KeyboardNone)
	}
	if !allowed {
		return reply(lang, "topic_not_allowed", KeyboardNone)
	}

	actx, cancel2 := r.gatewayCtx(ctx)
	defer cancel2()
	answer, err := r.deps.AI.Rewrite(actx, text, lang)
	if err != nil {
		r.log.ErrorContext(ctx, "Text answer call failed", "user_id", userID, "error", err)
		return reply(lang, "general_error", KeyboardNone)
	}
	return []Reply{{Text: answer}}
}

// HandlePhoto routes one inbound photo. It requires a crop name entered
// beforehand; each entered crop name covers exactly one photo.
func (r *Router) HandlePhoto(ctx context.Context, userID string, image []byte) []Reply {
	sess := r.deps.Sessions.Get(userID)
	lang := sess.Language

	if sess.CropName == "" {
		return reply(lang, "please_type_crop", KeyboardNone)
	}

	lctx, cancel := r.gatewayCtx(ctx)
	defer cancel()
	isLeaf, err := r.deps.AI.LeafCheck(lctx, image)
	if err != nil {
		r.log.ErrorContext(ctx, "Leaf check failed", "user_id", userID, "error", err)
		return reply(lang, "general_error", KeyboardNone)
	}
	if !isLeaf {
		r.deps.Sessions.Update(userID, func(s *session.Session) {
			s.CropName = ""
		})
		return reply(lang, "not_leaf", KeyboardMainMenu)
	}

	if labels.SupportedCrop(sess.CropName) {
		return r.localDiagnosis(ctx, userID, lang, image)
	}
	return r.visionDiagnosis(ctx, userID, lang, sess.CropName, image)
}

// localDiagnosis runs the local classifier and has the gateway expand the
// result into a localized explanation.
func (r *Router) localDiagnosis(ctx context.Context, userID string, lang i18n.Lang, image []byte) []Reply {
	result, err := r.deps.Classifier.Classify(image)
	if err != nil {
		if errors.Is(err, vision.ErrDecode) {
			return reply(lang, "not_valid_image", KeyboardNone)
		}
		r.log.ErrorContext(ctx, "Classification failed", "user_id", userID, "error", err)
		return reply(lang, "general_error", KeyboardNone)
	}

	ectx, cancel := r.gatewayCtx(ctx)
	defer cancel()
	explanation, err := r.deps.AI.ExplainDiagnosis(ectx, result.Crop, result.Disease, result.Confidence, lang)
	if err != nil {
		r.log.ErrorContext(ctx, "Diagnosis explanation failed", "user_id", userID, "error", err)
		return reply(lang, "general_error", KeyboardNone)
	}

	record := &database.DiagnosisRecord{
		UserID:     userID,
		Crop:       result.Crop,
		Disease:    result.Disease,
		Confidence: result.Confidence,
	}
	dctx, cancel2 := r.gatewayCtx(ctx)
	defer cancel2()
	if err := r.deps.Store.SaveDiagnosis(dctx, record); err != nil {
		// History is an audit trail; losing one entry must not fail the
		// user's diagnosis.
		r.log.ErrorContext(ctx, "Failed to persist diagnosis record", "user_id", userID, "error", err)
	}

	r.deps.Sessions.Update(userID, func(s *session.Session) {
		s.CropName = ""
		s.LastDiagnosis = &session.Diagnosis{
			DiseaseLabel:   result.RawLabel,
			ConfidenceText: fmt.Sprintf("%.2f%%", result.Confidence),
		}
	})
	return []Reply{{Text: explanation, Keyboard: KeyboardMainMenu}}
}

// visionDiagnosis falls back to the end-to-end gateway diagnosis for
// crops outside the local model's vocabulary.
func (r *Router) visionDiagnosis(ctx context.Context, userID string, lang i18n.Lang, crop string, image []byte) []Reply {
	vctx, cancel := r.gatewayCtx(ctx)
	defer cancel()
	raw, err := r.deps.AI.DiagnoseImage(vctx, image, crop, lang)
	if err != nil {
		r.log.ErrorContext(ctx, "Vision diagnosis failed", "user_id", userID, "error", err)
		return reply(lang, "general_error", KeyboardNone)
	}

	rctx, cancel2 := r.gatewayCtx(ctx)
	defer cancel2()
	cleaned, err := r.deps.AI.Rewrite(rctx, raw, lang)
	if err != nil {
		r.log.WarnContext(ctx, "Diagnosis cleanup failed, using raw text", "user_id", userID, "error", err)
		cleaned = raw
	}

	r.deps.Sessions.Update(userID, func(s *session.Session) {
		s.CropName = ""
	})
	return []Reply{{Text: cleaned, Keyboard: KeyboardMainMenu}}
}
