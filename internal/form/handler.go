package form

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wolfman30/leadform/internal/collector"
	"github.com/wolfman30/leadform/internal/once"
	"github.com/wolfman30/leadform/internal/origin"
	"github.com/wolfman30/leadform/internal/submission"
	"github.com/wolfman30/leadform/pkg/logging"
)

// Dispatcher hands a finalised payload to the collector.
type Dispatcher interface {
	Dispatch(ctx context.Context, p collector.Payload) bool
}

// Metrics records form activity.
type Metrics interface {
	ObserveRender(region string)
	ObserveSubmission(outcome string, qualified bool)
}

// Config wires a Handler.
type Config struct {
	Targeter   *origin.Targeter
	Guard      once.Guard
	Dispatcher Dispatcher
	Metrics    Metrics
	Logger     *logging.Logger
	// Action is the path the form posts to. Defaults to "/form".
	Action string
	Now    func() time.Time
}

// Handler serves the lead form and receives its submissions.
type Handler struct {
	targeter   *origin.Targeter
	guard      once.Guard
	dispatcher Dispatcher
	metrics    Metrics
	logger     *logging.Logger
	action     string
	now        func() time.Time
}

// NewHandler creates a form handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Targeter == nil {
		cfg.Targeter = origin.NewTargeter(origin.DefaultClassifier(), nil)
	}
	if cfg.Guard == nil {
		cfg.Guard = once.NewMemoryGuard(0)
	}
	if cfg.Action == "" {
		cfg.Action = "/form"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Handler{
		targeter:   cfg.Targeter,
		guard:      cfg.Guard,
		dispatcher: cfg.Dispatcher,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		action:     cfg.Action,
		now:        cfg.Now,
	}
}

// Routes returns the form routes, meant to be mounted at Action. The
// middlewares wrap submissions only.
func (h *Handler) Routes(submit ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Render)
	r.With(submit...).Post("/", h.Submit)
	return r
}

type formView struct {
	Action         string
	Token          string
	Frame          embedding
	Region         submission.Region
	Submission     *submission.Submission
	Req            submission.Requirements
	BusinessModels []submission.Option[submission.BusinessModel]
	Revenue        []string
	Spend          []string
	Channels       []submission.Option[submission.Channel]
	OtherTextField string
}

// Render handles GET /form. The region and page source come from the query
// string; the Referer of the frame load is kept as the referrer fallback.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	region := submission.RegionFromValues(query)
	s := submission.New()
	s.PageSource = query.Get(sourceParam)

	h.observeRender(region)
	h.render(w, http.StatusOK, region, s, uuid.NewString(), embedding{Referrer: r.Referer()})
}

// Submit handles POST /form: requalify, validate, claim the token, resolve
// the redirect, dispatch without waiting and send the visitor on.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("failed to parse form", "error", err)
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	values := r.PostForm
	region := submission.RegionFromValues(values)
	s := decodeSubmission(values)
	s.Requalify()

	token := values.Get(fieldToken)
	frame := decodeEmbedding(values)
	if err := s.Validate(region); err != nil {
		h.logger.Info("submission rejected", "error", err)
		h.observeSubmission("invalid", s.Qualified)
		h.render(w, http.StatusUnprocessableEntity, region, s, token, frame)
		return
	}

	first, err := h.guard.Claim(r.Context(), token)
	switch {
	case errors.Is(err, once.ErrEmptyToken):
		http.Error(w, "missing form token", http.StatusBadRequest)
		return
	case err != nil:
		// Prefer delivering the lead over deduplicating it.
		h.logger.Warn("form token check failed", "error", err)
		first = true
	}

	target := origin.TargetURL(h.targeter.Domain(frame.context(r.Host)), s)

	if !first {
		h.logger.Info("duplicate submission ignored", "token", token)
		h.observeSubmission("duplicate", s.Qualified)
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	payload := collector.NewPayload(s, h.now())
	if h.dispatcher != nil {
		h.dispatcher.Dispatch(r.Context(), payload)
	}
	h.observeSubmission("accepted", payload.IsQualified)
	h.logger.Info("submission accepted",
		"qualified", payload.IsQualified,
		"business_model", s.BusinessModel,
		"source", s.PageSource,
	)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// WidgetJS serves the embed script that injects the form iframe.
func (h *Handler) WidgetJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_, _ = w.Write(widgetJS)
}

func (h *Handler) render(w http.ResponseWriter, status int, region submission.Region, s *submission.Submission, token string, frame embedding) {
	view := formView{
		Action:         h.action,
		Token:          token,
		Frame:          frame,
		Region:         region,
		Submission:     s,
		Req:            s.Requirements(),
		BusinessModels: submission.BusinessModels,
		Revenue:        submission.RevenueBrackets(region),
		Spend:          submission.SpendBrackets(region),
		Channels:       submission.Channels,
		OtherTextField: fieldOtherText,
	}

	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, view); err != nil {
		h.logger.Error("failed to render form", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) observeRender(region submission.Region) {
	if h.metrics != nil {
		h.metrics.ObserveRender(region.String())
	}
}

func (h *Handler) observeSubmission(outcome string, qualified bool) {
	if h.metrics != nil {
		h.metrics.ObserveSubmission(outcome, qualified)
	}
}
