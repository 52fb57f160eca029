package api

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/abhisek/kotoba/internal/api/response"
	"github.com/abhisek/kotoba/internal/api/validate"
	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/questiongen"
	"github.com/abhisek/kotoba/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Generators hands out question generators and checks API keys.
type Generators interface {
	Generator(ctx context.Context, apiKey string) questiongen.Generator
	CheckKey(ctx context.Context, apiKey string) (bool, error)
}

type (
	Handler interface {
		GetState(ctx *fiber.Ctx) error
		StartSession(ctx *fiber.Ctx) error
		SubmitAnswer(ctx *fiber.Ctx) error
		Advance(ctx *fiber.Ctx) error
		EndSession(ctx *fiber.Ctx) error
		RetryWrong(ctx *fiber.Ctx) error
		GetResult(ctx *fiber.Ctx) error
		GetStats(ctx *fiber.Ctx) error
		ListVocab(ctx *fiber.Ctx) error
		ToggleFavorite(ctx *fiber.Ctx) error
		ListParticles(ctx *fiber.Ctx) error
		SaveSettings(ctx *fiber.Ctx) error
		ExportBackup(ctx *fiber.Ctx) error
		ImportBackup(ctx *fiber.Ctx) error
		ResetProgress(ctx *fiber.Ctx) error
		CheckKey(ctx *fiber.Ctx) error
	}

	HandlerConfig struct {
		Store      *appstate.Store
		Bank       *bank.Accessor
		Generators Generators
		Rand       bank.Rand
		Validator  *validate.Validator
		Log        *logrus.Logger

		PracticeCount int
		TryoutCount   int
		Source        questiongen.Source
	}

	handler struct {
		store      *appstate.Store
		bank       *bank.Accessor
		generators Generators
		validator  *validate.Validator
		logger     *logrus.Logger

		practiceCount int
		tryoutCount   int
		source        questiongen.Source

		// pickMu serializes question picks, which share rng.
		pickMu sync.Mutex
		rng    bank.Rand
	}
)

func NewHandler(c HandlerConfig) Handler {
	h := &handler{
		store:         c.Store,
		bank:          c.Bank,
		generators:    c.Generators,
		validator:     c.Validator,
		logger:        c.Log,
		practiceCount: c.PracticeCount,
		tryoutCount:   c.TryoutCount,
		source:        c.Source,
		rng:           c.Rand,
	}
	if h.practiceCount <= 0 {
		h.practiceCount = 10
	}
	if h.tryoutCount <= 0 {
		h.tryoutCount = 25
	}
	if h.source == "" {
		h.source = questiongen.SourceLocal
	}
	return h
}

// statusOf maps store and session errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, appstate.ErrInvalidBackup),
		errors.Is(err, session.ErrNoQuestions):
		return fiber.StatusBadRequest
	case errors.Is(err, session.ErrNotActive),
		errors.Is(err, session.ErrNoSession),
		errors.Is(err, session.ErrNotFinished),
		errors.Is(err, session.ErrNothingToRetry):
		return fiber.StatusConflict
	case errors.Is(err, appstate.ErrClosed):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *handler) failed(ctx *fiber.Ctx, msg string, err error) error {
	var fields *validate.FieldsError
	if errors.As(err, &fields) {
		return response.NewFailed(msg, err, h.logger).Send(ctx)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return response.NewFailed(msg, fe, h.logger).Send(ctx)
	}
	return response.NewFailed(msg, fiber.NewError(statusOf(err), err.Error()), h.logger).Send(ctx)
}

// GET /api/state
func (h *handler) GetState(ctx *fiber.Ctx) error {
	return response.NewSuccess(STATE_GET_SUCCESS, newStateResponse(h.store.State())).Send(ctx)
}

// POST /api/session
func (h *handler) StartSession(ctx *fiber.Ctx) error {
	var req StartSessionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return h.failed(ctx, SESSION_START_FAILED, err)
	}

	pick := questiongen.Request{Count: req.Count, Source: h.source, Topic: req.Topic}
	if req.Source != "" {
		pick.Source = questiongen.Source(req.Source)
	}
	qtype, err := bank.ParseType(req.Type)
	if err != nil {
		return h.failed(ctx, SESSION_START_FAILED, fiber.NewError(fiber.StatusBadRequest, err.Error()))
	}
	pick.Type = qtype

	if req.Tryout {
		// Tryouts always draw a full mixed set from the local bank.
		pick = questiongen.Request{Count: h.tryoutCount, Source: questiongen.SourceLocal}
	} else if pick.Count == 0 {
		pick.Count = h.practiceCount
	}

	res := h.pick(ctx.UserContext(), pick)
	if msg, ok := res.Notice(); ok {
		h.store.Dispatch(appstate.ShowToast{Message: msg, Kind: appstate.ToastError})
	}

	var st appstate.State
	if req.Tryout {
		st, err = h.store.StartTryout(res.Questions)
	} else {
		st, err = h.store.StartPractice(res.Questions)
	}
	if err != nil {
		return h.failed(ctx, SESSION_START_FAILED, err)
	}

	return response.NewSuccess(SESSION_START_SUCCESS, StartSessionResponse{
		State:     newStateResponse(st),
		Generated: res.Generated,
		FellBack:  res.FellBack(),
	}).Send(ctx)
}

func (h *handler) pick(ctx context.Context, req questiongen.Request) questiongen.Result {
	h.pickMu.Lock()
	defer h.pickMu.Unlock()

	var gen questiongen.Generator
	if req.Source != questiongen.SourceLocal && h.generators != nil {
		gen = h.generators.Generator(ctx, h.store.State().Settings.APIKey)
	}
	return questiongen.NewPicker(h.bank, gen, h.rng, h.logger).Pick(ctx, req)
}

// POST /api/session/answer
func (h *handler) SubmitAnswer(ctx *fiber.Ctx) error {
	var req SubmitAnswerRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return h.failed(ctx, SESSION_ANSWER_FAILED, err)
	}

	st, err := h.store.Dispatch(appstate.SubmitAnswer{Answer: req.Answer})
	if err != nil {
		return h.failed(ctx, SESSION_ANSWER_FAILED, err)
	}
	return response.NewSuccess(SESSION_ANSWER_SUCCESS, newStateResponse(st)).Send(ctx)
}

// POST /api/session/advance
func (h *handler) Advance(ctx *fiber.Ctx) error {
	st, err := h.store.Dispatch(appstate.Advance{})
	if err != nil {
		return h.failed(ctx, SESSION_ADVANCE_FAILED, err)
	}
	return response.NewSuccess(SESSION_ADVANCE_SUCCESS, newStateResponse(st)).Send(ctx)
}

// POST /api/session/end
func (h *handler) EndSession(ctx *fiber.Ctx) error {
	var req EndSessionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return h.failed(ctx, SESSION_END_FAILED, err)
	}

	st, err := h.store.Dispatch(appstate.EndSession{SaveHistory: req.SaveHistory})
	if err != nil {
		return h.failed(ctx, SESSION_END_FAILED, err)
	}
	return response.NewSuccess(SESSION_END_SUCCESS, newStateResponse(st)).Send(ctx)
}

// POST /api/session/retry
func (h *handler) RetryWrong(ctx *fiber.Ctx) error {
	st, err := h.store.Dispatch(appstate.RetryWrong{})
	if err != nil {
		return h.failed(ctx, SESSION_RETRY_FAILED, err)
	}
	return response.NewSuccess(SESSION_RETRY_SUCCESS, newStateResponse(st)).Send(ctx)
}

// GET /api/session/result
func (h *handler) GetResult(ctx *fiber.Ctx) error {
	sum, err := h.store.State().Summary()
	if err != nil {
		return h.failed(ctx, SESSION_RESULT_FAILED, err)
	}
	return response.NewSuccess(SESSION_RESULT_SUCCESS, sum).Send(ctx)
}

// GET /api/history/stats
func (h *handler) GetStats(ctx *fiber.Ctx) error {
	stats := h.store.State().Stats(bank.Vocabulary())
	return response.NewSuccess(STATS_GET_SUCCESS, stats).Send(ctx)
}

// GET /api/vocab?theme=Sekolah&q=gakkou&favorites=true
func (h *handler) ListVocab(ctx *fiber.Ctx) error {
	theme := strings.TrimSpace(ctx.Query("theme"))
	if theme != "" && !slices.Contains(bank.Themes, theme) {
		return h.failed(ctx, VOCAB_LIST_FAILED, fiber.NewError(fiber.StatusBadRequest, "unknown theme"))
	}

	filter := bank.VocabFilter{
		Theme:         theme,
		Query:         ctx.Query("q"),
		FavoritesOnly: ctx.QueryBool("favorites", false),
	}
	list := bank.FilterVocab(bank.Vocabulary(), filter, h.store.State().Favorites)
	if list == nil {
		list = []bank.Vocab{}
	}
	return response.NewSuccess(VOCAB_LIST_SUCCESS, list).Send(ctx)
}

// POST /api/favorites/:id
func (h *handler) ToggleFavorite(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if !slices.ContainsFunc(bank.Vocabulary(), func(v bank.Vocab) bool { return v.ID == id }) {
		return h.failed(ctx, FAVORITE_TOGGLE_FAILED, fiber.NewError(fiber.StatusNotFound, "unknown vocabulary id"))
	}

	st, err := h.store.Dispatch(appstate.ToggleFavorite{VocabID: id})
	if err != nil {
		return h.failed(ctx, FAVORITE_TOGGLE_FAILED, err)
	}
	return response.NewSuccess(FAVORITE_TOGGLE_SUCCESS, fiber.Map{
		"id":        id,
		"favorite":  st.IsFavorite(id),
		"favorites": newStateResponse(st).Favorites,
	}).Send(ctx)
}

// GET /api/particles
func (h *handler) ListParticles(ctx *fiber.Ctx) error {
	return response.NewSuccess(PARTICLE_LIST_SUCCESS, bank.Particles()).Send(ctx)
}

// PATCH /api/settings
func (h *handler) SaveSettings(ctx *fiber.Ctx) error {
	var patch appstate.SettingsPatch
	if err := h.validator.ParseAndValidate(ctx, &patch); err != nil {
		return h.failed(ctx, SETTINGS_SAVE_FAILED, err)
	}

	st, err := h.store.Dispatch(appstate.SaveSettings{Patch: patch})
	if err != nil {
		return h.failed(ctx, SETTINGS_SAVE_FAILED, err)
	}
	return response.NewSuccess(SETTINGS_SAVE_SUCCESS, newStateResponse(st).Settings).Send(ctx)
}

// GET /api/backup
func (h *handler) ExportBackup(ctx *fiber.Ctx) error {
	return response.NewSuccess(BACKUP_EXPORT_SUCCESS, appstate.ExportBackup(h.store.State())).Send(ctx)
}

// POST /api/backup
func (h *handler) ImportBackup(ctx *fiber.Ctx) error {
	st, err := h.store.Import(ctx.Body())
	if err != nil {
		return h.failed(ctx, BACKUP_IMPORT_FAILED, err)
	}
	return response.NewSuccess(BACKUP_IMPORT_SUCCESS, newStateResponse(st)).Send(ctx)
}

// DELETE /api/progress
func (h *handler) ResetProgress(ctx *fiber.Ctx) error {
	st, err := h.store.Dispatch(appstate.ResetProgress{})
	if err != nil {
		return h.failed(ctx, PROGRESS_RESET_FAILED, err)
	}
	return response.NewSuccess(PROGRESS_RESET_SUCCESS, newStateResponse(st)).Send(ctx)
}

// POST /api/llm/check-key
func (h *handler) CheckKey(ctx *fiber.Ctx) error {
	var req CheckKeyRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return h.failed(ctx, KEY_CHECK_FAILED, err)
	}
	if h.generators == nil {
		return h.failed(ctx, KEY_CHECK_FAILED, fiber.NewError(fiber.StatusServiceUnavailable, "generation is not configured"))
	}

	valid, err := h.generators.CheckKey(ctx.UserContext(), req.APIKey)
	res := CheckKeyResponse{Valid: valid}
	if err != nil {
		res.Error = err.Error()
	}
	return response.NewSuccess(KEY_CHECK_SUCCESS, res).Send(ctx)
}
