// Package generation turns a job description and a resume into tailored resume bullets.
// The Adapter owns prompt construction and reply handling; the upstream model is an injected llm.Client.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/resumate/internal/llm"
	"github.com/jonathan/resumate/internal/prompts"
	"github.com/jonathan/resumate/internal/schemas"
	"github.com/jonathan/resumate/internal/types"
)

const promptFile = "generation.json"

// Generator produces bullets for a request. Implementations never return an
// error: every failure is carried in the result.
type Generator interface {
	Generate(ctx context.Context, req types.GenerationRequest) types.GenerationResult
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithTimeout bounds each upstream call. Zero leaves the deadline to the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		a.timeout = d
	}
}

// Adapter is the Generator backed by a hosted model.
type Adapter struct {
	client    llm.Client
	logger    logrus.FieldLogger
	timeout   time.Duration
	system    string
	userTmpl  string
	validator *schemas.Validator
}

var _ Generator = (*Adapter)(nil)

// ResponseSchema is the reply shape requested from the model.
func ResponseSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"bullets": {
				Type:        llm.TypeArray,
				Description: "Tailored resume bullet points, without numbering or bullet symbols",
				Items:       &llm.Schema{Type: llm.TypeString},
			},
			"error": {
				Type:        llm.TypeString,
				Nullable:    true,
				Description: "Short explanation for the candidate when no bullets can be written",
			},
		},
		Required: []string{"bullets"},
	}
}

// replyValidationSchema checks types only. A missing or null bullets field is
// classified after parsing so that an explicit error can still be surfaced.
func replyValidationSchema() map[string]any {
	s := ResponseSchema()
	s.Required = nil
	s.Properties["bullets"].Nullable = true
	return s.JSONSchema()
}

// NewAdapter creates an Adapter over client.
func NewAdapter(client llm.Client, logger logrus.FieldLogger, opts ...Option) (*Adapter, error) {
	if client == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	systemTmpl, err := prompts.Get(promptFile, "bullets-system")
	if err != nil {
		return nil, err
	}
	userTmpl, err := prompts.Get(promptFile, "bullets-user")
	if err != nil {
		return nil, err
	}

	validator, err := schemas.NewValidator(replyValidationSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to compile reply schema: %w", err)
	}

	a := &Adapter{
		client:   client,
		logger:   logger,
		userTmpl: userTmpl,
		system: prompts.Format(systemTmpl, map[string]string{
			"MinBullets": strconv.Itoa(MinBullets),
			"MaxBullets": strconv.Itoa(MaxBullets),
		}),
		validator: validator,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Generate runs one generation. It always returns a result; failures carry a
// user-safe message and are logged with their cause.
func (a *Adapter) Generate(ctx context.Context, req types.GenerationRequest) (result types.GenerationResult) {
	log := a.logger.WithFields(logrus.Fields{
		"provider": a.client.Provider(),
		"model":    a.client.Model(),
	})

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Bullet generation panicked")
			result = resultFromError(fmt.Errorf("panic: %v", r))
		}
	}()

	start := time.Now()
	bullets, err := a.generate(ctx, req, log)
	if err != nil {
		logFailure(log.WithField("duration", time.Since(start)), err)
		return resultFromError(err)
	}

	for _, f := range Review(bullets) {
		log.WithFields(logrus.Fields{
			"rule":   f.Rule,
			"index":  f.Index,
			"detail": f.Detail,
		}).Warn("Generated bullet deviates from guidelines")
	}

	log.WithFields(logrus.Fields{
		"bullets":  len(bullets),
		"duration": time.Since(start),
	}).Info("Bullet generation completed")

	return types.GenerationResult{Bullets: bullets}
}

func (a *Adapter) generate(ctx context.Context, req types.GenerationRequest, log logrus.FieldLogger) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, &InvalidRequestError{Cause: err}
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	reply, err := a.client.GenerateJSON(ctx, a.buildRequest(req))
	if err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return nil, &ReplyError{Kind: ReplyEmpty, Message: "model returned no text", Cause: err}
		}
		return nil, &UpstreamError{Message: "failed to generate bullets", Cause: err}
	}

	return a.parseReply(reply, log)
}

// buildRequest keeps the fixed instructions in the system channel and the
// user's text in the prompt, each input inside its own delimited section.
func (a *Adapter) buildRequest(req types.GenerationRequest) llm.Request {
	return llm.Request{
		SystemInstruction: a.system,
		Prompt: prompts.Format(a.userTmpl, map[string]string{
			"JobDescription": strings.TrimSpace(req.JobDescription),
			"ResumeText":     strings.TrimSpace(req.ResumeText),
		}),
		Schema: ResponseSchema(),
	}
}

type replyPayload struct {
	Bullets *[]string `json:"bullets"`
	Error   *string   `json:"error"`
}

// parseReply classifies the raw reply and returns normalized bullets.
func (a *Adapter) parseReply(reply string, log logrus.FieldLogger) ([]string, error) {
	if strings.TrimSpace(reply) == "" {
		return nil, &ReplyError{Kind: ReplyEmpty, Message: "model returned no text"}
	}
	if !json.Valid([]byte(reply)) {
		return nil, &ReplyError{Kind: ReplyMalformed, Message: "reply is not valid JSON"}
	}
	if err := a.validator.ValidateString(reply); err != nil {
		return nil, &ReplyError{Kind: ReplySchemaMismatch, Message: "reply does not match the response schema", Cause: err}
	}

	var payload replyPayload
	if err := json.Unmarshal([]byte(reply), &payload); err != nil {
		return nil, &ReplyError{Kind: ReplyMalformed, Message: "failed to decode reply", Cause: err}
	}

	var modelErr string
	if payload.Error != nil {
		modelErr = strings.TrimSpace(*payload.Error)
	}

	if payload.Bullets == nil || len(*payload.Bullets) == 0 {
		if modelErr != "" {
			return nil, &InsufficientInfoError{Reason: modelErr}
		}
		if payload.Bullets == nil {
			return nil, &ReplyError{Kind: ReplyMissingBullets, Message: "reply has no bullets field"}
		}
		return nil, &InsufficientInfoError{}
	}

	bullets := NormalizeBullets(*payload.Bullets)
	if !hasText(bullets) {
		return nil, &InsufficientInfoError{Reason: modelErr}
	}

	if modelErr != "" {
		log.WithField("model_error", modelErr).Warn("Model returned an error alongside bullets; keeping bullets")
	}

	return bullets, nil
}

// logFailure records the cause for operators. Expected outcomes log at a lower level.
func logFailure(log logrus.FieldLogger, err error) {
	var insufficient *InsufficientInfoError
	var invalid *InvalidRequestError
	var reply *ReplyError

	switch {
	case errors.As(err, &insufficient), errors.As(err, &invalid):
		log.WithError(err).Info("Bullet generation returned no bullets")
	case errors.As(err, &reply):
		log.WithError(err).WithField("reply_kind", reply.Kind).Error("Bullet generation failed")
	default:
		log.WithError(err).Error("Bullet generation failed")
	}
}
