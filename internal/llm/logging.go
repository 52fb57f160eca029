package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/kotoba/internal/store"
	"github.com/sirupsen/logrus"
)

// LoggingProvider is a decorator that records every LLM request as an
// event and mirrors a one-line summary to the application log.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	log       *logrus.Logger
}

// WithLogging wraps a Provider with event logging. repo may be nil, in
// which case requests are only written to log.
func WithLogging(p Provider, provider string, repo store.EventRepo, log *logrus.Logger) Provider {
	return &LoggingProvider{inner: p, provider: provider, eventRepo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := string(PurposeFrom(ctx))

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	entry := l.log.WithFields(logrus.Fields{
		"provider":   data.Provider,
		"model":      data.Model,
		"purpose":    purpose,
		"latency_ms": data.LatencyMs,
	})
	if err != nil {
		data.ErrorMessage = err.Error()
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.WithField("output_tokens", data.OutputTokens).Debug("llm request")
	}

	if l.eventRepo != nil {
		// A dead event log must not fail the request.
		if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.log.WithError(logErr).Warn("failed to record LLM request event")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		if schemaDef, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
