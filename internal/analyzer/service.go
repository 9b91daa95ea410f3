// Package analyzer wires the per-tool pipeline: validate the input, build
// the prompt, invoke the backend, normalize the response. Only two
// conditions surface as errors: a rejected input (*validate.Error) and an
// unavailable backend (ErrBackendUnavailable). A backend that responds in
// an unexpected format is not an error; normalization absorbs it.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"phishscope/internal/analysis"
	"phishscope/internal/gemini"
	"phishscope/internal/normalize"
	"phishscope/internal/prompt"
	"phishscope/internal/session"
	"phishscope/internal/validate"
)

// ErrBackendUnavailable wraps every backend invocation failure.
var ErrBackendUnavailable = errors.New("analysis backend unavailable")

// Invoker sends one constructed request to the analysis backend.
type Invoker interface {
	Invoke(ctx context.Context, req gemini.Request) (*gemini.Response, error)
}

// Service runs the six analysis pipelines against an injected backend.
type Service struct {
	inv    Invoker
	log    *zap.Logger
	states map[analysis.Kind]*session.State
}

// New creates a Service. A nil logger disables logging.
func New(inv Invoker, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	states := make(map[analysis.Kind]*session.State)
	for _, kind := range []analysis.Kind{
		analysis.KindDomain, analysis.KindScreenshot, analysis.KindURL,
		analysis.KindToken, analysis.KindSecrets, analysis.KindEmail,
	} {
		states[kind] = &session.State{}
	}
	return &Service{inv: inv, log: log, states: states}
}

// Busy reports whether an analysis of the given kind is in flight.
func (s *Service) Busy(kind analysis.Kind) bool {
	return s.states[kind].Busy()
}

// Latest returns the most recent non-stale result for the given kind.
func (s *Service) Latest(kind analysis.Kind) (any, bool) {
	return s.states[kind].Latest()
}

// begin registers a request and returns its sequence plus a request-scoped
// logger.
func (s *Service) begin(kind analysis.Kind) (*session.State, uint64, *zap.Logger) {
	st := s.states[kind]
	seq := st.Begin()
	log := s.log.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("kind", string(kind)),
	)
	return st, seq, log
}

func (s *Service) invoke(ctx context.Context, st *session.State, seq uint64, log *zap.Logger, req gemini.Request) (*gemini.Response, error) {
	resp, err := s.inv.Invoke(ctx, req)
	if err != nil {
		st.Fail(seq)
		log.Warn("backend invocation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return resp, nil
}

func (s *Service) finish(st *session.State, seq uint64, log *zap.Logger, res any) {
	if !st.Apply(seq, res) {
		log.Debug("stale response discarded from tool state")
	}
}

// Domain analyzes a domain or full email address.
func (s *Service) Domain(ctx context.Context, input string) (*analysis.DomainResult, error) {
	addr, err := validate.ParseAddress(input)
	if err != nil {
		return nil, err
	}
	st, seq, log := s.begin(analysis.KindDomain)
	log.Info("analyzing address", zap.String("input", addr.Input), zap.Bool("email", addr.IsEmail()))

	resp, err := s.invoke(ctx, st, seq, log, prompt.Domain(addr))
	if err != nil {
		return nil, err
	}
	res := normalize.Domain(resp.Text, addr.Input)
	res.Sources = normalize.Sources(resp.Citations, addr.Domain)
	s.finish(st, seq, log, res)
	return res, nil
}

// Screenshot analyzes an email screenshot supplied as a
// data:<mediatype>;base64,<payload> string.
func (s *Service) Screenshot(ctx context.Context, dataURL string) (*analysis.ScreenshotResult, error) {
	img, err := validate.ParseDataImage(dataURL)
	if err != nil {
		return nil, err
	}
	st, seq, log := s.begin(analysis.KindScreenshot)
	log.Info("analyzing screenshot", zap.String("mime_type", img.MIMEType), zap.Int("bytes", len(img.Data)))

	resp, err := s.invoke(ctx, st, seq, log, prompt.Screenshot(img))
	if err != nil {
		return nil, err
	}
	res := normalize.Screenshot(resp.Text)
	s.finish(st, seq, log, res)
	return res, nil
}

// URL analyzes an absolute URL.
func (s *Service) URL(ctx context.Context, input string) (*analysis.URLResult, error) {
	target, err := validate.AbsoluteURL(input)
	if err != nil {
		return nil, err
	}
	st, seq, log := s.begin(analysis.KindURL)
	log.Info("analyzing url", zap.String("url", target))

	resp, err := s.invoke(ctx, st, seq, log, prompt.URL(target))
	if err != nil {
		return nil, err
	}
	res := normalize.URL(resp.Text)
	res.Sources = normalize.Sources(resp.Citations, hostOf(target))
	s.finish(st, seq, log, res)
	return res, nil
}

// Token analyzes an auth token.
func (s *Service) Token(ctx context.Context, input string) (*analysis.TokenResult, error) {
	token, err := validate.Token(input)
	if err != nil {
		return nil, err
	}
	st, seq, log := s.begin(analysis.KindToken)
	log.Info("analyzing token", zap.Int("length", len(token)))

	resp, err := s.invoke(ctx, st, seq, log, prompt.Token(token))
	if err != nil {
		return nil, err
	}
	res := normalize.Token(resp.Text)
	s.finish(st, seq, log, res)
	return res, nil
}

// Secrets scans free text for exposed credentials.
func (s *Service) Secrets(ctx context.Context, text string) (*analysis.SecretResult, error) {
	text, err := validate.FreeText(text, "text")
	if err != nil {
		return nil, err
	}
	st, seq, log := s.begin(analysis.KindSecrets)
	log.Info("scanning for secrets", zap.Int("length", len(text)))

	resp, err := s.invoke(ctx, st, seq, log, prompt.Secrets(text))
	if err != nil {
		return nil, err
	}
	res := normalize.Secrets(resp.Text)
	s.finish(st, seq, log, res)
	return res, nil
}

// RawEmail analyzes a raw email source (.eml).
func (s *Service) RawEmail(ctx context.Context, source string) (*analysis.EmailResult, error) {
	source, err := validate.FreeText(source, "an email source")
	if err != nil {
		return nil, err
	}
	st, seq, log := s.begin(analysis.KindEmail)
	log.Info("analyzing raw email", zap.Int("length", len(source)))

	resp, err := s.invoke(ctx, st, seq, log, prompt.RawEmail(source))
	if err != nil {
		return nil, err
	}
	res := normalize.RawEmail(resp.Text)
	s.finish(st, seq, log, res)
	return res, nil
}

func hostOf(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}
