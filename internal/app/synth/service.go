package synth

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// successToken is the single token the worker prints on success.
const successToken = "OK"

// workerArgs is the JSON argument file handed to the synthesis worker.
// Passing arguments through a file avoids shell-escaping hazards with
// arbitrary listener text.
type workerArgs struct {
	Text       string  `json:"text"`
	Voice      string  `json:"voice"`
	OutputPath string  `json:"outputPath"`
	Rate       float64 `json:"rate"`
	Pitch      float64 `json:"pitch"`
}

// Invoker runs the external synthesis worker with the argument file path.
// It returns the worker's stdout.
type Invoker interface {
	Invoke(ctx context.Context, argPath string) (string, error)
}

// execInvoker spawns the configured worker command as a subprocess.
type execInvoker struct {
	command string
}

func (e *execInvoker) Invoke(ctx context.Context, argPath string) (string, error) {
	cmd := exec.CommandContext(ctx, e.command, argPath)
	out, err := cmd.Output()
	return string(out), err
}

// Config holds synthesis service configuration.
type Config struct {
	WorkerCommand string
	WorkerTimeout time.Duration
	CacheTTL      time.Duration
	MaxTextLength int
	TempDir       string // empty means the system temp dir
}

// Request is a single synthesis request.
type Request struct {
	Text  string
	Voice string
	Rate  float64
	Pitch float64
}

// Result is the synthesis outcome.
type Result struct {
	Audio    []byte
	CacheHit bool
}

// Service sanitizes text, caches audio, and invokes the isolated synthesis
// worker. Multiple requests may synthesize concurrently; there is no global
// synthesis lock.
type Service struct {
	cfg     Config
	cache   *Cache
	invoker Invoker
}

// NewService creates a synthesis service.
func NewService(cfg Config) (*Service, error) {
	if cfg.WorkerCommand == "" {
		return nil, errors.New("worker command is required")
	}
	if cfg.WorkerTimeout <= 0 {
		cfg.WorkerTimeout = 20 * time.Second
	}
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = 2000
	}
	return &Service{
		cfg:     cfg,
		cache:   NewCache(cfg.CacheTTL),
		invoker: &execInvoker{command: cfg.WorkerCommand},
	}, nil
}

// Synthesize turns text into audio. The pipeline is sanitize, cache lookup,
// worker invocation, output validation. No cache entry is written on
// failure.
func (s *Service) Synthesize(ctx context.Context, req Request) (*Result, error) {
	text := Sanitize(req.Text)
	if text == "" {
		return nil, errors.Wrap(ErrInvalidInput, "text is empty after sanitization")
	}
	// The limit counts characters, not bytes, so accented text is not
	// rejected early.
	if utf8.RuneCountInString(text) > s.cfg.MaxTextLength {
		return nil, errors.Wrapf(ErrInvalidInput, "text exceeds %d characters", s.cfg.MaxTextLength)
	}

	key := CacheKey(req.Voice, req.Rate, req.Pitch, text)
	if audio, ok := s.cache.Get(key); ok {
		zlog.Debug().Str("voice", req.Voice).Msg("synthesis cache hit")
		return &Result{Audio: audio, CacheHit: true}, nil
	}

	audio, err := s.runWorker(ctx, text, req)
	if err != nil {
		return nil, err
	}

	s.cache.Put(key, audio)
	return &Result{Audio: audio, CacheHit: false}, nil
}

// runWorker spawns the isolated worker under a hard wall-clock timeout.
// The temp argument file is always cleaned up regardless of outcome.
func (s *Service) runWorker(ctx context.Context, text string, req Request) ([]byte, error) {
	outFile, err := os.CreateTemp(s.cfg.TempDir, "dj-audio-*.mp3")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create audio temp file")
	}
	outPath := outFile.Name()
	_ = outFile.Close()
	defer removeQuiet(outPath)

	argFile, err := os.CreateTemp(s.cfg.TempDir, "dj-args-*.json")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create argument temp file")
	}
	argPath := argFile.Name()
	defer removeQuiet(argPath)

	args := workerArgs{
		Text:       text,
		Voice:      req.Voice,
		OutputPath: outPath,
		Rate:       req.Rate,
		Pitch:      req.Pitch,
	}
	enc := json.NewEncoder(argFile)
	if err := enc.Encode(args); err != nil {
		_ = argFile.Close()
		return nil, errors.Wrap(err, "failed to write argument file")
	}
	if err := argFile.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close argument file")
	}

	workerCtx, cancel := context.WithTimeout(ctx, s.cfg.WorkerTimeout)
	defer cancel()

	stdout, err := s.invoker.Invoke(workerCtx, argPath)
	if workerCtx.Err() == context.DeadlineExceeded {
		return nil, errors.Wrapf(ErrSynthesisTimeout, "worker exceeded %s", s.cfg.WorkerTimeout)
	}
	if err != nil {
		return nil, errors.Wrapf(ErrSynthesisFailure, "worker failed: %v", err)
	}
	if !strings.Contains(stdout, successToken) {
		return nil, errors.Wrapf(ErrSynthesisFailure, "worker did not report success: %q", strings.TrimSpace(stdout))
	}

	audio, err := os.ReadFile(outPath)
	if err != nil {
		return nil, errors.Wrapf(ErrSynthesisFailure, "failed to read worker output: %v", err)
	}
	if len(audio) == 0 {
		return nil, errors.Wrap(ErrSynthesisFailure, "worker produced empty audio")
	}
	return audio, nil
}

func removeQuiet(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		zlog.Warn().Err(err).Str("path", path).Msg("failed to remove temp file")
	}
}
