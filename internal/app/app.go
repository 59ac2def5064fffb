package app

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"gibberish/internal/config"
	"gibberish/internal/database"
	"gibberish/internal/gibberish"
	"gibberish/internal/store"
	"gibberish/internal/terminal"
)

// Options carries the process streams and flags that are not part of the
// config file.
type Options struct {
	// Stdin answers passphrase and overwrite prompts. An *os.File that is a
	// terminal gets no-echo passphrase input.
	Stdin io.Reader
	// Prompts are written to Stdout.
	Stdout io.Writer
	// Stderr receives log records when Verbose is set.
	Stderr  io.Writer
	Verbose bool
}

// GibberishApp is the application layer between the CLI and gibberish.Service.
// It constructs all dependencies from config, records every invocation in
// the history, and releases resources on Close.
type GibberishApp struct {
	cfg     *config.Config
	store   gibberish.Store
	history gibberish.History
	term    *terminal.Terminal
	service *gibberish.Service
	tracker *operationTracker
	logger  gibberish.Logger
	logFile *os.File
}

// NewGibberishApp creates a fully wired GibberishApp from the given config.
// The caller must call Close when done.
func NewGibberishApp(cfg *config.Config, opts Options) (*GibberishApp, error) {
	s, err := store.NewStoreFromConfig(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}
	if err := s.ValidateSetup(); err != nil {
		return nil, fmt.Errorf("validating store: %w", err)
	}

	ids := gibberish.UUIDGenerator{}
	runID := ids.New()

	var stderr io.Writer
	if opts.Verbose {
		stderr = opts.Stderr
	}
	slogger, logFile, err := newLogger(cfg.LogDir, runID, stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	history, err := database.NewHistoryFromConfig(cfg.History)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("opening history: %w", err)
	}

	var term *terminal.Terminal
	if f, ok := opts.Stdin.(*os.File); ok {
		term = terminal.New(f, opts.Stdout)
	} else {
		term = terminal.NewFromReader(opts.Stdin, opts.Stdout)
	}

	logger.Debug("app initialized", "store", cfg.Store.Type, "history", cfg.History.Type)

	return &GibberishApp{
		cfg:     cfg,
		store:   s,
		history: history,
		term:    term,
		service: gibberish.NewService(s, term, logger, rand.Reader),
		tracker: &operationTracker{history: history, clock: gibberish.RealClock{}, ids: ids, logger: logger},
		logger:  logger,
		logFile: logFile,
	}, nil
}

// Encode turns path into gibberish. An empty extension means the configured
// default. With interactive set the passphrase is prompted for twice;
// otherwise the target extension is the passphrase.
func (a *GibberishApp) Encode(path, extension string, interactive, yes bool) (*gibberish.Result, error) {
	if extension == "" {
		extension = a.defaultExtension()
	}

	req := gibberish.EncodeRequest{
		Input:          path,
		Extension:      extension,
		AllowOverwrite: yes,
	}
	if interactive {
		req.Passphrase = &gibberish.PromptPassphrase{Prompter: a.term, Confirm: true, Logger: a.logger}
	}

	op := a.tracker.begin(gibberish.ModeEncode, path)
	res, err := a.service.Encode(req)
	a.tracker.finish(op, res, err)
	return res, err
}

// Decode restores the file hidden in path. With interactive set the
// passphrase is prompted for once; otherwise the input's extension is the
// passphrase.
func (a *GibberishApp) Decode(path string, interactive, yes bool) (*gibberish.Result, error) {
	req := gibberish.DecodeRequest{
		Input:          path,
		AllowOverwrite: yes,
	}
	if interactive {
		req.Passphrase = &gibberish.PromptPassphrase{Prompter: a.term, Logger: a.logger}
	}

	op := a.tracker.begin(gibberish.ModeDecode, path)
	res, err := a.service.Decode(req)
	a.tracker.finish(op, res, err)
	return res, err
}

// History returns the most recent invocations, newest first.
func (a *GibberishApp) History(limit int) ([]*gibberish.Operation, error) {
	return a.history.ListOperations(limit)
}

// Close releases the history database and the log file.
func (a *GibberishApp) Close() error {
	var firstErr error

	if err := a.history.Close(); err != nil {
		firstErr = fmt.Errorf("closing history: %w", err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}

func (a *GibberishApp) defaultExtension() string {
	if a.cfg.DefaultExtension != "" {
		return a.cfg.DefaultExtension
	}
	return gibberish.DefaultExtension
}
