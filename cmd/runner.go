package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ctms-cli/internal/repositories"
	"github.com/desertthunder/ctms-cli/internal/services"
	"github.com/desertthunder/ctms-cli/internal/shared"
	"github.com/desertthunder/ctms-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	ctms       *services.CTMSService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	errOutput  io.Writer
	engine     *tasks.ContactEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	CTMS       *services.CTMSService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	ErrOutput  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.CTMS == nil {
		opts.CTMS = services.NewCTMSService(opts.Config.API.URL, opts.HTTPClient)
	}

	return &Runner{
		config:     opts.Config,
		ctms:       opts.CTMS,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		errOutput:  opts.ErrOutput,
		engine:     tasks.NewContactEngine(opts.CTMS),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		subscriptionsCommand, contactsCommand, authCommand, apiCommand, journalCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// authenticate validates the credentials in the config and exchanges them
// for a bearer token. Both failure modes are fatal: no per-contact work
// happens without a token.
func (r *Runner) authenticate(ctx context.Context) (*services.TokenResponse, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}
	return r.ctms.Authenticate(ctx, r.config.API.ClientID, r.config.API.ClientSecret)
}

// openJournal opens (creating if needed) the SQLite run journal at the
// given path and applies pending migrations.
func (r *Runner) openJournal(path string) (*repositories.JournalRepository, *sql.DB, error) {
	if path == "" {
		return nil, nil, shared.ErrJournalDisabled
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, err
	}

	if r.config.Journal.MaxOpenConns > 0 {
		shared.ConfigureDatabase(db, r.config.Journal.MaxOpenConns, r.config.Journal.MaxIdleConns)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return repositories.NewJournalRepository(db), db, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeError(format string, args ...any) {
	fmt.Fprintf(r.errOutput, format, args...)
}
