package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/llm"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/logging"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/questiongen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/questions"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/screen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/session"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/state"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
)

// errNoEventLog is returned by commands that need the session or LLM log
// while running without a database.
var errNoEventLog = errors.New("history is unavailable: the database could not be opened")

// env is everything a command needs from the data directory. store is nil
// when the database could not be opened and the command runs in memory.
type env struct {
	store  *store.Store
	log    io.Closer
	deps   screen.Deps
	errOut io.Writer
}

// Close prints any notices not yet shown, then releases the store and the
// log file.
func (e *env) Close() error {
	e.reportNotices()
	var err error
	if e.store != nil {
		err = e.store.Close()
	}
	return errors.Join(err, e.log.Close())
}

// reportNotices writes pending data notices to stderr.
func (e *env) reportNotices() {
	for _, n := range e.deps.Repo.Notices() {
		fmt.Fprintln(e.errOut, "Notice:", capitalize(n.Message)+".")
	}
}

// events is the event log, or errNoEventLog when running in memory.
func (e *env) events() (store.EventRepo, error) {
	if e.deps.Events == nil {
		return nil, errNoEventLog
	}
	return e.deps.Events, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// openEnv opens the store, configures logging and builds the services.
// With withLLM the question service gets a generator when a provider is
// configured; a missing provider is not an error. A database that cannot
// be opened is not an error either: the command runs against an in-memory
// store with no event log and a notice says so.
func openEnv(cmd *cobra.Command, withLLM bool) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	level, err := logging.ParseLevel(flagOrEnv(cmd, "log-level", "HISTORY_VAULT_LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	scope, err := session.ParseScope(flagOrEnv(cmd, "stats-scope", "HISTORY_VAULT_STATS_SCOPE"))
	if err != nil {
		return nil, err
	}

	logCloser, err := logging.Init(store.LogPath(dbPath), level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
	}

	var (
		repo   *state.Repo
		events store.EventRepo
	)
	st, err := store.Open(dbPath)
	if err != nil {
		slog.Error("store unavailable, running in memory", "path", dbPath, "err", err)
		repo = state.New(store.NewMemoryKV())
		repo.AddNotice("database", fmt.Sprintf("could not open %s (%v); nothing will be saved this run", dbPath, err))
	} else {
		slog.Debug("store opened", "path", dbPath, "scope", scope.String())
		repo = state.New(st.KV())
		events = st.EventRepo()
	}

	var qopts []questions.Option
	if withLLM {
		if gen, err := newGenerator(ctx, events); err != nil {
			slog.Info("question generation unavailable", "err", err)
		} else {
			qopts = append(qopts, questions.WithGenerator(gen))
		}
	}

	return &env{
		store:  st,
		log:    logCloser,
		errOut: cmd.ErrOrStderr(),
		deps: screen.Deps{
			Repo:      repo,
			Roster:    roster.New(repo, rosterOptions()...),
			Questions: questions.NewService(repo, qopts...),
			Events:    events,
			Scope:     scope,
		},
	}, nil
}

// newGenerator builds an LLM-backed question generator from the environment.
func newGenerator(ctx context.Context, events store.EventRepo) (*questiongen.LLMGenerator, error) {
	cfg, err := llm.ResolveConfig()
	if err != nil {
		return nil, err
	}
	cfg.Offline = questiongen.SampleBatch()
	provider, err := llm.NewProvider(ctx, cfg, events)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return questiongen.New(provider, questiongen.DefaultConfig()), nil
}

// backupVersion is the version stamped into backups. Development builds
// have no semantic version: they stamp the roster default and report dev.
func backupVersion() (v string, dev bool) {
	v = version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return roster.DefaultVersion, true
	}
	return strings.TrimPrefix(v, "v"), false
}

// rosterOptions configures backups for the running build.
func rosterOptions() []roster.Option {
	v, dev := backupVersion()
	opts := []roster.Option{roster.WithVersion(v)}
	if dev {
		opts = append(opts, roster.WithDevBuild())
	}
	return opts
}

// withTimeout is the context for one blocking CLI operation.
func withTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}
