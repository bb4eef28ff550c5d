package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbaille/planner/internal/config"
	"github.com/pbaille/planner/internal/domain"
	"github.com/pbaille/planner/internal/logger"
	"github.com/pbaille/planner/internal/planner"
	"github.com/pbaille/planner/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "planner",
		Short:        "School planner: goals, timetable, homework, to-dos and reading log",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")

	rootCmd.AddCommand(goalCmd())
	rootCmd.AddCommand(classCmd())
	rootCmd.AddCommand(homeworkCmd())
	rootCmd.AddCommand(todoCmd())
	rootCmd.AddCommand(bookCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(themeCmd())
	rootCmd.AddCommand(todayCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state one command invocation works on
type app struct {
	cfg     config.Config
	log     *logger.Logger
	store   *store.DocumentStore
	state   *planner.Container
	planner *planner.Planner
}

// openApp loads config, opens the store and hydrates a container that
// persists every transition back to it
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	s, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	state := planner.NewContainer(s.Load(ctx))
	state.Subscribe(planner.PersistTo(ctx, s, log))

	return &app{
		cfg:     cfg,
		log:     log,
		store:   s,
		state:   state,
		planner: planner.New(),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("close store failed", "error", err)
	}
	a.log.Sync()
}

// run opens the app around fn
func run(fn func(a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(a, args)
	}
}

// apply runs t and warns when the new document could not be saved
func (a *app) apply(t planner.Transition) domain.Document {
	doc, err := a.state.Apply(t)
	warnPersist(err)
	return doc
}

// add applies an add transition and reports the new id, or a notice when
// the required field was blank
func (a *app) add(what string, fn func(domain.Document) (domain.Document, string)) {
	var id string
	a.apply(func(d domain.Document) domain.Document {
		next, newID := fn(d)
		id = newID
		return next
	})
	if id == "" {
		fmt.Printf("Nothing added: %s is empty.\n", what)
		return
	}
	fmt.Printf("Added %s\n", planner.ShortID(id))
}

// byID resolves an id prefix in c and applies fn to the matching record
func (a *app) byID(c planner.Collection, prefix string, fn func(domain.Document, string) domain.Document) (string, error) {
	id, err := planner.Resolve(a.state.Document(), c, prefix)
	if err != nil {
		return "", err
	}
	a.apply(func(d domain.Document) domain.Document { return fn(d, id) })
	return id, nil
}

func warnPersist(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: changes not saved: %v\n", err)
	}
}

// truncate shortens s to at most max runes, newlines flattened to spaces
func truncate(s string, max int) string {
	r := []rune(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-3]) + "..."
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
