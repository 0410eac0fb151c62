package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"codebenders/internal/client/apiclient"
	"codebenders/internal/client/appstate"
	"codebenders/internal/client/panel"
	"codebenders/internal/client/route"
	"codebenders/internal/client/service"
	"codebenders/internal/client/storage"
	"codebenders/internal/config"
	"codebenders/internal/pkg/logger"
)

type rootOptions struct {
	apiURL    string
	stateFile string
	logFile   string
	output    string
	demo      bool
	noColor   bool
}

// app is built once per invocation, before any subcommand runs.
type app struct {
	cfg   *config.Config
	store *storage.FileStore
	state *appstate.State
	log   *logger.ZapLogger
	deps  *panel.Deps
	out   *printer
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	cmd := &cobra.Command{
		Use:           "codebenders",
		Short:         "Plan an application from requirements to deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", "", "backend base URL (default $CODEBENDERS_API_URL)")
	flags.StringVar(&opts.stateFile, "state-file", "", "local state file (default $CODEBENDERS_STATE_FILE)")
	flags.StringVar(&opts.logFile, "log-file", "", "client log file (default $CODEBENDERS_LOG_FILE)")
	flags.StringVarP(&opts.output, "output", "o", "text", "output format: text, json or yaml")
	flags.BoolVar(&opts.demo, "demo", false, "synthesize login and project data when the backend is unreachable")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newLoginCmd(a),
		newSignupCmd(a),
		newForgotPasswordCmd(a),
		newResetPasswordCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newProjectsCmd(a),
		newStepsCmd(a),
		newPRDCmd(a),
		newPersonasCmd(a),
		newRulesCmd(a),
		newBrandCmd(a),
		newThirdPartyCmd(a),
		newReportCmd(a),
		newWizardCmd(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command, opts *rootOptions) error {
	if opts.noColor {
		color.NoColor = true
	}
	out, err := newPrinter(cmd.OutOrStdout(), opts.output)
	if err != nil {
		return err
	}
	a.out = out

	a.cfg = config.Load()
	if opts.apiURL != "" {
		a.cfg.Client.APIBaseURL = opts.apiURL
	}
	if opts.stateFile != "" {
		a.cfg.Client.StatePath = opts.stateFile
	}
	if opts.logFile != "" {
		a.cfg.Client.LogFilePath = opts.logFile
	}
	if cmd.Flags().Changed("demo") {
		a.cfg.Client.DemoMode = opts.demo
	}

	a.store, err = storage.OpenFileStore(a.cfg.Client.StatePath)
	if err != nil {
		return fmt.Errorf("open state file: %w", err)
	}
	a.state = appstate.New(a.store)
	a.log = logger.NewIsolatedLogger(a.cfg.Client.LogFilePath)

	api := apiclient.New(a.cfg.Client.APIBaseURL, a.cfg.Client.Timeout, a.state, apiclient.WithLogger(a.log))
	a.deps = &panel.Deps{
		State:     a.state,
		Router:    route.NewRouter(),
		Auth:      service.NewAuthService(api),
		Projects:  service.NewProjectService(api),
		Brand:     service.NewBrandService(api),
		Workspace: service.NewWorkspaceService(api),
		Logger:    a.log,
		DemoMode:  a.cfg.Client.DemoMode,
	}

	a.log.Debug("cli", "Command started", map[string]interface{}{
		"command":   cmd.CommandPath(),
		"api_url":   a.cfg.Client.APIBaseURL,
		"demo_mode": a.cfg.Client.DemoMode,
	})
	return nil
}

var (
	errNotLoggedIn = errors.New("not logged in: run `codebenders login` first")
	errNoProject   = errors.New("no project selected: run `codebenders projects use <id>` or `codebenders projects create <name>`")
)

func (a *app) requireSession() error {
	if a.state.Token() == "" {
		return errNotLoggedIn
	}
	return nil
}

func (a *app) requireProject() error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if a.state.CurrentProject() == nil {
		return errNoProject
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", panel.Message(err, err.Error())))
		os.Exit(1)
	}
}
