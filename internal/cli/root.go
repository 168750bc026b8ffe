package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsolver/internal/adapters"
	"depsolver/internal/app"
	"depsolver/internal/ports"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "DEPSOLVER"

type RootConfig struct {
	ConfigFile         string
	LogLevel           string
	Solver             string
	SolverCmd          string
	ScratchDir         string
	MaxCycleIterations int
	Trace              bool
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:     "depsolver <repository> <initial> <constraints>",
		Short:   "Dependency resolver: computes an install/uninstall command sequence",
		Version: version,
		Args:    cobra.ExactArgs(3),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			cmd.SetContext(log.Logger.WithContext(cmd.Context()))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args)
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.Flags().StringVar(&cfg.Solver, "solver", "embedded", "Solver backend: embedded or exec")
	cmd.Flags().StringVar(&cfg.SolverCmd, "solver-cmd", "", "Path to an external Max-SAT solver binary (solver=exec)")
	cmd.Flags().StringVar(&cfg.ScratchDir, "scratch-dir", "", "Directory for scratch WCNF files (solver=exec)")
	cmd.Flags().IntVar(&cfg.MaxCycleIterations, "max-cycle-iterations", app.DefaultMaxCycleIterations, "Maximum solver invocations, counting the first solve and every cycle-recovery re-solve")
	cmd.Flags().BoolVar(&cfg.Trace, "trace", false, "Emit a structured resolution trace (clause counts, solver invocations, cycle recoveries) as a log line")

	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("solver", cmd.Flags().Lookup("solver"))
	_ = viper.BindPFlag("solver_cmd", cmd.Flags().Lookup("solver-cmd"))
	_ = viper.BindPFlag("scratch_dir", cmd.Flags().Lookup("scratch-dir"))
	_ = viper.BindPFlag("max_cycle_iterations", cmd.Flags().Lookup("max-cycle-iterations"))
	_ = viper.BindPFlag("trace", cmd.Flags().Lookup("trace"))
	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	var solver ports.SolverPort
	switch viper.GetString("solver") {
	case "exec":
		solver = adapters.NewExecSolverAdapter(viper.GetString("solver_cmd"), viper.GetString("scratch_dir"))
	default:
		solver = adapters.NewEmbeddedSolverAdapter()
	}

	service := app.NewServiceWithSolver(solver, viper.GetInt("max_cycle_iterations"))
	result, err := service.Solve(cmd.Context(), app.SolveRequest{
		RepositoryPath:  args[0],
		InitialPath:     args[1],
		ConstraintsPath: args[2],
	})
	if err != nil {
		log.Ctx(cmd.Context()).Error().Err(err).Msg(errorMessage(err))
		return err
	}

	if viper.GetBool("trace") {
		log.Ctx(cmd.Context()).Info().
			Int("packages_parsed", result.Trace.PackagesParsed).
			Int("initial_installed", result.Trace.InitialInstalled).
			Int("install_constraints", result.Trace.InstallConstraints).
			Int("uninstall_constraints", result.Trace.UninstallConstraints).
			Int("hard_clauses", result.Trace.HardClauses).
			Int("soft_clauses", result.Trace.SoftClauses).
			Int("solver_invocations", result.Trace.SolverInvocations).
			Int("cycle_recoveries", result.Trace.CycleRecoveries).
			Int("commands_emitted", result.Trace.CommandsEmitted).
			Msg("resolution trace")
	}

	encoded, err := json.Marshal(result.Commands)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("depsolver")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/depsolver")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	switch code {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeFailedPrecondition:
		return 3
	case errbuilder.CodePermissionDenied:
		return 4
	case errbuilder.CodeNotFound:
		return 5
	case errbuilder.CodeInternal:
		return 6
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
