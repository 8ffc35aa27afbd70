package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/qaforge/web-tests/allure"
	"github.com/qaforge/web-tests/apiclient"
	"github.com/qaforge/web-tests/apps/reqres"
	"github.com/qaforge/web-tests/browser"
	"github.com/qaforge/web-tests/capture"
	"github.com/qaforge/web-tests/config"
	"github.com/qaforge/web-tests/framework"
	"github.com/qaforge/web-tests/logging"
	"github.com/qaforge/web-tests/webtests"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

var errTestsFailed = errors.New("some tests failed")

type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	cmd, err := newRootCommand(viper.New(), stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailed
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err = cmd.Execute()
	var usage usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errTestsFailed):
		return exitFailed
	case errors.As(err, &usage):
		fmt.Fprintf(stderr, "Error: %s\n", err)
		fmt.Fprintln(stderr, cmd.UsageString())
		return exitUsage
	default:
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitFailed
	}
}

func newRootCommand(v *viper.Viper, stdout io.Writer) (*cobra.Command, error) {
	params := &commandParams{}
	cmd := &cobra.Command{
		Use:           commandName,
		Short:         "Run the browser and API test suites, capturing artifacts of failed tests",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(params, v, stdout)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	if err := params.addFlags(cmd.Flags(), v); err != nil {
		return nil, err
	}
	return cmd, nil
}

func run(params *commandParams, v *viper.Viper, stdout io.Writer) error {
	mode, err := params.executionMode()
	if err != nil {
		return usageError{err}
	}

	config.SetDefaults(v)
	if err := config.ReadDotEnv(v, params.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		return err
	}
	defer logging.Sync(logger)
	logger.Info("Starting test run",
		zap.String("mode", mode.String()),
		zap.String("browser", cfg.Browser.Name),
		zap.String("environment", cfg.Environment),
		zap.Bool("artifacts", cfg.Reports.Artifacts),
		zap.Bool("trace_on_failure", cfg.Reports.TraceOnFailure))

	consoleLogger := &ConsoleTestLogger{
		Out:                  stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	var testLogger framework.TestLogger = consoleLogger
	var attacher capture.Attacher
	if cfg.Reports.AllureResultsDir != "" {
		reporter, err := allure.NewReporter(cfg.Reports.AllureResultsDir, logger)
		if err != nil {
			return err
		}
		if err := reporter.WriteEnvironment(cfg.EnvInfo()); err != nil {
			logger.Warn("Could not write Allure environment", zap.Error(err))
		}
		testLogger = framework.MultiTestLogger(consoleLogger, reporter)
		attacher = reporter
	}

	browsers := browser.NewLazy(func() (*browser.Manager, error) {
		return browser.Launch(cfg.Browser, cfg.Timeouts, logger)
	})
	defer func() {
		if err := browsers.Close(); err != nil {
			logger.Warn("Error shutting down browser", zap.Error(err))
		}
	}()

	env := &webtests.Environment{
		Config: cfg,
		Browser: func() (webtests.Browser, error) {
			m, err := browsers.Get()
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		Capture: capture.NewCoordinator(cfg.Capture(), attacher, logger),
		ReqRes: reqres.New(apiclient.Options{
			BaseURL:    cfg.ReqRes.URL,
			Timeout:    cfg.API.Timeout,
			RetryCount: cfg.API.RetryCount,
			RetryDelay: cfg.API.RetryDelay,
			Logger:     logger,
		}, cfg.ReqRes.APIKey),
		Logger: logger,
	}

	fmt.Fprintln(stdout)
	framework.PrintFilterDescription(stdout, params.filters, mode)
	fmt.Fprintln(stdout, "Running test suite")

	results := webtests.RunTestSuite(env,
		framework.AllFilters(params.filters.AsFilter, mode.AsFilter), testLogger)

	fmt.Fprintln(stdout)
	framework.PrintResults(stdout, results)
	passed, failed, skipped := results.Counts()
	logger.Info("Test run finished", zap.Int("passed", passed), zap.Int("failed", failed), zap.Int("skipped", skipped))
	if !results.OK() {
		return errTestsFailed
	}
	return nil
}
