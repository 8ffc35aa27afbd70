package main

import (
	"regexp"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/qaforge/web-tests/config"
	"github.com/qaforge/web-tests/framework"
)

const commandName = "web-tests"

type commandParams struct {
	filters  framework.RegexFilters
	smoke    bool
	full     bool
	flaky    bool
	debug    bool
	debugAll bool
	envFile  string
}

// addFlags registers the command line flags. Flags that correspond to configuration settings
// are bound to v, so that a flag given on the command line overrides the environment.
func (c *commandParams) addFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.smoke, "smoke", false, "run smoke tests only")
	fs.BoolVar(&c.full, "full", false, "run full regression suite (exclude flaky tests)")
	fs.BoolVar(&c.flaky, "flaky", false, "run flaky tests only")
	fs.BoolVar(&c.debug, "debug", false, "show debug output for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show debug output for all tests")
	fs.StringVar(&c.envFile, "env-file", ".env", "file of KEY=value settings, ignored if missing")

	fs.Bool("artifacts", true, "capture screenshot, trace and console log of failed browser tests")
	fs.Bool("trace-on-failure", true, "record a Playwright trace and keep it for failed tests")
	fs.String("alluredir", "", "directory for Allure results (none if empty)")
	fs.String("reports-dir", "reports", "root directory for artifacts and logs")
	fs.String("browser", "chromium", "browser to run: chromium, firefox or webkit")
	fs.Bool("headless", true, "run the browser without a window")
	fs.String("log-level", "info", "log level: debug, info, warn or error")

	for key, flag := range map[string]string{
		config.KeyArtifacts:        "artifacts",
		config.KeyTraceOnFailure:   "trace-on-failure",
		config.KeyAllureResultsDir: "alluredir",
		config.KeyReportsDir:       "reports-dir",
		config.KeyBrowser:          "browser",
		config.KeyHeadless:         "headless",
		config.KeyLogLevel:         "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

// executionMode is checked before anything else happens, so that a usage error leaves no
// trace on disk.
func (c *commandParams) executionMode() (framework.ExecutionMode, error) {
	return framework.SelectExecutionMode(c.smoke, c.full, c.flaky)
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand is the command that runs only the given test again.
func rerunCommand(id framework.TestID) string {
	var b commandBuilder
	b.add(commandName, "--run", "^"+regexp.QuoteMeta(id.String())+"$")
	return b.String()
}
