// Package config resolves the settings for a test run from defaults, an optional .env file,
// environment variables and command-line flags. The result is an immutable Config value that is
// passed explicitly to every component.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/qaforge/web-tests/capture"
)

// Keys are the lower-case forms of the environment variable names.
const (
	KeyBrowser            = "browser"
	KeyHeadless           = "headless"
	KeySlowMo             = "slow_mo"
	KeyDefaultTimeout     = "default_timeout"
	KeyLongTimeout        = "long_timeout"
	KeyShortTimeout       = "short_timeout"
	KeySauceURL           = "sauce_url"
	KeyDemoQAURL          = "demoqa_url"
	KeyReqResURL          = "reqres_url"
	KeyReqResAPIKey       = "reqres_api_key"
	KeySauceUsername      = "sauce_username"
	KeySaucePassword      = "sauce_password"
	KeySauceLockedUser    = "sauce_locked_user"
	KeySauceProblemUser   = "sauce_problem_user"
	KeyReqResEmail        = "reqres_email"
	KeyReqResPassword     = "reqres_password"
	KeyReportsDir         = "reports_dir"
	KeyArtifacts          = "artifacts"
	KeyTraceOnFailure     = "trace_on_failure"
	KeyScreenshotFullPage = "screenshot_full_page"
	KeyAllureResultsDir   = "allure_results_dir"
	KeyCI                 = "ci"
	KeyEnvironment        = "environment"
	KeyLogLevel           = "log_level"
	KeyLogFile            = "log_file"
	KeyViewportWidth      = "viewport_width"
	KeyViewportHeight     = "viewport_height"
	KeyLocale             = "locale"
	KeyTimezone           = "timezone"
	KeyDeviceName         = "device_name"
	KeyAPITimeout         = "api_timeout"
	KeyAPIRetryCount      = "api_retry_count"
	KeyAPIRetryDelay      = "api_retry_delay"
)

var supportedBrowsers = []string{"chromium", "firefox", "webkit"}

type BrowserConfig struct {
	Name     string
	Headless bool
	SlowMo   time.Duration
	Viewport Viewport
	Locale   string
	Timezone string
	// Device is a Playwright device descriptor name such as "iPhone 12". Undefined means desktop.
	Device ldvalue.OptionalString
}

type Viewport struct {
	Width, Height int
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

type TimeoutConfig struct {
	Default time.Duration
	Long    time.Duration
	Short   time.Duration
}

type Credentials struct {
	Username string
	Password string
}

type SauceDemoConfig struct {
	URL         string
	Standard    Credentials
	LockedUser  string
	ProblemUser string
}

type ReqResConfig struct {
	URL    string
	APIKey string
	Login  Credentials
}

type APIConfig struct {
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
}

type ReportsConfig struct {
	Dir                string
	Artifacts          bool
	TraceOnFailure     bool
	ScreenshotFullPage bool
	// AllureResultsDir is empty when Allure output is not wanted.
	AllureResultsDir string
}

type LoggingConfig struct {
	Level string
	File  string
}

type Config struct {
	Browser     BrowserConfig
	Timeouts    TimeoutConfig
	SauceDemo   SauceDemoConfig
	DemoQAURL   string
	ReqRes      ReqResConfig
	API         APIConfig
	Reports     ReportsConfig
	Logging     LoggingConfig
	CI          bool
	Environment string
}

// SetDefaults registers the default value of every setting.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBrowser, "chromium")
	v.SetDefault(KeyHeadless, true)
	v.SetDefault(KeySlowMo, 0)
	v.SetDefault(KeyDefaultTimeout, 10000)
	v.SetDefault(KeyLongTimeout, 30000)
	v.SetDefault(KeyShortTimeout, 5000)

	v.SetDefault(KeySauceURL, "https://www.saucedemo.com")
	v.SetDefault(KeyDemoQAURL, "https://demoqa.com")
	v.SetDefault(KeyReqResURL, "https://reqres.in/api")
	v.SetDefault(KeyReqResAPIKey, "")
	v.SetDefault(KeySauceUsername, "standard_user")
	v.SetDefault(KeySaucePassword, "secret_sauce")
	v.SetDefault(KeySauceLockedUser, "locked_out_user")
	v.SetDefault(KeySauceProblemUser, "problem_user")
	v.SetDefault(KeyReqResEmail, "eve.holt@reqres.in")
	v.SetDefault(KeyReqResPassword, "cityslicka")

	v.SetDefault(KeyReportsDir, capture.DefaultReportsRoot)
	v.SetDefault(KeyArtifacts, true)
	v.SetDefault(KeyTraceOnFailure, true)
	v.SetDefault(KeyScreenshotFullPage, true)
	v.SetDefault(KeyAllureResultsDir, "")

	v.SetDefault(KeyCI, false)
	v.SetDefault(KeyEnvironment, "local")
	v.SetDefault(KeyLogLevel, "INFO")
	v.SetDefault(KeyLogFile, "")

	v.SetDefault(KeyViewportWidth, 1920)
	v.SetDefault(KeyViewportHeight, 1080)
	v.SetDefault(KeyLocale, "en-US")
	v.SetDefault(KeyTimezone, "America/Vancouver")
	v.SetDefault(KeyDeviceName, "")

	v.SetDefault(KeyAPITimeout, 30)
	v.SetDefault(KeyAPIRetryCount, 3)
	v.SetDefault(KeyAPIRetryDelay, 1)
}

// ReadDotEnv merges KEY=value pairs from path into v. A missing file is not an error.
func ReadDotEnv(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// Load builds a Config from v. Environment variables are enabled on v; flags, if any, must
// already be bound with BindPFlag so that they take precedence.
func Load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()

	reportsDir := v.GetString(KeyReportsDir)
	logFile := v.GetString(KeyLogFile)
	if logFile == "" {
		logFile = filepath.Join(reportsDir, "test_execution.log")
	}
	device := ldvalue.OptionalString{}
	if name := strings.TrimSpace(v.GetString(KeyDeviceName)); name != "" {
		device = ldvalue.NewOptionalString(name)
	}

	c := Config{
		Browser: BrowserConfig{
			Name:     strings.ToLower(strings.TrimSpace(v.GetString(KeyBrowser))),
			Headless: v.GetBool(KeyHeadless),
			SlowMo:   millis(v.GetInt(KeySlowMo)),
			Viewport: Viewport{Width: v.GetInt(KeyViewportWidth), Height: v.GetInt(KeyViewportHeight)},
			Locale:   v.GetString(KeyLocale),
			Timezone: v.GetString(KeyTimezone),
			Device:   device,
		},
		Timeouts: TimeoutConfig{
			Default: millis(v.GetInt(KeyDefaultTimeout)),
			Long:    millis(v.GetInt(KeyLongTimeout)),
			Short:   millis(v.GetInt(KeyShortTimeout)),
		},
		SauceDemo: SauceDemoConfig{
			URL:         v.GetString(KeySauceURL),
			Standard:    Credentials{Username: v.GetString(KeySauceUsername), Password: v.GetString(KeySaucePassword)},
			LockedUser:  v.GetString(KeySauceLockedUser),
			ProblemUser: v.GetString(KeySauceProblemUser),
		},
		DemoQAURL: v.GetString(KeyDemoQAURL),
		ReqRes: ReqResConfig{
			URL:    v.GetString(KeyReqResURL),
			APIKey: v.GetString(KeyReqResAPIKey),
			Login:  Credentials{Username: v.GetString(KeyReqResEmail), Password: v.GetString(KeyReqResPassword)},
		},
		API: APIConfig{
			Timeout:    time.Duration(v.GetInt(KeyAPITimeout)) * time.Second,
			RetryCount: v.GetInt(KeyAPIRetryCount),
			RetryDelay: time.Duration(v.GetInt(KeyAPIRetryDelay)) * time.Second,
		},
		Reports: ReportsConfig{
			Dir:                reportsDir,
			Artifacts:          v.GetBool(KeyArtifacts),
			TraceOnFailure:     v.GetBool(KeyTraceOnFailure),
			ScreenshotFullPage: v.GetBool(KeyScreenshotFullPage),
			AllureResultsDir:   v.GetString(KeyAllureResultsDir),
		},
		Logging: LoggingConfig{
			Level: v.GetString(KeyLogLevel),
			File:  logFile,
		},
		CI:          v.GetBool(KeyCI),
		Environment: v.GetString(KeyEnvironment),
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// Validate checks for values that would make every test fail in confusing ways.
func (c Config) Validate() error {
	known := false
	for _, b := range supportedBrowsers {
		if c.Browser.Name == b {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("unsupported browser %q (expected one of %s)", c.Browser.Name,
			strings.Join(supportedBrowsers, ", "))
	}
	if c.Browser.Viewport.Width <= 0 || c.Browser.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %s", c.Browser.Viewport)
	}
	if c.Browser.SlowMo < 0 {
		return errors.New("slow_mo must not be negative")
	}
	if c.Timeouts.Default <= 0 || c.Timeouts.Long <= 0 || c.Timeouts.Short <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.API.RetryCount < 0 {
		return errors.New("api_retry_count must not be negative")
	}
	if c.Reports.Dir == "" {
		return errors.New("reports_dir must not be empty")
	}
	return nil
}

// Capture returns the settings that control failure artifact capture.
func (c Config) Capture() capture.Config {
	return capture.Config{
		Enabled:             c.Reports.Artifacts,
		TraceOnFailure:      c.Reports.TraceOnFailure,
		ReportsRoot:         c.Reports.Dir,
		FullPageScreenshots: c.Reports.ScreenshotFullPage,
	}
}

// EnvInfo summarizes the run environment for reports.
func (c Config) EnvInfo() map[string]string {
	info := map[string]string{
		"environment":       c.Environment,
		"browser":           c.Browser.Name,
		"headless":          fmt.Sprint(c.Browser.Headless),
		"ci":                fmt.Sprint(c.CI),
		"viewport":          c.Browser.Viewport.String(),
		"timeout":           fmt.Sprint(c.Timeouts.Default.Milliseconds()),
		"artifacts_enabled": fmt.Sprint(c.Reports.Artifacts),
	}
	if c.Browser.Device.IsDefined() {
		info["device"] = c.Browser.Device.StringValue()
	}
	return info
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
