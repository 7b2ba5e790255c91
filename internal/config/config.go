/*
Package config loads the runtime configuration: a YAML file for the stable
settings, environment variables overriding the secrets. The struct is built
once in main and handed to constructors; there is no package-level state.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_5_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1"

type Render struct {
	Endpoint       string `yaml:"endpoint"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	GeoLocation    string `yaml:"geo_location"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (r Render) Configured() bool { return r.Username != "" && r.Password != "" }

func (r Render) Timeout() time.Duration { return time.Duration(r.TimeoutSeconds) * time.Second }

type Proxy struct {
	Server   string `yaml:"server"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func (p Proxy) Configured() bool { return p.Server != "" }

type Browser struct {
	UserAgent         string `yaml:"user_agent"`
	NavTimeoutSeconds int    `yaml:"nav_timeout_seconds"`
	ScrollSteps       int    `yaml:"scroll_steps"`
	ScrollPauseMillis int    `yaml:"scroll_pause_millis"`
	MergeThreshold    int    `yaml:"merge_threshold"`
}

func (b Browser) NavTimeout() time.Duration { return time.Duration(b.NavTimeoutSeconds) * time.Second }

func (b Browser) ScrollPause() time.Duration {
	return time.Duration(b.ScrollPauseMillis) * time.Millisecond
}

type Slack struct {
	WebhookURL string `yaml:"webhook_url"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	SMTPUser   string `yaml:"smtp_user"`
	SMTPPass   string `yaml:"smtp_pass"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

func (e Email) Configured() bool {
	return e.SMTPServer != "" && e.SMTPUser != "" && e.SMTPPass != "" && e.ToEmail != ""
}

type Drive struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`
	FolderID     string `yaml:"folder_id"`
}

type Gemini struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type Config struct {
	TargetURL string `yaml:"target_url"`
	OutputDir string `yaml:"output_dir"`
	Workbook  string `yaml:"workbook"`
	Timezone  string `yaml:"timezone"`

	Render  Render  `yaml:"render"`
	Proxy   Proxy   `yaml:"proxy"`
	Browser Browser `yaml:"browser"`
	Slack   Slack   `yaml:"slack"`
	Email   Email   `yaml:"email"`
	Drive   Drive   `yaml:"drive"`
	Gemini  Gemini  `yaml:"gemini"`
}

// WorkbookPath is the workbook location inside the output directory.
func (c Config) WorkbookPath() string {
	return filepath.Join(c.OutputDir, c.Workbook)
}

// Defaults mirrors the production deployment: the mobile brand-ranking tab,
// KST day keys and the realtime rendering endpoint.
func Defaults() Config {
	return Config{
		TargetURL: "https://m.oliveyoung.co.kr/m/mtn?menu=ranking&tab=brands",
		OutputDir: "data",
		Workbook:  "올리브영_브랜드_순위.xlsx",
		Timezone:  "Asia/Seoul",
		Render: Render{
			Endpoint:       "https://realtime.oxylabs.io/v1/queries",
			GeoLocation:    "South Korea",
			TimeoutSeconds: 60,
		},
		Browser: Browser{
			UserAgent:         mobileUserAgent,
			NavTimeoutSeconds: 60,
			ScrollSteps:       6,
			ScrollPauseMillis: 1500,
			MergeThreshold:    50,
		},
		Email: Email{
			SMTPServer: "smtp.gmail.com",
			SMTPPort:   587,
		},
		Gemini: Gemini{
			Model: "gemini-2.0-flash",
		},
	}
}

// Load reads an optional YAML file over the defaults and applies environment
// overrides for secrets. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)

	if cfg.TargetURL == "" {
		return Config{}, fmt.Errorf("target_url is required")
	}
	if cfg.Workbook == "" {
		return Config{}, fmt.Errorf("workbook is required")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overlay(&cfg.Render.Username, "OXY_USER")
	overlay(&cfg.Render.Password, "OXY_PASS")
	overlay(&cfg.Proxy.Server, "PROXY_SERVER")
	overlay(&cfg.Proxy.Username, "PROXY_USER")
	overlay(&cfg.Proxy.Password, "PROXY_PASS")
	overlay(&cfg.Slack.WebhookURL, "SLACK_WEBHOOK_URL")
	overlay(&cfg.Email.SMTPUser, "SMTP_USER")
	overlay(&cfg.Email.SMTPPass, "SMTP_PASS")
	overlay(&cfg.Drive.ClientID, "GOOGLE_CLIENT_ID")
	overlay(&cfg.Drive.ClientSecret, "GOOGLE_CLIENT_SECRET")
	overlay(&cfg.Drive.RefreshToken, "GOOGLE_REFRESH_TOKEN")
	overlay(&cfg.Drive.FolderID, "GDRIVE_FOLDER_ID")
	overlay(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
}

func overlay(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}
