package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	DBPath   string `envconfig:"DB_PATH" default:"./data/fencing_alerts.db"`

	// Club website endpoints. The landing page hands out the session cookie
	// the calendar page insists on.
	CalendarURL string `envconfig:"CALENDAR_URL" default:"https://www.fencersnetwork.com/calendar/calendar_public.asp?c=SWP&v=9"`
	CookieURL   string `envconfig:"COOKIE_URL" default:"https://www.swordplayers.com/index.asp"`
	WeeksAhead  int    `envconfig:"WEEKS_AHEAD" default:"0"` // extra calendar weeks to scrape beyond the current one

	CheckInterval       time.Duration `envconfig:"CHECK_INTERVAL" default:"1h"`
	DispatchConcurrency int           `envconfig:"DISPATCH_CONCURRENCY" default:"4"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`  // debug|info|warn|error
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"` // healthz
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
