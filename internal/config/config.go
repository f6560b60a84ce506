package config

import (
	"os"
	"strconv"
	"time"

	"github.com/hamed0406/synthcheck/internal/domain"
	"github.com/hamed0406/synthcheck/internal/policy"
	"github.com/hamed0406/synthcheck/internal/registry"
)

type Config struct {
	Addr   string // API bind address, e.g., "127.0.0.1:8080" (Windows) or ":8080" (Docker)
	LogDir string // logs directory

	BlogURL        string // PAGE target
	APIURL         string // API target
	UploadURL      string // API target
	CronMonitorURL string // API target
	ExtraTargets   string // "name=kind=url,name=kind=url" for future targets

	ProbeTimeout time.Duration // per-probe deadline
	RenderWindow time.Duration // render-signal sampling window for page targets
	Samples      int           // observations per target per pass
	Concurrency  int           // max in-flight probes

	Thresholds policy.Thresholds
}

func FromEnv() Config {
	cfg := Config{
		Addr:           envStr("ADDR", "127.0.0.1:8080"),
		LogDir:         envStr("LOG_DIR", "logs"),
		BlogURL:        envStr("BLOG_URL", "http://localhost:3000"),
		APIURL:         envStr("API_URL", "http://localhost:8000"),
		UploadURL:      envStr("UPLOAD_URL", "http://localhost:8100"),
		CronMonitorURL: envStr("CRON_MONITOR_URL", "http://localhost:8200"),
		ExtraTargets:   os.Getenv("EXTRA_TARGETS"),
		ProbeTimeout:   envMS("PROBE_TIMEOUT_MS", 10_000),
		RenderWindow:   envMS("RENDER_WINDOW_MS", 3_000),
		Samples:        envInt("SAMPLES_PER_TARGET", 1),
		Concurrency:    envInt("MAX_CONCURRENT_PROBES", 4),
	}

	th := policy.Default()
	th.APILatencyCeilingMS = envFloat("API_LATENCY_CEILING_MS", th.APILatencyCeilingMS)
	th.PageLatencyCeilingMS = envFloat("PAGE_LATENCY_CEILING_MS", th.PageLatencyCeilingMS)
	th.LCPCeilingMS = envFloat("LCP_CEILING_MS", th.LCPCeilingMS)
	th.CLSCeiling = envFloat("CLS_CEILING", th.CLSCeiling)
	cfg.Thresholds = th

	return cfg
}

// TargetMap builds the explicit {name -> target} object consumed by the
// registry constructor. The engine never reads the environment itself.
func (c Config) TargetMap() map[string]registry.TargetConfig {
	m := map[string]registry.TargetConfig{
		"blog":         {URL: c.BlogURL, Kind: domain.KindPage},
		"api":          {URL: c.APIURL, Kind: domain.KindAPI},
		"upload":       {URL: c.UploadURL, Kind: domain.KindAPI},
		"cron-monitor": {URL: c.CronMonitorURL, Kind: domain.KindAPI},
	}
	for name, tc := range registry.ParseExtra(c.ExtraTargets) {
		m[name] = tc
	}
	return m
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envMS(key string, defMS int) time.Duration {
	ms := defMS
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			ms = n
		}
	}
	return time.Duration(ms) * time.Millisecond
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return def
}
