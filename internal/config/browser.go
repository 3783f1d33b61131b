package config

// BrowserConfig holds Playwright browser options for the UI suite.
type BrowserConfig struct {
	Headless  bool
	TimeoutMs float64
}

// LoadBrowserConfig loads browser configuration from environment variables.
// Set HEADLESS=false to watch the browser while debugging a flaky scenario.
func LoadBrowserConfig(getenv func(string) string) BrowserConfig {
	return BrowserConfig{
		Headless:  getenv("HEADLESS") != "false",
		TimeoutMs: 10_000,
	}
}
