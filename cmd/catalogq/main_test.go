package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/catalogq/config"
	"github.com/kbukum/catalogq/logger"
)

const referenceReport = `--------------
LINQ in C#.NET
--------------

Expensive Products:
- Laptop
- Monitor

Product Names:
- Laptop
- Keyboard
- Apple
- Banana
- Monitor
- Bread

Products sorted by price:
Bread: $1.5
Banana: $2
Apple: $3
Keyboard: $40
Monitor: $200
Laptop: $1200

Products grouped by category:
Category: Electronics
   - Laptop ($1200)
   - Keyboard ($40)
   - Monitor ($200)
Category: Food
   - Apple ($3)
   - Banana ($2)
   - Bread ($1.5)

Total cost of products: $1446.5
Average price: $241.08

Projected anonymous type results:
Laptop - Price w/ Tax: $1320.0
Keyboard - Price w/ Tax: $44.0
Apple - Price w/ Tax: $3.3
Banana - Price w/ Tax: $2.2
Monitor - Price w/ Tax: $220.0
Bread - Price w/ Tax: $1.65

Done.
`

const quietLogging = `
logging:
  output: discard
`

func writeConfig(t *testing.T, content string) config.LoaderOption {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return config.WithConfigFile(path)
}

func runWith(t *testing.T, ctx context.Context, content string) (int, string) {
	t.Helper()
	defer logger.SetGlobalLogger(nil)
	var out bytes.Buffer
	code := run(ctx, &out, writeConfig(t, content), config.WithEnvFile(filepath.Join(t.TempDir(), ".env")))
	return code, out.String()
}

func TestRunReferenceOutput(t *testing.T) {
	code, out := runWith(t, context.Background(), quietLogging)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if out != referenceReport {
		t.Errorf("stdout mismatch\n--- got ---\n%s\n--- want ---\n%s", out, referenceReport)
	}
}

func TestRunWithTelemetry(t *testing.T) {
	code, out := runWith(t, context.Background(), quietLogging+`
observability:
  enabled: true
`)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if out != referenceReport {
		t.Error("expected telemetry to leave stdout unchanged")
	}
}

func TestRunConfiguredCatalog(t *testing.T) {
	code, out := runWith(t, context.Background(), quietLogging+`
report:
  title: Pantry
query:
  expensive_threshold: 2
  tax_multiplier: "1.20"
catalog:
  products:
    - name: Rice
      category: Grain
      price: "2.50"
    - name: Salt
      category: Spice
      price: 1
`)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{
		"------\nPantry\n------\n",
		"Expensive Products:\n- Rice\n\n",
		"Rice: $2.50\n",
		"Total cost of products: $3.50\n",
		"Average price: $1.75\n",
		"Rice - Price w/ Tax: $3.0000\n",
		"Salt - Price w/ Tax: $1.20\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in\n%s", want, out)
		}
	}
}

func TestRunEmptyCatalog(t *testing.T) {
	code, out := runWith(t, context.Background(), quietLogging+`
catalog:
  products: []
`)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "Average price: $NaN\n") {
		t.Errorf("expected NaN average in\n%s", out)
	}
}

func TestRunEnvOverride(t *testing.T) {
	t.Setenv("REPORT_TITLE", "From Env")
	code, out := runWith(t, context.Background(), quietLogging)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(out, "--------\nFrom Env\n--------\n") {
		t.Errorf("expected env title banner, got\n%s", out)
	}
}

func TestRunExitCodes(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		content string
		want    int
	}{
		{"malformed yaml", context.Background(), "logging: [", 2},
		{"negative price", context.Background(), quietLogging + `
catalog:
  products:
    - name: Refund
      category: Misc
      price: -5
`, 2},
		{"missing category", context.Background(), quietLogging + `
catalog:
  products:
    - name: Mystery
      price: 5
`, 2},
		{"bad decimal", context.Background(), quietLogging + `
query:
  tax_multiplier: lots
`, 2},
		{"bad sample rate", context.Background(), quietLogging + `
observability:
  sample_rate: 3
`, 2},
		{"bad log level", context.Background(), `
logging:
  output: discard
  level: loud
`, 2},
		{"canceled", canceled, quietLogging, 130},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := runWith(t, tc.ctx, tc.content)
			if code != tc.want {
				t.Errorf("expected exit %d, got %d", tc.want, code)
			}
		})
	}
}

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	cfg.ApplyDefaults()
	if cfg.Name != serviceName || cfg.Logging.Output != "stderr" {
		t.Errorf("unexpected service defaults %+v", cfg.ServiceConfig)
	}
	if len(cfg.Catalog.Products) != 6 {
		t.Errorf("expected the sample catalog, got %d products", len(cfg.Catalog.Products))
	}
	if cfg.Report.Title != "LINQ in C#.NET" {
		t.Errorf("unexpected title %q", cfg.Report.Title)
	}
	if cfg.Observability.SampleRate != 1 {
		t.Errorf("unexpected sample rate %v", cfg.Observability.SampleRate)
	}

	cfg.Report.Title = strings.Repeat("x", maxTitleLength+1)
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for long title")
	}
}
