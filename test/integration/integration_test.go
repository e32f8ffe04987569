package integration

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/landscape-calculator/internal/calculator"
	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/internal/config"
	"github.com/iwvelando/landscape-calculator/internal/server"
	"github.com/iwvelando/landscape-calculator/internal/store"
	"github.com/iwvelando/landscape-calculator/pkg/currency"
	"github.com/iwvelando/landscape-calculator/pkg/estimator"
	"github.com/iwvelando/landscape-calculator/pkg/output"
	"github.com/iwvelando/landscape-calculator/pkg/share"
	"github.com/iwvelando/landscape-calculator/pkg/testutil"
	"go.uber.org/zap"
)

func loadTestCatalog(t *testing.T) (*config.Configuration, *catalog.Catalog) {
	t.Helper()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("unexpected configuration warnings: %v", warnings)
	}
	cat, err := conf.BuildCatalog()
	if err != nil {
		t.Fatalf("BuildCatalog() error = %v", err)
	}
	return conf, cat
}

func testInput() estimator.Input {
	return estimator.Input{
		AreaSize: 100,
		Features: map[catalog.Feature]bool{
			catalog.Tiles:    true,
			catalog.Pool:     true,
			catalog.Lighting: true,
		},
		Budget: catalog.HighEnd,
	}
}

// TestMainIntegrationBaseline runs the same steps as the CLI against the test
// configuration and checks the resulting amounts.
func TestMainIntegrationBaseline(t *testing.T) {
	_, cat := loadTestCatalog(t)

	result, err := calculator.Calculate(zap.NewNop(), cat, testInput())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	// tiles 350*100 + pool 5250*6 + lighting 45*100 = 71000, high-end 1.5
	if !testutil.AlmostEqual(result.BaseCost, 106500, 1e-6) {
		t.Fatalf("BaseCost = %v, expected 106500", result.BaseCost)
	}

	baselineChecks := []struct {
		plan        string
		total       float64
		downpayment float64
		moveIn      float64
		monthly     float64
	}{
		{"3months", 111825, 33547.5, 11182.5, 22365},
		{"6months", 117150, 29287.5, 11715, 12691.25},
		{"12months", 122475, 12247.5, 12247.5, 8165},
	}

	for _, check := range baselineChecks {
		p := testutil.FindPlan(result.Plans, check.plan)
		if p == nil {
			t.Errorf("plan %s not found", check.plan)
			continue
		}
		if !testutil.AlmostEqual(p.TotalCost, check.total, 1e-6) ||
			!testutil.AlmostEqual(p.Downpayment, check.downpayment, 1e-6) ||
			!testutil.AlmostEqual(p.MoveIn, check.moveIn, 1e-6) ||
			!testutil.AlmostEqual(p.MonthlyInstallment, check.monthly, 1e-6) {
			t.Errorf("plan %s = %+v, expected %+v", check.plan, *p, check)
		}
	}

	recommended, ok := result.Recommended()
	if !ok || recommended.Key != "6months" {
		t.Errorf("Recommended() = %s, %v; expected 6months", recommended.Key, ok)
	}
}

// TestCSVOutputFormat checks the CSV rendering of the converted result.
func TestCSVOutputFormat(t *testing.T) {
	conf, cat := loadTestCatalog(t)

	code, err := currency.ParseCode(conf.Output.Currency)
	if err != nil {
		t.Fatalf("ParseCode() error = %v", err)
	}

	result, err := calculator.Calculate(zap.NewNop(), cat, testInput())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, result.In(code)); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header and 3 rows, got %d records", len(records))
	}
	if strings.Join(records[0], ",") != "plan,currency,totalCost,downpayment,moveIn,monthlyInstallment,months,popular" {
		t.Errorf("unexpected header %v", records[0])
	}

	popular := records[2]
	if popular[0] != "6months" || popular[1] != "USD" || popular[7] != "true" {
		t.Errorf("unexpected popular row %v", popular)
	}
	// 117150 AED at 0.27
	if popular[2] != "31,630.50" {
		t.Errorf("popular total = %s, expected 31,630.50", popular[2])
	}
}

// TestPrettyOutputFormat tests the pretty print output
func TestPrettyOutputFormat(t *testing.T) {
	_, cat := loadTestCatalog(t)

	result, err := calculator.Calculate(zap.NewNop(), cat, testInput())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	var buf bytes.Buffer
	output.PrettyFormat(&buf, result)
	out := buf.String()

	for _, want := range []string{"Base cost: AED 106,500", "6 Months *", "* Popular", "AED 117,150"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}
}

// TestStoredInputsRoundTrip saves inputs to a file store and calculates from
// the reloaded copy, as the CLI does on a run without flags.
func TestStoredInputsRoundTrip(t *testing.T) {
	_, cat := loadTestCatalog(t)

	cfg := store.Config{Backend: "file", Path: filepath.Join(t.TempDir(), "inputs.json")}
	s, err := store.New(zap.NewNop(), cfg)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	if err := store.SaveInputs(s, cfg.StoreKey(), testInput()); err != nil {
		t.Fatalf("SaveInputs() error = %v", err)
	}

	reopened, err := store.New(zap.NewNop(), cfg)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	in, err := store.LoadInputs(reopened, cfg.StoreKey())
	if err != nil {
		t.Fatalf("LoadInputs() error = %v", err)
	}

	result, err := calculator.Calculate(zap.NewNop(), cat, in)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if !testutil.AlmostEqual(result.BaseCost, 106500, 1e-6) {
		t.Errorf("BaseCost from stored inputs = %v, expected 106500", result.BaseCost)
	}
}

// TestShareLinkThroughServer builds a share link and replays it against a
// running server.
func TestShareLinkThroughServer(t *testing.T) {
	conf, cat := loadTestCatalog(t)

	srv := httptest.NewServer(server.NewHandler(zap.NewNop(), server.Options{
		Catalog:  cat,
		ShareURL: conf.Output.ShareURL,
	}))
	defer srv.Close()

	link, err := share.BuildURL(conf.Output.ShareURL, testInput())
	if err != nil {
		t.Fatalf("BuildURL() error = %v", err)
	}
	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}

	resp, err := http.Get(srv.URL + "/api/calculate?" + parsed.RawQuery)
	if err != nil {
		t.Fatalf("GET /api/calculate error = %v", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Result calculator.Result `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !testutil.AlmostEqual(body.Result.BaseCost, 106500, 1e-6) {
		t.Errorf("BaseCost via share link = %v, expected 106500", body.Result.BaseCost)
	}
	if body.Result.Input.Budget != catalog.HighEnd {
		t.Errorf("budget via share link = %s, expected highEnd", body.Result.Input.Budget)
	}
}
