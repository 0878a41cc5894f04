package charts

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/retailsql/internal/frame"
	"github.com/vvka-141/retailsql/pkg/retailsql"
)

const testDPI = 30

func sampleAnalysis() AnalysisData {
	tx := frame.New("transactions", "age", "gender", "total_amount", "quantity")
	tx.Append(int64(20), "Female", int64(100), int64(2))
	tx.Append(int64(30), "Male", int64(300), int64(1))
	tx.Append(int64(40), "Female", int64(1500), int64(3))
	tx.Append(int64(50), "Male", int64(1200), int64(4))
	tx.Append(nil, "Female", int64(50), int64(2))

	cg := frame.New("category_gender", "product_category", "gender", "total_sales")
	cg.Append("Beauty", "Female", int64(100))
	cg.Append("Clothing", "Male", int64(300))
	cg.Append("Electronics", "Female", int64(1500))
	cg.Append("Electronics", "Male", int64(1200))

	monthly := frame.New("monthly", "month", "gender", "total_sales")
	monthly.Append("2023-01", "Female", int64(100))
	monthly.Append("2023-02", "Male", int64(300))
	monthly.Append("2023-03", "Female", int64(1550))

	ages := frame.New("age_groups", "age_group", "transaction_count", "total_sales", "avg_transaction")
	ages.Append("18-24", int64(1), int64(100), 100.0)
	ages.Append("25-34", int64(1), int64(300), 300.0)
	ages.Append("35-44", int64(1), int64(1500), 1500.0)
	ages.Append("45-54", int64(1), int64(1200), 1200.0)
	ages.Append("55+", int64(1), int64(50), 50.0)

	return AnalysisData{Transactions: tx, CategoryGender: cg, Monthly: monthly, AgeGroups: ages}
}

func pngSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestAnalysisDashboard_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.png")

	require.NoError(t, AnalysisDashboard(path, testDPI, sampleAnalysis()))

	w, h := pngSize(t, path)
	assert.InDelta(t, 18*testDPI, w, 1)
	assert.InDelta(t, 12*testDPI, h, 1)
}

func TestAdditionalDashboard_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "additional.png")

	summary := frame.New("category_summary", "product_category", "total_sales", "transactions")
	summary.Append("Beauty", int64(600), int64(2))
	summary.Append("Clothing", int64(350), int64(2))
	summary.Append("Electronics", int64(2760), int64(3))

	require.NoError(t, AdditionalDashboard(path, testDPI, AdditionalData{
		CategorySummary: summary,
		AgeGroups:       sampleAnalysis().AgeGroups,
	}))

	w, h := pngSize(t, path)
	assert.InDelta(t, 15*testDPI, w, 1)
	assert.InDelta(t, 6*testDPI, h, 1)
}

func TestAnalysisDashboard_EmptyInput(t *testing.T) {
	d := sampleAnalysis()
	d.Monthly = frame.New("monthly", "month", "gender", "total_sales")
	path := filepath.Join(t.TempDir(), "analysis.png")

	err := AnalysisDashboard(path, testDPI, d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, retailsql.ErrEmptyResult))
	assert.Contains(t, err.Error(), "monthly")
	assert.NoFileExists(t, path)
}

func TestAnalysisDashboard_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "analysis.png")

	err := AnalysisDashboard(path, testDPI, sampleAnalysis())
	require.Error(t, err)
	assert.True(t, errors.Is(err, retailsql.ErrRenderFailed))
}

func TestMatrixGrid_FirstVariableOnTop(t *testing.T) {
	m := frame.New("corr", "", "a", "b")
	m.Append("a", 1.0, 0.5)
	m.Append("b", 0.5, 1.0)
	m.Rows[1][1] = -0.25 // make the matrix asymmetric to check orientation

	g := matrixGrid{m: m}
	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 1.0, g.Z(0, 1), "top-left cell is a/a")
	assert.Equal(t, -0.25, g.Z(0, 0), "bottom-left cell is b/a")
}

func TestFirstSeen(t *testing.T) {
	assert.Equal(t, []string{"Male", "Female"}, firstSeen([]string{"Male", "", "Female", "Male"}))
}
