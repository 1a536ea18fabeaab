package warehouse_test

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/insurancedw/internal/config"
	"github.com/gyeh/insurancedw/internal/cube"
	"github.com/gyeh/insurancedw/internal/db"
	"github.com/gyeh/insurancedw/internal/logging"
	"github.com/gyeh/insurancedw/internal/model"
	embedsql "github.com/gyeh/insurancedw/internal/sql"
	"github.com/gyeh/insurancedw/internal/tabio"
	"github.com/gyeh/insurancedw/internal/warehouse"
)

const (
	testPort     = 15433
	testDB       = "insdwtest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	testDSN string
	pg      *embeddedpostgres.EmbeddedPostgres
)

func TestMain(m *testing.M) {
	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB creates a connection pool and applies migrations on a clean state.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, testDSN)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	for _, schema := range []string{"dw", "etl"} {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema)); err != nil {
			t.Fatalf("drop schema %s: %v", schema, err)
		}
	}

	log := logging.Setup("text")
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		pool.Close()
		t.Fatalf("migrations: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}

// fixtureRecords returns a deterministic prepared table covering every
// age group and several region/risk combinations.
func fixtureRecords() []model.PreparedRecord {
	regions := []string{"southwest", "southeast", "northwest", "northeast"}
	ageGroups := []string{"18-29", "30-39", "40-49", "50-59", "60+"}
	bmiCats := []string{"normal", "overweight", "obese"}

	var recs []model.PreparedRecord
	for i := 0; i < 120; i++ {
		smoker := i%4 == 0
		canonical := "no"
		if smoker {
			canonical = "yes"
		}
		recs = append(recs, model.PreparedRecord{
			Age:         18 + i%47,
			Sex:         []string{"male", "female"}[i%2],
			BMI:         20 + float64(i%20),
			Children:    i % 4,
			Smoker:      canonical,
			Region:      regions[i%len(regions)],
			Charges:     1500.25 + float64(i)*321.5,
			AgeGroup:    ageGroups[i%len(ageGroups)],
			BMICategory: bmiCats[i%len(bmiCats)],
			SmokerFlag:  smoker,
		})
	}
	return recs
}

func writePreparedFixture(t *testing.T) (string, []model.PreparedRecord) {
	t.Helper()
	recs := fixtureRecords()
	path := filepath.Join(t.TempDir(), "prepared.csv")
	if err := tabio.WritePreparedCSV(path, recs); err != nil {
		t.Fatalf("write prepared fixture: %v", err)
	}
	return path, recs
}

func TestMigrations_Idempotent(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	// Apply again: everything uses IF NOT EXISTS.
	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		t.Fatalf("second migration run should be idempotent: %v", err)
	}

	for _, tbl := range []string{
		"dw.dim_region", "dw.dim_risk", "dw.dim_age",
		"dw.fact_insurance_charges", "etl.load_runs",
	} {
		var exists bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema || '.' || table_name = $1)",
			tbl).Scan(&exists)
		if err != nil {
			t.Fatalf("check table %s: %v", tbl, err)
		}
		if !exists {
			t.Errorf("table %s should exist after migrations", tbl)
		}
	}
}

func TestLoad_EndToEnd(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	path, recs := writePreparedFixture(t)

	cfg := &config.Config{DSN: testDSN, PreparedPath: path}
	summary, err := warehouse.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("warehouse.Run: %v", err)
	}

	t.Run("fact_count_equals_prepared_count", func(t *testing.T) {
		if summary.FactRows != int64(len(recs)) {
			t.Errorf("FactRows = %d, want %d", summary.FactRows, len(recs))
		}
		var count int64
		if err := pool.QueryRow(ctx, "SELECT count(*) FROM dw.fact_insurance_charges").Scan(&count); err != nil {
			t.Fatalf("query fact count: %v", err)
		}
		if count != int64(len(recs)) {
			t.Errorf("fact table rows = %d, want %d", count, len(recs))
		}
	})

	t.Run("dimensions_have_no_duplicates", func(t *testing.T) {
		for tbl, logicalCols := range map[string]string{
			"dw.dim_region": "region",
			"dw.dim_risk":   "smoker_flag, bmi_category",
			"dw.dim_age":    "age_group",
		} {
			var total, distinct int64
			q := fmt.Sprintf("SELECT count(*), count(DISTINCT (%s)) FROM %s", logicalCols, tbl)
			if err := pool.QueryRow(ctx, q).Scan(&total, &distinct); err != nil {
				t.Fatalf("query %s: %v", tbl, err)
			}
			if total != distinct {
				t.Errorf("%s: %d rows but %d distinct logical values", tbl, total, distinct)
			}
		}
	})

	t.Run("every_foreign_key_resolves", func(t *testing.T) {
		var orphans int64
		err := pool.QueryRow(ctx,
			`SELECT count(*) FROM dw.fact_insurance_charges f
			 LEFT JOIN dw.dim_region g USING (region_key)
			 LEFT JOIN dw.dim_risk   r USING (risk_key)
			 LEFT JOIN dw.dim_age    a USING (age_key)
			 WHERE g.region IS NULL OR r.bmi_category IS NULL OR a.age_group IS NULL`).
			Scan(&orphans)
		if err != nil {
			t.Fatalf("query orphans: %v", err)
		}
		if orphans != 0 {
			t.Errorf("%d fact rows with unresolved foreign keys", orphans)
		}
	})

	t.Run("round_trip_reconstructs_prepared_rows", func(t *testing.T) {
		rows, err := pool.Query(ctx, embedsql.ReconstructPrepared)
		if err != nil {
			t.Fatalf("reconstruct query: %v", err)
		}
		defer rows.Close()

		type projected struct {
			AgeGroup    string
			SmokerFlag  bool
			BMICategory string
			Region      string
			Age         int
			BMI         float64
			Children    int
			Charges     float64
		}
		want := make(map[projected]int)
		for _, rec := range recs {
			want[projected{rec.AgeGroup, rec.SmokerFlag, rec.BMICategory, rec.Region,
				rec.Age, rec.BMI, rec.Children, rec.Charges}]++
		}

		got := make(map[projected]int)
		for rows.Next() {
			var p projected
			if err := rows.Scan(&p.AgeGroup, &p.SmokerFlag, &p.BMICategory, &p.Region,
				&p.Age, &p.BMI, &p.Children, &p.Charges); err != nil {
				t.Fatalf("scan: %v", err)
			}
			got[p]++
		}
		if err := rows.Err(); err != nil {
			t.Fatalf("rows: %v", err)
		}

		if len(got) != len(want) {
			t.Fatalf("distinct reconstructed rows = %d, want %d", len(got), len(want))
		}
		for p, n := range want {
			if got[p] != n {
				t.Errorf("row %+v: reconstructed %d times, want %d", p, got[p], n)
			}
		}
	})

	t.Run("load_run_audited", func(t *testing.T) {
		var status string
		var rowsLoaded int64
		err := pool.QueryRow(ctx,
			"SELECT status, rows_loaded FROM etl.load_runs WHERE load_run_id = $1",
			summary.LoadRunID).Scan(&status, &rowsLoaded)
		if err != nil {
			t.Fatalf("query load_runs: %v", err)
		}
		if status != "loaded" || rowsLoaded != int64(len(recs)) {
			t.Errorf("load_runs: status=%q rows_loaded=%d", status, rowsLoaded)
		}
	})
}

func TestLoad_Idempotent(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	path, recs := writePreparedFixture(t)
	cfg := &config.Config{DSN: testDSN, PreparedPath: path}

	readRegionKeys := func() map[string]int64 {
		rows, err := pool.Query(ctx, "SELECT region_key, region FROM dw.dim_region")
		if err != nil {
			t.Fatalf("query dim_region: %v", err)
		}
		defer rows.Close()
		keys := make(map[string]int64)
		for rows.Next() {
			var key int64
			var region string
			if err := rows.Scan(&key, &region); err != nil {
				t.Fatalf("scan: %v", err)
			}
			keys[region] = key
		}
		return keys
	}

	first, err := warehouse.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	firstKeys := readRegionKeys()

	second, err := warehouse.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	secondKeys := readRegionKeys()

	if first.FactRows != second.FactRows || second.FactRows != int64(len(recs)) {
		t.Errorf("fact rows differ across runs: %d vs %d", first.FactRows, second.FactRows)
	}
	var count int64
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM dw.fact_insurance_charges").Scan(&count); err != nil {
		t.Fatalf("query fact count: %v", err)
	}
	if count != int64(len(recs)) {
		t.Errorf("second run must replace, not append: %d rows", count)
	}
	for region, key := range firstKeys {
		if secondKeys[region] != key {
			t.Errorf("region %q key changed across runs: %d vs %d", region, key, secondKeys[region])
		}
	}
}

func TestCube_WarehouseMatchesFile(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")
	path, recs := writePreparedFixture(t)

	if _, err := warehouse.Run(ctx, pool, log, &config.Config{DSN: testDSN, PreparedPath: path}); err != nil {
		t.Fatalf("warehouse.Run: %v", err)
	}

	fromFile := cube.Build(recs)
	fromDW, err := cube.BuildFromWarehouse(ctx, pool)
	if err != nil {
		t.Fatalf("BuildFromWarehouse: %v", err)
	}

	if len(fromDW) != len(fromFile) {
		t.Fatalf("cell counts differ: %d vs %d", len(fromDW), len(fromFile))
	}

	fileByKey := make(map[model.CubeKey]model.CubeCell, len(fromFile))
	for _, c := range fromFile {
		fileByKey[c.CubeKey] = c
	}
	for _, dwCell := range fromDW {
		fileCell, ok := fileByKey[dwCell.CubeKey]
		if !ok {
			t.Errorf("warehouse cell %+v missing from file cube", dwCell.CubeKey)
			continue
		}
		if dwCell.ChargesCount != fileCell.ChargesCount {
			t.Errorf("cell %+v: count %d vs %d", dwCell.CubeKey, dwCell.ChargesCount, fileCell.ChargesCount)
		}
		if rel := math.Abs(dwCell.ChargesSum-fileCell.ChargesSum) / fileCell.ChargesSum; rel > 1e-9 {
			t.Errorf("cell %+v: sum %v vs %v", dwCell.CubeKey, dwCell.ChargesSum, fileCell.ChargesSum)
		}
		if rel := math.Abs(dwCell.ChargesAvg-fileCell.ChargesAvg) / fileCell.ChargesAvg; rel > 1e-9 {
			t.Errorf("cell %+v: avg %v vs %v", dwCell.CubeKey, dwCell.ChargesAvg, fileCell.ChargesAvg)
		}
	}
}
