// mkfixture generates a synthetic raw insurance dataset for tests and
// local pipeline runs. Output is deterministic for a given seed.
// Usage: go run ./cmd/mkfixture --out testdata/insurance-small.csv --rows 200 --dupes 5 --bad 2
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

var regions = []string{"southwest", "southeast", "northwest", "northeast"}
var sexes = []string{"male", "female"}

func main() {
	out := flag.String("out", "testdata/insurance-small.csv", "output CSV path")
	rows := flag.Int("rows", 200, "number of unique rows to generate")
	dupes := flag.Int("dupes", 0, "number of exact duplicate rows to append")
	bad := flag.Int("bad", 0, "number of malformed rows to append")
	seed := flag.Int64("seed", 1, "PRNG seed")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(*seed))
	w := csv.NewWriter(f)

	if err := w.Write([]string{"age", "sex", "bmi", "children", "smoker", "region", "charges"}); err != nil {
		fmt.Fprintf(os.Stderr, "write header: %v\n", err)
		os.Exit(1)
	}

	var generated [][]string
	for i := 0; i < *rows; i++ {
		row := makeRow(rng)
		generated = append(generated, row)
		if err := w.Write(row); err != nil {
			fmt.Fprintf(os.Stderr, "write row: %v\n", err)
			os.Exit(1)
		}
	}

	// Exact duplicates of already-emitted rows.
	for i := 0; i < *dupes && len(generated) > 0; i++ {
		if err := w.Write(generated[rng.Intn(len(generated))]); err != nil {
			fmt.Fprintf(os.Stderr, "write dupe: %v\n", err)
			os.Exit(1)
		}
	}

	// Rows with a non-numeric bmi, for validation-policy tests.
	for i := 0; i < *bad; i++ {
		row := makeRow(rng)
		row[2] = "not-a-number"
		if err := w.Write(row); err != nil {
			fmt.Fprintf(os.Stderr, "write bad row: %v\n", err)
			os.Exit(1)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "flush: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d rows (+%d dupes, +%d bad) to %s\n", *rows, *dupes, *bad, *out)
}

func makeRow(rng *rand.Rand) []string {
	age := 18 + rng.Intn(47) // 18..64
	smoker := "no"
	if rng.Float64() < 0.2 {
		smoker = "yes"
	}
	bmi := 16 + rng.Float64()*28 // 16..44
	children := rng.Intn(5)

	// Charges loosely follow the real dataset's shape: smokers and
	// higher BMI cost more.
	charges := 2000 + float64(age)*250 + rng.Float64()*4000
	if smoker == "yes" {
		charges += 15000 + bmi*400
	}

	return []string{
		strconv.Itoa(age),
		sexes[rng.Intn(len(sexes))],
		strconv.FormatFloat(bmi, 'f', 2, 64),
		strconv.Itoa(children),
		smoker,
		regions[rng.Intn(len(regions))],
		strconv.FormatFloat(charges, 'f', 2, 64),
	}
}
