package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"testing"
)

// ============================================================================
// CSV Reading Benchmarks
// ============================================================================

// BenchmarkMakeHeaderIndex benchmarks header index creation.
// Called once per upload to build the column lookup map.
func BenchmarkMakeHeaderIndex(b *testing.B) {
	headers := []string{" Name", "Country ", "SECTOR", "Organization", "Notes"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		makeHeaderIndex(headers)
	}
}

// BenchmarkReadImportFile benchmarks parsing a whole upload before it is applied.
func BenchmarkReadImportFile(b *testing.B) {
	for _, rows := range []int{100, 1000} {
		data := generateOrganizationCSV(rows)
		b.Run(fmt.Sprintf("rows_%d", rows), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, _, err := readImportFile(bytes.NewReader(data), organizationColumns); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSanitizingReader compares the raw csv reader with the
// BOM-stripping, UTF-8 repairing one.
func BenchmarkSanitizingReader(b *testing.B) {
	data := append([]byte("\xEF\xBB\xBF"), generateOrganizationCSV(500)...)

	b.Run("raw", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			csv.NewReader(bytes.NewReader(data)).ReadAll()
		}
	})

	b.Run("sanitized", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			io.Copy(io.Discard, NewSanitizingReader(bytes.NewReader(data)))
		}
	})
}

// BenchmarkIsEmptyRow benchmarks blank row detection.
func BenchmarkIsEmptyRow(b *testing.B) {
	tests := []struct {
		name string
		row  []string
	}{
		{"empty", []string{"", " ", "\t"}},
		{"first_filled", []string{"Acme", "", ""}},
		{"last_filled", []string{"", "", "France"}},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				isEmptyRow(tt.row)
			}
		})
	}
}

// ============================================================================
// Filter Benchmarks
// ============================================================================

// BenchmarkEscapeLike benchmarks ILIKE pattern escaping for every filter value.
func BenchmarkEscapeLike(b *testing.B) {
	inputs := []string{"acme", "100%", `a_b\c`}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		escapeLike(inputs[i%len(inputs)])
	}
}

// BenchmarkContainsFold benchmarks the in-memory filter match.
func BenchmarkContainsFold(b *testing.B) {
	haystack := strings.Repeat("Organization Name ", 4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		containsFold(haystack, "NAME")
	}
}

// ============================================================================
// Import Benchmarks
// ============================================================================

// BenchmarkImportOrganizations measures a full import against MemStore.
func BenchmarkImportOrganizations(b *testing.B) {
	data := generateOrganizationCSV(500)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		svc, err := NewService(NewMemStore(), nil)
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()

		if _, err := svc.ImportOrganizations(ctx, bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkUploadLimiterParallel measures slot contention.
func BenchmarkUploadLimiterParallel(b *testing.B) {
	l := NewUploadLimiter(4, 0)
	ctx := context.Background()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if err := l.Acquire(ctx); err != nil {
				b.Error(err)
				return
			}
			l.Release()
		}
	})
}

// ============================================================================
// Helper Functions
// ============================================================================

// generateOrganizationCSV builds an organization upload with rows data rows,
// every tenth of which lacks a name.
func generateOrganizationCSV(rows int) []byte {
	countries := []string{"France", "Germany", "Spain", "Norway"}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"name", "country"})
	for i := 0; i < rows; i++ {
		name := fmt.Sprintf("Organization %d", i)
		if i%10 == 9 {
			name = ""
		}
		w.Write([]string{name, countries[i%len(countries)]})
	}
	w.Flush()

	return buf.Bytes()
}
