package database

import (
	"ShopScraper/internal/models"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestRepo(t *testing.T) *DBRepository {
	t.Helper()
	repo, err := InitDB("sqlite", filepath.Join(t.TempDir(), "products.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func batch(prefix string, n int) []models.Listing {
	out := make([]models.Listing, n)
	for i := range out {
		out[i] = models.Listing{
			Link:     fmt.Sprintf("https://www.ebay.com/itm/%s-%d", prefix, i),
			Title:    fmt.Sprintf("%s item %d", prefix, i),
			Price:    fmt.Sprintf("$%d.00", i+1),
			ImageURL: models.NotAvailable,
		}
	}
	return out
}

func TestListAllNeverStored(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	listings, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if listings == nil || len(listings) != 0 {
		t.Errorf("ListAll = %#v; want empty slice", listings)
	}

	page, p, total, err := repo.ListPage(ctx, 3, 4)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if len(page) != 0 || total != 0 || p.Number != 1 || p.TotalPages != 1 {
		t.Errorf("ListPage = %d rows, %+v, total %d; want page 1 of 1 with no rows", len(page), p, total)
	}
}

func TestReplaceRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		size int
	}{
		{"Empty batch", 0},
		{"Single row", 1},
		{"Several rows", 10},
		{"Duplicate links", -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newTestRepo(t)
			ctx := context.Background()

			var in []models.Listing
			if tc.size >= 0 {
				in = batch("rt", tc.size)
			} else {
				in = append(batch("dup", 2), batch("dup", 2)...)
			}

			if err := repo.Replace(ctx, in); err != nil {
				t.Fatalf("Replace: %v", err)
			}
			out, err := repo.ListAll(ctx)
			if err != nil {
				t.Fatalf("ListAll: %v", err)
			}
			if len(in) == 0 {
				if len(out) != 0 {
					t.Fatalf("got %d rows; want 0", len(out))
				}
				return
			}
			if !reflect.DeepEqual(in, out) {
				t.Errorf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
			}
		})
	}
}

func TestReplaceDiscardsPreviousBatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Replace(ctx, batch("old", 7)); err != nil {
		t.Fatal(err)
	}
	second := batch("new", 3)
	if err := repo.Replace(ctx, second); err != nil {
		t.Fatal(err)
	}

	out, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, second) {
		t.Errorf("ListAll = %+v; want only the second batch", out)
	}
}

func TestReplaceFailureKeepsPreviousBatch(t *testing.T) {
	repo := newTestRepo(t)
	first := batch("keep", 5)
	if err := repo.Replace(context.Background(), first); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := repo.Replace(ctx, batch("lost", 3))

	var se *StorageError
	if !errors.As(err, &se) || se.Kind != WriteFailed {
		t.Fatalf("expected WriteFailed StorageError, got %v", err)
	}

	out, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, first) {
		t.Errorf("previous batch changed: %+v", out)
	}
}

func TestReaderKeepsSnapshotDuringReplace(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if err := repo.Replace(ctx, batch("old", 4)); err != nil {
		t.Fatal(err)
	}

	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Rollback()

	var before int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&before); err != nil {
		t.Fatal(err)
	}

	if err := repo.Replace(ctx, batch("new", 9)); err != nil {
		t.Fatalf("Replace while a reader is open: %v", err)
	}

	var during int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&during); err != nil {
		t.Fatal(err)
	}
	if before != 4 || during != 4 {
		t.Errorf("open reader saw %d then %d rows; want 4 and 4", before, during)
	}
	tx.Rollback()

	_, _, total, err := repo.ListPage(ctx, 1, 4)
	if err != nil || total != 9 {
		t.Errorf("total after reader closed = %d, %v; want 9", total, err)
	}
}

func TestListPage(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	all := batch("page", 10)
	if err := repo.Replace(ctx, all); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name      string
		requested int
		size      int
		wantPage  int
		want      []models.Listing
	}{
		{"First page", 1, 4, 1, all[0:4]},
		{"Middle page", 2, 4, 2, all[4:8]},
		{"Last partial page", 3, 4, 3, all[8:10]},
		{"Past the end is clamped", 12, 4, 3, all[8:10]},
		{"Below one is clamped", 0, 4, 1, all[0:4]},
		{"Whole batch on one page", 1, 10, 1, all},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, p, total, err := repo.ListPage(ctx, tc.requested, tc.size)
			if err != nil {
				t.Fatal(err)
			}
			if total != 10 || p.Number != tc.wantPage {
				t.Errorf("total %d, page %d; want 10, %d", total, p.Number, tc.wantPage)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ListPage(%d, %d) = %+v; want %+v", tc.requested, tc.size, got, tc.want)
			}
		})
	}
}

func TestListPageMatchesOneBatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if err := repo.Replace(ctx, batch("old", 10)); err != nil {
		t.Fatal(err)
	}

	// Batches alternate between 10 and 3 rows while pages are read; every page
	// must agree with the batch its rows came from.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			n := 3
			if i%2 == 1 {
				n = 10
			}
			if err := repo.Replace(ctx, batch(fmt.Sprintf("b%d", n), n)); err != nil {
				t.Errorf("Replace: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 50; i++ {
		rows, p, total, err := repo.ListPage(ctx, 3, 4)
		if err != nil {
			t.Fatalf("ListPage: %v", err)
		}
		if total != 3 && total != 10 {
			t.Fatalf("total = %d; want 3 or 10", total)
		}
		if len(rows) != p.End-p.Start {
			t.Fatalf("total %d page %+v returned %d rows", total, p, len(rows))
		}
		if total == 3 && (p.Number != 1 || len(rows) != 3) {
			t.Fatalf("3-row batch gave page %d with %d rows", p.Number, len(rows))
		}
		if total == 10 && (p.Number != 3 || len(rows) != 2) {
			t.Fatalf("10-row batch gave page %d with %d rows", p.Number, len(rows))
		}
	}
	<-done
}

func TestInitDBUnknownDriver(t *testing.T) {
	_, err := InitDB("mysql", "x")
	var se *StorageError
	if !errors.As(err, &se) || se.Kind != OpenFailed {
		t.Fatalf("expected OpenFailed StorageError, got %v", err)
	}
}

func TestInitDBBadPath(t *testing.T) {
	_, err := InitDB("sqlite", filepath.Join(t.TempDir(), "missing", "dir", "products.db"))
	var se *StorageError
	if !errors.As(err, &se) || se.Kind != OpenFailed {
		t.Fatalf("expected OpenFailed StorageError, got %v", err)
	}
}
