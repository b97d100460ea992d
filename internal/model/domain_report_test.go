package model

import (
	"errors"
	"reflect"
	"testing"
)

// TestNewDomainReport tests report initialization.
func TestNewDomainReport(t *testing.T) {
	t.Parallel()

	r := NewDomainReport("example.com")

	if r.Domain != "example.com" {
		t.Errorf("expected domain example.com, got %q", r.Domain)
	}
	if r.State != StatePending {
		t.Errorf("expected pending state, got %q", r.State)
	}
	if r.Files == nil {
		t.Error("expected Files map to be initialized")
	}
	if r.DateCollected.IsZero() {
		t.Error("expected DateCollected to be set")
	}
}

// TestDomainReportFiles tests file bucket bookkeeping.
func TestDomainReportFiles(t *testing.T) {
	t.Parallel()

	t.Run("extensions keep first-seen order", func(t *testing.T) {
		t.Parallel()

		r := NewDomainReport("example.com")
		r.AddFile("php", "http://x.com/a.php")
		r.AddFile("pdf", "http://x.com/a.pdf")
		r.AddFile("php", "http://x.com/b.php")

		want := []string{"php", "pdf"}
		if got := r.FileExtensions(); !reflect.DeepEqual(got, want) {
			t.Errorf("FileExtensions() = %v, want %v", got, want)
		}
		if r.FileCount() != 3 {
			t.Errorf("expected 3 files, got %d", r.FileCount())
		}
		counts := r.FileTypeCounts()
		if counts["php"] != 2 || counts["pdf"] != 1 {
			t.Errorf("unexpected file type counts: %v", counts)
		}
	})

	t.Run("directly assigned buckets are listed sorted", func(t *testing.T) {
		t.Parallel()

		r := NewDomainReport("example.com")
		r.Files["zip"] = []string{"a.zip"}
		r.Files["sql"] = []string{"a.sql"}

		want := []string{"sql", "zip"}
		if got := r.FileExtensions(); !reflect.DeepEqual(got, want) {
			t.Errorf("FileExtensions() = %v, want %v", got, want)
		}
	})

	t.Run("no buckets yields nil counts", func(t *testing.T) {
		t.Parallel()

		if counts := NewDomainReport("example.com").FileTypeCounts(); counts != nil {
			t.Errorf("expected nil, got %v", counts)
		}
	})
}

// TestDomainReportFail tests failure recording.
func TestDomainReportFail(t *testing.T) {
	t.Parallel()

	r := NewDomainReport("example.com")
	err := errors.New("connection refused")
	r.Fail(err)

	if !r.Failed() {
		t.Error("expected report to be failed")
	}
	if !errors.Is(r.Error, err) {
		t.Errorf("expected error to be recorded, got %v", r.Error)
	}
	if r.ErrorMessage != "connection refused" {
		t.Errorf("unexpected error message %q", r.ErrorMessage)
	}
}

// TestDomainReportCounts tests set size reporting.
func TestDomainReportCounts(t *testing.T) {
	t.Parallel()

	r := NewDomainReport("example.com")
	r.URLs = []string{"a", "b", "c"}
	r.Regular = []string{"a"}
	r.AddFile("pdf", "b")
	r.AddFile("php", "c")
	r.Endpoints = []string{"x.com/"}
	r.Parameters = []string{"id", "q"}

	want := Counts{URLs: 3, Regular: 1, Files: 2, Endpoints: 1, Parameters: 2}
	if got := r.Counts(); got != want {
		t.Errorf("Counts() = %+v, want %+v", got, want)
	}
}
