package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"
)

// setupTestDB creates an in-memory database with migrations applied
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := NewTestDB(sqlDB)
	if err != nil {
		t.Fatalf("NewTestDB() error = %v", err)
	}
	return db
}

func cyclingEstimate(createdAt time.Time) *Estimate {
	return &Estimate{
		Activity:      "cycling",
		MassKg:        80,
		SpeedKmh:      30,
		DurationS:     3600,
		DragW:         148.9,
		RollingW:      20.0,
		GravityW:      0,
		TotalW:        168.9,
		MechanicalKJ:  608.1,
		MetabolicKJ:   2432.3,
		MetabolicKcal: 581.3,
		CreatedAt:     createdAt,
	}
}

func TestSaveAndGetEstimate(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now().Truncate(time.Second)
	e := cyclingEstimate(now)

	if err := db.SaveEstimate(e); err != nil {
		t.Fatalf("SaveEstimate() error = %v", err)
	}
	if e.ID == 0 {
		t.Error("SaveEstimate() did not set ID")
	}

	got, err := db.GetEstimate(e.ID)
	if err != nil {
		t.Fatalf("GetEstimate() error = %v", err)
	}

	if got.Activity != "cycling" {
		t.Errorf("Activity = %q, want %q", got.Activity, "cycling")
	}
	if got.MassKg != 80 {
		t.Errorf("MassKg = %v, want 80", got.MassKg)
	}
	if got.TotalW != 168.9 {
		t.Errorf("TotalW = %v, want 168.9", got.TotalW)
	}
	if got.MetabolicKcal != 581.3 {
		t.Errorf("MetabolicKcal = %v, want 581.3", got.MetabolicKcal)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}
}

func TestSaveEstimate_SetsCreatedAt(t *testing.T) {
	db := setupTestDB(t)

	e := cyclingEstimate(time.Time{})
	if err := db.SaveEstimate(e); err != nil {
		t.Fatalf("SaveEstimate() error = %v", err)
	}
	if e.CreatedAt.IsZero() {
		t.Error("SaveEstimate() left CreatedAt zero")
	}
}

func TestGetEstimate_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetEstimate(999)
	if !errors.Is(err, ErrEstimateNotFound) {
		t.Errorf("GetEstimate(999) error = %v, want ErrEstimateNotFound", err)
	}
}

func TestListEstimates(t *testing.T) {
	db := setupTestDB(t)

	base := time.Now().Truncate(time.Second).Add(-time.Hour)
	for i := 0; i < 5; i++ {
		e := cyclingEstimate(base.Add(time.Duration(i) * time.Minute))
		e.SpeedKmh = float64(20 + i)
		if err := db.SaveEstimate(e); err != nil {
			t.Fatalf("SaveEstimate() error = %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		got, err := db.ListEstimates(10)
		if err != nil {
			t.Fatalf("ListEstimates() error = %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("ListEstimates() returned %d estimates, want 5", len(got))
		}
		if got[0].SpeedKmh != 24 {
			t.Errorf("first estimate SpeedKmh = %v, want 24 (newest)", got[0].SpeedKmh)
		}
		if got[4].SpeedKmh != 20 {
			t.Errorf("last estimate SpeedKmh = %v, want 20 (oldest)", got[4].SpeedKmh)
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		got, err := db.ListEstimates(2)
		if err != nil {
			t.Fatalf("ListEstimates() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("ListEstimates(2) returned %d estimates, want 2", len(got))
		}
	})
}

func TestCountEstimates(t *testing.T) {
	db := setupTestDB(t)

	count, err := db.CountEstimates()
	if err != nil {
		t.Fatalf("CountEstimates() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountEstimates() = %d, want 0", count)
	}

	if err := db.SaveEstimate(cyclingEstimate(time.Now())); err != nil {
		t.Fatalf("SaveEstimate() error = %v", err)
	}

	count, err = db.CountEstimates()
	if err != nil {
		t.Fatalf("CountEstimates() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountEstimates() = %d, want 1", count)
	}
}

func TestDeleteEstimate(t *testing.T) {
	db := setupTestDB(t)

	e := cyclingEstimate(time.Now())
	if err := db.SaveEstimate(e); err != nil {
		t.Fatalf("SaveEstimate() error = %v", err)
	}

	if err := db.DeleteEstimate(e.ID); err != nil {
		t.Fatalf("DeleteEstimate() error = %v", err)
	}

	_, err := db.GetEstimate(e.ID)
	if !errors.Is(err, ErrEstimateNotFound) {
		t.Errorf("GetEstimate() after delete error = %v, want ErrEstimateNotFound", err)
	}

	if err := db.DeleteEstimate(e.ID); !errors.Is(err, ErrEstimateNotFound) {
		t.Errorf("DeleteEstimate() on missing row error = %v, want ErrEstimateNotFound", err)
	}
}

func TestClearEstimates(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		if err := db.SaveEstimate(cyclingEstimate(time.Now())); err != nil {
			t.Fatalf("SaveEstimate() error = %v", err)
		}
	}

	if err := db.ClearEstimates(); err != nil {
		t.Fatalf("ClearEstimates() error = %v", err)
	}

	count, err := db.CountEstimates()
	if err != nil {
		t.Fatalf("CountEstimates() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountEstimates() after clear = %d, want 0", count)
	}
}
