package progress_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/codequest-labs/codequest-backend/internal/points"
	"github.com/codequest-labs/codequest-backend/internal/progress"
	"github.com/codequest-labs/codequest-backend/internal/user"
)

func setup(t *testing.T) (*gorm.DB, progress.Service, *user.User) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &progress.UserProgress{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := progress.EnsureIndexes(db); err != nil {
		t.Fatalf("failed to create indexes: %v", err)
	}

	u := &user.User{Username: "learner", Email: "learner@example.com", PasswordHash: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	service := progress.NewService(db, progress.NewRepository(db), points.NewLedger(db))
	return db, service, u
}

func totalPoints(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()
	var u user.User
	if err := db.First(&u, userID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return u.TotalPoints
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstAttemptInserts", func(t *testing.T) {
		db, service, u := setup(t)

		row, delta, err := service.Apply(ctx, u.ID, 1, progress.ForExercise(7), progress.StatusCompleted, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if delta != 10 {
			t.Errorf("expected delta 10, got %d", delta)
		}
		if row.Status != progress.StatusCompleted || row.PointsEarned != 10 {
			t.Errorf("unexpected row: %+v", row)
		}
		if row.CompletedAt == nil {
			t.Error("expected completed_at to be set")
		}
		if got := totalPoints(t, db, u.ID); got != 10 {
			t.Errorf("expected total_points 10, got %d", got)
		}
	})

	t.Run("WorseReattemptKeepsBest", func(t *testing.T) {
		db, service, u := setup(t)

		if _, _, err := service.Apply(ctx, u.ID, 1, progress.ForQuiz(3), progress.StatusCompleted, 60); err != nil {
			t.Fatalf("first attempt: %v", err)
		}
		row, delta, err := service.Apply(ctx, u.ID, 1, progress.ForQuiz(3), progress.StatusCompleted, 30)
		if err != nil {
			t.Fatalf("second attempt: %v", err)
		}
		if delta != 0 {
			t.Errorf("expected delta 0 for a worse attempt, got %d", delta)
		}
		if row.PointsEarned != 60 {
			t.Errorf("expected points_earned to stay 60, got %d", row.PointsEarned)
		}
		if got := totalPoints(t, db, u.ID); got != 60 {
			t.Errorf("expected total_points 60, got %d", got)
		}
	})

	t.Run("BetterReattemptRaisesPoints", func(t *testing.T) {
		db, service, u := setup(t)

		if _, _, err := service.Apply(ctx, u.ID, 1, progress.ForQuiz(3), progress.StatusCompleted, 30); err != nil {
			t.Fatalf("first attempt: %v", err)
		}
		row, delta, err := service.Apply(ctx, u.ID, 1, progress.ForQuiz(3), progress.StatusCompleted, 60)
		if err != nil {
			t.Fatalf("second attempt: %v", err)
		}
		if delta != 30 {
			t.Errorf("expected delta 30, got %d", delta)
		}
		if row.PointsEarned != 60 {
			t.Errorf("expected points_earned 60, got %d", row.PointsEarned)
		}
		if got := totalPoints(t, db, u.ID); got != 60 {
			t.Errorf("expected total_points 60, got %d", got)
		}
	})

	t.Run("CompletedIsSticky", func(t *testing.T) {
		_, service, u := setup(t)

		first, _, err := service.Apply(ctx, u.ID, 1, progress.ForLesson(5), progress.StatusCompleted, 0)
		if err != nil {
			t.Fatalf("first attempt: %v", err)
		}
		row, _, err := service.Apply(ctx, u.ID, 1, progress.ForLesson(5), progress.StatusStarted, 0)
		if err != nil {
			t.Fatalf("second attempt: %v", err)
		}
		if row.Status != progress.StatusCompleted {
			t.Errorf("completed must never revert, got %s", row.Status)
		}
		if row.CompletedAt == nil || !row.CompletedAt.Equal(*first.CompletedAt) {
			t.Error("completed_at must keep its first value")
		}
	})

	t.Run("IdenticalReattemptIsNoOp", func(t *testing.T) {
		db, service, u := setup(t)

		if _, _, err := service.Apply(ctx, u.ID, 1, progress.ForExercise(7), progress.StatusCompleted, 10); err != nil {
			t.Fatalf("first attempt: %v", err)
		}
		_, delta, err := service.Apply(ctx, u.ID, 1, progress.ForExercise(7), progress.StatusCompleted, 10)
		if err != nil {
			t.Fatalf("second attempt: %v", err)
		}
		if delta != 0 {
			t.Errorf("expected delta 0, got %d", delta)
		}
		if got := totalPoints(t, db, u.ID); got != 10 {
			t.Errorf("expected total_points 10, got %d", got)
		}

		var count int64
		db.Model(&progress.UserProgress{}).Count(&count)
		if count != 1 {
			t.Errorf("expected a single progress row, got %d", count)
		}
	})

	t.Run("NonImprovingReattemptSkipsWrite", func(t *testing.T) {
		db, service, u := setup(t)

		if _, _, err := service.Apply(ctx, u.ID, 1, progress.ForQuiz(3), progress.StatusCompleted, 60); err != nil {
			t.Fatalf("first attempt: %v", err)
		}
		var before progress.UserProgress
		if err := db.Where("user_id = ?", u.ID).First(&before).Error; err != nil {
			t.Fatalf("failed to reload row: %v", err)
		}

		if _, _, err := service.Apply(ctx, u.ID, 1, progress.ForQuiz(3), progress.StatusCompleted, 30); err != nil {
			t.Fatalf("second attempt: %v", err)
		}
		var after progress.UserProgress
		if err := db.Where("user_id = ?", u.ID).First(&after).Error; err != nil {
			t.Fatalf("failed to reload row: %v", err)
		}
		if !after.UpdatedAt.Equal(before.UpdatedAt) {
			t.Error("an attempt that changed nothing must not rewrite the row")
		}
	})

	t.Run("DistinctTargetsGetDistinctRows", func(t *testing.T) {
		db, service, u := setup(t)

		if _, _, err := service.Apply(ctx, u.ID, 1, progress.ForExercise(7), progress.StatusCompleted, 10); err != nil {
			t.Fatal(err)
		}
		if _, _, err := service.Apply(ctx, u.ID, 1, progress.ForQuiz(7), progress.StatusCompleted, 20); err != nil {
			t.Fatal(err)
		}
		if _, _, err := service.Apply(ctx, u.ID, 1, progress.ForCourse(), progress.StatusCompleted, 0); err != nil {
			t.Fatal(err)
		}

		var count int64
		db.Model(&progress.UserProgress{}).Count(&count)
		if count != 3 {
			t.Fatalf("expected 3 rows, got %d", count)
		}
	})

	t.Run("LedgerConservation", func(t *testing.T) {
		db, service, u := setup(t)

		attempts := []struct {
			target progress.Target
			points int
		}{
			{progress.ForExercise(1), 10},
			{progress.ForQuiz(1), 30},
			{progress.ForQuiz(1), 60},
			{progress.ForExercise(2), 15},
			{progress.ForQuiz(1), 45},
			{progress.ForExercise(1), 10},
		}
		for _, a := range attempts {
			if _, _, err := service.Apply(ctx, u.ID, 1, a.target, progress.StatusCompleted, a.points); err != nil {
				t.Fatal(err)
			}
		}

		var sum int
		db.Model(&progress.UserProgress{}).Where("user_id = ?", u.ID).
			Select("COALESCE(SUM(points_earned), 0)").Scan(&sum)
		if got := totalPoints(t, db, u.ID); got != sum {
			t.Errorf("total_points %d diverged from sum of points_earned %d", got, sum)
		}
		if sum != 85 {
			t.Errorf("expected 85 points total, got %d", sum)
		}
	})

	t.Run("AmbiguousTargetRejected", func(t *testing.T) {
		_, service, u := setup(t)

		lessonID, exerciseID := uint(1), uint(2)
		bad := progress.Target{LessonID: &lessonID, ExerciseID: &exerciseID}
		if _, _, err := service.Apply(ctx, u.ID, 1, bad, progress.StatusCompleted, 10); !errors.Is(err, progress.ErrInvalidTarget) {
			t.Fatalf("expected ErrInvalidTarget, got %v", err)
		}
	})

	t.Run("MissingUserRollsBack", func(t *testing.T) {
		db, service, _ := setup(t)

		_, _, err := service.Apply(ctx, 999, 1, progress.ForExercise(1), progress.StatusCompleted, 10)
		if !errors.Is(err, points.ErrUserMissing) {
			t.Fatalf("expected ErrUserMissing, got %v", err)
		}

		var count int64
		db.Model(&progress.UserProgress{}).Count(&count)
		if count != 0 {
			t.Error("progress row must not survive a failed ledger credit")
		}
	})
}

func TestTargetRowUniqueness(t *testing.T) {
	ctx := context.Background()

	t.Run("DuplicateTupleRejected", func(t *testing.T) {
		db, service, u := setup(t)

		if _, _, err := service.Apply(ctx, u.ID, 1, progress.ForExercise(7), progress.StatusCompleted, 10); err != nil {
			t.Fatal(err)
		}

		exerciseID := uint(7)
		dup := progress.UserProgress{UserID: u.ID, CourseID: 1, ExerciseID: &exerciseID, Status: progress.StatusCompleted}
		if err := db.Create(&dup).Error; err == nil {
			t.Fatal("expected the index to reject a second row for the same target")
		}

		var count int64
		db.Model(&progress.UserProgress{}).Count(&count)
		if count != 1 {
			t.Errorf("expected a single row, got %d", count)
		}
	})

	t.Run("CourseLevelRowsConflictToo", func(t *testing.T) {
		// The optional key columns coalesce to zero in the index, so two
		// all-NULL course rows collide instead of slipping past it.
		db, service, u := setup(t)

		if _, _, err := service.Apply(ctx, u.ID, 1, progress.ForCourse(), progress.StatusStarted, 0); err != nil {
			t.Fatal(err)
		}
		dup := progress.UserProgress{UserID: u.ID, CourseID: 1, Status: progress.StatusStarted}
		if err := db.Create(&dup).Error; err == nil {
			t.Fatal("expected the index to reject a second course-level row")
		}
	})

	t.Run("ConflictingInsertYields", func(t *testing.T) {
		db, _, u := setup(t)
		repo := progress.NewRepository(db)

		exerciseID := uint(7)
		first := &progress.UserProgress{UserID: u.ID, CourseID: 1, ExerciseID: &exerciseID, Status: progress.StatusStarted}
		inserted, err := repo.Create(db, first)
		if err != nil || !inserted {
			t.Fatalf("expected the first insert to land, got inserted=%v err=%v", inserted, err)
		}

		second := &progress.UserProgress{UserID: u.ID, CourseID: 1, ExerciseID: &exerciseID, Status: progress.StatusStarted}
		inserted, err = repo.Create(db, second)
		if err != nil {
			t.Fatalf("a conflicting insert must yield, not fail: %v", err)
		}
		if inserted {
			t.Error("expected inserted=false for the losing insert")
		}

		var count int64
		db.Model(&progress.UserProgress{}).Count(&count)
		if count != 1 {
			t.Errorf("expected a single row, got %d", count)
		}
	})

	t.Run("ApplyReconcilesAgainstConcurrentInsert", func(t *testing.T) {
		// Seed the row through the repository so the service's first read
		// predates it, the shape a lost insert race leaves behind.
		db, service, u := setup(t)

		exerciseID := uint(7)
		winner := &progress.UserProgress{UserID: u.ID, CourseID: 1, ExerciseID: &exerciseID, Status: progress.StatusCompleted, PointsEarned: 10}
		if _, err := progress.NewRepository(db).Create(db, winner); err != nil {
			t.Fatal(err)
		}
		if err := db.Model(&user.User{}).Where("id = ?", u.ID).
			Update("total_points", gorm.Expr("total_points + ?", 10)).Error; err != nil {
			t.Fatal(err)
		}

		row, delta, err := service.Apply(ctx, u.ID, 1, progress.ForExercise(7), progress.StatusCompleted, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if delta != 0 {
			t.Errorf("expected delta 0 against an equal prior attempt, got %d", delta)
		}
		if row.PointsEarned != 10 {
			t.Errorf("expected points_earned 10, got %d", row.PointsEarned)
		}

		var count int64
		db.Model(&progress.UserProgress{}).Count(&count)
		if count != 1 {
			t.Errorf("expected a single row, got %d", count)
		}
		if got := totalPoints(t, db, u.ID); got != 10 {
			t.Errorf("expected total_points 10, got %d", got)
		}
	})
}

func TestUpdateProgress(t *testing.T) {
	ctx := context.Background()
	db, service, u := setup(t)

	lessonID := uint(4)
	row, err := service.UpdateProgress(ctx, progress.UpdateProgressInput{
		UserID:       u.ID,
		CourseID:     1,
		LessonID:     &lessonID,
		Status:       progress.StatusCompleted,
		PointsEarned: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.PointsEarned != 5 || row.Status != progress.StatusCompleted {
		t.Errorf("unexpected row: %+v", row)
	}
	if got := totalPoints(t, db, u.ID); got != 5 {
		t.Errorf("manual updates must credit through the ledger, total is %d", got)
	}

	if _, err := service.UpdateProgress(ctx, progress.UpdateProgressInput{
		UserID:   u.ID,
		CourseID: 1,
		Status:   "archived",
	}); !errors.Is(err, progress.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a bad status, got %v", err)
	}
}

func TestListByUser(t *testing.T) {
	ctx := context.Background()
	_, service, u := setup(t)

	if _, _, err := service.Apply(ctx, u.ID, 1, progress.ForExercise(1), progress.StatusCompleted, 10); err != nil {
		t.Fatal(err)
	}
	if _, _, err := service.Apply(ctx, u.ID, 2, progress.ForQuiz(1), progress.StatusCompleted, 20); err != nil {
		t.Fatal(err)
	}

	rows, err := service.ListByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	rows, err = service.ListByUser(ctx, u.ID+1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows for another user, got %d", len(rows))
	}
}
