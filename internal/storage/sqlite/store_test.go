package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "skilltrack.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func addTestSkill(t *testing.T, s *Store, id, name string) models.Skill {
	t.Helper()
	skill := models.Skill{ID: id, Name: name}
	if err := s.AddSkill(skill); err != nil {
		t.Fatalf("AddSkill failed: %v", err)
	}
	return skill
}

func TestLoadBeforeInit(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); err == nil {
		t.Fatal("Load succeeded on a missing database")
	}
}

func TestInitSeedsSettings(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings after Init failed: %v", err)
	}
	if settings.Timezone != "Local" {
		t.Errorf("default timezone = %q, want Local", settings.Timezone)
	}
}

func TestGetSettingsEmptyTable(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.db.Exec("DELETE FROM settings"); err != nil {
		t.Fatalf("failed to clear settings: %v", err)
	}
	if _, err := s.GetSettings(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetSettings on empty table = %v, want ErrNotFound", err)
	}
}

func TestSkillLookup(t *testing.T) {
	s := newTestStore(t)
	addTestSkill(t, s, "s1", "deepWork")

	byName, err := s.GetSkillByName("DEEPWORK")
	if err != nil {
		t.Fatalf("case-insensitive name lookup failed: %v", err)
	}
	if byName.ID != "s1" {
		t.Errorf("lookup returned %q, want s1", byName.ID)
	}

	if _, err := s.GetSkill("nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing skill = %v, want ErrNotFound", err)
	}
}

func TestDuplicateSkillName(t *testing.T) {
	s := newTestStore(t)
	addTestSkill(t, s, "s1", "guitar")
	if err := s.AddSkill(models.Skill{ID: "s2", Name: "Guitar"}); err == nil {
		t.Error("duplicate skill name accepted")
	}
}

func TestAddEntryClampsHours(t *testing.T) {
	s := newTestStore(t)
	addTestSkill(t, s, "s1", "guitar")

	tests := []struct {
		in   float64
		want float64
	}{
		{30, 24},
		{-5, 0},
		{2.5, 2.5},
	}
	for i, tt := range tests {
		id := string(rune('a' + i))
		err := s.AddEntry(models.Entry{ID: id, Date: "2025-03-10", SkillID: "s1", Hours: tt.in})
		if err != nil {
			t.Fatalf("AddEntry(%v) failed: %v", tt.in, err)
		}
	}

	entries, err := s.GetAllEntries()
	if err != nil {
		t.Fatalf("GetAllEntries failed: %v", err)
	}
	got := map[string]float64{}
	for _, e := range entries {
		got[e.ID] = e.Hours
	}
	for i, tt := range tests {
		id := string(rune('a' + i))
		if got[id] != tt.want {
			t.Errorf("entry %s hours = %v, want %v", id, got[id], tt.want)
		}
	}
}

func TestDeleteSkillCascadesEntries(t *testing.T) {
	s := newTestStore(t)
	addTestSkill(t, s, "s1", "guitar")
	addTestSkill(t, s, "s2", "piano")
	if err := s.AddEntry(models.Entry{ID: "e1", Date: "2025-03-10", SkillID: "s1", Hours: 1}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if err := s.AddEntry(models.Entry{ID: "e2", Date: "2025-03-10", SkillID: "s2", Hours: 1}); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	if err := s.DeleteSkill("s1"); err != nil {
		t.Fatalf("DeleteSkill failed: %v", err)
	}

	entries, err := s.GetAllEntries()
	if err != nil {
		t.Fatalf("GetAllEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "e2" {
		t.Errorf("entries after cascade = %+v, want only e2", entries)
	}
}

func testSession(id string) (models.Session, models.Entry) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC).UnixMilli()
	end := start + 3600_000
	session := models.Session{
		ID:         id,
		SkillID:    "s1",
		Date:       "2025-03-10",
		StartTime:  start,
		EndTime:    end,
		TotalHours: 1,
		Intervals:  []models.TimeInterval{{Start: start, End: &end}},
	}
	entry := models.Entry{ID: "entry-" + id, Date: "2025-03-10", SkillID: "s1", Hours: 1, Notes: "Timer session"}
	return session, entry
}

func TestFinalizeSessionAtomic(t *testing.T) {
	s := newTestStore(t)
	addTestSkill(t, s, "s1", "guitar")

	session, entry := testSession("sess1")
	if err := s.FinalizeSession(session, entry); err != nil {
		t.Fatalf("FinalizeSession failed: %v", err)
	}

	stored, err := s.GetSession("sess1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if stored.TotalHours != 1 || len(stored.Intervals) != 1 {
		t.Errorf("stored session = %+v", stored)
	}
	entries, err := s.GetAllEntries()
	if err != nil {
		t.Fatalf("GetAllEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}

	// A failed finalize must leave no partial rows: re-finalizing with the
	// same session ID fails on the session insert, so the second entry must
	// not appear either.
	session2, entry2 := testSession("sess1")
	entry2.ID = "entry-two"
	if err := s.FinalizeSession(session2, entry2); err == nil {
		t.Fatal("duplicate session finalize succeeded")
	}
	entries, _ = s.GetAllEntries()
	if len(entries) != 1 {
		t.Errorf("entry count after failed finalize = %d, want 1", len(entries))
	}
}

func TestSetSessionNotes(t *testing.T) {
	s := newTestStore(t)
	addTestSkill(t, s, "s1", "guitar")
	session, entry := testSession("sess1")
	if err := s.FinalizeSession(session, entry); err != nil {
		t.Fatalf("FinalizeSession failed: %v", err)
	}

	if err := s.SetSessionNotes("sess1", "productive"); err != nil {
		t.Fatalf("SetSessionNotes failed: %v", err)
	}
	stored, _ := s.GetSession("sess1")
	if stored.Notes != "productive" {
		t.Errorf("notes = %q, want productive", stored.Notes)
	}

	if err := s.SetSessionNotes("nope", "x"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("notes on missing session = %v, want ErrNotFound", err)
	}
}

func TestActiveTimerSlot(t *testing.T) {
	s := newTestStore(t)
	start := time.Now().UnixMilli()
	state := models.ActiveTimer{
		SkillID:   "s1",
		StartTime: start,
		IsRunning: true,
		Intervals: []models.TimeInterval{{Start: start}},
	}

	if err := s.ClaimActiveTimer(state); err != nil {
		t.Fatalf("ClaimActiveTimer failed: %v", err)
	}

	// Second claim loses the race for the slot.
	if err := s.ClaimActiveTimer(state); !errors.Is(err, storage.ErrTimerSlotTaken) {
		t.Errorf("second claim = %v, want ErrTimerSlotTaken", err)
	}

	// Paused state round-trips.
	end := start + 60_000
	state.IsRunning = false
	state.ElapsedSeconds = 60
	state.Intervals[0].End = &end
	if err := s.UpdateActiveTimer(state); err != nil {
		t.Fatalf("UpdateActiveTimer failed: %v", err)
	}

	got, found, err := s.GetActiveTimer()
	if err != nil || !found {
		t.Fatalf("GetActiveTimer = (%v, %v)", found, err)
	}
	if got.IsRunning || got.ElapsedSeconds != 60 {
		t.Errorf("restored state = %+v", got)
	}
	if len(got.Intervals) != 1 || !got.Intervals[0].Closed() {
		t.Errorf("restored intervals = %+v", got.Intervals)
	}

	if err := s.ClearActiveTimer(); err != nil {
		t.Fatalf("ClearActiveTimer failed: %v", err)
	}
	if _, found, _ := s.GetActiveTimer(); found {
		t.Error("timer still present after clear")
	}
	if err := s.ClaimActiveTimer(state); err != nil {
		t.Errorf("claim after clear failed: %v", err)
	}
}

func TestUpsertDailyLogIdempotent(t *testing.T) {
	s := newTestStore(t)

	first := models.DailyTaskLog{
		ID:             "log1",
		Date:           "2025-03-10",
		Tasks:          []models.DailyTask{{ID: "t1", Title: "a", CreatedAt: time.Now().UTC()}},
		CompletionRate: 0,
	}
	if err := s.UpsertDailyLog(first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second := first
	second.ID = "log2"
	second.CompletionRate = 100
	if err := s.UpsertDailyLog(second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	logs, err := s.GetAllDailyLogs()
	if err != nil {
		t.Fatalf("GetAllDailyLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("log count = %d, want 1", len(logs))
	}
	// The snapshot is replaced in place; the original row's ID survives.
	if logs[0].ID != "log1" {
		t.Errorf("log ID = %q, want log1", logs[0].ID)
	}
	if logs[0].CompletionRate != 100 {
		t.Errorf("completion rate = %v, want 100", logs[0].CompletionRate)
	}
}

func TestGoalRoundTrip(t *testing.T) {
	s := newTestStore(t)
	addTestSkill(t, s, "s1", "guitar")

	goal := models.Goal{
		ID:          "g1",
		SkillID:     "s1",
		Title:       "Learn guitar",
		TargetHours: 100,
		DailyTarget: 2,
		Deadline:    "2025-12-31",
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.AddGoal(goal); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	got, err := s.GetGoal("g1")
	if err != nil {
		t.Fatalf("GetGoal failed: %v", err)
	}
	if !got.CreatedAt.Equal(goal.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, goal.CreatedAt)
	}

	got.Completed = true
	got.CompletionNote = "done"
	got.SecondChance = true
	if err := s.UpdateGoal(got); err != nil {
		t.Fatalf("UpdateGoal failed: %v", err)
	}
	updated, _ := s.GetGoal("g1")
	if !updated.Completed || !updated.SecondChance || updated.CompletionNote != "done" {
		t.Errorf("updated goal = %+v", updated)
	}

	if err := s.DeleteGoal("g1"); err != nil {
		t.Fatalf("DeleteGoal failed: %v", err)
	}
	if _, err := s.GetGoal("g1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("deleted goal lookup = %v, want ErrNotFound", err)
	}
}

func TestDailyTaskRoundTrip(t *testing.T) {
	s := newTestStore(t)

	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	task := models.DailyTask{ID: "t1", Title: "practice", CreatedAt: created}
	if err := s.AddDailyTask(task); err != nil {
		t.Fatalf("AddDailyTask failed: %v", err)
	}

	done := created.Add(2 * time.Hour)
	task.Completed = true
	task.CompletedAt = &done
	if err := s.UpdateDailyTask(task); err != nil {
		t.Fatalf("UpdateDailyTask failed: %v", err)
	}

	got, err := s.GetDailyTask("t1")
	if err != nil {
		t.Fatalf("GetDailyTask failed: %v", err)
	}
	if !got.Completed || got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Errorf("round-tripped task = %+v", got)
	}

	if err := s.DeleteDailyTask("t1"); err != nil {
		t.Fatalf("DeleteDailyTask failed: %v", err)
	}
	if _, err := s.GetDailyTask("t1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("deleted task lookup = %v, want ErrNotFound", err)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skilltrack.db")

	s := NewStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	addTestSkill(t, s, "s1", "guitar")
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2 := NewStore(path)
	if err := s2.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer s2.Close()

	skill, err := s2.GetSkill("s1")
	if err != nil {
		t.Fatalf("GetSkill after reopen failed: %v", err)
	}
	if skill.Name != "guitar" {
		t.Errorf("skill name = %q", skill.Name)
	}
}
