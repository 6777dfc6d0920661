package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hiveworks/swarmrouter/pkg/models"
)

func newTask(description string) *models.Task {
	t := models.NewTask(description, models.PriorityMedium, models.DanceRound, 1000)
	t.AssignBee(models.NewBee(models.DanceRound, "Execute: "+description, "messenger", 900))
	return t
}

func TestLedger_PutGet(t *testing.T) {
	l := New(0)
	task := newTask("test")
	l.Put(task)

	got := l.Get(task.ID)
	if got == nil {
		t.Fatal("expected task")
	}
	if got.ID != task.ID {
		t.Errorf("expected id %q, got %q", task.ID, got.ID)
	}

	// Get returns a snapshot; mutating it must not affect the ledger.
	got.Status = models.TaskStatusFailed
	got.Bees[0].Fail("oops")
	fresh := l.Get(task.ID)
	if fresh.Status != models.TaskStatusAssigned {
		t.Errorf("expected ledger copy unchanged, got status %q", fresh.Status)
	}
	if fresh.Bees[0].Status != models.BeeStatusPending {
		t.Errorf("expected ledger bee unchanged, got status %q", fresh.Bees[0].Status)
	}
}

func TestLedger_GetUnknown(t *testing.T) {
	l := New(0)
	if got := l.Get("task_missing"); got != nil {
		t.Errorf("expected nil for unknown id, got %v", got)
	}
}

func TestLedger_LifecycleErrors(t *testing.T) {
	l := New(0)

	if err := l.Start("task_missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Start: expected ErrTaskNotFound, got %v", err)
	}
	if err := l.Complete("task_missing", "r"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Complete: expected ErrTaskNotFound, got %v", err)
	}
	if err := l.Fail("task_missing", "e"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Fail: expected ErrTaskNotFound, got %v", err)
	}
	if err := l.Cancel("task_missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Cancel: expected ErrTaskNotFound, got %v", err)
	}

	task := newTask("test")
	l.Put(task)
	if err := l.CompleteBee(task.ID, "bee_missing", "r", 1); !errors.Is(err, ErrBeeNotFound) {
		t.Errorf("CompleteBee: expected ErrBeeNotFound, got %v", err)
	}
	if err := l.FailBee(task.ID, "bee_missing", "e"); !errors.Is(err, ErrBeeNotFound) {
		t.Errorf("FailBee: expected ErrBeeNotFound, got %v", err)
	}
}

func TestLedger_Summaries_InsertionOrder(t *testing.T) {
	l := New(0)
	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		task := newTask(fmt.Sprintf("task number %d", i))
		l.Put(task)
		ids = append(ids, task.ID)
	}

	summaries := l.Summaries()
	if len(summaries) != 5 {
		t.Fatalf("expected 5 summaries, got %d", len(summaries))
	}
	for i, s := range summaries {
		if s.TaskID != ids[i] {
			t.Errorf("summary %d: expected id %q, got %q", i, ids[i], s.TaskID)
		}
	}
}

func TestLedger_Statistics_Empty(t *testing.T) {
	l := New(0)
	stats := l.Statistics()

	if stats.TotalTasks != 0 || stats.ActiveTasks != 0 || stats.CompletedTasks != 0 {
		t.Errorf("expected zero counters, got %+v", stats)
	}
	if stats.AverageTokenSavings != 0 {
		t.Errorf("expected zero average savings, got %v", stats.AverageTokenSavings)
	}
	if len(stats.DanceDistribution) != 0 {
		t.Errorf("expected empty distribution, got %v", stats.DanceDistribution)
	}
}

func TestLedger_Statistics_AverageRounding(t *testing.T) {
	l := New(0)

	// Two completed tasks with savings 10% and 25%: average 17.5.
	// A third with savings 33.333...% drags the average to 22.777...,
	// which must round to 22.78.
	savings := []int{900, 750, 2000} // estimates against budgets below
	budgets := []int{1000, 1000, 3000}
	for i := range savings {
		task := models.NewTask(fmt.Sprintf("t%d", i), models.PriorityMedium, models.DanceRound, budgets[i])
		task.AssignBee(models.NewBee(models.DanceRound, "x", "messenger", savings[i]))
		l.Put(task)
		if err := l.Complete(task.ID, "done"); err != nil {
			t.Fatalf("Complete failed: %v", err)
		}
	}

	stats := l.Statistics()
	if stats.CompletedTasks != 3 {
		t.Fatalf("expected 3 completed, got %d", stats.CompletedTasks)
	}
	if stats.AverageTokenSavings != 22.78 {
		t.Errorf("expected average 22.78, got %v", stats.AverageTokenSavings)
	}
}

func TestLedger_Eviction(t *testing.T) {
	l := New(2)

	first := newTask("first")
	second := newTask("second")
	l.Put(first)
	l.Put(second)

	// Complete the second task; it becomes the eviction candidate even
	// though the first is older.
	if err := l.Complete(second.ID, "done"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	third := newTask("third")
	l.Put(third)

	if l.Len() != 2 {
		t.Fatalf("expected ledger at capacity 2, got %d", l.Len())
	}
	if l.Get(second.ID) != nil {
		t.Error("expected terminal task evicted first")
	}
	if l.Get(first.ID) == nil || l.Get(third.ID) == nil {
		t.Error("expected live tasks retained")
	}
}

func TestLedger_Eviction_AllLive(t *testing.T) {
	l := New(2)

	first := newTask("first")
	second := newTask("second")
	third := newTask("third")
	l.Put(first)
	l.Put(second)
	l.Put(third)

	if l.Get(first.ID) != nil {
		t.Error("expected oldest live task evicted when no terminal task exists")
	}
	if l.Get(second.ID) == nil || l.Get(third.ID) == nil {
		t.Error("expected newer tasks retained")
	}
}

func TestLedger_Concurrent(t *testing.T) {
	l := New(0)

	var wg sync.WaitGroup
	const n = 50
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		task := newTask(fmt.Sprintf("task %d", i))
		ids[i] = task.ID
		l.Put(task)
	}

	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(id string) {
			defer wg.Done()
			l.Start(id)
			l.Complete(id, "done")
		}(ids[i])
		go func(id string) {
			defer wg.Done()
			l.Get(id)
			l.Statistics()
			l.Summaries()
		}(ids[i])
	}
	wg.Wait()

	stats := l.Statistics()
	if stats.TotalTasks != n {
		t.Errorf("expected %d tasks, got %d", n, stats.TotalTasks)
	}
	if stats.CompletedTasks != n {
		t.Errorf("expected %d completed, got %d", n, stats.CompletedTasks)
	}
}
