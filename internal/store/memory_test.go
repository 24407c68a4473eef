package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryStore_ConcurrentAddTask(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	listID := mustAddList(t, s, "Groceries")

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := s.AddTask(ctx, listID, fmt.Sprintf("task %d-%d", w, i)); err != nil {
					t.Errorf("AddTask failed: %v", err)
				}
				s.VisibleTasks(ctx, listID)
			}
		}(w)
	}
	wg.Wait()

	tasks, err := s.ListTasks(ctx, listID)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != workers*perWorker {
		t.Errorf("expected %d tasks, got %d", workers*perWorker, len(tasks))
	}

	seen := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if seen[task.ID] {
			t.Fatalf("duplicate task id %s", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestMemoryStore_RemoveListDropsTasks(t *testing.T) {
	s := NewMemoryStore()
	listID := mustAddList(t, s, "Groceries")
	mustAddTask(t, s, listID, "Milk")

	if err := s.RemoveList(context.Background(), listID); err != nil {
		t.Fatalf("RemoveList failed: %v", err)
	}

	if _, ok := s.tasksByList[listID]; ok {
		t.Error("expected task collection to be removed with its list")
	}
	if len(s.tasksByList) != len(s.lists) {
		t.Errorf("expected one task collection per list, got %d collections for %d lists", len(s.tasksByList), len(s.lists))
	}
}
