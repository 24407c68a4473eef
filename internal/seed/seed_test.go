package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todolists/internal/models"
	"todolists/internal/store"
)

func TestDefault(t *testing.T) {
	doc, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	if len(doc.Lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(doc.Lists))
	}
	if doc.Lists[0].Title != "What to learn" || doc.Lists[1].Title != "What to buy" {
		t.Errorf("unexpected list titles: %q, %q", doc.Lists[0].Title, doc.Lists[1].Title)
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{
			name:     "missing lists",
			input:    `{}`,
			wantPath: "",
		},
		{
			name:     "empty list title",
			input:    `{"lists":[{"title":""}]}`,
			wantPath: "/lists/0/title",
		},
		{
			name:     "blank list title",
			input:    `{"lists":[{"title":"   "}]}`,
			wantPath: "/lists/0/title",
		},
		{
			name:     "unknown filter",
			input:    `{"lists":[{"title":"A","filter":"done"}]}`,
			wantPath: "/lists/0/filter",
		},
		{
			name:     "blank task title",
			input:    `{"lists":[{"title":"A","tasks":[{"title":"\t "}]}]}`,
			wantPath: "/lists/0/tasks/0/title",
		},
		{
			name:     "done is not boolean",
			input:    `{"lists":[{"title":"A","tasks":[{"title":"B","done":"yes"}]}]}`,
			wantPath: "/lists/0/tasks/0/done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Path != tt.wantPath {
				t.Errorf("expected path %q, got %q (%v)", tt.wantPath, ve.Path, ve)
			}
		})
	}
}

func TestApply_TitleLengthAfterTrim(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		want    string
		wantErr bool
	}{
		{name: "padded max length", title: "  " + strings.Repeat("x", models.MaxTitleLength) + "  ", want: strings.Repeat("x", models.MaxTitleLength)},
		{name: "over max length", title: strings.Repeat("x", models.MaxTitleLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `{"lists":[{"title":"A","tasks":[{"title":"` + tt.title + `"}]}]}`
			doc, err := Parse(strings.NewReader(input))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			s := store.NewMemoryStore()
			ctx := context.Background()
			_, err = Apply(ctx, s, doc)
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidTitle) {
					t.Errorf("expected ErrInvalidTitle, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}

			lists, _ := s.ListLists(ctx)
			tasks, _ := s.ListTasks(ctx, lists[0].ID)
			if len(tasks) != 1 || tasks[0].Title != tt.want {
				t.Errorf("expected task %q, got %+v", tt.want, tasks)
			}
		})
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"lists": [`))
	if err == nil || !strings.Contains(err.Error(), "decode seed") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	content := `{"lists":[{"title":"Groceries","filter":"active","tasks":[{"title":"Bread"},{"title":"Milk","done":true}]}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write seed: %v", err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(doc.Lists) != 1 || len(doc.Lists[0].Tasks) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApply_PreservesDocumentOrder(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	doc := &Document{Lists: []List{{
		Title:  "Groceries",
		Filter: "active",
		Tasks: []Task{
			{Title: "Bread"},
			{Title: "Milk", Done: true},
			{Title: "Eggs"},
		},
	}}}

	n, err := Apply(ctx, s, doc)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 list created, got %d", n)
	}

	lists, _ := s.ListLists(ctx)
	if lists[0].Filter != models.FilterActive {
		t.Errorf("expected filter active, got %q", lists[0].Filter)
	}

	tasks, _ := s.ListTasks(ctx, lists[0].ID)
	want := []string{"Bread", "Milk", "Eggs"}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, tasks[i].Title)
		}
	}
	if !tasks[1].IsDone {
		t.Error("expected Milk to be done")
	}

	visible, _ := s.VisibleTasks(ctx, lists[0].ID)
	if len(visible) != 2 {
		t.Errorf("expected 2 active tasks, got %d", len(visible))
	}
}

func TestApply_Default(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	doc, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if _, err := Apply(ctx, s, doc); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	lists, _ := s.ListLists(ctx)
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(lists))
	}
	tasks, _ := s.ListTasks(ctx, lists[1].ID)
	if len(tasks) != 4 || tasks[0].Title != "WATER" || tasks[3].Title != "BEER" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
	if models.Summarize(tasks).Completed != 3 {
		t.Errorf("expected 3 completed tasks, got %+v", models.Summarize(tasks))
	}
}

func TestApply_StopsOnInvalidTitle(t *testing.T) {
	s := store.NewMemoryStore()

	doc := &Document{Lists: []List{{Title: "Good"}, {Title: " "}}}
	n, err := Apply(context.Background(), s, doc)
	if !errors.Is(err, models.ErrInvalidTitle) {
		t.Fatalf("expected ErrInvalidTitle, got %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 list created before failure, got %d", n)
	}
}
