package records

import (
	"context"
	"reflect"
	"testing"

	"github.com/theirongolddev/messbook/internal/model"
	"github.com/theirongolddev/messbook/internal/store"
)

func TestAllTreatsAbsentAndGarbageAsEmpty(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	repo := NewRepository[model.Expense](s, KeyExpenses)

	got, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All(absent): %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("All(absent) = %#v, want empty non-nil slice", got)
	}

	for _, raw := range []string{"{not json", `{"id":1}`, `null`, ``} {
		_ = s.Set(ctx, KeyExpenses, []byte(raw))
		got, err := repo.All(ctx)
		if err != nil {
			t.Fatalf("All(%q) error = %v, want nil", raw, err)
		}
		if len(got) != 0 {
			t.Errorf("All(%q) = %v, want empty", raw, got)
		}
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[model.Debt](store.NewMemory(), KeyDebts)

	for _, id := range []int64{30, 10, 20} {
		if err := repo.Add(ctx, model.Debt{ID: id, Name: "shop", Amount: float64(id)}); err != nil {
			t.Fatalf("Add(%d): %v", id, err)
		}
	}

	all, _ := repo.All(ctx)
	var ids []int64
	for _, d := range all {
		ids = append(ids, d.ID)
	}
	if want := []int64{30, 10, 20}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
}

func TestRemoveMissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	repo := NewRepository[model.Notice](s, KeyNotices)

	_ = repo.Add(ctx, model.Notice{ID: 1, Text: "water bill due"})
	_ = repo.Add(ctx, model.Notice{ID: 2, Text: "gas cylinder"})
	before, _, _ := s.Get(ctx, KeyNotices)

	removed, err := repo.Remove(ctx, 99)
	if err != nil {
		t.Fatalf("Remove(99): %v", err)
	}
	if removed {
		t.Error("Remove(99) reported removal")
	}

	after, _, _ := s.Get(ctx, KeyNotices)
	if string(before) != string(after) {
		t.Errorf("stored value changed:\n before %s\n after  %s", before, after)
	}
}

func TestRemoveByID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[model.Member](store.NewMemory(), KeyMembers)
	_ = repo.Add(ctx, model.Member{ID: 1, Name: "Rahim"})
	_ = repo.Add(ctx, model.Member{ID: 2, Name: "Karim"})
	_ = repo.Add(ctx, model.Member{ID: 3, Name: "Salma"})

	removed, err := repo.Remove(ctx, 2)
	if err != nil || !removed {
		t.Fatalf("Remove(2) = %v, %v; want true, nil", removed, err)
	}

	all, _ := repo.All(ctx)
	if len(all) != 2 || all[0].Name != "Rahim" || all[1].Name != "Salma" {
		t.Fatalf("after remove = %+v, want Rahim, Salma", all)
	}
}

func TestFilterAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[model.Task](store.NewMemory(), KeyTasks)
	_ = repo.Add(ctx, model.Task{ID: 1, Name: "bazar", Status: model.TaskPending})
	_ = repo.Add(ctx, model.Task{ID: 2, Name: "clean", Status: model.TaskCompleted})

	pending, err := repo.Filter(ctx, func(t model.Task) bool { return t.Status == model.TaskPending })
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != 1 {
		t.Fatalf("Filter pending = %+v, want task 1", pending)
	}

	ok, err := repo.Update(ctx, 1, func(t *model.Task) { t.Status = t.Status.Toggled() })
	if err != nil || !ok {
		t.Fatalf("Update(1) = %v, %v", ok, err)
	}
	ok, _ = repo.Update(ctx, 42, func(t *model.Task) { t.Name = "x" })
	if ok {
		t.Error("Update(42) reported a match")
	}

	all, _ := repo.All(ctx)
	if all[0].Status != model.TaskCompleted {
		t.Errorf("task 1 status = %s, want completed", all[0].Status)
	}
}

func TestMealCountNullMemberIDRoundTrips(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	_ = s.Set(ctx, KeyMealCounts, []byte(`[{"id":5,"date":"2025-03-01","memberId":null,"memberName":"Guest","breakfast":1,"lunch":1,"dinner":0,"total":2}]`))

	repo := NewRepository[model.MealCount](s, KeyMealCounts)
	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 || all[0].MemberID != nil || all[0].Total != 2 {
		t.Fatalf("parsed = %+v, want one record with nil MemberID and total 2", all)
	}
}

func TestBudgetGetSet(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	b := NewBook(s).Budget

	if v, err := b.Get(ctx); err != nil || v != 0 {
		t.Fatalf("Get(absent) = %v, %v; want 0, nil", v, err)
	}
	if err := b.Set(ctx, 4500.5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := b.Get(ctx); v != 4500.5 {
		t.Errorf("Get = %v, want 4500.5", v)
	}

	_ = s.Set(ctx, KeyMealBudget, []byte(`"3000"`))
	if v, _ := b.Get(ctx); v != 3000 {
		t.Errorf("Get(quoted) = %v, want 3000", v)
	}
	for _, raw := range []string{`lots`, `+Inf`, `"NaN"`} {
		_ = s.Set(ctx, KeyMealBudget, []byte(raw))
		if v, err := b.Get(ctx); err != nil || v != 0 {
			t.Errorf("Get(%s) = %v, %v; want 0, nil", raw, v, err)
		}
	}
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	book := NewBook(s)

	_ = book.Members.Add(ctx, model.Member{ID: 1, Name: "A"})
	_ = book.Expenses.Add(ctx, model.Expense{ID: 2, Amount: 10})
	_ = book.Tasks.Add(ctx, model.Task{ID: 3})
	_ = book.Budget.Set(ctx, 100)
	_ = s.Set(ctx, "unrelated", []byte("keep"))

	if err := book.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}

	keys, _ := s.Keys(ctx)
	if want := []string{"unrelated"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys after ClearAll = %v, want %v", keys, want)
	}

	l, err := book.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(l.Members)+len(l.Expenses)+len(l.Tasks) != 0 || l.Budget != 0 {
		t.Fatalf("ledger not empty after ClearAll: %+v", l)
	}
}
