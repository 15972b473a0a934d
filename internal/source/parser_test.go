package source

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/messbook/internal/records"
	"github.com/theirongolddev/messbook/internal/store"
)

func TestParseNative(t *testing.T) {
	res := Parse(strings.NewReader(`{"members":[{"id":1,"name":"Rahim"}],"mealBudget":3000}`))
	if res.Err != nil {
		t.Fatalf("Parse: %v", res.Err)
	}
	if got, want := res.Dump.Keys(), []string{"mealBudget", "members"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	if string(res.Dump["mealBudget"]) != "3000" {
		t.Errorf("mealBudget = %s, want 3000", res.Dump["mealBudget"])
	}
	if len(res.Skipped) != 0 {
		t.Errorf("skipped = %+v, want none", res.Skipped)
	}
}

func TestParseLocalStorageStrings(t *testing.T) {
	in := `{"expenses":"[{\"id\":7,\"amount\":120}]","mealBudget":"4500.5"}`
	res := Parse(strings.NewReader(in))
	if res.Err != nil {
		t.Fatalf("Parse: %v", res.Err)
	}
	if got := string(res.Dump["expenses"]); got != `[{"id":7,"amount":120}]` {
		t.Errorf("expenses = %s", got)
	}
	if got := string(res.Dump["mealBudget"]); got != "4500.5" {
		t.Errorf("mealBudget = %s, want 4500.5", got)
	}
}

func TestParseSkipsUnknownAndMisshapen(t *testing.T) {
	in := `{"theme":"dark","tasks":{"id":1},"notices":"not json","mealBudget":"lots","debts":[]}`
	res := Parse(strings.NewReader(in))
	if res.Err != nil {
		t.Fatalf("Parse: %v", res.Err)
	}
	if got, want := res.Dump.Keys(), []string{"debts"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("kept keys = %v, want %v", got, want)
	}

	var skipped []string
	for _, s := range res.Skipped {
		skipped = append(skipped, s.Key)
	}
	if want := []string{"mealBudget", "notices", "tasks", "theme"}; !reflect.DeepEqual(skipped, want) {
		t.Errorf("skipped = %v, want %v", skipped, want)
	}
}

func TestParseRejectsNonObject(t *testing.T) {
	for _, in := range []string{`[1,2]`, `nope`, ``} {
		if res := Parse(strings.NewReader(in)); res.Err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestParseFileMissing(t *testing.T) {
	if res := ParseFile(filepath.Join(t.TempDir(), "none.json")); res.Err == nil {
		t.Fatal("ParseFile(missing) succeeded")
	}
}

func TestExportApplyRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := store.NewMemory()
	_ = src.Set(ctx, records.KeyMembers, []byte(`[{"id":1,"name":"Rahim"}]`))
	_ = src.Set(ctx, records.KeyMealBudget, []byte(`3000`))
	_ = src.Set(ctx, "unrelated", []byte(`x`))

	d, err := Export(ctx, src)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatalf("Write: %v", err)
	}
	res := Parse(&buf)
	if res.Err != nil {
		t.Fatalf("Parse(exported): %v", res.Err)
	}

	dst := store.NewMemory()
	_ = dst.Set(ctx, records.KeyTasks, []byte(`[{"id":9}]`))
	keys, err := Apply(ctx, dst, res.Dump, true)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := []string{records.KeyMealBudget, records.KeyMembers}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("written = %v, want %v", keys, want)
	}
	if _, ok, _ := dst.Get(ctx, records.KeyTasks); ok {
		t.Error("replace kept tasks absent from the dump")
	}

	ledger, err := records.NewBook(dst).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ledger.Members) != 1 || ledger.Members[0].Name != "Rahim" || ledger.Budget != 3000 {
		t.Fatalf("ledger after import = %+v", ledger)
	}
}

func TestApplyMergeKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	dst := store.NewMemory()
	_ = dst.Set(ctx, records.KeyTasks, []byte(`[{"id":9}]`))

	if _, err := Apply(ctx, dst, Dump{records.KeyDebts: []byte(`[]`)}, false); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v, ok, _ := dst.Get(ctx, records.KeyTasks); !ok || string(v) != `[{"id":9}]` {
		t.Errorf("tasks = %q (present %v), want untouched", v, ok)
	}
}

func TestScanDirNewestFirst(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.json")
	newer := filepath.Join(dir, "new.JSON")
	for _, p := range []string{old, newer, filepath.Join(dir, "notes.txt")} {
		if err := os.WriteFile(p, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o700); err != nil {
		t.Fatal(err)
	}
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	_ = os.Chtimes(old, base, base)
	_ = os.Chtimes(newer, base.Add(time.Hour), base.Add(time.Hour))

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(files) != 2 || files[0].Path != newer || files[1].Path != old {
		t.Fatalf("ScanDir = %+v, want new.JSON then old.json", files)
	}

	missing, err := ScanDir(filepath.Join(dir, "absent"))
	if err != nil || missing != nil {
		t.Errorf("ScanDir(absent) = %v, %v; want nil, nil", missing, err)
	}
}

func TestExportLeavesOutUnparsableValues(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	_ = s.Set(ctx, records.KeyExpenses, []byte(`{not json`))
	_ = s.Set(ctx, records.KeyMealBudget, []byte(`+Inf`))
	_ = s.Set(ctx, records.KeyDebts, []byte(`[{"id":1,"name":"grocer","amount":50}]`))

	d, err := Export(ctx, s)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got, want := d.Keys(), []string{records.KeyDebts}; !reflect.DeepEqual(got, want) {
		t.Fatalf("exported keys = %v, want %v", got, want)
	}

	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if res := Parse(&buf); res.Err != nil || len(res.Dump) != 1 {
		t.Fatalf("re-parse = %+v", res)
	}
}
