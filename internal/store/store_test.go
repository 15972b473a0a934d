package store

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
)

// backendsUnderTest opens every backend that can run without external services.
// Postgres joins when MESSBOOK_TEST_DATABASE_URL is set.
func backendsUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	out := map[string]Store{"memory": NewMemory()}

	sq, err := OpenSQLite(ctx, SQLitePath(t.TempDir()))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	out["sqlite"] = sq

	bolt, err := OpenBolt(BoltPath(t.TempDir()))
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}
	out["bolt"] = bolt

	if dsn := os.Getenv("MESSBOOK_TEST_DATABASE_URL"); dsn != "" {
		pg, err := OpenPostgres(ctx, dsn)
		if err != nil {
			t.Fatalf("OpenPostgres: %v", err)
		}
		for _, k := range []string{"a", "b", "c"} {
			_ = pg.Remove(ctx, k)
		}
		out["postgres"] = pg
	}

	t.Cleanup(func() {
		for _, s := range out {
			_ = s.Close()
		}
	})
	return out
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get(ctx, "a"); err != nil || ok {
				t.Fatalf("Get(absent) = ok %v, err %v; want false, nil", ok, err)
			}

			if err := s.Set(ctx, "a", []byte(`[1,2]`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, ok, err := s.Get(ctx, "a")
			if err != nil || !ok {
				t.Fatalf("Get = ok %v, err %v; want true, nil", ok, err)
			}
			if string(got) != `[1,2]` {
				t.Errorf("Get = %q, want [1,2]", got)
			}

			if err := s.Set(ctx, "a", []byte(`[3]`)); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, _, _ = s.Get(ctx, "a")
			if string(got) != `[3]` {
				t.Errorf("Get after overwrite = %q, want [3]", got)
			}
		})
	}
}

func TestStoreKeysAndRemove(t *testing.T) {
	ctx := context.Background()
	for name, s := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"c", "a", "b"} {
				if err := s.Set(ctx, k, []byte("1")); err != nil {
					t.Fatalf("Set(%s): %v", k, err)
				}
			}

			keys, err := s.Keys(ctx)
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			if want := []string{"a", "b", "c"}; !reflect.DeepEqual(keys, want) {
				t.Errorf("Keys = %v, want %v", keys, want)
			}

			if err := s.Remove(ctx, "b"); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if err := s.Remove(ctx, "missing"); err != nil {
				t.Errorf("Remove(missing) = %v, want nil", err)
			}
			keys, _ = s.Keys(ctx)
			if want := []string{"a", "c"}; !reflect.DeepEqual(keys, want) {
				t.Errorf("Keys after remove = %v, want %v", keys, want)
			}
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	buf := []byte("abc")
	_ = m.Set(ctx, "k", buf)
	buf[0] = 'x'

	got, _, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("stored value aliased caller buffer: got %q", got)
	}
	got[1] = 'y'
	again, _, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("returned value aliased stored buffer: got %q", again)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "redis", DataDir: t.TempDir()})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("Open(redis) err = %v, want ErrUnknownBackend", err)
	}
}

func TestOpenPostgresRequiresDSN(t *testing.T) {
	if _, err := Open(context.Background(), Options{Backend: BackendPostgres}); err == nil {
		t.Fatal("Open(postgres) without DSN succeeded")
	}
}

func TestOpenDefaultsToSQLite(t *testing.T) {
	s, err := Open(context.Background(), Options{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = s.Close() }()
	if _, ok := s.(*SQLite); !ok {
		t.Fatalf("Open default backend = %T, want *SQLite", s)
	}
}
