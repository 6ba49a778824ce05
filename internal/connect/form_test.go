package connect

import (
	"reflect"
	"testing"

	"github.com/nhath/ezchat/internal/history"
)

func newForm(t *testing.T, e Engine) (*Form, *history.Store) {
	t.Helper()
	store := history.NewStore(history.NewMemoryBackend(), history.DefaultLimit)
	f, err := NewForm(e, store)
	if err != nil {
		t.Fatalf("NewForm: %v", err)
	}
	f.Open()
	return f, store
}

func TestEngineTransitions(t *testing.T) {
	tests := []struct {
		engine      Engine
		host, port  string
		enabled     bool
		placeholder string
	}{
		{MySQL, "localhost", "3306", true, PlaceholderDatabase},
		{PostgreSQL, "localhost", "5432", true, PlaceholderDatabase},
		{SQLite, "", "", false, PlaceholderFilePath},
	}

	f, _ := newForm(t, MySQL)
	for _, tt := range tests {
		t.Run(string(tt.engine), func(t *testing.T) {
			if err := f.SelectEngine(tt.engine); err != nil {
				t.Fatal(err)
			}
			if f.Host() != tt.host || f.Port() != tt.port {
				t.Errorf("host/port = %q/%q, want %q/%q", f.Host(), f.Port(), tt.host, tt.port)
			}
			if f.HostPortEnabled() != tt.enabled {
				t.Errorf("enabled = %v, want %v", f.HostPortEnabled(), tt.enabled)
			}
			if f.DatabasePlaceholder() != tt.placeholder {
				t.Errorf("placeholder = %q, want %q", f.DatabasePlaceholder(), tt.placeholder)
			}
		})
	}
}

func TestSQLiteThenMySQLReenablesFields(t *testing.T) {
	f, _ := newForm(t, SQLite)
	if err := f.SetHost("db.example.com"); err != ErrFieldDisabled {
		t.Fatalf("SetHost on sqlite = %v, want ErrFieldDisabled", err)
	}
	if f.Host() != "" {
		t.Fatal("disabled host must stay empty")
	}

	f.SelectEngine(MySQL)
	if f.Host() != "localhost" || f.Port() != "3306" || !f.HostPortEnabled() {
		t.Fatalf("mysql: host=%q port=%q enabled=%v", f.Host(), f.Port(), f.HostPortEnabled())
	}
	if err := f.SetHost("db.example.com"); err != nil {
		t.Fatal(err)
	}
}

func TestSelectUnknownEngine(t *testing.T) {
	f, _ := newForm(t, PostgreSQL)
	if err := f.SelectEngine("oracle"); err == nil {
		t.Fatal("expected error")
	}
	if f.Engine() != PostgreSQL || f.Port() != "5432" {
		t.Fatal("state changed on unknown engine")
	}
}

func TestCycleEngine(t *testing.T) {
	f, _ := newForm(t, MySQL)
	f.CycleEngine(1)
	if f.Engine() != PostgreSQL {
		t.Fatalf("engine = %s", f.Engine())
	}
	f.CycleEngine(1)
	f.CycleEngine(1)
	if f.Engine() != MySQL {
		t.Fatalf("wrap forward: engine = %s", f.Engine())
	}
	f.CycleEngine(-1)
	if f.Engine() != SQLite {
		t.Fatalf("wrap backward: engine = %s", f.Engine())
	}
}

func TestSubmitSuccess(t *testing.T) {
	f, store := newForm(t, PostgreSQL)
	f.SetUsername("alice")
	f.SetPassword("secret")
	f.SetDatabase("sales")

	cfg, err := f.Submit()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Engine: PostgreSQL, Host: "localhost", Port: "5432", Username: "alice", Password: "secret", Database: "sales"}
	if cfg != want {
		t.Fatalf("config = %+v, want %+v", cfg, want)
	}
	if f.Status() != StatusConnecting || f.Phase() != Connecting {
		t.Fatalf("status=%q phase=%v", f.Status(), f.Phase())
	}
	if f.Ready() {
		t.Fatal("must not unlock before the response")
	}
	if len(store.List(history.Usernames)) != 0 {
		t.Fatal("history written before success")
	}

	eff := f.Resolve(Result{Outcome: Succeeded})
	if eff == nil {
		t.Fatal("expected effects on success")
	}
	if eff.Confirmation != "Successfully connected to 'sales'. You can start asking questions now." {
		t.Errorf("confirmation = %q", eff.Confirmation)
	}
	if !f.Ready() || f.Visible() || f.Phase() != Closed {
		t.Errorf("ready=%v visible=%v phase=%v", f.Ready(), f.Visible(), f.Phase())
	}
	if got := store.List(history.Usernames); !reflect.DeepEqual(got, []string{"alice"}) {
		t.Errorf("usernames = %v", got)
	}
	if got := store.List(history.DBNames); !reflect.DeepEqual(got, []string{"sales"}) {
		t.Errorf("dbnames = %v", got)
	}
}

func TestSubmitRejected(t *testing.T) {
	f, store := newForm(t, PostgreSQL)
	f.SetUsername("alice")
	f.SetDatabase("sales")
	f.Submit()

	if eff := f.Resolve(Result{Outcome: Rejected, Message: "auth failed"}); eff != nil {
		t.Fatal("no effects on failure")
	}
	if f.Status() != "auth failed" {
		t.Errorf("status = %q", f.Status())
	}
	if f.Ready() || !f.Visible() || f.Phase() != Editing {
		t.Errorf("ready=%v visible=%v phase=%v", f.Ready(), f.Visible(), f.Phase())
	}
	if f.Username() != "alice" || f.Database() != "sales" || f.Host() != "localhost" {
		t.Error("fields must stay intact for correction")
	}
	if len(store.List(history.Usernames)) != 0 || len(store.List(history.DBNames)) != 0 {
		t.Error("history modified on failure")
	}
}

func TestSubmitTransportFailure(t *testing.T) {
	f, _ := newForm(t, MySQL)
	f.Submit()
	f.Resolve(Result{Outcome: TransportFailed})
	if f.Status() != StatusUnexpected {
		t.Errorf("status = %q", f.Status())
	}
	if f.Ready() {
		t.Error("chat unlocked after transport failure")
	}
}

func TestSubmitWhilePending(t *testing.T) {
	f, _ := newForm(t, MySQL)
	f.Submit()
	if _, err := f.Submit(); err != ErrInFlight {
		t.Fatalf("second submit = %v, want ErrInFlight", err)
	}
}

func TestSQLiteSubmitOmitsHostPort(t *testing.T) {
	f, _ := newForm(t, SQLite)
	f.SetDatabase("/data/app.db")
	cfg, _ := f.Submit()
	if cfg.Host != "" || cfg.Port != "" {
		t.Fatalf("host/port = %q/%q", cfg.Host, cfg.Port)
	}
}

func TestReopenReappliesDefaults(t *testing.T) {
	f, _ := newForm(t, MySQL)
	f.SetPort("3307")
	f.Close()
	f.Open()
	if f.Port() != "3306" {
		t.Fatalf("port = %q, want default", f.Port())
	}
}

func TestReopenClearsStatus(t *testing.T) {
	f, _ := newForm(t, MySQL)
	f.Submit()
	f.Resolve(Result{Outcome: Rejected, Message: "auth failed"})
	f.Close()
	f.Open()
	if f.Status() != "" {
		t.Errorf("status = %q, want empty", f.Status())
	}

	f.Submit()
	f.Close()
	f.Open()
	if f.Status() != StatusConnecting {
		t.Errorf("pending status lost: %q", f.Status())
	}
}

func TestReadyLatches(t *testing.T) {
	f, _ := newForm(t, MySQL)
	f.Submit()
	f.Resolve(Result{Outcome: Succeeded})

	f.Open()
	f.Submit()
	f.Resolve(Result{Outcome: Rejected, Message: "nope"})
	if !f.Ready() {
		t.Fatal("a later failure must not re-lock chat")
	}
}

func TestPrefill(t *testing.T) {
	f, _ := newForm(t, MySQL)
	err := f.Prefill(Config{Engine: PostgreSQL, Host: "db.internal", Username: "bob", Database: "hr"})
	if err != nil {
		t.Fatal(err)
	}
	if f.Host() != "db.internal" || f.Port() != "5432" || f.Username() != "bob" || f.Database() != "hr" {
		t.Fatalf("prefill: %+v", f)
	}
}

func TestParseEngine(t *testing.T) {
	for in, want := range map[string]Engine{"postgres": PostgreSQL, "postgresql": PostgreSQL, "mysql": MySQL, "sqlite": SQLite} {
		got, err := ParseEngine(in)
		if err != nil || got != want {
			t.Errorf("ParseEngine(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseEngine("mongo"); err == nil {
		t.Error("expected error")
	}
}
