package ui

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezchat/internal/chat"
	"github.com/nhath/ezchat/internal/client"
	"github.com/nhath/ezchat/internal/config"
	"github.com/nhath/ezchat/internal/connect"
	"github.com/nhath/ezchat/internal/history"
)

type fakeBackend struct {
	connectErr error
	chatReply  string
	chatErr    error

	connects []connect.Config
	asked    []string
}

func (f *fakeBackend) Connect(_ context.Context, cfg connect.Config) (client.ConnectReply, error) {
	f.connects = append(f.connects, cfg)
	if f.connectErr != nil {
		return client.ConnectReply{}, f.connectErr
	}
	return client.ConnectReply{Success: "ok"}, nil
}

func (f *fakeBackend) Chat(_ context.Context, message string) (string, error) {
	f.asked = append(f.asked, message)
	return f.chatReply, f.chatErr
}

type harness struct {
	t       *testing.T
	m       Model
	backend *fakeBackend
	store   *history.Store
	copied  []string
	clipErr error
}

func newHarness(t *testing.T) *harness {
	return newHarnessWithConfig(t, config.DefaultConfig())
}

func newHarnessWithConfig(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		backend: &fakeBackend{chatReply: "<p>Total revenue is <strong>42</strong></p>"},
		store:   history.NewStore(history.NewMemoryBackend(), 0),
	}
	m, err := NewModel(Options{
		Config:  cfg,
		Backend: h.backend,
		History: h.store,
		Clipboard: func(text string) error {
			if h.clipErr != nil {
				return h.clipErr
			}
			h.copied = append(h.copied, text)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	h.m = m
	h.send(tea.WindowSizeMsg{Width: 100, Height: 40})
	return h
}

// send delivers msg and returns the resulting command
func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) key(k tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: k})
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// deliver runs cmd and feeds back every backend result it produces.
// Timers and other messages are dropped.
func (h *harness) deliver(cmd tea.Cmd) {
	h.t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.deliver(c)
		}
	case ConnectResultMsg, ChatResultMsg, ClipboardCopiedMsg, ProfileSavedMsg:
		h.deliver(h.send(msg))
	}
}

func (h *harness) focusField(f Field) {
	h.t.Helper()
	for i := 0; i < len(formFields) && h.m.formFocus != f; i++ {
		h.key(tea.KeyTab)
	}
	if h.m.formFocus != f {
		h.t.Fatalf("could not focus %s", f)
	}
}

func (h *harness) connect(user, db string) {
	h.t.Helper()
	h.key(tea.KeyCtrlO)
	h.focusField(FieldUsername)
	h.typeText(user)
	h.focusField(FieldDatabase)
	h.typeText(db)
	h.deliver(h.key(tea.KeyEnter))
}

func TestStartsLocked(t *testing.T) {
	h := newHarness(t)
	if h.m.Session().Ready() {
		t.Fatal("chat should start locked")
	}
	h.typeText("hello")
	h.key(tea.KeyEnter)
	if len(h.backend.asked) != 0 {
		t.Error("chat request sent before connecting")
	}
	if h.m.StatusMessage() != hintNotReady {
		t.Errorf("status = %q", h.m.StatusMessage())
	}
}

func TestConnectFlow(t *testing.T) {
	h := newHarness(t)
	h.connect("alice", "sales")

	if len(h.backend.connects) != 1 {
		t.Fatalf("connect calls = %d", len(h.backend.connects))
	}
	got := h.backend.connects[0]
	want := connect.Config{Engine: connect.MySQL, Host: "localhost", Port: "3306", Username: "alice", Database: "sales"}
	if got != want {
		t.Errorf("connect config = %+v, want %+v", got, want)
	}

	if h.m.Form().Visible() {
		t.Error("form should close after success")
	}
	if !h.m.Session().Ready() {
		t.Error("chat should be unlocked")
	}
	msgs := h.m.Session().Messages()
	last := msgs[len(msgs)-1]
	if last.Content != "Successfully connected to 'sales'. You can start asking questions now." {
		t.Errorf("confirmation = %q", last.Content)
	}
	if u := h.store.List(history.Usernames); len(u) != 1 || u[0] != "alice" {
		t.Errorf("usernames = %v", u)
	}
	if d := h.store.List(history.DBNames); len(d) != 1 || d[0] != "sales" {
		t.Errorf("dbnames = %v", d)
	}
}

func TestConnectRejectedKeepsForm(t *testing.T) {
	h := newHarness(t)
	h.backend.connectErr = &client.ServerError{Status: http.StatusUnauthorized, Message: "auth failed"}
	h.connect("bob", "hr")

	if !h.m.Form().Visible() {
		t.Fatal("form should stay open")
	}
	if h.m.Form().Status() != "auth failed" {
		t.Errorf("status = %q", h.m.Form().Status())
	}
	if h.m.Session().Ready() {
		t.Error("chat unlocked after a rejected connect")
	}
	if len(h.store.List(history.Usernames)) != 0 {
		t.Error("history written after failure")
	}
}

func TestConnectTransportFailure(t *testing.T) {
	h := newHarness(t)
	h.backend.connectErr = &client.TransportError{Op: "connect", Underlying: errors.New("refused")}
	h.connect("bob", "hr")
	if h.m.Form().Status() != connect.StatusUnexpected {
		t.Errorf("status = %q", h.m.Form().Status())
	}
}

func TestSQLiteSkipsHostAndPort(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyCtrlO)
	h.key(tea.KeyLeft) // mysql -> sqlite
	if h.m.Form().Engine() != connect.SQLite {
		t.Fatalf("engine = %s", h.m.Form().Engine())
	}
	h.key(tea.KeyTab)
	if h.m.formFocus != FieldUsername {
		t.Errorf("focus = %s, want username", h.m.formFocus)
	}
	if h.m.inputs[FieldDatabase].Placeholder != connect.PlaceholderFilePath {
		t.Errorf("placeholder = %q", h.m.inputs[FieldDatabase].Placeholder)
	}
}

func TestChatRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.connect("alice", "sales")

	h.typeText("show total revenue")
	cmd := h.key(tea.KeyEnter)

	msgs := h.m.Session().Messages()
	if !msgs[len(msgs)-1].IsTyping() {
		t.Fatal("typing placeholder missing before the response")
	}
	if msgs[len(msgs)-2].Content != "show total revenue" {
		t.Errorf("user message = %q", msgs[len(msgs)-2].Content)
	}
	if h.m.chatInput.Value() != "" {
		t.Error("input not cleared")
	}
	if h.m.coord.Open() != nil {
		t.Error("suggestion panel left open after submit")
	}

	h.deliver(cmd)

	msgs = h.m.Session().Messages()
	last := msgs[len(msgs)-1]
	if last.IsTyping() || last.Content != h.backend.chatReply {
		t.Errorf("last message = %+v", last)
	}
	if q := h.store.List(history.Queries); len(q) != 1 || q[0] != "show total revenue" {
		t.Errorf("queries = %v", q)
	}
	if len(h.backend.asked) != 1 {
		t.Errorf("chat calls = %d", len(h.backend.asked))
	}
}

func TestChatServerError(t *testing.T) {
	h := newHarness(t)
	h.connect("alice", "sales")
	h.backend.chatErr = &client.ServerError{Status: http.StatusBadRequest, Message: "Not connected"}

	h.typeText("revenue")
	h.deliver(h.key(tea.KeyEnter))

	msgs := h.m.Session().Messages()
	last := msgs[len(msgs)-1]
	if last.Kind != chat.Error || last.Content != "<p><strong>Error:</strong> Not connected</p>" {
		t.Errorf("last = %+v", last)
	}
}

func TestBusyRejectsSecondSubmit(t *testing.T) {
	h := newHarness(t)
	h.connect("alice", "sales")

	h.typeText("first")
	h.key(tea.KeyEnter) // response not delivered
	h.typeText("second")
	h.key(tea.KeyEnter)

	if h.m.chatInput.Value() != "second" {
		t.Errorf("input = %q, want kept", h.m.chatInput.Value())
	}
	if h.m.StatusMessage() != hintBusy {
		t.Errorf("status = %q", h.m.StatusMessage())
	}
}

func TestQuerySuggestionsLiveFilter(t *testing.T) {
	h := newHarness(t)
	h.store.Record(history.Queries, "List all Customers")
	h.store.Record(history.Queries, "total revenue")
	h.connect("alice", "sales")

	h.typeText("tom")
	ctrl := h.m.suggesters[FieldChat]
	if !ctrl.Visible() || len(ctrl.Items()) != 1 || ctrl.Items()[0] != "List all Customers" {
		t.Fatalf("items = %v visible=%v", ctrl.Items(), ctrl.Visible())
	}

	h.key(tea.KeyDown)
	h.key(tea.KeyEnter)
	if h.m.chatInput.Value() != "List all Customers" {
		t.Errorf("input = %q", h.m.chatInput.Value())
	}
	if ctrl.Visible() {
		t.Error("panel should hide after selection")
	}
	if len(h.backend.asked) != 0 {
		t.Error("accepting a suggestion must not send")
	}
}

func TestUsernameSuggestionAccept(t *testing.T) {
	h := newHarness(t)
	h.store.Record(history.Usernames, "alice")
	h.key(tea.KeyCtrlO)
	h.focusField(FieldUsername)

	ctrl := h.m.suggesters[FieldUsername]
	if !ctrl.Visible() {
		t.Fatal("focus should reveal saved usernames")
	}
	h.key(tea.KeyDown)
	h.key(tea.KeyEnter)
	if h.m.Form().Username() != "alice" {
		t.Errorf("username = %q", h.m.Form().Username())
	}
	if len(h.backend.connects) != 0 {
		t.Error("accepting a suggestion must not connect")
	}

	// Moving to another field dismisses the panel
	h.key(tea.KeyCtrlAt)
	if !ctrl.Visible() {
		t.Fatal("reveal key should show the list")
	}
	h.key(tea.KeyTab)
	if ctrl.Visible() {
		t.Error("panel stayed open after focus moved")
	}
}

func TestEscClosesInnermostFirst(t *testing.T) {
	h := newHarness(t)
	h.store.Record(history.DBNames, "sales")
	h.key(tea.KeyCtrlO)
	h.focusField(FieldDatabase)
	if !h.m.suggesters[FieldDatabase].Visible() {
		t.Fatal("panel should be open")
	}

	h.key(tea.KeyEsc)
	if h.m.suggesters[FieldDatabase].Visible() || !h.m.Form().Visible() {
		t.Fatal("first esc should only close the panel")
	}
	h.key(tea.KeyEsc)
	if h.m.Form().Visible() {
		t.Error("second esc should close the form")
	}
}

func TestCopyFeedback(t *testing.T) {
	h := newHarness(t)
	h.connect("alice", "sales")
	h.typeText("revenue")
	h.deliver(h.key(tea.KeyEnter))

	h.key(tea.KeyCtrlB)
	if h.m.Mode() != BrowseMode {
		t.Fatal("expected browse mode")
	}
	write := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	msgs := h.m.Session().Messages()
	last := msgs[len(msgs)-1]
	if last.CopyLabel != chat.CopyLabel {
		t.Errorf("label changed before the write finished: %q", last.CopyLabel)
	}

	revert := h.send(write())
	if len(h.copied) != 1 || h.copied[0] != "Total revenue is 42" {
		t.Fatalf("copied = %q", h.copied)
	}
	msgs = h.m.Session().Messages()
	if msgs[len(msgs)-1].CopyLabel != chat.CopiedLabel {
		t.Errorf("label = %q", msgs[len(msgs)-1].CopyLabel)
	}
	if revert == nil {
		t.Fatal("no revert scheduled after a successful copy")
	}

	h.send(CopyRevertMsg{MessageID: last.ID, Token: 1})
	msgs = h.m.Session().Messages()
	if msgs[len(msgs)-1].CopyLabel != chat.CopyLabel {
		t.Errorf("label after revert = %q", msgs[len(msgs)-1].CopyLabel)
	}

	h.key(tea.KeyEsc)
	if h.m.Mode() != ChatMode {
		t.Error("esc should leave browse mode")
	}
}

func TestCopyFailureKeepsLabel(t *testing.T) {
	h := newHarness(t)
	h.connect("alice", "sales")
	h.typeText("revenue")
	h.deliver(h.key(tea.KeyEnter))
	h.clipErr = errors.New("no clipboard")

	h.key(tea.KeyCtrlB)
	write := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if revert := h.send(write()); revert != nil {
		t.Error("revert scheduled after a failed copy")
	}

	msgs := h.m.Session().Messages()
	if got := msgs[len(msgs)-1].CopyLabel; got != chat.CopyLabel {
		t.Errorf("label = %q, want %q", got, chat.CopyLabel)
	}
	if !strings.Contains(h.m.ErrorMessage(), "no clipboard") {
		t.Errorf("error = %q", h.m.ErrorMessage())
	}
}

func TestReplyScrollsIntoView(t *testing.T) {
	h := newHarness(t)
	h.connect("alice", "sales")
	var reply strings.Builder
	for i := 0; i < 60; i++ {
		reply.WriteString("<p>row of the answer</p>")
	}
	h.backend.chatReply = reply.String()

	h.typeText("show total revenue")
	h.deliver(h.key(tea.KeyEnter))

	if h.m.viewport.TotalLineCount() <= h.m.viewport.Height {
		t.Fatalf("reply fits the viewport (%d lines), nothing to scroll", h.m.viewport.TotalLineCount())
	}
	if !h.m.viewport.AtBottom() {
		t.Errorf("reply not scrolled into view: yoff=%d total=%d height=%d",
			h.m.viewport.YOffset, h.m.viewport.TotalLineCount(), h.m.viewport.Height)
	}
}

func TestFormEnterSubmitsTypedValue(t *testing.T) {
	h := newHarness(t)
	h.store.Record(history.Usernames, "bob")
	h.store.Record(history.DBNames, "olddb")

	h.key(tea.KeyCtrlO)
	h.focusField(FieldUsername)
	h.typeText("alice")
	h.focusField(FieldDatabase)
	if !h.m.suggesters[FieldDatabase].Visible() {
		t.Fatal("focus should reveal saved database names")
	}
	h.typeText("sales")
	h.deliver(h.key(tea.KeyEnter))

	if len(h.backend.connects) != 1 {
		t.Fatalf("connect calls = %d", len(h.backend.connects))
	}
	got := h.backend.connects[0]
	if got.Username != "alice" || got.Database != "sales" {
		t.Errorf("submitted %s/%s, want alice/sales", got.Username, got.Database)
	}
	if d := h.store.List(history.DBNames); d[0] != "sales" {
		t.Errorf("dbnames = %v", d)
	}
}

func TestChatEnterSubmitsTypedValue(t *testing.T) {
	h := newHarness(t)
	h.store.Record(history.Queries, "show total revenue by month")
	h.connect("alice", "sales")

	h.typeText("total revenue")
	if !h.m.suggesters[FieldChat].Visible() {
		t.Fatal("typing should reveal the matching query")
	}
	h.deliver(h.key(tea.KeyEnter))

	if len(h.backend.asked) != 1 || h.backend.asked[0] != "total revenue" {
		t.Errorf("asked = %q", h.backend.asked)
	}
}

func TestConnectRemembersProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.RememberProfiles = true

	h := newHarnessWithConfig(t, cfg)
	h.connect("alice", "sales")
	if !h.m.Session().Ready() {
		t.Fatal("connect did not succeed")
	}

	saved, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := saved.GetProfile("alice@localhost/sales"); err != nil {
		t.Errorf("profile not persisted: %v (have %v)", err, saved.ListProfiles())
	}
}

func TestThemeToggle(t *testing.T) {
	h := newHarness(t)
	if h.m.Theme() != config.Dark {
		t.Fatalf("theme = %s", h.m.Theme())
	}
	h.key(tea.KeyCtrlT)
	if h.m.Theme() != config.Light {
		t.Errorf("theme = %s, want light", h.m.Theme())
	}
	h.key(tea.KeyCtrlT)
	if h.m.Theme() != config.Dark {
		t.Errorf("theme = %s, want dark", h.m.Theme())
	}
}

func TestPrefillOpensForm(t *testing.T) {
	m, err := NewModel(Options{
		Backend: &fakeBackend{},
		Prefill: &connect.Config{Engine: connect.PostgreSQL, Host: "db", Username: "carol", Database: "hr"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !m.Form().Visible() {
		t.Fatal("prefill should open the form")
	}
	if m.inputs[FieldUsername].Value() != "carol" || m.inputs[FieldPort].Value() != "5432" || m.inputs[FieldHost].Value() != "db" {
		t.Errorf("inputs not synced: user=%q host=%q port=%q",
			m.inputs[FieldUsername].Value(), m.inputs[FieldHost].Value(), m.inputs[FieldPort].Value())
	}
}

func TestViewRenders(t *testing.T) {
	h := newHarness(t)
	if v := h.m.View(); v == "" {
		t.Fatal("empty view")
	}
	h.key(tea.KeyCtrlO)
	h.key(tea.KeyF1)
	if v := h.m.View(); v == "" {
		t.Fatal("empty view with popups")
	}
}
