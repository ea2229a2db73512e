package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var errTest = errors.New("backend unreachable")

type fakeBackend struct {
	invoke    func(query string, chatID string) (string, error)
	ingestURL func(url string) (string, error)
	ingestPDF func(filename string, content []byte) (string, error)
}

func (f *fakeBackend) Invoke(query string, chatID string) (string, error) {
	return f.invoke(query, chatID)
}

func (f *fakeBackend) IngestURL(url string) (string, error) {
	return f.ingestURL(url)
}

func (f *fakeBackend) IngestPDF(filename string, content []byte) (string, error) {
	return f.ingestPDF(filename, content)
}

func readyModel(backend Backend) Model {
	m := New(backend)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func pressEnter(t *testing.T, m Model, value string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(value)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestChatSubmitDoesNotBlockTheEventLoop(t *testing.T) {
	called := false
	backend := &fakeBackend{
		invoke: func(query string, chatID string) (string, error) {
			called = true
			if query != "what is up?" {
				t.Errorf("query = %q", query)
			}
			return "hello back", nil
		},
	}

	m, cmd := pressEnter(t, readyModel(backend), "what is up?")

	// Update must only record the user turn and hand back a command, the
	// backend call itself happens when the runtime executes it.
	if cmd == nil {
		t.Fatal("expected a command for the backend round trip")
	}
	if called {
		t.Fatal("backend was called inside Update")
	}
	if len(m.messages) != 1 || m.messages[0].role != "user" {
		t.Fatalf("transcript after submit = %+v", m.messages)
	}

	msg := cmd()
	if !called {
		t.Fatal("executing the command did not call the backend")
	}
	updated, _ := m.Update(msg)
	m = updated.(Model)
	if len(m.messages) != 2 || m.messages[1].content != "hello back" {
		t.Fatalf("transcript after reply = %+v", m.messages)
	}
}

func TestChatSubmitSurfacesBackendError(t *testing.T) {
	backend := &fakeBackend{
		invoke: func(query string, chatID string) (string, error) {
			return "", errTest
		},
	}

	m, cmd := pressEnter(t, readyModel(backend), "anything")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	last := m.messages[len(m.messages)-1]
	if last.role != "assistant" || !strings.Contains(last.content, "Failed to get a response") {
		t.Fatalf("last message = %+v", last)
	}
}

func TestIngestURLSubmitReportsResult(t *testing.T) {
	backend := &fakeBackend{
		ingestURL: func(url string) (string, error) {
			if url != "https://example.com" {
				t.Errorf("url = %q", url)
			}
			return "ingested fine", nil
		},
	}

	m := readyModel(backend)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)

	m, cmd := pressEnter(t, m, "https://example.com")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if m.status != "ingested fine" {
		t.Errorf("status = %q", m.status)
	}
}
