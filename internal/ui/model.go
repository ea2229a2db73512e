package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cone-one/ragchat/internal/adapter/utils"
)

type section int

const (
	sectionChat section = iota
	sectionIngestURL
	sectionIngestPDF
)

var sectionNames = map[section]string{
	sectionChat:      "Chat",
	sectionIngestURL: "RAG Ingestion Web",
	sectionIngestPDF: "RAG Ingestion PDF",
}

type message struct {
	role    string
	content string
}

// Backend is the UI-facing subset of the API client.
type Backend interface {
	Invoke(query string, chatID string) (string, error)
	IngestURL(url string) (string, error)
	IngestPDF(filename string, content []byte) (string, error)
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	backend  Backend
	chatID   string
	section  section
	input    textinput.Model
	viewport viewport.Model
	messages []message
	status   string
	ready    bool
}

func New(backend Backend) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type your message..."
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		backend:  backend,
		chatID:   utils.GetNewUUID(),
		input:    ti,
		viewport: vp,
		status:   "Tab switches sections. Enter sends.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frameH := transcriptStyle.GetFrameSize()
		reserved := 5 + frameH //header, section line, input, status, spacer
		height := msg.Height - reserved
		if height < 3 {
			height = 3
		}
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = height
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			m.section = (m.section + 1) % 3
			m.status = sectionNames[m.section]
			m.input.SetValue("")
			m.input.Placeholder = placeholderFor(m.section)
			return m, nil
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil
			}
			m.input.SetValue("")
			return m.submit(value)
		}
	case answerMsg:
		m.messages = append(m.messages, message{role: "assistant", content: msg.content})
		m.status = sectionNames[m.section]
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case ingestDoneMsg:
		m.status = msg.status
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// answerMsg delivers the assistant reply of an /invoke round trip.
type answerMsg struct {
	content string
}

// ingestDoneMsg delivers the outcome of an ingestion request.
type ingestDoneMsg struct {
	status string
}

// submit kicks the backend call off as a command so the event loop stays
// responsive while the server works.
func (m Model) submit(value string) (Model, tea.Cmd) {
	switch m.section {
	case sectionChat:
		m.messages = append(m.messages, message{role: "user", content: value})
		m.status = "Waiting for the assistant..."
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, invokeCmd(m.backend, value, m.chatID)
	case sectionIngestURL:
		m.status = "Ingesting " + value + "..."
		return m, ingestURLCmd(m.backend, value)
	case sectionIngestPDF:
		m.status = "Uploading " + value + "..."
		return m, ingestPDFCmd(m.backend, value)
	}
	return m, nil
}

func invokeCmd(backend Backend, query string, chatID string) tea.Cmd {
	return func() tea.Msg {
		content, err := backend.Invoke(query, chatID)
		if err != nil {
			content = "Failed to get a response from the AI: " + err.Error()
		}
		return answerMsg{content: content}
	}
}

func ingestURLCmd(backend Backend, url string) tea.Cmd {
	return func() tea.Msg {
		result, err := backend.IngestURL(url)
		if err != nil {
			return ingestDoneMsg{status: "Error: " + err.Error()}
		}
		return ingestDoneMsg{status: result}
	}
}

func ingestPDFCmd(backend Backend, path string) tea.Cmd {
	return func() tea.Msg {
		content, err := os.ReadFile(path)
		if err != nil {
			return ingestDoneMsg{status: "Could not read file: " + err.Error()}
		}
		result, err := backend.IngestPDF(filepath.Base(path), content)
		if err != nil {
			return ingestDoneMsg{status: "Error: " + err.Error()}
		}
		return ingestDoneMsg{status: result}
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("C-One Chatbot")
	sectionLine := sectionStyle.Render(sectionNames[m.section])
	transcript := transcriptStyle.Render(m.viewport.View())
	input := m.input.View()
	status := statusStyle.Render(m.status)
	return header + "\n" + sectionLine + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if m.section != sectionChat {
		return fmt.Sprintf("%s\n\n%s", sectionNames[m.section], helpFor(m.section))
	}
	if len(m.messages) == 0 {
		return "No messages yet. Ask something."
	}
	var b strings.Builder
	for _, msg := range m.messages {
		if msg.role == "user" {
			b.WriteString(userStyle.Render("You: ") + msg.content + "\n\n")
		} else {
			b.WriteString(botStyle.Render("Assistant: ") + msg.content + "\n\n")
		}
	}
	return b.String()
}

func placeholderFor(s section) string {
	switch s {
	case sectionIngestURL:
		return "Enter the document URL..."
	case sectionIngestPDF:
		return "Path to a PDF file..."
	default:
		return "Type your message..."
	}
}

func helpFor(s section) string {
	switch s {
	case sectionIngestURL:
		return "Enter a URL below and press Enter to ingest its content."
	case sectionIngestPDF:
		return "Enter the path of a PDF (or docx/txt) file below and press Enter to upload it."
	default:
		return ""
	}
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	sectionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	botStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)
