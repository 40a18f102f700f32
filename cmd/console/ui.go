package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/scene-engine/internal/game"
	"github.com/jwebster45206/scene-engine/internal/storage"
	"github.com/jwebster45206/scene-engine/pkg/adventure"
	"github.com/jwebster45206/scene-engine/pkg/scene"
)

const PlaceHolderText = "What do you do?"

type entryRole int

const (
	roleScene entryRole = iota
	roleOutput
	roleUser
	roleError
	roleSystem
)

type entry struct {
	role entryRole
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	store  storage.Storage
	logger *slog.Logger

	sess       *game.Session
	adv        *adventure.Adventure
	history    []entry
	transcript viewport.Model
	meta       viewport.Model
	textarea   textarea.Model
	ready      bool
	width      int
	height     int
	err        error

	// Adventure selection state
	showAdventureModal bool
	adventures         []*adventure.Adventure
	selectedAdventure  int

	// Quit confirmation state
	showQuitModal bool
}

var (
	transcriptPanelStyle = lipgloss.NewStyle().
				PaddingTop(2).
				PaddingBottom(1).
				PaddingLeft(3).
				PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	sceneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var titleCaser = cases.Title(language.English)

func NewConsoleUI(store storage.Storage, logger *slog.Logger) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render("> ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		store:      store,
		logger:     logger,
		textarea:   ta,
		transcript: vp,
		meta:       viewport.New(20, 20),
	}
}

// WithAdventures shows the selection modal for the given adventures.
func (m ConsoleUI) WithAdventures(adventures []*adventure.Adventure) ConsoleUI {
	m.adventures = adventures
	m.showAdventureModal = true
	return m
}

// WithSession starts the UI on an already-running session, skipping
// the selection modal. adv may be nil when no about file is involved.
func (m ConsoleUI) WithSession(sess *game.Session, adv *adventure.Adventure) ConsoleUI {
	m.sess = sess
	m.adv = adv
	m.showAdventureModal = false
	m.history = []entry{{role: roleScene, text: strings.TrimRight(sess.Scene().Description(), "\n")}}
	return m
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m *ConsoleUI) layout() {
	transcriptWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - transcriptWidth - 6

	m.transcript.Width = transcriptWidth - 2
	m.transcript.Height = m.height - 7
	m.meta.Width = metaWidth - 2
	m.meta.Height = m.height - 4
	m.textarea.SetWidth(transcriptWidth - 4)
}

// writeTranscript rebuilds the transcript viewport from history for
// the current width.
func (m *ConsoleUI) writeTranscript() {
	width := m.transcript.Width - 6
	if width < 10 {
		width = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("SCENE ENGINE") + "\n\n")
	if m.adv != nil {
		content.WriteString("Starting adventure: " + m.adv.String() + "\n\n")
	}
	content.WriteString(separatorStyle.Render(strings.Repeat("─", width)) + "\n\n")

	for _, e := range m.history {
		wrapped := wordwrap.String(e.text, width)
		switch e.role {
		case roleScene:
			content.WriteString(sceneStyle.Render(wrapped) + "\n\n")
		case roleOutput:
			content.WriteString(wrapped + "\n\n")
		case roleUser:
			content.WriteString(userStyle.Render("> "+wrapped) + "\n\n")
		case roleError:
			content.WriteString(errorStyle.Render(wrapped) + "\n\n")
		case roleSystem:
			content.WriteString(systemStyle.Render(wrapped) + "\n\n")
		}
	}

	m.transcript.SetContent(content.String())
	m.transcript.GotoBottom()
}

// plainTranscript renders the history without styling, for /copy.
func (m *ConsoleUI) plainTranscript() string {
	var sb strings.Builder
	for _, e := range m.history {
		if e.role == roleUser {
			sb.WriteString("> ")
		}
		sb.WriteString(e.text + "\n")
	}
	return sb.String()
}

// sceneTitle formats a scene file name for the meta panel, e.g.
// cuddle_cat.scene -> Cuddle Cat.
func sceneTitle(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), scene.Ext)
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

func (m *ConsoleUI) writeMetadata() {
	var content strings.Builder
	content.WriteString(titleStyle.Render("ADVENTURE") + "\n\n")

	if m.adv != nil {
		content.WriteString(m.adv.Name + "\n")
		content.WriteString("by " + m.adv.Author + "\n\n")
	}

	if m.sess != nil {
		content.WriteString("Scene:\n")
		content.WriteString(sceneTitle(m.sess.Scene().Path()) + "\n\n")

		content.WriteString("Actions:\n")
		content.WriteString(fmt.Sprintf("%d available\n\n", len(m.sess.Scene().Actions())))

		if m.store != nil {
			content.WriteString("Session:\n")
			content.WriteString(m.sess.ID.String()[:8] + "...\n\n")
		}
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /look: Description\n")
	content.WriteString("• /copy: Copy transcript\n")

	m.meta.SetContent(content.String())
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showAdventureModal {
		return m.updateAdventureModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.transcript, vpCmd = m.transcript.Update(msg)
		m.meta, mvCmd = m.meta.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.writeTranscript()
		m.writeMetadata()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			m.textarea.Reset()

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}
			return m.handleInput(input)
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.transcript, vpCmd = m.transcript.Update(msg)
	m.meta, mvCmd = m.meta.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m ConsoleUI) handleInput(input string) (tea.Model, tea.Cmd) {
	m.history = append(m.history, entry{role: roleUser, text: input})

	res, err := m.sess.Step(context.Background(), input)
	switch {
	case err != nil:
		// A failed transition keeps the current scene live.
		m.history = append(m.history, entry{role: roleError, text: fmt.Sprintf("Error: %v", err)})
	case res.SceneChanged:
		m.history = append(m.history, entry{role: roleScene, text: strings.TrimRight(res.Text, "\n")})
	case res.Text != "":
		m.history = append(m.history, entry{role: roleOutput, text: res.Text})
	}

	m.writeTranscript()
	m.writeMetadata()
	return m, nil
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/help":
		m.history = append(m.history, entry{role: roleSystem, text: helpText})

	case "/look":
		m.history = append(m.history, entry{
			role: roleScene,
			text: strings.TrimRight(m.sess.Scene().Description(), "\n"),
		})

	case "/copy":
		if err := clipboard.WriteAll(m.plainTranscript()); err != nil {
			m.history = append(m.history, entry{role: roleError, text: fmt.Sprintf("Copy failed: %v", err)})
		} else {
			m.history = append(m.history, entry{role: roleSystem, text: "Transcript copied to clipboard."})
		}

	default:
		m.history = append(m.history, entry{role: roleSystem, text: "Unknown command. Try /help."})
	}

	m.writeTranscript()
	return m, nil
}

const helpText = `Commands:
• /help - Show this help
• /look - Show the scene description again
• /copy - Copy the transcript to the clipboard
• Ctrl+C - Quit

How to play:
• Type an action and press Enter
• Matching input prints text or moves you to a new scene
• Input that matches nothing is silently ignored`

func (m ConsoleUI) updateAdventureModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedAdventure > 0 {
				m.selectedAdventure--
			}
		case tea.KeyDown:
			if m.selectedAdventure < len(m.adventures)-1 {
				m.selectedAdventure++
			}
		case tea.KeyEnter:
			if len(m.adventures) == 0 {
				return m, nil
			}
			a := m.adventures[m.selectedAdventure]
			sc, err := a.Start()
			if err != nil {
				m.err = err
				return m, nil
			}
			m = m.WithSession(game.New(sc, m.store, m.logger), a)
			if m.width > 0 && m.height > 0 {
				m.layout()
				m.ready = true
			}
			m.writeTranscript()
			m.writeMetadata()
			m.textarea.Focus()
			return m, textarea.Blink
		}
	}

	return m, nil
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if !m.showAdventureModal {
					m.textarea.Focus()
					return m, textarea.Blink
				}
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderAdventureModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	if m.err != nil {
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(m.err.Error()))
		content.WriteString("\n\n")
		content.WriteString(promptStyle.Render("Press Ctrl+C to exit"))
	} else {
		content.WriteString(modalTitleStyle.Render("Select an Adventure"))
		content.WriteString("\n\n")
		for i, a := range m.adventures {
			if i == m.selectedAdventure {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", a)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", a)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showAdventureModal {
		return m.renderAdventureModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	transcriptWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - transcriptWidth - 6

	transcriptPanel := transcriptPanelStyle.Width(transcriptWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.transcript.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", transcriptWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.meta.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, transcriptPanel, metaPanel)
}
