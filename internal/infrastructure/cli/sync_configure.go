package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/burndown/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/burndown/pkg/domain/board"
)

// Default fields offered for a fresh board configuration. The Trello
// plugin reads these keys; custom plugins can add their own with Ctrl+A.
var defaultBoardFields = []string{"api_key", "token", "board_id", "todo_list_id", "done_list_id"}

// Sensitive field names that should be masked while typing.
var sensitiveFields = map[string]bool{
	"token":     true,
	"api_token": true,
	"api_key":   true,
	"password":  true,
	"secret":    true,
}

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	noStyle      = lipgloss.NewStyle()

	configureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1).
				MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			MarginTop(1)
)

type configureModel struct {
	inputs      []textinput.Model
	labels      []string
	focusIndex  int
	editing     bool
	done        bool
	cancelled   bool
	err         error
	configStart int // index where config fields start; inputs[0] is the binary path
}

func newConfigureModel(existing *board.Config) configureModel {
	m := configureModel{editing: existing != nil && existing.Binary != ""}

	var inputs []textinput.Model
	var labels []string

	binaryInput := textinput.New()
	binaryInput.Placeholder = "./burndown-plugin-trello"
	binaryInput.CharLimit = 200
	binaryInput.Width = 40
	if existing != nil {
		binaryInput.SetValue(existing.Binary)
	}
	inputs = append(inputs, binaryInput)
	labels = append(labels, "Binary Path")

	m.configStart = len(inputs)

	fields := defaultBoardFields
	if existing != nil && len(existing.Config) > 0 {
		fields = make([]string, 0, len(existing.Config))
		for k := range existing.Config {
			fields = append(fields, k)
		}
		sort.Strings(fields)
	}

	for _, field := range fields {
		input := textinput.New()
		input.Placeholder = fmt.Sprintf("Enter %s", field)
		input.CharLimit = 200
		input.Width = 40

		if sensitiveFields[field] {
			input.EchoMode = textinput.EchoPassword
		}

		if existing != nil {
			if val, ok := existing.Config[field]; ok {
				input.SetValue(val)
			}
		}

		inputs = append(inputs, input)
		labels = append(labels, formatLabel(field))
	}

	inputs[0].Focus()
	inputs[0].PromptStyle = focusedStyle
	inputs[0].TextStyle = focusedStyle

	m.inputs = inputs
	m.labels = labels

	return m
}

func formatLabel(field string) string {
	// Convert snake_case to Title Case
	parts := strings.Split(field, "_")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (m configureModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m configureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "tab", "down":
			m.focusIndex++
			if m.focusIndex >= len(m.inputs) {
				m.focusIndex = 0
			}
			return m, m.updateFocus()

		case "shift+tab", "up":
			m.focusIndex--
			if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs) - 1
			}
			return m, m.updateFocus()

		case "enter":
			if m.focusIndex == len(m.inputs)-1 {
				if err := m.validate(); err != nil {
					m.err = err
					return m, nil
				}
				m.done = true
				return m, tea.Quit
			}
			m.focusIndex++
			return m, m.updateFocus()

		case "ctrl+a":
			return m, m.addConfigField()

		case "ctrl+d":
			if m.focusIndex >= m.configStart && len(m.inputs) > m.configStart {
				return m, m.deleteCurrentField()
			}
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *configureModel) updateFocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
		} else {
			m.inputs[i].Blur()
			m.inputs[i].PromptStyle = noStyle
			m.inputs[i].TextStyle = noStyle
		}
	}
	return tea.Batch(cmds...)
}

func (m *configureModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m *configureModel) addConfigField() tea.Cmd {
	input := textinput.New()
	input.Placeholder = "field_name=value"
	input.CharLimit = 200
	input.Width = 40

	m.inputs = append(m.inputs, input)
	m.labels = append(m.labels, "New Field")
	m.focusIndex = len(m.inputs) - 1

	return m.updateFocus()
}

func (m *configureModel) deleteCurrentField() tea.Cmd {
	if m.focusIndex < m.configStart {
		return nil
	}

	m.inputs = append(m.inputs[:m.focusIndex], m.inputs[m.focusIndex+1:]...)
	m.labels = append(m.labels[:m.focusIndex], m.labels[m.focusIndex+1:]...)

	if m.focusIndex >= len(m.inputs) {
		m.focusIndex = len(m.inputs) - 1
	}

	return m.updateFocus()
}

func (m configureModel) validate() error {
	if strings.TrimSpace(m.inputs[0].Value()) == "" {
		return fmt.Errorf("binary path is required")
	}
	return nil
}

func (m configureModel) View() string {
	var b strings.Builder

	title := "Configure Board Plugin"
	if m.editing {
		title = "Edit Board Plugin Configuration"
	}
	b.WriteString(configureTitleStyle.Render(title))
	b.WriteString("\n\n")

	for i, input := range m.inputs {
		label := m.labels[i]
		if i == m.focusIndex {
			b.WriteString(focusedStyle.Render(fmt.Sprintf("› %s:", label)))
		} else {
			b.WriteString(blurredStyle.Render(fmt.Sprintf("  %s:", label)))
		}
		b.WriteString("\n")
		b.WriteString("  ")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	help := "[Tab/↓] Next • [Shift+Tab/↑] Previous • [Enter] Save • [Ctrl+A] Add Field • [Ctrl+D] Delete Field • [Esc] Cancel"
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m configureModel) getConfig() *board.Config {
	config := make(map[string]string)
	for i := m.configStart; i < len(m.inputs); i++ {
		label := m.labels[i]
		value := strings.TrimSpace(m.inputs[i].Value())

		// Convert label back to snake_case for the config key
		key := strings.ToLower(strings.ReplaceAll(label, " ", "_"))

		// "New Field" entries carry their own key in field_name=value form
		if label == "New Field" && strings.Contains(value, "=") {
			parts := strings.SplitN(value, "=", 2)
			key = strings.TrimSpace(parts[0])
			value = strings.TrimSpace(parts[1])
		}

		if value != "" {
			config[key] = value
		}
	}

	return &board.Config{
		Binary: strings.TrimSpace(m.inputs[0].Value()),
		Config: config,
	}
}

var syncConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure the board plugin interactively",
	Long: `Configure the board plugin using an interactive TUI.

The TUI will guide you through setting up:
  - Binary path (path to the plugin executable)
  - Configuration values (API keys, board and list identifiers)

Sensitive values such as tokens are masked while typing. The
configuration is saved to .burndown/board.yaml.`,
	Example: `  # Configure the Trello plugin
  burndown sync configure`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		services := wiring.BuildAppServices(cwd)

		m := newConfigureModel(storedBoardConfig(services))
		p := tea.NewProgram(m)

		finalModel, err := p.Run()
		if err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}

		final := finalModel.(configureModel)
		if final.cancelled {
			fmt.Println("Cancelled.")
			return nil
		}
		if !final.done {
			return nil
		}

		cfg := final.getConfig()
		if err := services.Workspace.Repo.SaveBoardConfig(cfg); err != nil {
			return MapError(err)
		}
		fmt.Printf("Board plugin configured (%s)\n", cfg.Binary)
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncConfigureCmd)
}
