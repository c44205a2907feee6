package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultHubURL = "http://localhost:3536"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringUsername step = iota
	stepEnteringPassword
	stepRegistering
	stepVerifying
	stepComplete
)

type model struct {
	step         step
	hubURL       string
	username     string
	password     string
	currentInput string
	message      string
	quitting     bool
}

type registerSuccessMsg struct{}
type loginSuccessMsg struct{ token string }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	hubURL := os.Getenv("HUB_URL")
	if hubURL == "" {
		hubURL = defaultHubURL
	}
	return model{
		step:   stepEnteringUsername,
		hubURL: hubURL,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func registerAccount(hubURL, username, password string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"username": username,
			"password": password,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", hubURL+"/api/v1/auth/register", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("could not reach the hub at %s: %w", hubURL, err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			var result map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
				if msg, ok := result["error"].(string); ok {
					return errMsg{fmt.Errorf("registration failed: %s", msg)}
				}
			}
			return errMsg{fmt.Errorf("registration failed with status %d", resp.StatusCode)}
		}

		return registerSuccessMsg{}
	}
}

func verifyLogin(hubURL, username, password string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"username": username,
			"password": password,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", hubURL+"/api/v1/auth/login", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("login check failed: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("login check failed with status %d", resp.StatusCode)}
		}

		var result struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.AccessToken == "" {
			return errMsg{fmt.Errorf("login check returned no token")}
		}

		return loginSuccessMsg{token: result.AccessToken}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			switch m.step {
			case stepEnteringUsername:
				if strings.TrimSpace(m.currentInput) == "" {
					m.message = "username must not be empty"
					return m, nil
				}
				m.username = strings.TrimSpace(m.currentInput)
				m.currentInput = ""
				m.message = ""
				m.step = stepEnteringPassword
				return m, nil

			case stepEnteringPassword:
				if m.currentInput == "" {
					m.message = "password must not be empty"
					return m, nil
				}
				m.password = m.currentInput
				m.currentInput = ""
				m.message = ""
				m.step = stepRegistering
				return m, registerAccount(m.hubURL, m.username, m.password)

			case stepComplete:
				m.quitting = true
				return m, tea.Quit
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}
			return m, nil

		default:
			if m.step == stepEnteringUsername || m.step == stepEnteringPassword {
				if len(msg.String()) == 1 {
					m.currentInput += msg.String()
				}
			}
			return m, nil
		}

	case registerSuccessMsg:
		m.step = stepVerifying
		return m, verifyLogin(m.hubURL, m.username, m.password)

	case loginSuccessMsg:
		m.step = stepComplete
		m.message = ""
		return m, nil

	case errMsg:
		m.message = msg.Error()
		m.currentInput = ""
		m.step = stepEnteringUsername
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Device Hub — account setup"))
	b.WriteString("\n\n")

	switch m.step {
	case stepEnteringUsername:
		b.WriteString(promptStyle.Render("Username: "))
		b.WriteString(inputStyle.Render(m.currentInput))
		b.WriteString("_\n")

	case stepEnteringPassword:
		b.WriteString(promptStyle.Render("Password: "))
		b.WriteString(inputStyle.Render(strings.Repeat("*", len(m.currentInput))))
		b.WriteString("_\n")

	case stepRegistering:
		b.WriteString("Registering account...\n")

	case stepVerifying:
		b.WriteString("Verifying login...\n")

	case stepComplete:
		b.WriteString(successStyle.Render(fmt.Sprintf("Account %q is ready.", m.username)))
		b.WriteString("\n\nPress enter to exit.\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n(esc to quit)\n")
	return b.String()
}

func main() {
	if _, err := tea.NewProgram(initialModel()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
