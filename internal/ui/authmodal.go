package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/roostlabs/roost/internal/authflow"
)

// Field indices into authModel.inputs.
const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCount
)

// authModel holds the text inputs and OTP entry backing the auth dialog.
// The flow itself owns step transitions; this mirrors just enough to lay
// out focus.
type authModel struct {
	step     authflow.Step
	inputs   [fieldCount]textinput.Model
	focus    int
	otp      authflow.OTP
	localErr string
}

func newAuthModel() authModel {
	a := authModel{step: authflow.StepSignIn}

	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 64
		ti.Width = 32
		return ti
	}
	a.inputs[fieldFirstName] = mk("First name")
	a.inputs[fieldLastName] = mk("Last name")
	a.inputs[fieldEmail] = mk("Email")
	a.inputs[fieldPassword] = mk("Password")
	a.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	a.inputs[fieldPassword].EchoCharacter = '•'
	a.inputs[fieldConfirm] = mk("Confirm password")
	a.inputs[fieldConfirm].EchoMode = textinput.EchoPassword
	a.inputs[fieldConfirm].EchoCharacter = '•'

	a.applyFocus()
	return a
}

// activeFields returns the input indices the current step shows, in order.
func (a authModel) activeFields() []int {
	switch a.step {
	case authflow.StepSignUp:
		return []int{fieldFirstName, fieldLastName, fieldEmail, fieldPassword, fieldConfirm}
	case authflow.StepForgotPassword:
		return []int{fieldEmail}
	case authflow.StepNewPassword:
		return []int{fieldPassword, fieldConfirm}
	case authflow.StepVerifyCode:
		return nil
	default:
		return []int{fieldEmail, fieldPassword}
	}
}

func (a *authModel) setStep(step authflow.Step) {
	if a.step == step {
		return
	}
	a.step = step
	a.focus = 0
	a.localErr = ""
	a.otp.Clear()
	// Passwords never survive a step change.
	a.inputs[fieldPassword].SetValue("")
	a.inputs[fieldConfirm].SetValue("")
	a.applyFocus()
}

func (a *authModel) applyFocus() {
	fields := a.activeFields()
	for i := range a.inputs {
		a.inputs[i].Blur()
	}
	if a.focus >= 0 && a.focus < len(fields) {
		a.inputs[fields[a.focus]].Focus()
	}
}

func (a *authModel) moveFocus(delta int) {
	fields := a.activeFields()
	if len(fields) == 0 {
		return
	}
	a.focus = (a.focus + delta + len(fields)) % len(fields)
	a.applyFocus()
}

// handleAuthKey processes keys while the auth modal is open.
func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.flow.Step()
	m.auth.setStep(step)

	if msg.String() == "esc" {
		if step == authflow.StepSignIn {
			m.flow.Reset()
			m.auth = newAuthModel()
			m.views.CloseAuthModal()
			return m, snapshotCmd(m.collect)
		}
		m.flow.Back()
		m.auth.setStep(authflow.StepSignIn)
		return m, nil
	}

	if m.flow.Loading() {
		return m, nil
	}

	if step == authflow.StepVerifyCode {
		return m.handleVerifyKey(msg)
	}

	switch msg.String() {
	case "tab", "down":
		m.auth.moveFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.auth.moveFocus(-1)
		return m, nil

	case "ctrl+n":
		if step == authflow.StepSignIn {
			m.flow.GoTo(authflow.StepSignUp)
			m.auth.setStep(authflow.StepSignUp)
		}
		return m, nil

	case "ctrl+f":
		if step == authflow.StepSignIn {
			m.flow.GoTo(authflow.StepForgotPassword)
			m.auth.setStep(authflow.StepForgotPassword)
		}
		return m, nil

	case "enter":
		fields := m.auth.activeFields()
		if m.auth.focus < len(fields)-1 {
			m.auth.moveFocus(1)
			return m, nil
		}
		return m.submitAuth(step)
	}

	// Route everything else to the focused input.
	fields := m.auth.activeFields()
	if m.auth.focus < len(fields) {
		idx := fields[m.auth.focus]
		var cmd tea.Cmd
		m.auth.inputs[idx], cmd = m.auth.inputs[idx].Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleVerifyKey drives the six-slot code entry.
func (m Model) handleVerifyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "backspace":
		m.auth.otp.Backspace()
		return m, nil

	case "ctrl+r":
		if m.flow.CanResend() {
			return m, resendCodeCmd(m.ctx, m.flow)
		}
		return m, nil

	case "enter":
		if m.auth.otp.Filled() {
			return m.submitAuth(authflow.StepVerifyCode)
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		// A multi-rune key event is a paste; a full code submits itself.
		if len(msg.Runes) == authflow.OTPLength {
			if m.auth.otp.Paste(string(msg.Runes)) {
				return m.submitAuth(authflow.StepVerifyCode)
			}
			return m, nil
		}
		for _, r := range msg.Runes {
			if m.auth.otp.Type(r) {
				return m.submitAuth(authflow.StepVerifyCode)
			}
		}
	}
	return m, nil
}

// submitAuth pushes the entered fields into the flow and dispatches the
// step's backend call.
func (m Model) submitAuth(step authflow.Step) (tea.Model, tea.Cmd) {
	m.auth.localErr = ""

	email := strings.TrimSpace(m.auth.inputs[fieldEmail].Value())
	password := m.auth.inputs[fieldPassword].Value()
	confirm := m.auth.inputs[fieldConfirm].Value()
	first := strings.TrimSpace(m.auth.inputs[fieldFirstName].Value())
	last := strings.TrimSpace(m.auth.inputs[fieldLastName].Value())

	switch step {
	case authflow.StepSignIn:
		if email == "" || password == "" {
			m.auth.localErr = "Email and password are required"
			return m, nil
		}
	case authflow.StepSignUp:
		if first == "" || email == "" {
			m.auth.localErr = "Name and email are required"
			return m, nil
		}
		if password != confirm {
			m.auth.localErr = "Passwords do not match"
			return m, nil
		}
		if len(password) < 6 {
			m.auth.localErr = "Password must be at least 6 characters"
			return m, nil
		}
	case authflow.StepForgotPassword:
		if email == "" {
			m.auth.localErr = "Enter the account email"
			return m, nil
		}
	}

	m.flow.SetField(func(f *authflow.FormData) {
		f.Email = email
		f.FirstName = first
		f.LastName = last
		if step != authflow.StepVerifyCode {
			f.Password = password
			f.ConfirmPassword = confirm
		}
	})

	code := m.auth.otp.Code()
	return m, authSubmitCmd(m.ctx, m.flow, step, code, password, confirm)
}

// authSubmitCmd runs the flow's backend call for one step off the UI loop.
func authSubmitCmd(ctx context.Context, flow *authflow.Flow, step authflow.Step, code, password, confirm string) tea.Cmd {
	return func() tea.Msg {
		signUp := flow.IsSignUpFlow()
		var ok bool
		switch step {
		case authflow.StepSignIn:
			ok = flow.SignIn(ctx)
		case authflow.StepSignUp:
			ok = flow.SignUp(ctx)
		case authflow.StepForgotPassword:
			ok = flow.ForgotPassword(ctx)
		case authflow.StepVerifyCode:
			ok = flow.VerifyCode(ctx, code)
		case authflow.StepNewPassword:
			ok = flow.NewPassword(ctx, password, confirm)
		}
		completed := ok && (step == authflow.StepSignIn || (step == authflow.StepVerifyCode && signUp))
		return authDoneMsg{completed: completed}
	}
}

func resendCodeCmd(ctx context.Context, flow *authflow.Flow) tea.Cmd {
	return func() tea.Msg {
		flow.ResendCode(ctx)
		return authDoneMsg{}
	}
}

// renderAuthModal renders the centered auth dialog for the current step.
func (m Model) renderAuthModal() string {
	styles := m.theme.Styles()
	step := m.flow.Step()

	var b strings.Builder
	b.WriteString(styles.Title.Render(authTitle(step)))
	b.WriteString("\n\n")

	if step == authflow.StepVerifyCode {
		b.WriteString(m.renderOTP())
	} else {
		labels := map[int]string{
			fieldFirstName: "First name",
			fieldLastName:  "Last name",
			fieldEmail:     "Email",
			fieldPassword:  "Password",
			fieldConfirm:   "Confirm",
		}
		for _, idx := range m.auth.activeFields() {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-11s", labels[idx])))
			b.WriteString(m.auth.inputs[idx].View())
			b.WriteString("\n")
		}
	}

	if step == authflow.StepSignIn && m.api != nil {
		if u := m.api.GoogleLoginURL(); u != "" {
			b.WriteString("\n")
			b.WriteString(styles.MutedText.Render(wrap("Google sign-in (open in a browser): "+u, 44)))
			b.WriteString("\n")
		}
	}

	if err := m.authError(); err != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(wrap(err, 44)))
		b.WriteString("\n")
	}
	if m.flow.Loading() {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Working..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(authHints(step, m.flow)))

	box := styles.Modal.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderOTP draws the six code slots with the focused slot highlighted.
func (m Model) renderOTP() string {
	styles := m.theme.Styles()

	slots := make([]string, 0, authflow.OTPLength)
	for i := 0; i < authflow.OTPLength; i++ {
		d := m.auth.otp.Digit(i)
		if d == "" {
			d = " "
		}
		style := styles.OTPSlot
		if i == m.auth.otp.Focus() {
			style = styles.OTPSlotFocus
		}
		slots = append(slots, style.Render(d))
	}

	var b strings.Builder
	b.WriteString(styles.Text.Render("Enter the 6-digit code sent to your email"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, slots...))
	b.WriteString("\n")
	return b.String()
}

func (m Model) authError() string {
	if m.auth.localErr != "" {
		return m.auth.localErr
	}
	return m.flow.Err()
}

func authTitle(step authflow.Step) string {
	switch step {
	case authflow.StepSignUp:
		return "Create Account"
	case authflow.StepForgotPassword:
		return "Reset Password"
	case authflow.StepVerifyCode:
		return "Verify Email"
	case authflow.StepNewPassword:
		return "New Password"
	default:
		return "Sign In"
	}
}

func authHints(step authflow.Step, flow *authflow.Flow) string {
	switch step {
	case authflow.StepSignIn:
		return "enter submit · ctrl+n sign up · ctrl+f forgot password · esc close"
	case authflow.StepVerifyCode:
		if remaining := flow.ResendRemaining(); remaining > 0 {
			return fmt.Sprintf("enter submit · resend in %ds · esc back", int(remaining.Seconds())+1)
		}
		return "enter submit · ctrl+r resend code · esc back"
	default:
		return "tab next field · enter submit · esc back"
	}
}
