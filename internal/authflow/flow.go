// Package authflow drives the multi-step authentication dialog: sign-in,
// sign-up, forgot-password, verify-code and new-password, with the OTP
// entry model used by the verification step.
package authflow

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/roostlabs/roost/internal/broker"
	"github.com/roostlabs/roost/internal/store"
)

// Step is a state of the authentication dialog.
type Step string

const (
	StepSignIn         Step = "SIGN_IN"
	StepSignUp         Step = "SIGN_UP"
	StepForgotPassword Step = "FORGOT_PASSWORD"
	StepVerifyCode     Step = "VERIFY_CODE"
	StepNewPassword    Step = "NEW_PASSWORD"
)

// FormData buffers everything entered across steps, so the verify step can
// combine sign-up fields with the emailed code.
type FormData struct {
	Email            string
	Password         string
	FirstName        string
	LastName         string
	ConfirmPassword  string
	VerificationCode string
}

// ResendCooldown gates how often the verification code can be re-sent.
const ResendCooldown = 60 * time.Second

// Flow is the authentication state machine. Methods are safe for use from
// the UI loop and the command goroutines it spawns.
//
// Two paths are deliberately tolerant: sending the reset code and
// committing the new password both proceed as success even when the broker
// errors, so the dialog stays usable against a partially implemented
// backend. StrictReset tightens them into ordinary error paths.
type Flow struct {
	mu          sync.Mutex
	api         broker.API
	session     *store.Session
	strictReset bool
	now         func() time.Time
	onSuccess   func()

	step       Step
	form       FormData
	errMsg     string
	loading    bool
	signUpFlow bool
	lastResend time.Time
}

// New builds a flow positioned at the sign-in step. onSuccess runs after a
// completed sign-in or registration, typically to close the modal.
func New(api broker.API, session *store.Session, strictReset bool, onSuccess func()) *Flow {
	return &Flow{
		api:         api,
		session:     session,
		strictReset: strictReset,
		now:         time.Now,
		onSuccess:   onSuccess,
		step:        StepSignIn,
	}
}

// Step returns the current step.
func (f *Flow) Step() Step { f.mu.Lock(); defer f.mu.Unlock(); return f.step }

// Form returns the buffered form data.
func (f *Flow) Form() FormData { f.mu.Lock(); defer f.mu.Unlock(); return f.form }

// Err returns the message to surface on the current step, empty when none.
func (f *Flow) Err() string { f.mu.Lock(); defer f.mu.Unlock(); return f.errMsg }

// Loading reports whether a backend call is in flight.
func (f *Flow) Loading() bool { f.mu.Lock(); defer f.mu.Unlock(); return f.loading }

// IsSignUpFlow reports whether the verify step belongs to sign-up rather
// than password reset.
func (f *Flow) IsSignUpFlow() bool { f.mu.Lock(); defer f.mu.Unlock(); return f.signUpFlow }

// SetField merges a single field edit into the buffered form data.
func (f *Flow) SetField(set func(*FormData)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set(&f.form)
}

// GoTo moves between entry steps without side effects, e.g. sign-in to
// sign-up or to forgot-password.
func (f *Flow) GoTo(step Step) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = step
	f.errMsg = ""
}

// Back returns to sign-in, discarding step-local state but keeping the
// email so the user does not retype it.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	email := f.form.Email
	f.form = FormData{Email: email}
	f.step = StepSignIn
	f.errMsg = ""
	f.signUpFlow = false
}

// Reset restores the initial state. Called when the dialog closes.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepSignIn
	f.form = FormData{}
	f.errMsg = ""
	f.loading = false
	f.signUpFlow = false
}

// SignIn submits the sign-in form. On success the session adopts the user
// and the completion callback fires; on failure the user stays on the
// sign-in step with the error surfaced.
func (f *Flow) SignIn(ctx context.Context) bool {
	form := f.begin()
	user, err := f.api.Login(ctx, form.Email, form.Password)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		f.errMsg = err.Error()
		return false
	}
	f.session.Login(*user)
	f.complete()
	return true
}

// SignUp submits the sign-up form, which sends a verification code to the
// entered email and advances to the verify step flagged as sign-up.
func (f *Flow) SignUp(ctx context.Context) bool {
	form := f.begin()
	err := f.api.SendVerifyCode(ctx, form.Email)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		f.errMsg = err.Error()
		return false
	}
	f.signUpFlow = true
	f.step = StepVerifyCode
	return true
}

// ForgotPassword asks for a reset code and advances to the verify step
// flagged as reset. Without strict mode the step advances even when the
// send fails, to keep the flow available against a partial backend.
func (f *Flow) ForgotPassword(ctx context.Context) bool {
	form := f.begin()
	err := f.api.ForgotPassword(ctx, form.Email)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		if f.strictReset {
			f.errMsg = err.Error()
			return false
		}
		log.Printf("reset-code send failed, proceeding to verify step: %v", err)
	}
	f.signUpFlow = false
	f.step = StepVerifyCode
	return true
}

// VerifyCode submits the emailed code. In the sign-up flow it completes
// registration with the buffered fields and adopts the session; in the
// reset flow it buffers the code and advances to the new-password step.
func (f *Flow) VerifyCode(ctx context.Context, code string) bool {
	f.mu.Lock()
	if code == "" {
		code = f.form.VerificationCode
	}
	if !f.signUpFlow {
		f.errMsg = ""
		f.form.VerificationCode = code
		f.step = StepNewPassword
		f.mu.Unlock()
		return true
	}
	f.errMsg = ""
	f.loading = true
	form := f.form
	f.mu.Unlock()

	user, err := f.api.Register(ctx, broker.RegisterRequest{
		Email:            form.Email,
		Password:         form.Password,
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		VerificationCode: code,
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		f.errMsg = err.Error()
		return false
	}
	f.session.Login(*user)
	f.complete()
	return true
}

// NewPassword validates and commits the new password, then returns to
// sign-in. Validation happens before any network call. Without strict mode
// a backend error still counts as success.
func (f *Flow) NewPassword(ctx context.Context, password, confirm string) bool {
	f.mu.Lock()
	f.errMsg = ""
	if password == "" {
		password = f.form.Password
		confirm = f.form.ConfirmPassword
	}
	if password != confirm {
		f.errMsg = "Passwords do not match"
		f.mu.Unlock()
		return false
	}
	if len(password) < 6 {
		f.errMsg = "Password must be at least 6 characters"
		f.mu.Unlock()
		return false
	}
	f.loading = true
	email := f.form.Email
	code := f.form.VerificationCode
	f.mu.Unlock()

	err := f.api.ResetPassword(ctx, email, code, password)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		if f.strictReset {
			f.errMsg = err.Error()
			return false
		}
		log.Printf("password reset commit failed, returning to sign-in: %v", err)
	}
	f.form.Password = ""
	f.form.ConfirmPassword = ""
	f.step = StepSignIn
	return true
}

// ResendCode re-sends the verification code, subject to the cooldown.
func (f *Flow) ResendCode(ctx context.Context) bool {
	if !f.CanResend() {
		return false
	}
	form := f.begin()
	err := f.api.SendVerifyCode(ctx, form.Email)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		f.errMsg = err.Error()
		return false
	}
	f.lastResend = f.now()
	return true
}

// CanResend reports whether the resend cooldown has elapsed.
func (f *Flow) CanResend() bool {
	return f.ResendRemaining() <= 0
}

// ResendRemaining returns how long until resend is available again.
func (f *Flow) ResendRemaining() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastResend.IsZero() {
		return 0
	}
	remaining := ResendCooldown - f.now().Sub(f.lastResend)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// begin clears the step error, marks a request in flight and snapshots the
// form, all under the lock.
func (f *Flow) begin() FormData {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errMsg = ""
	f.loading = true
	return f.form
}

func (f *Flow) complete() {
	if f.onSuccess != nil {
		f.onSuccess()
	}
}
