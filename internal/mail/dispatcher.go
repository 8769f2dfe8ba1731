package mail

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Dispatcher sends account emails without blocking the caller. A failed
// delivery is logged; it never fails the request that triggered it.
type Dispatcher struct {
	sender Sender
	logger *logrus.Logger
}

func NewDispatcher(sender Sender, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, logger: logger}
}

func (d *Dispatcher) send(to, subject, body string) {
	go func() {
		if err := d.sender.Send(to, subject, body); err != nil {
			d.logger.WithError(err).WithFields(logrus.Fields{
				"to":      to,
				"subject": subject,
			}).Error("send mail")
			return
		}
		d.logger.WithField("to", to).Debug("mail sent")
	}()
}

// SendWelcome dispatches the post-registration welcome mail.
func (d *Dispatcher) SendWelcome(to string) {
	body := fmt.Sprintf(`
		<p>Welcome to myTODO!</p>
		<p>Your account has been created with the email <b>%s</b>.</p>
		<p>Verify your email from the account page to finish setting up.</p>
	`, to)
	d.send(to, "Welcome to myTODO! Your Account is Ready", body)
}

// SendVerifyOTP dispatches an email verification code.
func (d *Dispatcher) SendVerifyOTP(to, code string) {
	body := fmt.Sprintf(`
		<p>Use the code below to verify the email <b>%s</b>:</p>
		<h2>%s</h2>
		<p>The code expires in 24 hours.</p>
	`, to, code)
	d.send(to, "Verification OTP", body)
}

// SendResetOTP dispatches a password reset code.
func (d *Dispatcher) SendResetOTP(to, code string) {
	body := fmt.Sprintf(`
		<p>Use the code below to reset the password for <b>%s</b>:</p>
		<h2>%s</h2>
		<p>The code expires in 15 minutes. If you did not request a reset you
		can ignore this email.</p>
	`, to, code)
	d.send(to, "Password Reset OTP", body)
}
