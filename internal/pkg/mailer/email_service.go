package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendLowBalanceAlert(toEmail, tenantName string, balance, threshold float64) error
	SendWalletDepletedAlert(toEmail, tenantName string) error
	SendPaymentFailedAlert(toEmail, tenantName, orderId, gatewayStatus string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	consoleURL  string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	consoleURL := os.Getenv("CONSOLE_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		consoleURL:  consoleURL,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}
	return nil
}

func (s *emailService) SendLowBalanceAlert(toEmail, tenantName string, balance, threshold float64) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Low Credit Balance</h2>
			<p>The wallet for <strong>%s</strong> has dropped below its alert threshold.</p>
			<p>Current balance: <strong>%.2f credits</strong> (threshold: %.2f)</p>
			<p>Top up soon to avoid message delivery interruptions.</p>
			<a href="%s/billing" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Top Up Credits</a>
		</div>
	`, tenantName, balance, threshold, s.consoleURL)

	return s.send(toEmail, "Low credit balance for "+tenantName, body)
}

func (s *emailService) SendWalletDepletedAlert(toEmail, tenantName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Credits Exhausted</h2>
			<p>The wallet for <strong>%s</strong> has run out of credits.</p>
			<p>Outbound billable conversations are now blocked until the wallet is topped up.</p>
			<a href="%s/billing" style="background-color: #DC3545; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Top Up Now</a>
		</div>
	`, tenantName, s.consoleURL)

	return s.send(toEmail, "Credits exhausted for "+tenantName, body)
}

func (s *emailService) SendPaymentFailedAlert(toEmail, tenantName, orderId, gatewayStatus string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment Failed</h2>
			<p>A top-up payment for <strong>%s</strong> did not complete.</p>
			<p>Order: <code>%s</code><br/>Gateway status: <strong>%s</strong></p>
			<p>No credits were added. You can retry the purchase from the billing page.</p>
			<a href="%s/billing" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Retry Payment</a>
		</div>
	`, tenantName, orderId, gatewayStatus, s.consoleURL)

	return s.send(toEmail, "Top-up payment failed for "+tenantName, body)
}
