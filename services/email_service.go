package services

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// convertHTMLToText converts HTML content to plain text for email sending
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		// If parsing fails, return the original content
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			// Add line breaks for block elements
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			case "table", "tr":
				text.WriteString("\n")
			case "td", "th":
				text.WriteString(" | ")
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}

	extractText(doc)

	result := text.String()
	result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	result = strings.TrimSpace(result)

	return result
}

// PaymentReceipt is the data rendered into the payment confirmation email.
type PaymentReceipt struct {
	Email         string
	CustomerName  string
	Reference     string
	OrderCode     string
	Price         int64
	ServiceFee    int64
	PaymentAmount int64
	Deposit       bool
	PaidAt        time.Time
}

// EmailService sends transactional email for the marketplace.
type EmailService struct {
	host     string
	port     string
	from     string
	password string
}

// NewEmailService creates a new email service from SMTP_* environment variables.
func NewEmailService() *EmailService {
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		from:     os.Getenv("SMTP_FROM"),
		password: os.Getenv("SMTP_PASSWORD"),
	}
}

// SendPaymentReceipt emails a payment confirmation to the school account.
func (es *EmailService) SendPaymentReceipt(receipt PaymentReceipt) error {
	kind := "Full payment"
	if receipt.Deposit {
		kind = "Deposit payment"
	}

	subject := fmt.Sprintf("%s received - %s", kind, receipt.Reference)

	htmlBody := fmt.Sprintf(`
		<h2>%s received</h2>
		<p>Dear %s,</p>
		<p>We have received your payment for order %s.</p>
		<table>
			<tr><td>Reference</td><td>%s</td></tr>
			<tr><td>Order price</td><td>%s</td></tr>
			<tr><td>Service fee</td><td>%s</td></tr>
			<tr><td>Amount paid</td><td>%s</td></tr>
			<tr><td>Paid at</td><td>%s</td></tr>
		</table>
		<p>Thank you for using our platform.</p>`,
		kind, receipt.CustomerName, receipt.OrderCode, receipt.Reference,
		FormatVND(receipt.Price), FormatVND(receipt.ServiceFee),
		FormatVND(receipt.PaymentAmount), receipt.PaidAt.Format("02/01/2006 15:04"))

	// Convert HTML body to plain text for email sending
	plainTextBody := convertHTMLToText(htmlBody)

	return es.sendEmail(receipt.Email, subject, plainTextBody)
}

// sendEmail sends an email using SMTP
func (es *EmailService) sendEmail(to, subject, body string) error {
	if es.host == "" || es.from == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	auth := smtp.PlainAuth("", es.from, es.password, es.host)

	headers := []string{
		"From: " + es.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}

	msg := []byte(strings.Join(headers, "\r\n") + "\r\n")

	err := smtp.SendMail(es.host+":"+es.port, auth, es.from, []string{to}, msg)
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
