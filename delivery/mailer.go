package delivery

import (
	"fmt"
	"io"
	"log"

	"github.com/go-gomail/gomail"
)

type Conf struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	User string `json:"user"`
	PW   string `json:"pw"`
	From string `json:"from"`
	// PrintShop is the default recipient for finished jobs.
	PrintShop string `json:"print_shop"`
	Enabled   bool   `json:"enabled"`
}

// Mailer sends finished sheet PDFs to the print shop.
type Mailer struct {
	Conf *Conf
}

func NewMailer(conf *Conf) *Mailer {
	return &Mailer{Conf: conf}
}

// SendPDF mails one generated document as an attachment. An empty
// recipient falls back to the configured print shop.
func (m *Mailer) SendPDF(to string, subject string, filename string, pdf []byte) error {
	if !m.Conf.Enabled {
		return fmt.Errorf("mail delivery disabled")
	}
	if to == "" {
		to = m.Conf.PrintShop
	}
	if to == "" {
		return fmt.Errorf("no recipient configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.Conf.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", "Print-ready sheets attached.<br>")
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	dialer := gomail.NewDialer(m.Conf.Host, m.Conf.Port, m.Conf.User, m.Conf.PW)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending to %s: %w", to, err)
	}
	log.Printf("[INFO][delivery] sent %q to %s (%d bytes)", filename, to, len(pdf))
	return nil
}
