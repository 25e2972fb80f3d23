package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

const (
	contactSubject    = "Nouveau message du Portfolio"
	maxNameLength     = 50
	maxMessageLength  = 1000
	absorbedSpamReply = "Message reçu."
)

// Same shape check as the client side: no whitespace, one @, a dot in the
// domain. Intentionally loose, the mail server has the final word.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactRequest is the contact form body as it arrives on the wire.
// websiteHoneypot is an invisible field on the form; humans leave it empty.
type ContactRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Message         string `json:"message"`
	WebsiteHoneypot string `json:"websiteHoneypot"`
}

// ContactMessage is what actually gets mailed once validation passed.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// SendReceipt is the mailer's response payload, returned verbatim to the
// caller on success.
type SendReceipt struct {
	Accepted  bool      `json:"accepted"`
	Recipient string    `json:"recipient"`
	SentAt    time.Time `json:"sent_at"`
}

// Mailer delivers a contact message. The SMTP implementation lives in
// mailer.go; tests substitute a spy.
type Mailer interface {
	Send(ctx context.Context, msg ContactMessage) (*SendReceipt, error)
}

// validateContact applies the server-side rules in order and returns the
// first error message, or "" when the request is valid. Required fields
// first, then length caps.
func validateContact(req ContactRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "Le nom est requis."
	}
	if !emailPattern.MatchString(req.Email) {
		return "Email invalide."
	}
	if strings.TrimSpace(req.Message) == "" {
		return "Le message est requis."
	}
	if utf8.RuneCountInString(req.Name) > maxNameLength {
		return "Trop de caractères dans le champ 'Prénom & Nom'"
	}
	if utf8.RuneCountInString(req.Message) > maxMessageLength {
		return "Trop de caractères dans le champ 'Message'"
	}
	return ""
}

// renderContactEmail formats the mail body: three labeled lines, the
// message on its own lines so multi-line submissions stay readable.
func renderContactEmail(msg ContactMessage) string {
	return fmt.Sprintf("Nom : %s\r\nEmail : %s\r\nMessage :\r\n%s\r\n", msg.Name, msg.Email, msg.Message)
}

// contactHandler is the authoritative gatekeeper in front of the mailer.
// It never trusts client-side validation and performs no side effect until
// every check has passed. Dispatch is attempted exactly once.
func contactHandler(mailer Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("Contact: unreadable request body: %v", err)
			recordContactOutcome(outcomeFailed)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errorOrGeneric(err)})
			return
		}

		// Honeypot first. Bots get a success-shaped answer so they cannot
		// tell the trap apart from a real submission; no mail is sent.
		if strings.TrimSpace(req.WebsiteHoneypot) != "" {
			log.Printf("Contact: spam absorbed via honeypot from %s", c.ClientIP())
			recordContactOutcome(outcomeAbsorbed)
			c.JSON(http.StatusOK, gin.H{"success": true, "message": absorbedSpamReply})
			return
		}

		if errMsg := validateContact(req); errMsg != "" {
			recordContactOutcome(outcomeRejected)
			c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
			return
		}

		receipt, err := mailer.Send(c.Request.Context(), ContactMessage{
			Name:    req.Name,
			Email:   req.Email,
			Message: req.Message,
		})
		if err != nil {
			log.Printf("Contact: delivery failed: %v", err)
			recordContactOutcome(outcomeFailed)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errorOrGeneric(err)})
			return
		}

		recordContactOutcome(outcomeSent)
		c.JSON(http.StatusOK, receipt)
	}
}

func errorOrGeneric(err error) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return "Erreur interne"
}
