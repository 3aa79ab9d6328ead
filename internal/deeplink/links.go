package deeplink

import (
	"net/url"
	"strings"
)

var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent escapes s the way a URI component is escaped in a
// browser: spaces become %20 and !'()*~ are left as is.
func EncodeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}

// Dialable reduces a display phone number to its digits, keeping a leading
// plus sign.
func Dialable(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func Tel(phone string) string {
	return "tel:" + Dialable(phone)
}

func SMS(phone, body string) string {
	link := "sms:" + Dialable(phone)
	if body != "" {
		link += "?body=" + EncodeComponent(body)
	}
	return link
}

// Mailto returns "" when there is no address to write to.
func Mailto(address, subject string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}
	link := "mailto:" + address
	if subject != "" {
		link += "?subject=" + EncodeComponent(subject)
	}
	return link
}

// ContactLinks is the set of ways to reach a driver. Email is empty for
// drivers without an address.
type ContactLinks struct {
	Call  string `json:"call"`
	SMS   string `json:"sms"`
	Email string `json:"email,omitempty"`
}

func Contact(phone, email, smsBody, subject string) ContactLinks {
	return ContactLinks{Call: Tel(phone), SMS: SMS(phone, smsBody), Email: Mailto(email, subject)}
}
