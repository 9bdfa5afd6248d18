// Package whatsapp builds wa.me deep-links that open a chat with a
// pre-filled message.
package whatsapp

import (
	"net/url"
	"strings"
)

var numberCleaner = strings.NewReplacer("+", "", " ", "", "-", "")

// BuildLink maps a phone number and free-text message to a canonical
// wa.me deep-link. The number may carry a leading "+", spaces, or
// hyphens; the link path is digits only. The message is percent-encoded
// for the query component with spaces as %20.
func BuildLink(number, message string) string {
	digits := numberCleaner.Replace(number)
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + encoded
}
