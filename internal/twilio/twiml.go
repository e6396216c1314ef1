// Package twilio holds the thin Twilio collaborator pieces: the TwiML
// reply envelope for inbound webhooks and a minimal REST client used to
// validate the messaging credential.
package twilio

import "encoding/xml"

// MessagingResponse is the TwiML envelope Twilio expects back from a
// message webhook.
type MessagingResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// Reply wraps the orchestrator's text in a TwiML message envelope.
func Reply(body string) ([]byte, error) {
	out, err := xml.Marshal(MessagingResponse{Message: body})
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
