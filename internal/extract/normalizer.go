package extract

import (
	"bytes"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/jhillyerd/enmime"
	"github.com/k3a/html2text"

	"orderintake/internal/domain"
)

// NormalizedEmail is the output of normalization: clean body text plus
// whatever header metadata the message carried.
type NormalizedEmail struct {
	Body    string
	Sender  string
	Subject string
	// ReceivedAt anchors relative date expressions. It is the message's
	// Date header when present, otherwise the upload time.
	ReceivedAt time.Time
}

var onWroteRe = regexp.MustCompile(`^On .+ wrote:\s*$`)

// Normalize turns raw uploaded bytes into clean text plus header
// metadata. It never fabricates content: an empty body is returned as
// such for txt, and only a MIME message with no locatable text body
// fails with domain.ErrMalformedMessage.
func Normalize(raw []byte, format domain.SourceFormat, now time.Time) (*NormalizedEmail, error) {
	switch format {
	case domain.FormatTXT:
		return &NormalizedEmail{
			Body:       strings.TrimSpace(string(raw)),
			ReceivedAt: now,
		}, nil
	case domain.FormatEML:
		return normalizeEML(raw, now)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

func normalizeEML(raw []byte, now time.Time) (*NormalizedEmail, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedMessage, err)
	}

	// Prefer the text/plain part; fall back to stripped HTML.
	body := env.Text
	if strings.TrimSpace(body) == "" && strings.TrimSpace(env.HTML) != "" {
		body = html2text.HTML2Text(env.HTML)
	}
	body = stripReplyChain(body)
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: no text body part", domain.ErrMalformedMessage)
	}

	out := &NormalizedEmail{
		Body:       body,
		Subject:    strings.TrimSpace(env.GetHeader("Subject")),
		ReceivedAt: now,
	}
	if from := env.GetHeader("From"); from != "" {
		if addr, err := mail.ParseAddress(from); err == nil {
			out.Sender = addr.Address
		}
	}
	if date := env.GetHeader("Date"); date != "" {
		if t, err := mail.ParseDate(date); err == nil {
			out.ReceivedAt = t
		}
	}
	return out, nil
}

// stripReplyChain drops everything below a "-- " signature delimiter
// and removes quoted-reply lines.
func stripReplyChain(body string) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimRight(line, "\r")
		if trimmed == "--" || trimmed == "-- " {
			break
		}
		if strings.HasPrefix(strings.TrimSpace(trimmed), ">") {
			continue
		}
		if onWroteRe.MatchString(strings.TrimSpace(trimmed)) {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
