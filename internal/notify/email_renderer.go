package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// RenderedMessage is an email body pair: HTML plus a plain text fallback.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

// rankingRenderer renders the daily report as an HTML email with a plain
// text alternative.
type rankingRenderer struct {
	tmpl *template.Template
}

func newRankingRenderer() *rankingRenderer {
	t := template.Must(template.New("ranking").Parse(rankingHTMLTemplate))
	return &rankingRenderer{tmpl: t}
}

func (r *rankingRenderer) render(report Report) (*RenderedMessage, error) {
	date := report.Date.Format("2006-01-02")
	subject := fmt.Sprintf("브랜드 랭킹 Top10 — %s", date)

	var htmlBuf bytes.Buffer
	data := struct {
		Date       string
		Entries    []Entry
		Commentary []string
	}{Date: date, Entries: report.Entries, Commentary: report.Commentary}
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    renderPlainText(report, date),
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces a readable version for email clients that don't
// support HTML.
func renderPlainText(report Report, date string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("올리브영 데일리 브랜드 랭킹 Top10 — %s (KST)\n", date))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	sb.WriteString(formatLines(report.Entries) + "\n")

	if len(report.Commentary) > 0 {
		sb.WriteString("\nHIGHLIGHTS\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		sb.WriteString(formatBulletList(report.Commentary) + "\n")
	}

	return sb.String()
}
