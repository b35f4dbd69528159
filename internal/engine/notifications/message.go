package notifications

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/brunolandim/back-jurix/internal/platform/models"
)

// TypeLabels maps notification types to the pt-BR labels shown in
// messages.
var TypeLabels = map[string]string{
	models.NotificationHearing:  "Audiência",
	models.NotificationDeadline: "Prazo",
	models.NotificationMeeting:  "Reunião",
	models.NotificationTask:     "Tarefa",
	models.NotificationOther:    "Outro",
}

var typeColors = map[string]string{
	models.NotificationHearing:  "#7c3aed",
	models.NotificationDeadline: "#dc2626",
	models.NotificationMeeting:  "#2563eb",
	models.NotificationTask:     "#16a34a",
	models.NotificationOther:    "#6b7280",
}

// TypeLabel resolves the display label for a notification type.
func TypeLabel(notificationType string) string {
	if label, ok := TypeLabels[notificationType]; ok {
		return label
	}
	return "Notificação"
}

var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var saoPaulo = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}()

func formatDatePtBR(epoch int64) string {
	t := time.Unix(epoch, 0).In(saoPaulo)
	return fmt.Sprintf("%02d de %s de %d, %02d:%02d",
		t.Day(), ptMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips formatting and prefixes the Brazilian country code
// when it is missing.
func NormalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if strings.HasPrefix(digits, "55") && len(digits) >= 12 {
		return digits
	}
	return "55" + digits
}

// EmailSubject builds the notification email subject line.
func EmailSubject(n *PendingNotification) string {
	return fmt.Sprintf("%s: %s - Processo %s", TypeLabel(n.Type), n.CaseTitle, n.CaseNumber)
}

// BuildNotificationEmail renders the notification email body.
func BuildNotificationEmail(n *PendingNotification, appURL string) string {
	typeLabel := TypeLabel(n.Type)
	typeColor, ok := typeColors[n.Type]
	if !ok {
		typeColor = "#6b7280"
	}

	messageBlock := ""
	if n.Message != nil && *n.Message != "" {
		messageBlock = fmt.Sprintf(`<p style="margin:0 0 16px;color:#3f3f46;font-size:15px;line-height:1.6;">%s</p>`, *n.Message)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin:0;padding:0;background:#f4f4f5;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background:#f4f4f5;padding:32px 16px;">
    <tr><td align="center">
      <table width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:12px;overflow:hidden;">
        <tr><td style="background:#18181b;padding:24px 32px;">
          <h1 style="margin:0;color:#ffffff;font-size:24px;font-weight:700;">Jurix</h1>
        </td></tr>
        <tr><td style="padding:32px;">
          <span style="display:inline-block;background:%s;color:#ffffff;padding:4px 12px;border-radius:9999px;font-size:13px;font-weight:600;margin-bottom:16px;">
            %s
          </span>
          <h2 style="margin:16px 0 4px;color:#18181b;font-size:20px;">%s</h2>
          <p style="margin:0 0 16px;color:#71717a;font-size:14px;">Processo %s</p>
          %s
          <p style="margin:0 0 24px;color:#71717a;font-size:14px;">%s</p>
          <a href="%s/dashboard" style="display:inline-block;background:#18181b;color:#ffffff;padding:12px 24px;border-radius:8px;text-decoration:none;font-size:14px;font-weight:600;">
            Abrir no Jurix
          </a>
        </td></tr>
        <tr><td style="padding:16px 32px;background:#fafafa;border-top:1px solid #e4e4e7;">
          <p style="margin:0;color:#a1a1aa;font-size:12px;text-align:center;">
            Jurix - Sistema de Gestão Jurídica
          </p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`, typeColor, typeLabel, n.CaseTitle, n.CaseNumber, messageBlock, formatDatePtBR(n.Date), appURL)
}
