package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// FormatDigest renders the dashboard summary as a short Slack message.
func FormatDigest(stats DashboardStats) string {
	var b strings.Builder
	b.WriteString("*Resumo de Monitorias — QualityMind*\n")
	b.WriteString(fmt.Sprintf("Auditorias avaliadas: %d\n", stats.Total))
	b.WriteString(fmt.Sprintf("Média de score: %d pts (compliance %s)\n", stats.AvgScore, stats.ComplianceLevel))
	b.WriteString(fmt.Sprintf("Conforme: %d | Não conforme: %d | Falhas graves (NCG): %d", stats.Conforme, stats.NaoConforme, stats.Ncg))
	if stats.Ncg > 0 {
		b.WriteString("\n:warning: Há falhas graves no período. Verifique o histórico.")
	}
	return b.String()
}

// StartDigestScheduler starts a cron-based scheduler that periodically
// posts the dashboard summary to Slack and writes an .xlsx export.
// The schedule is a standard 5-field cron expression (minute hour
// day-of-month month day-of-week), e.g. "0 18 * * 1-5" (weekdays 6pm).
func StartDigestScheduler(cfg Config, app *App, notifier *SlackNotifier) {
	schedule := strings.TrimSpace(cfg.DigestSchedule)
	if schedule == "" {
		log.Println("Digest disabled (digest_schedule not set)")
		return
	}
	if notifier == nil {
		log.Println("Digest disabled: Slack is not configured")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid digest_schedule '%s': %v — digest disabled", schedule, err)
		return
	}
	log.Printf("Digest scheduled (cron: %s)", schedule)

	go func() {
		for {
			now := time.Now().In(cfg.Location)
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next digest at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			stats := app.DashboardStats()
			notifier.PostDigest(FormatDigest(stats))

			path, exportErr := ExportWorkbook(app.Interactions(), stats, cfg.ExportDir)
			if exportErr != nil {
				log.Printf("Digest export error: %v", exportErr)
				continue
			}
			log.Printf("Digest complete, export written to %s", path)
		}
	}()
}
