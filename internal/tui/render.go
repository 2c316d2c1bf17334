package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vadiminshakov/dopewars/internal/domain"
	"github.com/vadiminshakov/dopewars/internal/services/market"
)

const logo = `
 ____   ___  ____  _____  __        ___    ____  ____
|  _ \ / _ \|  _ \| ____| \ \      / / \  |  _ \/ ___|
| | | | | | | |_) |  _|    \ \ /\ / / _ \ | |_) \___ \
| |_| | |_| |  __/| |___    \ V  V / ___ \|  _ < ___) |
|____/ \___/|_|   |_____|    \_/\_/_/   \_\_| \_\____/
`

// Status the header panel shown above every play screen.
type Status struct {
	Day         int
	Days        int
	City        string
	Cash        int
	Weapon      string
	Bank        string
	BankBalance int
	Store       string
}

// RenderLogo returns the title banner.
func RenderLogo() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(strings.Trim(logo, "\n")),
		subtleStyle.Render("Remember 10th grade math? Neither do I, because of this game."),
	)
}

// RenderStatus renders day, city, cash and what the city offers besides drugs.
func RenderStatus(s Status) string {
	lines := []string{
		fmt.Sprintf("Day %d of %d", s.Day, s.Days),
		s.City,
		"Cash: " + domain.FormatMoney(s.Cash),
	}
	if s.Weapon != "" {
		lines = append(lines, "Carrying: "+s.Weapon)
	}
	if s.Bank != "" {
		lines = append(lines, fmt.Sprintf("Bank: %s (%s on deposit)", s.Bank, domain.FormatMoney(s.BankBalance)))
	}
	if s.Store != "" {
		lines = append(lines, "Store: "+s.Store)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// RenderInventory lists held lines in the order they were acquired.
func RenderInventory(lines []domain.InventoryLine) string {
	if len(lines) == 0 {
		return stepStyle.Render("Inventory") + "\n" + subtleStyle.Render("(empty)")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Commodity", "Qty")
	for _, l := range lines {
		t.Row(l.Name, fmt.Sprintf("%d", l.Quantity))
	}
	return stepStyle.Render("Inventory") + "\n" + t.Render()
}

// RenderOffers lists today's offers with their price trend.
func RenderOffers(offers []domain.Commodity, trend func(name string) market.Trend) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Commodity", "Price", "Available", "Trend")
	for i, c := range offers {
		tr := market.TrendUnknown
		if trend != nil {
			tr = trend(c.Name)
		}
		t.Row(fmt.Sprintf("%d", i+1), c.Name, domain.FormatMoney(c.Price), fmt.Sprintf("%d", c.Quantity), trendLabel(tr))
	}
	return stepStyle.Render("Today's market") + "\n" + t.Render()
}

func trendLabel(t market.Trend) string {
	switch t {
	case market.TrendCheap:
		return "cheap"
	case market.TrendDear:
		return "dear"
	case market.TrendFlat:
		return "steady"
	default:
		return "-"
	}
}

// RenderEncounter renders the splash shown before the play menu.
func RenderEncounter(out domain.EncounterOutcome) string {
	if !out.Happened() {
		return ""
	}
	if out.EndsGame {
		return alertStyle.Render(out.Message)
	}
	if out.Defended {
		return boxStyle.BorderForeground(special).Render(out.Message)
	}
	return boxStyle.BorderForeground(danger).Render(out.Message)
}

// RenderScores renders the high score table.
func RenderScores(records []domain.ScoreRecord) string {
	if len(records) == 0 {
		return stepStyle.Render("High scores") + "\n" + subtleStyle.Render("No scores yet. Go make some money.")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Name", "Score", "Days")
	for i, r := range records {
		t.Row(fmt.Sprintf("%d", i+1), r.Name, domain.FormatMoney(r.Score), fmt.Sprintf("%d", r.Turns))
	}
	return stepStyle.Render("High scores") + "\n" + t.Render()
}

// RenderFinal renders the game over screen.
func RenderFinal(reason string, day, score int) string {
	var headline string
	switch reason {
	case "busted":
		headline = fmt.Sprintf("Busted on day %d.", day)
	case "quit":
		headline = fmt.Sprintf("You walked away on day %d.", day)
	default:
		headline = fmt.Sprintf("Day %d is over. Time to retire.", day)
	}
	return boxStyle.Render(headline + "\nFinal score: " + domain.FormatMoney(score) +
		"\n" + subtleStyle.Render("Only money in the bank counts."))
}

// RenderEvents renders the most recent journal entries, newest last.
func RenderEvents(records []domain.GameEventRecord, limit int) string {
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}
	if len(records) == 0 {
		return subtleStyle.Render("Nothing happened yet.")
	}

	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, r.Event.String())
	}
	return stepStyle.Render("Recent events") + "\n" + strings.Join(lines, "\n")
}

// RenderError renders a recoverable error.
func RenderError(err error) string {
	return errStyle.Render(err.Error())
}

// RenderOK renders a success message.
func RenderOK(msg string) string {
	return okStyle.Render(msg)
}
