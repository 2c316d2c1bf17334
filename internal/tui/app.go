// Package tui is the terminal front end: menus built with huh forms, panels
// styled with lipgloss.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/dopewars/config"
	"github.com/vadiminshakov/dopewars/internal/domain"
	"github.com/vadiminshakov/dopewars/internal/game"
	"github.com/vadiminshakov/dopewars/internal/storage/scores"
	"github.com/vadiminshakov/dopewars/pkg/dice"
	"go.uber.org/zap"
)

const recentEvents = 8

type action string

const (
	actionNewGame action = "new"
	actionScores  action = "scores"
	actionQuit    action = "quit"

	actionBuy    action = "buy"
	actionSell   action = "sell"
	actionBank   action = "bank"
	actionStore  action = "store"
	actionTravel action = "travel"
	actionEvents action = "events"
)

// Journal is the game journal as seen by the UI.
type Journal interface {
	game.Journal
	GameEvents(gameID string) ([]domain.GameEventRecord, error)
}

// App runs games in the terminal until the player quits.
type App struct {
	conf    config.Config
	scores  scores.Store
	journal Journal
	metrics game.Metrics
	src     dice.Source
	l       *zap.Logger
}

// New creates the terminal app. journal and metrics may be nil.
func New(conf config.Config, store scores.Store, journal Journal, metrics game.Metrics, l *zap.Logger) *App {
	if l == nil {
		l = zap.NewNop()
	}
	return &App{
		conf:    conf,
		scores:  store,
		journal: journal,
		metrics: metrics,
		src:     dice.NewSeeded(conf.Seed),
		l:       l,
	}
}

// Run shows the start menu until the player quits.
func (a *App) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.screen("")
		var choice action
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[action]().
					Title("What would you like to do?").
					Options(
						huh.NewOption("New game", actionNewGame),
						huh.NewOption("High scores", actionScores),
						huh.NewOption("Quit", actionQuit),
					).
					Value(&choice),
			),
		).RunWithContext(ctx)
		if err != nil {
			return quitOnAbort(err)
		}

		switch choice {
		case actionNewGame:
			if err := a.play(ctx); err != nil {
				return err
			}
		case actionScores:
			if err := a.showScores(ctx); err != nil {
				return err
			}
		case actionQuit:
			return nil
		}
	}
}

func quitOnAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

func (a *App) screen(step string) {
	fmt.Print(clearScreen)
	fmt.Println(RenderLogo())
	if step != "" {
		fmt.Println(stepStyle.Render(step))
	}
}

func (a *App) newGame() (*game.Game, error) {
	opts := []game.Option{
		game.WithLogger(a.l),
		game.WithSource(a.src),
	}
	if a.journal != nil {
		opts = append(opts, game.WithJournal(a.journal))
	}
	if a.metrics != nil {
		opts = append(opts, game.WithMetrics(a.metrics))
	}

	return game.New(a.conf.Catalog, game.Settings{
		Days:         a.conf.Days,
		StartingCash: a.conf.StartingCash,
		StartCity:    a.conf.StartCity,
	}, opts...)
}

func (a *App) play(ctx context.Context) error {
	g, err := a.newGame()
	if err != nil {
		return errors.Wrap(err, "create game")
	}

	out, err := g.Start()
	if err != nil {
		return errors.Wrap(err, "start game")
	}
	if err := a.splash(ctx, out); err != nil {
		return err
	}

	for !g.Over() {
		a.screen("")
		fmt.Println(playScreen(g))

		var choice action
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[action]().
					Title("What do you want to do?").
					Options(playOptions(g.City())...).
					Value(&choice),
			),
		).RunWithContext(ctx)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				g.Quit()
				break
			}
			return err
		}

		if err := a.dispatch(ctx, g, choice); err != nil {
			return err
		}
	}

	return a.finish(ctx, g)
}

func (a *App) dispatch(ctx context.Context, g *game.Game, choice action) error {
	switch choice {
	case actionBuy:
		return a.buy(ctx, g)
	case actionSell:
		return a.sell(ctx, g)
	case actionBank:
		return a.bank(ctx, g)
	case actionStore:
		return a.store(ctx, g)
	case actionTravel:
		return a.travel(ctx, g)
	case actionEvents:
		return a.events(ctx, g)
	case actionQuit:
		g.Quit()
	}
	return nil
}

// playScreen is everything shown above the play menu.
func playScreen(g *game.Game) string {
	parts := []string{
		RenderStatus(statusOf(g)),
		RenderInventory(g.Player().Ledger.Lines()),
	}
	if t := g.Turn(); t != nil {
		parts = append(parts, RenderOffers(t.Offers(), g.Trend))
	}
	return strings.Join(parts, "\n")
}

func statusOf(g *game.Game) Status {
	p := g.Player()
	s := Status{
		Day:   g.Day(),
		Days:  g.Days(),
		City:  g.City().Name,
		Cash:  p.Wallet.Balance(),
		Store: g.City().Store,
	}
	if p.Weapon != nil {
		s.Weapon = p.Weapon.Name
	}
	if b := g.Bank(); b != nil {
		s.Bank = b.Name()
		s.BankBalance = b.Balance()
	}
	return s
}

func playOptions(city domain.CitySpec) []huh.Option[action] {
	opts := []huh.Option[action]{
		huh.NewOption("Buy", actionBuy),
		huh.NewOption("Sell", actionSell),
	}
	if city.Bank != "" {
		opts = append(opts, huh.NewOption("Visit "+city.Bank, actionBank))
	}
	if city.Store != "" {
		opts = append(opts, huh.NewOption("Visit "+city.Store, actionStore))
	}
	return append(opts,
		huh.NewOption("Move", actionTravel),
		huh.NewOption("Recent events", actionEvents),
		huh.NewOption("Quit game", actionQuit),
	)
}

// parseAmount reads a positive whole number no larger than limit. A zero limit
// disables the upper bound.
func parseAmount(s string, limit int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(s, ",", "")))
	if err != nil {
		return 0, fmt.Errorf("enter a whole number")
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	if limit > 0 && n > limit {
		return 0, fmt.Errorf("at most %d", limit)
	}
	return n, nil
}

// pause shows msg until the player continues.
func (a *App) pause(ctx context.Context, msg string) error {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(msg).
				Affirmative("Continue").
				Negative("").
				Value(&ok),
		),
	).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

// report shows the result of a player action. Domain errors are recoverable
// and only displayed.
func (a *App) report(ctx context.Context, msg string, err error) error {
	if err != nil {
		a.l.Debug("action rejected", zap.Error(err))
		return a.pause(ctx, RenderError(err))
	}
	return a.pause(ctx, RenderOK(msg))
}

func (a *App) splash(ctx context.Context, out domain.EncounterOutcome) error {
	if !out.Happened() {
		return nil
	}
	a.screen("")
	fmt.Println(RenderEncounter(out))
	return a.pause(ctx, "")
}

func (a *App) buy(ctx context.Context, g *game.Game) error {
	offers := g.Turn().Offers()
	opts := make([]huh.Option[string], 0, len(offers))
	for _, c := range offers {
		label := fmt.Sprintf("%s  %s  (%d available, you can afford %d)",
			c.Name, domain.FormatMoney(c.Price), c.Quantity, g.Turn().MaxAffordable(c.Name))
		opts = append(opts, huh.NewOption(label, c.Name))
	}

	var name, qty string
	a.screen("BUY")
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which do you want to buy?").
				Options(opts...).
				Value(&name),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("How many?").
				Value(&qty).
				Validate(func(s string) error {
					_, err := parseAmount(s, 0)
					return err
				}),
		),
	).RunWithContext(ctx)
	if err != nil {
		return quitOnAbort(err)
	}

	n, _ := parseAmount(qty, 0)
	cost, err := g.Buy(name, n)
	return a.report(ctx, fmt.Sprintf("Bought %d %s for %s.", n, name, domain.FormatMoney(cost)), err)
}

func (a *App) sell(ctx context.Context, g *game.Game) error {
	lines := g.Player().Ledger.Lines()
	if len(lines) == 0 {
		return a.pause(ctx, "You have nothing to sell.")
	}

	opts := make([]huh.Option[string], 0, len(lines))
	for _, l := range lines {
		price := "not wanted here"
		if c, err := g.Turn().Offer(l.Name); err == nil {
			price = domain.FormatMoney(c.Price)
		}
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s  %s  (you hold %d)", l.Name, price, l.Quantity), l.Name))
	}

	var name, qty string
	a.screen("SELL")
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which do you want to sell?").
				Options(opts...).
				Value(&name),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("How many?").
				Value(&qty).
				Validate(func(s string) error {
					_, err := parseAmount(s, g.Player().Ledger.Quantity(name))
					return err
				}),
		),
	).RunWithContext(ctx)
	if err != nil {
		return quitOnAbort(err)
	}

	n, _ := parseAmount(qty, 0)
	proceeds, err := g.Sell(name, n)
	return a.report(ctx, fmt.Sprintf("Sold %d %s for %s.", n, name, domain.FormatMoney(proceeds)), err)
}

func (a *App) bank(ctx context.Context, g *game.Game) error {
	b := g.Bank()
	if b == nil {
		return a.report(ctx, "", game.ErrNoBank)
	}

	var op, amount string
	a.screen("WELCOME TO " + strings.ToUpper(b.Name()))
	fmt.Println(boxStyle.Render(fmt.Sprintf("Balance: %s\nCash: %s\nRate: %s%% per day",
		domain.FormatMoney(b.Balance()), domain.FormatMoney(g.Player().Wallet.Balance()),
		b.InterestRate().Shift(2).String())))
	if !b.HasTakenFirstDeposit() && b.MinimumFirstDeposit() > 0 {
		fmt.Println(subtleStyle.Render("Minimum opening deposit: " + domain.FormatMoney(b.MinimumFirstDeposit())))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What do you want to do?").
				Options(
					huh.NewOption("Deposit", game.OpDeposit),
					huh.NewOption("Withdraw", game.OpWithdraw),
					huh.NewOption("Go back", ""),
				).
				Value(&op),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Value(&amount).
				Validate(func(s string) error {
					_, err := parseAmount(s, 0)
					return err
				}),
		).WithHideFunc(func() bool { return op == "" }),
	).RunWithContext(ctx)
	if err != nil {
		return quitOnAbort(err)
	}

	n, _ := parseAmount(amount, 0)
	switch op {
	case game.OpDeposit:
		res, err := g.Deposit(n)
		return a.report(ctx, fmt.Sprintf("Deposited %s. Balance %s.", domain.FormatMoney(n), domain.FormatMoney(res.Balance)), err)
	case game.OpWithdraw:
		got, err := g.Withdraw(n)
		if err == nil && got == 0 {
			return a.pause(ctx, RenderError(fmt.Errorf("the bank refused: you have %s on deposit", domain.FormatMoney(b.Balance()))))
		}
		return a.report(ctx, fmt.Sprintf("Withdrew %s.", domain.FormatMoney(got)), err)
	}
	return nil
}

func (a *App) store(ctx context.Context, g *game.Game) error {
	weapons := g.StoreWeapons()
	if len(weapons) == 0 {
		return a.report(ctx, "", game.ErrNoStore)
	}

	opts := make([]huh.Option[string], 0, len(weapons)+1)
	for _, w := range weapons {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s  %s", w.Name, domain.FormatMoney(w.Price)), w.Name))
	}
	opts = append(opts, huh.NewOption("Go back", ""))

	var name string
	a.screen(strings.ToUpper(g.City().Store))
	if w := g.Player().Weapon; w != nil {
		fmt.Println(subtleStyle.Render("You are carrying a " + w.Name + ". A new purchase replaces it."))
	}
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What do you want to buy?").
				Options(opts...).
				Value(&name),
		),
	).RunWithContext(ctx)
	if err != nil {
		return quitOnAbort(err)
	}
	if name == "" {
		return nil
	}

	w, err := g.BuyWeapon(name)
	return a.report(ctx, fmt.Sprintf("You bought a %s for %s.", w.Name, domain.FormatMoney(w.Price)), err)
}

func (a *App) travel(ctx context.Context, g *game.Game) error {
	dest := g.Destinations()
	opts := make([]huh.Option[string], 0, len(dest))
	for _, c := range dest {
		opts = append(opts, huh.NewOption(c.String(), c.Name))
	}

	var name string
	a.screen("MOVE")
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Destination").
				Options(opts...).
				Value(&name),
		),
	).RunWithContext(ctx)
	if err != nil {
		return quitOnAbort(err)
	}

	out, err := g.Travel(name)
	if err != nil {
		return a.report(ctx, "", err)
	}
	return a.splash(ctx, out)
}

func (a *App) events(ctx context.Context, g *game.Game) error {
	if a.journal == nil {
		return a.pause(ctx, "No journal is kept for this game.")
	}
	records, err := a.journal.GameEvents(g.ID())
	if err != nil {
		return a.report(ctx, "", err)
	}
	a.screen("")
	fmt.Println(RenderEvents(records, recentEvents))
	return a.pause(ctx, "")
}

func (a *App) finish(ctx context.Context, g *game.Game) error {
	score := g.FinalScore()
	a.screen("GAME OVER")
	fmt.Println(RenderFinal(string(g.EndReason()), g.Day(), score))

	top, err := a.scores.Top(ctx)
	if err != nil {
		a.l.Error("failed to load scores", zap.Error(err))
		return a.pause(ctx, RenderError(err))
	}
	if !domain.NewLeaderboard(top).Qualifies(score) {
		return a.pause(ctx, "Not good enough for the high score table.")
	}

	var name string
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("You made the high score table! Your name?").
				CharLimit(20).
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
		),
	).RunWithContext(ctx)
	if err != nil {
		return quitOnAbort(err)
	}

	top, err = a.scores.Add(ctx, g.ScoreRecord(strings.TrimSpace(name)))
	if err != nil {
		a.l.Error("failed to save score", zap.Error(err))
		return a.pause(ctx, RenderError(err))
	}

	a.screen("")
	fmt.Println(RenderScores(top))
	return a.pause(ctx, "")
}

func (a *App) showScores(ctx context.Context) error {
	top, err := a.scores.Top(ctx)
	if err != nil {
		return errors.Wrap(err, "load scores")
	}
	a.screen("")
	fmt.Println(RenderScores(top))
	return a.pause(ctx, "")
}
