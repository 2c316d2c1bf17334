// Package game drives a whole session: it schedules days, keeps the banks,
// handles travel and stores, and computes the final score.
package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/dopewars/internal/domain"
	"github.com/vadiminshakov/dopewars/internal/services/encounter"
	"github.com/vadiminshakov/dopewars/internal/services/market"
	"github.com/vadiminshakov/dopewars/internal/services/turn"
	"github.com/vadiminshakov/dopewars/pkg/dice"
	"go.uber.org/zap"
)

// EndReason why a game stopped.
type EndReason string

const (
	EndNone     EndReason = ""
	EndFinished EndReason = "finished"
	EndBusted   EndReason = "busted"
	EndQuit     EndReason = "quit"
)

const (
	SideBuy  = "buy"
	SideSell = "sell"

	OpDeposit  = "deposit"
	OpWithdraw = "withdraw"
)

// Journal receives one record per game event.
type Journal interface {
	Append(event domain.GameEvent) (uint64, error)
}

// Metrics observes game activity.
type Metrics interface {
	TradeDone(side, commodity string, qty int)
	EncounterResolved(out domain.EncounterOutcome)
	BankOperation(op string, accepted bool)
	InterestPaid(amount int)
	DayStarted(day int)
	GameFinished(reason string, score int)
}

// Settings per-game parameters.
type Settings struct {
	Days         int
	StartingCash int
	StartCity    string
	PlayerName   string
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.l = l
		}
	}
}

// WithSource sets the random source for offers and encounters.
func WithSource(src dice.Source) Option {
	return func(g *Game) {
		if src != nil {
			g.src = src
		}
	}
}

// WithJournal records every event to j.
func WithJournal(j Journal) Option {
	return func(g *Game) {
		g.journal = j
	}
}

// WithMetrics reports activity to m.
func WithMetrics(m Metrics) Option {
	return func(g *Game) {
		g.metrics = m
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		if now != nil {
			g.now = now
		}
	}
}

// Game one session from day 1 until the last day, a bust or a quit.
type Game struct {
	id       string
	catalog  domain.Catalog
	settings Settings

	player   *domain.Player
	banks    []*domain.Bank
	resolver *encounter.Resolver
	history  *market.History
	trends   map[string]market.Trend
	src      dice.Source

	day    int
	city   domain.CitySpec
	turn   *turn.Turn
	reason EndReason

	journal Journal
	metrics Metrics
	l       *zap.Logger
	now     func() time.Time
}

// New builds a game from a validated catalog. Call Start to begin day 1.
func New(catalog domain.Catalog, settings Settings, opts ...Option) (*Game, error) {
	if err := catalog.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}
	if settings.Days <= 0 {
		return nil, errors.Wrapf(domain.ErrInvalidParameter, "days must be positive, got %d", settings.Days)
	}

	start, ok := catalog.City(settings.StartCity)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCity, "start city %q", settings.StartCity)
	}

	player, err := domain.NewPlayer(settings.PlayerName, settings.StartingCash)
	if err != nil {
		return nil, errors.Wrap(err, "create player")
	}

	g := &Game{
		id:       uuid.NewString(),
		catalog:  catalog,
		settings: settings,
		player:   player,
		history:  market.NewHistory(),
		city:     start,
		l:        zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.src == nil {
		g.src = dice.NewSeeded(0)
	}
	g.l = g.l.With(zap.String("game_id", g.id))

	for _, spec := range catalog.Banks {
		bank, err := domain.NewBank(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "create bank %s", spec.Name)
		}
		g.banks = append(g.banks, bank)
	}

	g.resolver, err = encounter.NewResolver(g.src, catalog.Encounters, g.l)
	if err != nil {
		return nil, errors.Wrap(err, "create encounter resolver")
	}

	return g, nil
}

// Start begins day 1 in the start city and returns its encounter.
func (g *Game) Start() (domain.EncounterOutcome, error) {
	if g.day != 0 {
		return domain.EncounterOutcome{}, errors.New("game already started")
	}
	g.day = 1
	g.l.Info("game started",
		zap.String("city", g.city.Name),
		zap.Int("days", g.settings.Days),
		zap.Int("cash", g.player.Wallet.Balance()))

	return g.startDay()
}

func (g *Game) startDay() (domain.EncounterOutcome, error) {
	t, err := turn.New(g.city.Name, g.player, g.catalog.Commodities, g.resolver, g.src, g.l)
	if err != nil {
		return domain.EncounterOutcome{}, errors.Wrapf(err, "start day %d", g.day)
	}
	g.turn = t

	offers := t.Offers()
	g.trends = make(map[string]market.Trend, len(offers))
	for _, c := range offers {
		g.trends[c.Name] = g.history.Trend(c.Name, c.Price)
	}
	g.history.Record(offers)

	out := t.Outcome()
	g.observe(func(m Metrics) {
		m.DayStarted(g.day)
		m.EncounterResolved(out)
	})
	g.record(domain.GameEvent{
		Kind:    domain.EventDayStart,
		Action:  out.Kind.String(),
		Item:    out.Commodity,
		Amount:  out.Amount,
		Message: out.Message,
	})

	if out.EndsGame {
		g.finish(EndBusted)
	}

	return out, nil
}

// ID unique game identifier.
func (g *Game) ID() string { return g.id }

// Day current day, starting at 1.
func (g *Game) Day() int { return g.day }

// Days total number of days.
func (g *Game) Days() int { return g.settings.Days }

// City current city.
func (g *Game) City() domain.CitySpec { return g.city }

// Player the player.
func (g *Game) Player() *domain.Player { return g.player }

// Turn today's market. Nil before Start.
func (g *Game) Turn() *turn.Turn { return g.turn }

// History offer prices seen so far.
func (g *Game) History() *market.History { return g.history }

// Trend today's price of name against the prices seen on earlier days.
func (g *Game) Trend(name string) market.Trend {
	if t, ok := g.trends[name]; ok {
		return t
	}
	return market.TrendUnknown
}

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.reason != EndNone }

// EndReason why the game ended, empty while running.
func (g *Game) EndReason() EndReason { return g.reason }

// Outcome today's encounter.
func (g *Game) Outcome() domain.EncounterOutcome {
	if g.turn == nil {
		return domain.EncounterOutcome{Kind: domain.EncounterNone}
	}
	return g.turn.Outcome()
}

func (g *Game) active() error {
	if g.Over() {
		return errors.Wrapf(ErrGameOver, "game ended: %s", g.reason)
	}
	if g.turn == nil {
		return errors.New("game not started")
	}
	return nil
}

// Buy purchases from today's offers.
func (g *Game) Buy(name string, qty int) (int, error) {
	if err := g.active(); err != nil {
		return 0, err
	}

	cost, err := g.turn.Buy(name, qty)
	if err != nil {
		return 0, err
	}

	g.observe(func(m Metrics) { m.TradeDone(SideBuy, name, qty) })
	g.record(domain.GameEvent{Kind: domain.EventTrade, Action: SideBuy, Item: name, Quantity: qty, Amount: cost})
	return cost, nil
}

// Sell sells held units at today's price.
func (g *Game) Sell(name string, qty int) (int, error) {
	if err := g.active(); err != nil {
		return 0, err
	}

	proceeds, err := g.turn.Sell(name, qty)
	if err != nil {
		return 0, err
	}

	g.observe(func(m Metrics) { m.TradeDone(SideSell, name, qty) })
	g.record(domain.GameEvent{Kind: domain.EventTrade, Action: SideSell, Item: name, Quantity: qty, Amount: proceeds})
	return proceeds, nil
}

// Bank the bank in the current city, nil when there is none.
func (g *Game) Bank() *domain.Bank {
	if g.city.Bank == "" {
		return nil
	}
	return g.bank(g.city.Bank)
}

func (g *Game) bank(name string) *domain.Bank {
	for _, b := range g.banks {
		if b.Name() == name {
			return b
		}
	}
	return nil
}

// Banks every bank in catalog order.
func (g *Game) Banks() []*domain.Bank {
	return append([]*domain.Bank(nil), g.banks...)
}

// Deposit moves cash from the wallet into the local bank. The wallet is only
// debited when the bank accepts the deposit.
func (g *Game) Deposit(amount int) (domain.DepositResult, error) {
	if err := g.active(); err != nil {
		return domain.DepositResult{}, err
	}
	bank := g.Bank()
	if bank == nil {
		return domain.DepositResult{}, errors.Wrapf(ErrNoBank, "%s", g.city.Name)
	}
	if amount <= 0 {
		return domain.DepositResult{}, errors.Wrapf(domain.ErrInvalidParameter, "deposit amount must be positive, got %d", amount)
	}
	if !g.player.Wallet.CanAfford(amount) {
		return domain.DepositResult{}, errors.Wrapf(domain.ErrInsufficientFunds, "deposit %s, have %s",
			domain.FormatMoney(amount), domain.FormatMoney(g.player.Wallet.Balance()))
	}

	res, err := bank.Deposit(amount)
	if err != nil {
		return domain.DepositResult{}, errors.Wrapf(err, "deposit at %s", bank.Name())
	}
	g.observe(func(m Metrics) { m.BankOperation(OpDeposit, res.Accepted()) })
	if !res.Accepted() {
		g.l.Info("deposit refused", zap.String("bank", bank.Name()), zap.Int("amount", amount), zap.Int("minimum", res.Minimum))
		return res, res.Err()
	}

	if err := g.player.Wallet.Debit(amount); err != nil {
		return res, errors.Wrap(err, "debit wallet for deposit")
	}

	g.l.Info("deposited", zap.String("bank", bank.Name()), zap.Int("amount", amount), zap.Int("balance", res.Balance))
	g.record(domain.GameEvent{Kind: domain.EventBank, Action: OpDeposit, Item: bank.Name(), Amount: amount})
	return res, nil
}

// Withdraw moves money from the local bank into the wallet and returns the
// amount received. Zero means the bank refused.
func (g *Game) Withdraw(amount int) (int, error) {
	if err := g.active(); err != nil {
		return 0, err
	}
	bank := g.Bank()
	if bank == nil {
		return 0, errors.Wrapf(ErrNoBank, "%s", g.city.Name)
	}

	got := bank.Withdraw(amount)
	g.observe(func(m Metrics) { m.BankOperation(OpWithdraw, got > 0) })
	if got == 0 {
		g.l.Info("withdrawal refused", zap.String("bank", bank.Name()), zap.Int("amount", amount), zap.Int("balance", bank.Balance()))
		return 0, nil
	}

	if err := g.player.Wallet.Credit(got); err != nil {
		return 0, errors.Wrap(err, "credit wallet for withdrawal")
	}

	g.l.Info("withdrew", zap.String("bank", bank.Name()), zap.Int("amount", got), zap.Int("balance", bank.Balance()))
	g.record(domain.GameEvent{Kind: domain.EventBank, Action: OpWithdraw, Item: bank.Name(), Amount: got})
	return got, nil
}

// StoreWeapons weapons sold in the current city.
func (g *Game) StoreWeapons() []domain.Weapon {
	out := make([]domain.Weapon, 0, len(g.city.Weapons))
	for _, name := range g.city.Weapons {
		if w, ok := g.catalog.Weapon(name); ok {
			out = append(out, w)
		}
	}
	return out
}

// BuyWeapon buys a weapon from the local store. The new weapon replaces any
// weapon already held.
func (g *Game) BuyWeapon(name string) (domain.Weapon, error) {
	if err := g.active(); err != nil {
		return domain.Weapon{}, err
	}
	if g.city.Store == "" || len(g.city.Weapons) == 0 {
		return domain.Weapon{}, errors.Wrapf(ErrNoStore, "%s", g.city.Name)
	}

	var (
		w     domain.Weapon
		found bool
	)
	for _, candidate := range g.StoreWeapons() {
		if candidate.Name == name {
			w, found = candidate, true
			break
		}
	}
	if !found {
		return domain.Weapon{}, errors.Wrapf(ErrUnknownWeapon, "%s does not sell %q", g.city.Store, name)
	}

	if err := g.player.Wallet.Debit(w.Price); err != nil {
		return domain.Weapon{}, errors.Wrapf(err, "buy %s", w.Name)
	}
	g.player.Arm(w)

	g.l.Info("weapon bought", zap.String("weapon", w.Name), zap.Int("price", w.Price))
	g.record(domain.GameEvent{Kind: domain.EventWeapon, Item: w.Name, Amount: w.Price})
	return w, nil
}

// Destinations cities the player can travel to today.
func (g *Game) Destinations() []domain.CitySpec {
	out := make([]domain.CitySpec, 0, len(g.catalog.Cities))
	for _, c := range g.catalog.Cities {
		if c.Name != g.city.Name {
			out = append(out, c)
		}
	}
	return out
}

// Travel ends the current day and every bank compounds once. On the last day
// the game finishes instead of moving; otherwise a new day starts in the
// destination.
func (g *Game) Travel(destination string) (domain.EncounterOutcome, error) {
	if err := g.active(); err != nil {
		return domain.EncounterOutcome{}, err
	}

	dest, ok := g.catalog.City(destination)
	if !ok {
		return domain.EncounterOutcome{}, errors.Wrapf(ErrUnknownCity, "%q", destination)
	}
	if dest.Name == g.city.Name {
		return domain.EncounterOutcome{}, errors.Wrapf(domain.ErrInvalidParameter, "already in %s", dest.Name)
	}

	g.compoundAll()

	if g.day >= g.settings.Days {
		g.finish(EndFinished)
		return domain.EncounterOutcome{Kind: domain.EncounterNone}, nil
	}

	g.city = dest
	g.day++
	g.record(domain.GameEvent{Kind: domain.EventTravel})
	g.l.Info("travelled", zap.String("city", dest.Name), zap.Int("day", g.day))

	return g.startDay()
}

func (g *Game) compoundAll() {
	total := 0
	for _, b := range g.banks {
		interest := b.CompoundInterest()
		if interest > 0 {
			g.l.Debug("interest paid", zap.String("bank", b.Name()), zap.Int("interest", interest), zap.Int("balance", b.Balance()))
		}
		total += interest
	}
	g.observe(func(m Metrics) { m.InterestPaid(total) })
}

// Quit ends the game early. Money in banks still counts.
func (g *Game) Quit() {
	if g.Over() {
		return
	}
	g.finish(EndQuit)
}

// FinalScore the sum of all bank balances. Cash and inventory do not count.
func (g *Game) FinalScore() int {
	total := 0
	for _, b := range g.banks {
		total += b.Balance()
	}
	return total
}

// ScoreRecord the leaderboard entry for this game.
func (g *Game) ScoreRecord(name string) domain.ScoreRecord {
	return domain.ScoreRecord{
		Score:    g.FinalScore(),
		Name:     name,
		Turns:    g.day,
		GameID:   g.id,
		PlayedAt: g.now().UTC(),
	}
}

func (g *Game) finish(reason EndReason) {
	g.reason = reason
	score := g.FinalScore()

	g.observe(func(m Metrics) { m.GameFinished(string(reason), score) })
	g.record(domain.GameEvent{Kind: domain.EventGameEnd, Action: string(reason), Amount: score})
	g.l.Info("game over", zap.String("reason", string(reason)), zap.Int("day", g.day), zap.Int("score", score))
}

func (g *Game) observe(fn func(m Metrics)) {
	if g.metrics != nil {
		fn(g.metrics)
	}
}

// record fills the common fields and appends the event to the journal.
// Journal failures are logged and never interrupt play.
func (g *Game) record(e domain.GameEvent) {
	if g.journal == nil {
		return
	}
	e.Timestamp = g.now().UTC()
	e.GameID = g.id
	e.Day = g.day
	if e.City == "" {
		e.City = g.city.Name
	}

	if _, err := g.journal.Append(e); err != nil {
		g.l.Warn("failed to journal game event", zap.String("kind", string(e.Kind)), zap.Error(err))
	}
}
