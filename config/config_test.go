package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/dopewars/internal/domain"
)

func TestDefault_Catalog(t *testing.T) {
	conf, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 30, conf.Days)
	assert.Equal(t, 500, conf.StartingCash)
	assert.Equal(t, "Miami", conf.StartCity)
	assert.Equal(t, "file", conf.ScoresBackend)

	assert.Len(t, conf.Catalog.Commodities, 8)
	assert.Len(t, conf.Catalog.Cities, 7)
	assert.Len(t, conf.Catalog.Banks, 4)

	boa, ok := conf.Catalog.Bank("BoA Constrictor")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("0.04").Equal(boa.InterestRate))
	assert.Equal(t, 50000, boa.MinimumFirstDeposit)

	glock, ok := conf.Catalog.Weapon("Glock")
	require.True(t, ok)
	assert.Equal(t, 500, glock.Price)
	assert.True(t, glock.Defeats(domain.EncounterCorruptCop))

	dc, ok := conf.Catalog.City("Washington D.C.")
	require.True(t, ok)
	assert.Equal(t, "CIA", dc.Store)
	assert.Equal(t, []string{"Blackmail"}, dc.Weapons)

	assert.Equal(t, domain.DefaultEncounterWeights(), conf.Catalog.Encounters)
}

func TestDefault_HighSurgeBeatsJitter(t *testing.T) {
	conf, err := Default()
	require.NoError(t, err)

	for _, c := range conf.Catalog.Commodities {
		assert.Greater(t, c.BasePrice, 4*c.Jitter, c.Name)
	}
}

func TestParse_Flags(t *testing.T) {
	conf, err := Parse([]string{"-days", "10", "-cash", "2000", "-seed", "42", "-scores-backend", "sqlite", "-scores", "x.db", "-metrics", ""})
	require.NoError(t, err)

	assert.Equal(t, 10, conf.Days)
	assert.Equal(t, 2000, conf.StartingCash)
	assert.Equal(t, uint64(42), conf.Seed)
	assert.Equal(t, "sqlite", conf.ScoresBackend)
	assert.Equal(t, "x.db", conf.ScoresPath)
	assert.Empty(t, conf.MetricsPath)
	assert.Equal(t, "dopewars.log", conf.LogFile)
}

func TestParse_YamlOverridesDefaultsAndFlagsOverrideYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	payload := `
days: 12
start_city: Gotham
commodities:
  - name: Soma
    base_price: 400
    jitter: 50
banks:
  - name: Iron Bank
    interest_rate: "0.125"
    minimum_first_deposit: 10
cities:
  - name: Gotham
    bank: Iron Bank
  - name: Metropolis
`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	conf, err := Parse([]string{"-config", path, "-days", "5"})
	require.NoError(t, err)

	assert.Equal(t, 5, conf.Days)
	assert.Equal(t, 500, conf.StartingCash, "untouched default")
	assert.Equal(t, "Gotham", conf.StartCity)
	require.Len(t, conf.Catalog.Commodities, 1)
	assert.Equal(t, "Soma", conf.Catalog.Commodities[0].Name)

	bank, ok := conf.Catalog.Bank("Iron Bank")
	require.True(t, ok)
	assert.Equal(t, "0.125", bank.InterestRate.String())
}

func TestParse_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, payload string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(payload), 0o644))
		return p
	}

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file", args: []string{"-config", filepath.Join(dir, "nope.yaml")}},
		{name: "bad yaml", args: []string{"-config", write("bad.yaml", "days: [")}},
		{name: "bad rate", args: []string{"-config", write("rate.yaml", "banks:\n  - name: X\n    interest_rate: lots\n")}},
		{name: "unknown start city", args: []string{"-config", write("city.yaml", "start_city: Atlantis\n")}},
		{name: "dangling bank", args: []string{"-config", write("bank.yaml", "cities:\n  - name: A\n    bank: Nope\n  - name: B\n")}},
		{name: "zero days", args: []string{"-days", "0"}},
		{name: "bad backend", args: []string{"-scores-backend", "redis"}},
		{name: "unknown flag", args: []string{"-pair", "BTC_USDT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args)
			require.Error(t, err)
		})
	}
}
