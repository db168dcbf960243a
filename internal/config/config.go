// Package config loads match settings from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokergm/internal/bot"
)

// MaxSeats is the largest table the deck can serve: 8 players need
// 16 hole cards, 5 board cards and 3 burns.
const MaxSeats = 8

// Config is a complete match configuration
type Config struct {
	Match MatchSettings `hcl:"match,block"`
	Bots  []BotConfig   `hcl:"bot,block"`
}

// MatchSettings holds the human seat and table-wide settings
type MatchSettings struct {
	Player        string `hcl:"player,optional"`
	Chips         int    `hcl:"chips,optional"`
	Hearts        int    `hcl:"hearts,optional"`
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	BotCount      int    `hcl:"bots,optional"`
	Difficulty    string `hcl:"difficulty,optional"`
	MaxHands      int    `hcl:"max_hands,optional"`
	Seed          int64  `hcl:"seed,optional"`
	ActionDelay   string `hcl:"action_delay,optional"`
	NextHandDelay string `hcl:"next_hand_delay,optional"`
	LogLevel      string `hcl:"log_level,optional"`
	LogFile       string `hcl:"log_file,optional"`
}

// BotConfig defines one computer opponent
type BotConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
	Chips    int    `hcl:"chips,optional"`
}

const (
	defaultPlayer        = "Player"
	defaultChips         = 1000
	defaultHearts        = 1
	defaultBotCount      = 1
	defaultDifficulty    = "easy"
	defaultActionDelay   = "800ms"
	defaultNextHandDelay = "2s"
	defaultLogLevel      = "warn"
)

// DefaultConfig returns a heads-up match against one easy bot
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes configuration from HCL source; filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	m := &c.Match
	if m.Player == "" {
		m.Player = defaultPlayer
	}
	if m.Chips == 0 {
		m.Chips = defaultChips
	}
	if m.Hearts == 0 {
		m.Hearts = defaultHearts
	}
	if m.Difficulty == "" {
		m.Difficulty = defaultDifficulty
	}
	if m.ActionDelay == "" {
		m.ActionDelay = defaultActionDelay
	}
	if m.NextHandDelay == "" {
		m.NextHandDelay = defaultNextHandDelay
	}
	if m.LogLevel == "" {
		m.LogLevel = defaultLogLevel
	}

	// Without explicit bot blocks, seat BotCount bots named Bot_1, Bot_2, ...
	if len(c.Bots) == 0 {
		if m.BotCount == 0 {
			m.BotCount = defaultBotCount
		}
		for i := range m.BotCount {
			c.Bots = append(c.Bots, BotConfig{Name: fmt.Sprintf("Bot_%d", i+1)})
		}
	}
	m.BotCount = len(c.Bots)

	for i := range c.Bots {
		if c.Bots[i].Strategy == "" {
			c.Bots[i].Strategy = m.Difficulty
		}
		if c.Bots[i].Chips == 0 {
			c.Bots[i].Chips = m.Chips
		}
	}
}

// Validate checks the configuration for values the engine cannot run with
func (c *Config) Validate() error {
	m := c.Match
	if m.Chips <= 0 {
		return fmt.Errorf("match: chips must be positive, got %d", m.Chips)
	}
	if m.Hearts < 0 {
		return fmt.Errorf("match: hearts cannot be negative, got %d", m.Hearts)
	}
	if m.MaxHands < 0 {
		return fmt.Errorf("match: max_hands cannot be negative, got %d", m.MaxHands)
	}

	switch {
	case m.SmallBlind == 0 && m.BigBlind == 0:
		// derived from the starting stack
	case m.SmallBlind <= 0:
		return fmt.Errorf("match: small blind must be positive")
	case m.BigBlind <= m.SmallBlind:
		return fmt.Errorf("match: big blind must be greater than small blind")
	}

	for _, d := range []struct{ name, value string }{
		{"action_delay", m.ActionDelay},
		{"next_hand_delay", m.NextHandDelay},
	} {
		dur, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("match: invalid %s %q: %w", d.name, d.value, err)
		}
		if dur < 0 {
			return fmt.Errorf("match: %s cannot be negative", d.name)
		}
	}

	if _, err := log.ParseLevel(m.LogLevel); err != nil {
		return fmt.Errorf("match: invalid log_level %q", m.LogLevel)
	}

	if len(c.Bots) == 0 {
		return fmt.Errorf("at least one bot must be configured")
	}
	if seats := len(c.Bots) + 1; seats > MaxSeats {
		return fmt.Errorf("too many players: %d seats, maximum is %d", seats, MaxSeats)
	}

	names := []string{m.Player}
	strategies := bot.Names()
	for _, b := range c.Bots {
		if slices.Contains(names, b.Name) {
			return fmt.Errorf("bot %s: duplicate player name", b.Name)
		}
		names = append(names, b.Name)
		if !slices.Contains(strategies, b.Strategy) {
			return fmt.Errorf("bot %s: invalid strategy %s (have %v)", b.Name, b.Strategy, strategies)
		}
		if b.Chips <= 0 {
			return fmt.Errorf("bot %s: chips must be positive", b.Name)
		}
	}
	return nil
}

// ActionDelays returns the parsed bot thinking and between-hand delays.
// Call Validate first; unparseable values yield zero.
func (m MatchSettings) ActionDelays() (action, nextHand time.Duration) {
	action, _ = time.ParseDuration(m.ActionDelay)
	nextHand, _ = time.ParseDuration(m.NextHandDelay)
	return action, nextHand
}

// Bot returns the bot configuration with the given name
func (c *Config) Bot(name string) (BotConfig, bool) {
	for _, b := range c.Bots {
		if b.Name == name {
			return b, true
		}
	}
	return BotConfig{}, false
}

// Overrides are command-line adjustments layered on a loaded config. Zero
// fields leave the config alone.
type Overrides struct {
	Player     string
	Bots       int
	Difficulty string
	Chips      int
	Hearts     int
	Seed       int64
	MaxHands   int
}

// Apply layers o on top of c. Changing the bot count replaces the bots with
// default ones named Bot_1, Bot_2, ...
func (c *Config) Apply(o Overrides) {
	m := &c.Match
	if o.Player != "" {
		m.Player = o.Player
	}
	if o.Hearts > 0 {
		m.Hearts = o.Hearts
	}
	if o.Seed != 0 {
		m.Seed = o.Seed
	}
	if o.MaxHands > 0 {
		m.MaxHands = o.MaxHands
	}
	if o.Chips > 0 {
		m.Chips = o.Chips
		for i := range c.Bots {
			c.Bots[i].Chips = o.Chips
		}
	}
	if o.Difficulty != "" {
		m.Difficulty = o.Difficulty
		for i := range c.Bots {
			c.Bots[i].Strategy = o.Difficulty
		}
	}
	if o.Bots > 0 && o.Bots != len(c.Bots) {
		c.Bots = nil
		m.BotCount = o.Bots
		c.applyDefaults()
	}
}
