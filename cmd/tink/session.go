package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nathoo/tink/config"
	"github.com/nathoo/tink/engine"
	"github.com/nathoo/tink/engine/state"
	"github.com/nathoo/tink/loader"
	"github.com/nathoo/tink/logging"
	"github.com/nathoo/tink/types"
)

// sessionFlags are the persistent flags that override the config file.
type sessionFlags struct {
	configPath string
	tier       string
	seed       int64
	hand       int
	weighted   bool
	pack       string
	logFile    string
	unlock     []string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", config.DefaultPath, "Config file")
	pf.StringVar(&f.tier, "tier", "", "Loom tier: triad, hex, bloom or grand")
	pf.Int64Var(&f.seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	pf.IntVar(&f.hand, "hand", 0, "Threads drawn per hand")
	pf.BoolVar(&f.weighted, "weighted", false, "Draw threads by rarity weight")
	pf.StringVar(&f.pack, "pack", "", "Directory of Lua content to layer over the built-ins")
	pf.StringVar(&f.logFile, "log", "", "Append a session log to this file")
	pf.StringSliceVar(&f.unlock, "unlock", nil, "Projection ids open from the start")
}

// loadConfig reads the config file and environment, then applies any flag
// the user set explicitly.
func loadConfig(cmd *cobra.Command, f *sessionFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("tier") {
		cfg.Tier = f.tier
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("hand") {
		cfg.HandSize = f.hand
	}
	if flags.Changed("weighted") {
		cfg.Weighted = f.weighted
	}
	if flags.Changed("pack") {
		cfg.Pack = f.pack
	}
	if flags.Changed("log") {
		cfg.LogFile = f.logFile
	}
	if flags.Changed("unlock") {
		cfg.Unlock = f.unlock
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDefs returns the built-in catalogs, with the pack at dir layered over
// them when dir is set. Pack warnings go to stderr.
func loadDefs(dir string) (*state.Defs, error) {
	base := state.Default()
	if dir == "" {
		return base, nil
	}
	pack, warnings, err := loader.LoadWithWarnings(dir)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if err != nil {
		return nil, fmt.Errorf("loading pack %s: %w", dir, err)
	}
	return state.Merge(base, pack), nil
}

// session is everything a command needs to run a loom.
type session struct {
	cfg    *config.Config
	defs   *state.Defs
	engine *engine.Engine
	logger *logging.Logger
}

func (s *session) Close() {
	s.logger.Close()
}

func openSession(cmd *cobra.Command, f *sessionFlags) (*session, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, err
	}
	defs, err := loadDefs(cfg.Pack)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, defs: defs}
	if cfg.LogFile != "" {
		s.logger, err = logging.New(cfg.LogFile)
		if err != nil {
			return nil, err
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.engine, err = engine.New(defs, engine.Options{
		Tier:     types.Tier(cfg.Tier),
		Seed:     seed,
		HandSize: cfg.HandSize,
		Weighted: cfg.Weighted,
		Unlock:   cfg.Unlock,
		Logger:   s.logger,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	s.logger.Printf("session start: tier %s, seed %d, %d threads, %d archetypes, %d epics",
		cfg.Tier, seed, len(defs.Threads), len(defs.Archetypes), len(defs.Epics))
	return s, nil
}
