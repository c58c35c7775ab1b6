package main

import (
	"flag"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/baselsoftwaredev/dominion-earth-sub001/internal/config"
	"github.com/baselsoftwaredev/dominion-earth-sub001/internal/engine"
	"github.com/baselsoftwaredev/dominion-earth-sub001/internal/logger"
	"github.com/baselsoftwaredev/dominion-earth-sub001/pkg/civ"
)

var civNames = []string{
	"Aurelia", "Borealis", "Cascadia", "Drakenmark",
	"Elysium", "Ferron", "Galdora", "Hesperia",
}

func main() {
	logger.Init()
	cfg := config.Load()

	var (
		civCount  int
		turnLimit int
		seed      int64
	)
	flag.IntVar(&civCount, "civs", cfg.CivCount, "Number of civilizations (first one is the player)")
	flag.IntVar(&turnLimit, "turns", cfg.TurnLimit, "Number of global turns to simulate")
	flag.Int64Var(&seed, "seed", cfg.RngSeed, "RNG seed for world generation")
	flag.Parse()

	if civCount < 2 {
		civCount = 2
	}
	if civCount > len(civNames) {
		civCount = len(civNames)
	}

	world := seedWorld(civCount, seed)
	runner := engine.NewRunner(world, cfg.QueueCapacity, cfg.ActionsPerTurn, cfg.MaxRetries)

	log.Info().
		Int("civs", civCount).
		Int("turns", turnLimit).
		Int64("seed", seed).
		Msg("headless simulation starting")

	for i := 0; i < turnLimit; i++ {
		if err := runner.RunTurn(); err != nil {
			log.Fatal().Err(err).Int("turn", runner.Turn()).Msg("turn failed")
		}
	}

	logSummary(world)
}

// seedWorld spawns civilizations with deterministic random personalities and
// capitals spread across the map. The first civilization is player-controlled
// and simply idles in headless play.
func seedWorld(civCount int, seed int64) *engine.World {
	rng := rand.New(rand.NewSource(seed))
	world := engine.NewWorld()

	for i := 0; i < civCount; i++ {
		p := civ.Personality{
			LandHunger:       rng.Float64(),
			IndustryFocus:    rng.Float64(),
			TechFocus:        rng.Float64(),
			Interventionism:  rng.Float64(),
			RiskTolerance:    rng.Float64(),
			HonorTreaties:    rng.Float64(),
			Militarism:       rng.Float64(),
			Isolationism:     rng.Float64(),
			ExplorationDrive: rng.Float64(),
		}
		capital := civ.Position{
			X: 10 + rng.Intn(80),
			Y: 10 + rng.Intn(80),
		}
		world.AddCiv(civ.CivId(i), civNames[i], i == 0, p, capital)
	}
	return world
}

func logSummary(world *engine.World) {
	view := engine.BuildWorldView(world)
	for _, id := range view.SortedIds() {
		snap := view.Civs[id]
		log.Info().
			Int("civ", int(id)).
			Str("name", snap.Name).
			Str("gold", fmt.Sprintf("%.0f", snap.Economy.Gold)).
			Str("income", fmt.Sprintf("%.0f", snap.Economy.Income)).
			Int("territories", len(snap.Territories)).
			Int("units", len(snap.Military.Units)).
			Int("techs", len(snap.Known)).
			Int("tradeRoutes", len(snap.Economy.TradeRoutes)).
			Msg("final standing")
	}
}
