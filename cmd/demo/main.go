// Command demo plays a short scripted match through the resolver and prints
// the board after every step.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/economy"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/protocol"
)

const (
	redClient  uint64 = 1
	blueClient uint64 = 2
)

type step struct {
	client uint64
	x, y   int
	input  protocol.Input
}

var script = []step{
	// terrain placement
	{redClient, -5, -2, protocol.Mouse(protocol.MouseLeft)},
	{redClient, -4, 0, protocol.Mouse(protocol.MouseLeft)},
	{redClient, 0, 0, protocol.Keyboard(protocol.KeyReturn)},
	{blueClient, 0, 0, protocol.Keyboard(protocol.KeyW)},
	{blueClient, 3, 1, protocol.Mouse(protocol.MouseLeft)},
	{blueClient, 0, 0, protocol.Keyboard(protocol.KeyReturn)},

	// game
	{redClient, -7, -4, protocol.Mouse(protocol.MouseLeft)},
	{blueClient, 6, 3, protocol.Mouse(protocol.MouseLeft)},
	{redClient, -7, -3, protocol.Mouse(protocol.MouseLeft)},
	{blueClient, 6, 3, protocol.Mouse(protocol.MouseRight)},
	{redClient, -7, -4, protocol.Keyboard(protocol.KeySpace)},
	{redClient, -6, -4, protocol.Mouse(protocol.MouseLeft)},
	{blueClient, 5, 3, protocol.Mouse(protocol.MouseLeft)},
	{redClient, -6, -4, protocol.Mouse(protocol.MouseLeft)},
}

func main() {
	color := flag.Bool("color", true, "Render the board with ANSI colours")
	verbose := flag.Bool("v", false, "Log rejected intents")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	gs := game.NewGameState(game.Config{
		MaxMountains: economy.DefaultMaxMountains,
		MaxWater:     economy.DefaultMaxWater,
		Logger:       log.Logger,
	})
	gs.Seat(redClient, core.Red)
	gs.Seat(blueClient, core.Blue)

	fmt.Println(gs.Grid().Render(*color))

	for i, s := range script {
		p, _ := gs.PlayerOf(s.client)
		pos := core.NewCoordinate(s.x, s.y)
		placing := gs.Turn().Phase == core.PhaseTerrainPlacement
		in := protocol.IntentFromInput(s.client, pos, s.input, placing)

		fmt.Printf("step %d: %s %s %s at %s\n", i+1, p, in.Kind, s.input, pos)

		a, ok := gs.Validate(in)
		if !ok {
			fmt.Println("  rejected")
			continue
		}
		for _, ev := range gs.Apply(a) {
			fmt.Printf("  %s %+v\n", ev.EventType(), ev)
		}

		fmt.Println(gs.Grid().Render(*color))
	}

	farms := gs.Economy().Available()
	fmt.Printf("farms: red=%d blue=%d, next turn %s\n", farms[core.Red], farms[core.Blue], gs.Turn().Player)
}
