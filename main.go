package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"spraydraw/app"
)

func main() {
	config := app.DefaultConfig()
	a, err := app.New(config)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Spray Draw")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
	a.Cleanup()
}
