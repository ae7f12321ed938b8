package main

import (
	"flag"
	"log"

	"github.com/gdamore/tcell/v2"
)

func main() {
	start := flag.Uint("x", 2, "initial input")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	e := &Explorer{X: uint32(*start)}
	run(screen, e)
}

func run(screen tcell.Screen, e *Explorer) {
	e.Draw(screen)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if e.HandleKey(ev) {
				return
			}
		}
		e.Draw(screen)
	}
}
