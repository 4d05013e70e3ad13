package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"collabboard.dev/internal/client"
	"collabboard.dev/internal/config"
	"collabboard.dev/internal/protocol"
)

func main() {
	var (
		url       = flag.String("url", "ws://localhost:8080/v1/ws", "ws url")
		name      = flag.String("name", "bot", "bot name, used in card titles")
		interval  = flag.Duration("interval", 2*time.Second, "delay between mutations")
		reconnect = flag.Duration("reconnect", time.Duration(config.Defaults().ReconnectDelayMS)*time.Millisecond, "delay between reconnect attempts")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[bot] ", log.LstdFlags|log.Lmicroseconds)

	c := client.New(client.Options{URL: *url, ReconnectDelay: *reconnect, Logger: logger})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	go func() { _ = c.Run(ctx) }()

	for !c.Connected() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(50 * time.Millisecond):
		}
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	seq := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(*interval):
		}
		step(c, logger, r, *name, &seq)
	}
}

// step performs one random mutation against the mirrored board. Stale requests
// are fine; the server drops them and the mirror catches up on the next event.
func step(c *client.Client, logger *log.Logger, r *rand.Rand, name string, seq *int) {
	brd, ok := c.Board()
	if !ok || len(brd.Columns) == 0 {
		return
	}
	col := brd.Columns[r.Intn(len(brd.Columns))]

	*seq++
	switch r.Intn(5) {
	case 0:
		title := fmt.Sprintf("%s card %d", name, *seq)
		if err := c.CreateCard(col.ID, title, ""); err != nil {
			logger.Printf("create card: %v", err)
			return
		}
		logger.Printf("CREATE_CARD column=%s title=%q", col.ID, title)

	case 1:
		if len(col.Cards) == 0 {
			return
		}
		card := col.Cards[r.Intn(len(col.Cards))]
		title := fmt.Sprintf("%s edit %d", name, *seq)
		if err := c.UpdateCard(card.ID, protocol.CardUpdates{Title: &title}); err != nil {
			logger.Printf("update card: %v", err)
			return
		}
		logger.Printf("UPDATE_CARD card=%s", card.ID)

	case 2:
		if len(col.Cards) == 0 {
			return
		}
		card := col.Cards[r.Intn(len(col.Cards))]
		dest := brd.Columns[r.Intn(len(brd.Columns))]
		pos := 0
		if n := len(dest.Cards); n > 0 {
			pos = r.Intn(n + 1)
		}
		if err := c.MoveCard(card.ID, col.ID, dest.ID, pos); err != nil {
			logger.Printf("move card: %v", err)
			return
		}
		logger.Printf("MOVE_CARD card=%s from=%s to=%s pos=%d", card.ID, col.ID, dest.ID, pos)

	case 3:
		if len(col.Cards) < 2 {
			return
		}
		card := col.Cards[r.Intn(len(col.Cards))]
		if err := c.DeleteCard(card.ID); err != nil {
			logger.Printf("delete card: %v", err)
			return
		}
		logger.Printf("DELETE_CARD card=%s", card.ID)

	case 4:
		if len(brd.Columns) >= 4 {
			return
		}
		title := fmt.Sprintf("%s column %d", name, *seq)
		if err := c.CreateColumn(title); err != nil {
			logger.Printf("create column: %v", err)
			return
		}
		logger.Printf("CREATE_COLUMN title=%q", title)
	}
}
