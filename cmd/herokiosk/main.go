package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"golang.org/x/sync/errgroup"

	"herorun/lib/carousel"
	"herorun/lib/midictl"
	"herorun/lib/player"
	"herorun/lib/site"
	"herorun/lib/streamdeck"
)

type kiosk struct {
	site   *site.Site
	seq    *carousel.Sequencer
	client *player.Client
	panel  *panel
}

func main() {
	path := "herokiosk.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s, err := loadSite(cfg.Site)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading site: %v\n", err)
		os.Exit(1)
	}

	seq, err := carousel.New(s.Hero.TotalVideos, s.Hero.SourcePattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client, err := player.Dial(cfg.Player.Host, cfg.Player.Port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to player: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	version, err := client.Version()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Player %s at %s:%d\n", version, cfg.Player.Host, cfg.Player.Port)

	k := &kiosk{site: s, seq: seq, client: client}

	for _, c := range s.Hero.Clips {
		if c.Loop {
			client.SetLoop(c.Index, true)
		}
		client.Preload(c.Index)
	}
	client.Play(seq.Current())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return k.pumpPlayerUpdates(ctx) })
	g.Go(func() error { return k.pumpCarouselUpdates(ctx) })

	if cfg.Deck.Enabled {
		dev, err := streamdeck.Open()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		k.panel, err = newPanel(dev, s, cfg.Deck.Brightness)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		k.panel.render(seq.Snapshot())

		keys := make(chan streamdeck.KeyEvent, 64)
		g.Go(func() error {
			<-ctx.Done()
			return dev.Close()
		})
		g.Go(func() error {
			err := dev.ReadKeys(keys)
			if ctx.Err() != nil {
				return nil
			}
			return err
		})
		g.Go(func() error { return k.pumpKeys(ctx, keys) })
	}

	if cfg.MIDI.Port != "" {
		defer midi.CloseDriver()

		port, err := midictl.FindInPort(cfg.MIDI.Port)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		dec := &midictl.Decoder{PadBase: uint8(cfg.MIDI.PadBase)}
		stop, err := midi.ListenTo(port, func(msg midi.Message, timestampms int32) {
			switch ev := dec.Decode(msg).(type) {
			case midictl.PadEvent:
				if ev.Pressed {
					k.advance()
				}
			case midictl.FootSwitchEvent:
				if ev.Pressed {
					k.advance()
				}
			}
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listening: %v\n", err)
			os.Exit(1)
		}
		defer stop()
		fmt.Printf("MIDI triggers on: %s\n", port)
	}

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
}

func loadSite(path string) (*site.Site, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s site.Site
	if err := json.Unmarshal(buf, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// advance runs the accepted-click path: step the sequencer, then have the
// player fade from the old clip to the new one. The sequencer stays in
// Transitioning until the player reports the fade done.
func (k *kiosk) advance() {
	from, to, ok := k.seq.AdvanceFrom()
	if !ok {
		return
	}
	if err := k.client.Crossfade(from, to, k.site.Hero.TransitionMs); err != nil {
		fmt.Fprintf(os.Stderr, "crossfade: %v\n", err)
	}
}

func (k *kiosk) pumpPlayerUpdates(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case u := <-k.client.Updates():
			switch {
			case u.Address == "/update/transition/done":
				k.seq.FinishTransition()
			case strings.HasPrefix(u.Address, "/update/clip/") && strings.HasSuffix(u.Address, "/ready"):
				k.seq.ResourceLoaded()
			}
		}
	}
}

func (k *kiosk) pumpCarouselUpdates(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case u := <-k.seq.Updates():
			fmt.Printf("clip %d %s, next %d\n", u.Snapshot.Current, u.Snapshot.Phase, u.Snapshot.Preview)
			if k.panel != nil {
				k.panel.render(u.Snapshot)
			}
		}
	}
}

func (k *kiosk) pumpKeys(ctx context.Context, keys <-chan streamdeck.KeyEvent) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-keys:
			if !ev.Pressed {
				continue
			}
			if clip := k.panel.clipForKey(ev.Key); clip != 0 && clip == k.seq.Preview() {
				k.advance()
			}
		}
	}
}
