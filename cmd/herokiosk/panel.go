package main

import (
	"fmt"
	"image/color"

	"github.com/skip2/go-qrcode"

	"herorun/lib/carousel"
	"herorun/lib/site"
	"herorun/lib/streamdeck"
)

var (
	liveColor    = color.RGBA{50, 180, 50, 255}
	previewColor = color.RGBA{50, 100, 220, 255}
	idleColor    = color.RGBA{40, 40, 40, 255}
	loadColor    = color.RGBA{200, 140, 20, 255}
)

// panel lays the hero clips out one per key, in index order, with a QR key
// for the site on the last key. Pressing the preview clip's key is the
// advance gesture; other clip keys are display only.
type panel struct {
	dev  *streamdeck.Device
	site *site.Site
}

func newPanel(dev *streamdeck.Device, s *site.Site, brightness int) (*panel, error) {
	if s.Hero.TotalVideos > dev.Model().Keys-1 {
		return nil, fmt.Errorf("panel: %d clips but only %d keys", s.Hero.TotalVideos, dev.Model().Keys-1)
	}
	if err := dev.SetBrightness(byte(brightness)); err != nil {
		return nil, err
	}
	if err := dev.ClearAllKeys(); err != nil {
		return nil, err
	}
	p := &panel{dev: dev, site: s}
	if err := p.drawQR(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *panel) qrKey() int {
	return p.dev.Model().Keys - 1
}

// clipForKey maps a key to its 1-based clip index, 0 if the key holds none.
func (p *panel) clipForKey(key int) int {
	if key < 0 || key >= p.site.Hero.TotalVideos {
		return 0
	}
	return key + 1
}

func (p *panel) render(snap carousel.Snapshot) {
	for index := 1; index <= p.site.Hero.TotalVideos; index++ {
		title := ""
		if c := p.site.Hero.Clip(index); c != nil {
			title = c.Title
		}

		bg := idleColor
		label := fmt.Sprintf("%d\n%s", index, title)
		switch index {
		case snap.Current:
			bg = liveColor
			label = fmt.Sprintf("%d LIVE\n%s", index, title)
		case snap.Preview:
			bg = previewColor
			label = fmt.Sprintf("%d NEXT\n%s", index, title)
		}
		if snap.Loading {
			bg = loadColor
		}

		if err := p.dev.SetKeyText(index-1, bg, color.White, label); err != nil {
			fmt.Printf("panel: key %d: %v\n", index-1, err)
		}
	}
}

func (p *panel) drawQR() error {
	qr, err := qrcode.New(p.site.URL, qrcode.Medium)
	if err != nil {
		return err
	}
	return p.dev.SetKeyImage(p.qrKey(), qr.Image(p.dev.Model().KeySize))
}
