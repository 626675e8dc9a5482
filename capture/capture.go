package capture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

type Conf struct {
	// ControlURL attaches to a running browser. Empty launches a
	// headless one.
	ControlURL string `json:"control_url"`
	// NavTimeoutSec bounds navigation plus element lookup. A timeout
	// fails the capture, callers decide what that means for their job.
	NavTimeoutSec int `json:"nav_timeout_sec"`
	// SettleMillis is the single layout-settle wait after the
	// transform is cleared.
	SettleMillis int `json:"settle_millis"`
	// ScaleFactor is the device scale for the screenshot. 2 doubles
	// the pixel density of the captured card.
	ScaleFactor float64 `json:"scale_factor"`

	ViewportWidth  int `json:"viewport_width"`
	ViewportHeight int `json:"viewport_height"`
}

func (c *Conf) navTimeout() time.Duration {
	if c.NavTimeoutSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.NavTimeoutSec) * time.Second
}

func (c *Conf) settleDelay() time.Duration {
	if c.SettleMillis <= 0 {
		return 150 * time.Millisecond
	}
	return time.Duration(c.SettleMillis) * time.Millisecond
}

func (c *Conf) scaleFactor() float64 {
	if c.ScaleFactor <= 0 {
		return 2
	}
	return c.ScaleFactor
}

func (c *Conf) viewport() (int, int) {
	w, h := c.ViewportWidth, c.ViewportHeight
	if w <= 0 {
		w = 1280
	}
	if h <= 0 {
		h = 900
	}
	return w, h
}

// Capturer screenshots a rendered card preview out of a live page.
type Capturer struct {
	Conf *Conf

	browser  *rod.Browser
	launched bool
}

func NewCapturer(conf *Conf) *Capturer {
	return &Capturer{Conf: conf}
}

func (c *Capturer) Connect() error {
	controlURL := c.Conf.ControlURL
	if controlURL == "" {
		url, err := launcher.New().Headless(true).Launch()
		if err != nil {
			return fmt.Errorf("launching browser: %w", err)
		}
		controlURL = url
		c.launched = true
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connecting to browser: %w", err)
	}
	c.browser = browser
	log.Println("[INFO][capture] browser connected")
	return nil
}

func (c *Capturer) Close() error {
	if c.browser == nil {
		return nil
	}
	err := c.browser.Close()
	c.browser = nil
	log.Println("[INFO][capture] browser closed")
	return err
}

// CaptureCard navigates to previewURL and screenshots the element at
// selector with its CSS transform cleared, so preview scaling does not
// leak into the print raster. The transform is restored afterwards.
func (c *Capturer) CaptureCard(ctx context.Context, previewURL string, selector string) ([]byte, error) {
	if c.browser == nil {
		return nil, errors.New("browser not connected")
	}
	if selector == "" {
		return nil, errors.New("empty selector")
	}

	page, err := c.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			log.Printf("[WARN][capture] closing page: %v", err)
		}
	}()

	vw, vh := c.Conf.viewport()
	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             vw,
		Height:            vh,
		DeviceScaleFactor: c.Conf.scaleFactor(),
		Mobile:            false,
	}).Call(page); err != nil {
		log.Printf("[WARN][capture] setting viewport: %v", err)
	}

	timed := page.Timeout(c.Conf.navTimeout())
	if err := timed.Navigate(previewURL); err != nil {
		return nil, fmt.Errorf("navigating to preview: %w", err)
	}
	if err := timed.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for preview load: %w", err)
	}

	el, err := timed.Element(selector)
	if err != nil {
		return nil, fmt.Errorf("locating %q: %w", selector, err)
	}

	// The preview scales the card to fit the screen. Record the
	// transform, clear it, and restore on the way out.
	res, err := el.Eval(`() => {
		const prev = this.style.transform;
		this.style.transform = "none";
		return prev;
	}`)
	if err != nil {
		return nil, fmt.Errorf("clearing transform: %w", err)
	}
	prevTransform := res.Value.Str()
	defer func() {
		if _, err := el.Eval(`(prev) => { this.style.transform = prev; }`, prevTransform); err != nil {
			log.Printf("[WARN][capture] restoring transform: %v", err)
		}
	}()

	// one settle pass so the relayout lands before the shot
	time.Sleep(c.Conf.settleDelay())

	shot, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return shot, nil
}
