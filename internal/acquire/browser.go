package acquire

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/devices"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

const (
	defaultNavTimeout  = 60 * time.Second
	defaultScrollSteps = 6
	defaultScrollPause = 1500 * time.Millisecond
	snapshotTimeout    = 15 * time.Second
	payloadBuffer      = 128
)

// payloadHints select which JSON responses are worth keeping: the ranking
// endpoints mention one of these in their URL.
var payloadHints = []string{"brand", "ranking", "best"}

// ProxyConfig points the browser tier at an upstream residential proxy.
type ProxyConfig struct {
	Server   string
	Username string
	Password string
}

// BrowserConfig controls the browser-automation tier.
type BrowserConfig struct {
	Proxy       ProxyConfig
	UserAgent   string
	NavTimeout  time.Duration
	ScrollSteps int
	ScrollPause time.Duration
}

// RodLoader drives a headless Chrome through the configured proxy and
// observes JSON network responses while the page loads and scrolls.
type RodLoader struct {
	cfg BrowserConfig
	log *slog.Logger
}

func NewRodLoader(cfg BrowserConfig, log *slog.Logger) *RodLoader {
	if cfg.NavTimeout <= 0 {
		cfg.NavTimeout = defaultNavTimeout
	}
	if cfg.ScrollSteps <= 0 {
		cfg.ScrollSteps = defaultScrollSteps
	}
	if cfg.ScrollPause <= 0 {
		cfg.ScrollPause = defaultScrollPause
	}
	return &RodLoader{cfg: cfg, log: log}
}

// LoadAndObserve navigates to pageURL on an emulated mobile device, scrolls
// the ranking into view and returns the final DOM, a screenshot and the JSON
// payloads observed on the wire. On failure the partial capture is returned
// alongside the error so diagnostics survive.
func (l *RodLoader) LoadAndObserve(ctx context.Context, pageURL string) (*PageCapture, error) {
	lnch := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled")
	if l.cfg.Proxy.Server != "" {
		lnch = lnch.Proxy(l.cfg.Proxy.Server)
	}
	controlURL, err := lnch.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser launch failed: %w", err)
	}
	defer lnch.Cleanup()

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("browser connect failed: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			l.log.Warn("browser: close failed", "error", err)
		}
	}()

	if l.cfg.Proxy.Username != "" {
		waitAuth := browser.HandleAuth(l.cfg.Proxy.Username, l.cfg.Proxy.Password)
		go func() {
			if err := waitAuth(); err != nil {
				l.log.Warn("browser: proxy auth handling failed", "error", err)
			}
		}()
	}

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, fmt.Errorf("stealth page failed: %w", err)
	}
	defer page.Close()

	if err := page.Emulate(l.device()); err != nil {
		return nil, fmt.Errorf("device emulation failed: %w", err)
	}

	navCtx, cancelNav := context.WithTimeout(ctx, l.cfg.NavTimeout)
	defer cancelNav()

	stopObserving := l.observeResponses(navCtx, page)
	capture := &PageCapture{}

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		capture.Payloads = stopObserving()
		l.snapshot(page, capture)
		return capture, fmt.Errorf("navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		capture.Payloads = stopObserving()
		l.snapshot(page, capture)
		return capture, fmt.Errorf("page load: %w", err)
	}

	// Fixed scroll passes trigger the lazy-loaded ranking chunks.
scroll:
	for i := 0; i < l.cfg.ScrollSteps; i++ {
		if _, err := page.Context(navCtx).Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			l.log.Warn("browser: scroll step failed", "step", i, "error", err)
			break scroll
		}
		select {
		case <-navCtx.Done():
			break scroll
		case <-time.After(l.cfg.ScrollPause):
		}
	}

	capture.Payloads = stopObserving()
	l.snapshot(page, capture)
	return capture, nil
}

// observeResponses subscribes to network responses on the page's event loop
// and publishes matching JSON bodies into a bounded channel. The returned
// stop function ends the observation and drains everything published.
func (l *RodLoader) observeResponses(ctx context.Context, page *rod.Page) (stop func() [][]byte) {
	obsCtx, cancel := context.WithCancel(ctx)
	bodies := make(chan []byte, payloadBuffer)
	done := make(chan struct{})

	go func() {
		defer close(done)
		page.Context(obsCtx).EachEvent(func(e *proto.NetworkResponseReceived) {
			if !isRankingPayload(e.Response) {
				return
			}
			res, err := proto.NetworkGetResponseBody{RequestID: e.RequestID}.Call(page.Context(obsCtx))
			if err != nil {
				return
			}
			body := []byte(res.Body)
			if res.Base64Encoded {
				decoded, err := base64.StdEncoding.DecodeString(res.Body)
				if err != nil {
					return
				}
				body = decoded
			}
			select {
			case bodies <- body:
			default:
				l.log.Warn("browser: payload buffer full, dropping response")
			}
		})()
	}()

	return func() [][]byte {
		cancel()
		<-done
		close(bodies)
		var collected [][]byte
		for b := range bodies {
			collected = append(collected, b)
		}
		return collected
	}
}

// snapshot grabs the final DOM and a full-page screenshot under its own
// deadline. A diagnostics miss never fails the tier.
func (l *RodLoader) snapshot(page *rod.Page, capture *PageCapture) {
	snapCtx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()
	p := page.Context(snapCtx)

	if markup, err := p.HTML(); err != nil {
		l.log.Warn("browser: final markup capture failed", "error", err)
	} else {
		capture.HTML = markup
	}
	if shot, err := p.Screenshot(true, nil); err != nil {
		l.log.Warn("browser: screenshot failed", "error", err)
	} else {
		capture.Screenshot = shot
	}
}

func (l *RodLoader) device() devices.Device {
	return devices.Device{
		Title:          "mobile ranking profile",
		Capabilities:   []string{"touch", "mobile"},
		UserAgent:      l.cfg.UserAgent,
		AcceptLanguage: "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		Screen: devices.Screen{
			DevicePixelRatio: 3,
			Horizontal:       devices.ScreenSize{Width: 844, Height: 390},
			Vertical:         devices.ScreenSize{Width: 390, Height: 844},
		},
	}
}

func isRankingPayload(res *proto.NetworkResponse) bool {
	if res == nil || !strings.Contains(strings.ToLower(res.MIMEType), "json") {
		return false
	}
	u := strings.ToLower(res.URL)
	for _, hint := range payloadHints {
		if strings.Contains(u, hint) {
			return true
		}
	}
	return false
}
