// Package main runs a terminal preview of the Escrawl coming-soon page:
// countdown, hero rotation, modals and form flows, driven from stdin.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/escrawl/landing/config"
	"github.com/escrawl/landing/internal/analytics"
	"github.com/escrawl/landing/internal/audience"
	"github.com/escrawl/landing/internal/countdown"
	"github.com/escrawl/landing/internal/forms"
	"github.com/escrawl/landing/internal/herovideo"
	"github.com/escrawl/landing/internal/relay"
	"github.com/escrawl/landing/internal/verify"
	"github.com/escrawl/landing/pkg/backend"
	"github.com/escrawl/landing/pkg/page"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	logger.Info("backend origin selected", zap.String("host", cfg.Page.Host), zap.String("origin", cfg.BackendURL()))

	tracker := analytics.Default()
	if cfg.Analytics.Forward {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn("analytics forwarder disabled", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		} else {
			tracker.SetForwarder(analytics.NewForwarder(rdb, cfg.Analytics.ListKey, logger))
			logger.Info("analytics forwarder enabled", zap.String("key", cfg.Analytics.ListKey))
			defer rdb.Close()
		}
	}

	p := buildPage(cfg, logger)
	api := backend.NewClient(cfg.BackendURL(), cfg.Page.HTTPTimeout, logger)

	timer := countdown.New(cfg.Page.LaunchDate, countdown.Display{
		Days:    p.Region("days"),
		Hours:   p.Region("hours"),
		Minutes: p.Region("minutes"),
		Seconds: p.Region("seconds"),
		Block:   p.Region("countdown"),
	}, nil, logger)

	rotator := herovideo.New(p.Video("hero-video"), api, cfg.Video.DefaultPlaylist, cfg.Video.RotateInterval, nil, logger)

	audience.New(p, tracker, logger).Bind()

	customer := forms.NewCustomer(p.Form("customer-form"), p.Modal("customerModal"), api, p.Notifier(), tracker, logger)
	if rc := relay.New(cfg.Relay.URL, cfg.Page.HTTPTimeout, logger); rc != nil {
		customer.SetRelay(rc)
	}
	customer.Bind()

	vendor := forms.NewVendor(p.Form("vendor-form"), p.Modal("vendorModal"), api, p.Notifier(), tracker, logger)
	if cfg.Verify.Enabled && cfg.Verify.APIKey != "" {
		v := verify.New(cfg.Verify.URL, cfg.Verify.APIKey, cfg.Verify.AllowedProvider, cfg.Page.HTTPTimeout, logger)
		vendor.SetPreSubmitCheck(v.Check)
		logger.Info("email verification enabled", zap.String("provider", cfg.Verify.AllowedProvider))
	}
	vendor.Bind()

	forms.NewFeedback(p.Form("feedbackForm"), p.Modal("feedbackModal"), api, p.Notifier(), tracker, logger).Bind()

	timer.Start()
	rotator.Start(context.Background())
	defer timer.Stop()
	defer rotator.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go repl(p, tracker, done)

	select {
	case <-quit:
	case <-done:
	}
	logger.Info("landing preview stopped")
}

// buildPage registers the landing page's element inventory.
func buildPage(cfg *config.Config, logger *zap.Logger) *page.Page {
	notifier := page.NewTimedNotifier(page.NewLogNotifier(logger), cfg.Page.ToastAutoClose, cfg.Page.ThankYouFlash, nil)
	p := page.New(notifier, logger)

	p.AddRegion("countdown")
	p.AddRegion("days")
	p.AddRegion("hours")
	p.AddRegion("minutes")
	p.AddRegion("seconds")
	p.AddVideo("hero-video")

	p.AddControl("customerBtn", "Join the waitlist")
	p.AddControl("vendorBtn", "Sell on Escrawl")
	p.AddControl("feedbackBtn", "Feedback")

	customerModal := p.AddModal("customerModal")
	vendorModal := p.AddModal("vendorModal")
	feedbackModal := p.AddModal("feedbackModal")
	customerModal.BindCloseControl(p.AddControl("closeCustomer", "×"))
	vendorModal.BindCloseControl(p.AddControl("closeVendor", "×"))
	feedbackModal.BindCloseControl(p.AddControl("closeFeedback", "×"))

	p.AddForm("customer-form", p.AddControl("customerSubmit", "Notify me"), "email")
	p.AddForm("vendor-form", p.AddControl("vendorSubmit", "Register"), "business", "category", "website", "gst", "email")
	p.AddForm("feedbackForm", p.AddControl("feedbackSubmit", "Send"), "text")
	return p
}

// repl reads commands from stdin until EOF or quit.
func repl(p *page.Page, tracker *analytics.Tracker, done chan<- struct{}) {
	defer close(done)
	fmt.Println(`commands: click <control> | backdrop <modal> | set <form> <field> <value> | submit <form> | status | events | quit`)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "quit", "exit":
			return
		case "click":
			if len(args) == 2 {
				p.Control(args[1]).Click()
			}
		case "backdrop":
			if len(args) == 2 {
				p.Modal(args[1]).ClickBackdrop()
			}
		case "set":
			if len(args) >= 4 {
				p.Form(args[1]).SetField(args[2], strings.Join(args[3:], " "))
			}
		case "submit":
			if len(args) == 2 {
				p.Form(args[1]).Submit()
			}
		case "status":
			printStatus(p)
		case "events":
			for _, e := range tracker.Events() {
				fmt.Printf("%v\n", e)
			}
		default:
			fmt.Println("unknown command")
		}
	}
}

func printStatus(p *page.Page) {
	if block := p.Region("countdown").Text(); block != "" {
		fmt.Println(block)
	} else {
		fmt.Printf("T-%s:%s:%s:%s\n",
			p.Region("days").Text(), p.Region("hours").Text(),
			p.Region("minutes").Text(), p.Region("seconds").Text())
	}
	fmt.Printf("hero: %s\n", p.Video("hero-video").Source())
	for _, m := range []string{"customerModal", "vendorModal", "feedbackModal"} {
		fmt.Printf("%s open=%v\n", m, p.Modal(m).IsOpen())
	}
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
