package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	intervalreload "github.com/milekey/IntervalReload"
)

const defaultConfigPath = "intervalreload.yml"

var (
	fp = flag.String("c", defaultConfigPath, "yaml config file")
	ff = flag.Int("f", log.LstdFlags, "log flag")
	fv = flag.Bool("v", false, "print version")

	fonce   = flag.Bool("once", false, "print the current time once and exit")
	fverify = flag.Bool("verify", false, "compare against github.com/beevik/ntp and exit")

	Version = "dev"
)

func main() {
	flag.Parse()

	if *fv {
		fmt.Println("intervalreload", Version)
		return
	}

	log.SetFlags(*ff)
	if *ff != 0 {
		log.SetPrefix("[IntervalReload] ")
	}

	cfg, err := loadConfig(*fp)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%+v", cfg)

	switch {
	case *fverify:
		v, err := intervalreload.Verify(cfg.Server, 0, cfg.Timeout())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(v)
		return
	case *fonce:
		loc, err := cfg.Location()
		if err != nil {
			log.Fatal(err)
		}
		resp, err := intervalreload.NewTimeService(cfg.Server, cfg.Timeout(), loc).GetCurrentTime(loc)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(resp.Text)
		return
	}

	s, err := intervalreload.NewService(cfg)
	if err != nil {
		log.Fatal(err)
	}
	r := s.Refresher()
	r.OnUpdate = func(resp intervalreload.TimeResponse) {
		fmt.Printf("%s  [%s]\n", resp.Text, r.Label())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go toggleOnEnter(r)

	if err = s.Serve(ctx); err != nil {
		log.Fatal(err)
	}
}

// loadConfig falls back to the defaults when the default file is absent.
func loadConfig(path string) (*intervalreload.Config, error) {
	cfg, err := intervalreload.NewConfigFromFile(path)
	if errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath {
		return intervalreload.DefaultConfig(), nil
	}
	return cfg, err
}

// each line on stdin presses the activate/inactivate button
func toggleOnEnter(r *intervalreload.Refresher) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		r.Toggle()
		log.Printf("timer %s, button %q", r.State(), r.Label())
	}
}
