package intervalreload

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service wires a configured Source, its Refresher and the metric endpoint.
type Service struct {
	cfg       *Config
	stats     *statistic
	registry  *prometheus.Registry
	source    Source
	refresher *Refresher

	metricAddr net.Addr
}

func NewService(cfg *Config) (s *Service, err error) {
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	s = &Service{cfg: cfg}
	if cfg.Metric != "" {
		s.registry = prometheus.NewRegistry()
		s.stats = newStatistic(s.registry)
	}

	switch cfg.Source {
	case SourceLocal:
		s.source = LocalSource{Location: loc}
	default:
		ts := NewTimeService(cfg.Server, cfg.Timeout(), loc)
		ts.stats = s.stats
		s.source = ts
	}
	s.refresher = NewRefresher(s.source, cfg.Interval())
	return
}

func (s *Service) Refresher() *Refresher {
	return s.refresher
}

func (s *Service) Source() Source {
	return s.source
}

// MetricAddr is the bound metric address once Serve is listening.
func (s *Service) MetricAddr() net.Addr {
	return s.metricAddr
}

// Serve runs until ctx is done. The refresher is started when AutoStart
// is set and is always stopped on return.
func (s *Service) Serve(ctx context.Context) (err error) {
	var srv *http.Server
	if s.registry != nil {
		srv, err = s.listenMetric()
		if err != nil {
			return
		}
	}

	if s.cfg.AutoStart {
		s.refresher.Start()
	}
	Info.Printf("serving %s source=%s interval=%s", s.cfg.Server, s.cfg.Source, s.cfg.Interval())

	<-ctx.Done()
	s.refresher.Stop()

	if srv != nil {
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if serr := srv.Shutdown(sctx); serr != nil {
			Warn.Printf("metric shutdown: %s", serr)
		}
	}
	return nil
}

func (s *Service) listenMetric() (*http.Server, error) {
	ln, err := net.Listen("tcp", s.cfg.Metric)
	if err != nil {
		return nil, fmt.Errorf("metric listen %s: %w", s.cfg.Metric, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux}
	s.metricAddr = ln.Addr()

	Info.Printf("Listen metric: %s", ln.Addr())
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Error.Print("metric serve: ", err)
		}
	}()
	return srv, nil
}
