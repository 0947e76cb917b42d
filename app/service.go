package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/routeopt/fleetsim/api"
	"github.com/routeopt/fleetsim/app/plugins"
	"github.com/routeopt/fleetsim/config"
	coremetrics "github.com/routeopt/fleetsim/core/metrics"
	coremqtt "github.com/routeopt/fleetsim/core/mqtt"
	"github.com/routeopt/fleetsim/core/routes"
	"github.com/routeopt/fleetsim/core/simulation"
	"github.com/routeopt/fleetsim/core/simulation/logging"
	"github.com/routeopt/fleetsim/infra/equipment"
	"github.com/routeopt/fleetsim/infra/logger"
	"github.com/routeopt/fleetsim/infra/metrics"
	"github.com/routeopt/fleetsim/infra/mqtt"
	_ "github.com/routeopt/fleetsim/infra/routes"
	"github.com/routeopt/fleetsim/internal/eventbus"
)

// Service wires the simulator to its route source, catalog, metrics sinks,
// run log store, event bus and MQTT publisher.
type Service struct {
	Simulator *simulation.Simulator
	Catalog   *equipment.Catalog
	cfg       *config.Config
	bus       *eventbus.Bus
	sink      coremetrics.MetricsSink
	publisher coremqtt.Publisher
	source    routes.Source
	store     logging.LogStore
	log       logger.Logger
}

// New creates a Service from the configuration. Anything opened before a
// failing step is released again.
func New(cfg *config.Config) (svc *Service, err error) {
	logg := logger.New("service")
	svc = &Service{cfg: cfg, log: logg}
	defer func() {
		if err != nil {
			if cerr := svc.Close(); cerr != nil {
				logg.Warnf("release after failed start: %v", cerr)
			}
			svc = nil
		}
	}()

	if svc.Catalog, err = equipment.Load(cfg.Equipment); err != nil {
		return nil, fmt.Errorf("equipment catalog: %w", err)
	}
	if svc.source, err = routes.NewSource(cfg.Routes); err != nil {
		return nil, fmt.Errorf("route source: %w", err)
	}
	if svc.sink, err = coremetrics.NewMetricsSink(cfg.Metrics.Sinks); err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	if svc.store, err = plugins.NewLogStore(cfg.RunLog); err != nil {
		return nil, fmt.Errorf("run log store: %w", err)
	}

	svc.bus = eventbus.New()
	sim, err := simulation.NewSimulator(svc.Catalog.Resolver(cfg.Simulation.Defaults.DefaultTurnMinutes), svc.source, svc.sink, svc.bus, logger.New("simulator"))
	if err != nil {
		return nil, fmt.Errorf("simulator: %w", err)
	}
	sim.SetLogStore(svc.store)
	sim.SetSeatMaps(svc.Catalog)
	sim.SetTimeout(cfg.Simulation.Timeout())
	svc.Simulator = sim

	if cfg.MQTT.Enabled {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.publisher = client
	}
	return svc, nil
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	return api.NewRouter(api.Deps{
		Simulator: s.Simulator,
		Defaults:  s.cfg.Simulation.Defaults,
		LogsToken: s.cfg.Server.LogsToken,
		Log:       logger.New("http"),
	})
}

// StartBackground starts the event collector and the MQTT notifier. The
// returned channel is closed once both have stopped after ctx is canceled.
func (s *Service) StartBackground(ctx context.Context) <-chan struct{} {
	collected := metrics.StartEventCollector(ctx, s.bus, s.sink, logger.New("metrics_collector"))
	var notified <-chan struct{}
	if s.publisher != nil {
		notified = mqtt.StartRunNotifier(ctx, s.bus, s.publisher, s.cfg.MQTT.TopicPrefix, logger.New("run_notifier"))
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-collected
		if notified != nil {
			<-notified
		}
	}()
	return done
}

// Run serves the HTTP API and blocks until the context is cancelled or the
// listener fails. Background workers have stopped when it returns.
func (s *Service) Run(ctx context.Context) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	background := s.StartBackground(ctx)
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("HTTP API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		s.log.Errorf("http shutdown: %v", serr)
	}
	stop()
	<-background
	return err
}

// Close releases resources held by the service. It is safe on a partially
// built Service.
func (s *Service) Close() error {
	var errs []error
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("run log store: %w", err))
		}
	}
	if c, ok := s.source.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("route source: %w", err))
		}
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	if p, ok := s.publisher.(*mqtt.PahoClient); ok {
		p.Disconnect()
	}
	if s.bus != nil {
		s.bus.Close()
	}
	return errors.Join(errs...)
}
