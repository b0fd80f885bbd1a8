// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package exporter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bureau-foundation/gfxinfo/lib/hwinfo"
)

const namespace = "gfxinfo"

// Source is the subset of a resolved GPU the exporter reads.
// *gfxinfo.GPU implements it.
type Source interface {
	Kind() hwinfo.Kind
	Descriptor() hwinfo.Descriptor
	Snapshot() hwinfo.Snapshot
}

// Collector is a prometheus.Collector over one GPU. Identity is
// exported as the labels of a constant info gauge; telemetry gauges
// carry no labels.
type Collector struct {
	source Source

	info        *prometheus.Desc
	vramTotal   *prometheus.Desc
	vramUsed    *prometheus.Desc
	load        *prometheus.Desc
	temperature *prometheus.Desc
}

// NewCollector returns a collector reading from source.
func NewCollector(source Source) *Collector {
	return &Collector{
		source: source,
		info: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "gpu", "info"),
			"Identity of the active GPU. Always 1.",
			[]string{"vendor", "model", "family", "device_id", "adapter"}, nil),
		vramTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "gpu", "vram_total_bytes"),
			"Total dedicated video memory in bytes, 0 when unknown.",
			nil, nil),
		vramUsed: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "gpu", "vram_used_bytes"),
			"Dedicated video memory in use in bytes.",
			nil, nil),
		load: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "gpu", "load_percent"),
			"GPU utilization in percent (0-100).",
			nil, nil),
		temperature: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "gpu", "temperature_celsius"),
			"GPU die temperature in degrees Celsius, 0 when unknown.",
			nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.info
	ch <- c.vramTotal
	ch <- c.vramUsed
	ch <- c.load
	ch <- c.temperature
}

// Collect reads a single snapshot and emits every gauge from it.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	descriptor := c.source.Descriptor()
	snapshot := c.source.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.info, prometheus.GaugeValue, 1,
		descriptor.Vendor,
		descriptor.Model,
		descriptor.Family,
		fmt.Sprintf("0x%04X", descriptor.DeviceID),
		c.source.Kind().String())
	ch <- prometheus.MustNewConstMetric(c.vramTotal, prometheus.GaugeValue, float64(snapshot.TotalVRAMBytes))
	ch <- prometheus.MustNewConstMetric(c.vramUsed, prometheus.GaugeValue, float64(snapshot.UsedVRAMBytes))
	ch <- prometheus.MustNewConstMetric(c.load, prometheus.GaugeValue, float64(snapshot.LoadPercent))
	ch <- prometheus.MustNewConstMetric(c.temperature, prometheus.GaugeValue, float64(snapshot.TemperatureMillidegrees)/1000)
}

// NewRegistry returns a registry holding the GPU collector and the
// standard process and Go runtime collectors.
func NewRegistry(source Source) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		NewCollector(source),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return registry
}

// Server serves /metrics and /healthz for one GPU.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	logger     *slog.Logger
}

// NewServer returns a server that will listen on address. Pass ":0"
// to let the OS pick a free port.
func NewServer(address string, registry *prometheus.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog:      slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		ErrorHandling: promhttp.ContinueOnError,
	}))
	mux.HandleFunc("/healthz", handleHealthz)

	return &Server{
		httpServer: &http.Server{
			Addr:              address,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// Start binds the listener and serves in a background goroutine.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("exporter: listen %s: %w", s.httpServer.Addr, err)
	}
	s.listener = listener
	s.httpServer.Addr = listener.Addr().String()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("exporter stopped", "error", err)
		}
	}()
	s.logger.Info("exporter listening", "address", s.httpServer.Addr)
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
