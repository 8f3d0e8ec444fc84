// Package health exposes the standard gRPC health service, reporting
// NOT_SERVING while the database stops answering pings.
package health

import (
	"context"
	"log"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Checker keeps the serving status of the health server in line with the database.
type Checker struct {
	Server   *health.Server
	DB       Pinger
	Interval time.Duration
}

// Check pings once and records the resulting status for the overall service ("").
func (c *Checker) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	st := healthpb.HealthCheckResponse_SERVING
	if err := c.DB.PingContext(ctx); err != nil {
		log.Printf("health: db ping failed: %v", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.Server.SetServingStatus("", st)
	return st
}

// Run checks on every tick until ctx is cancelled.
func (c *Checker) Run(ctx context.Context) {
	interval := c.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		c.Check(ctx)
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// StartGRPC starts the health server on addr and returns a shutdown function
// and the bound address.
func StartGRPC(addr string, db Pinger) (func(context.Context) error, string, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", err
	}

	hs := health.NewServer()
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	ctx, stopChecks := context.WithCancel(context.Background())
	checker := &Checker{Server: hs, DB: db}
	checker.Check(ctx)
	go checker.Run(ctx)

	go func() { _ = srv.Serve(lis) }()

	return func(ctx context.Context) error {
		stopChecks()
		hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, lis.Addr().String(), nil
}
