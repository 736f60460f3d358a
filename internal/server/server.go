// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package server publishes a generated report directory over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"devtool/internal/logger"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

// Server serves the files of a single directory.
type Server struct {
	dir    string
	router *mux.Router
}

// New builds a server for dir. Nothing is bound until ListenAndServe.
func New(dir string) *Server {
	router := mux.NewRouter()
	router.PathPrefix("/").Handler(logRequests(http.FileServer(http.Dir(dir))))
	return &Server{dir: dir, router: router}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe binds addr, calls ready with the public URL once the socket
// is accepting, and serves until ctx is done. Cancellation is a normal stop
// and returns nil. The listener is released on every return path.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(url string)) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("report directory %s: %w", s.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("report directory %s is not a directory", s.dir)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	defer listener.Close()

	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	url := "http://" + displayAddr(addr, listener.Addr())
	logger.Info("coverage server starting", "url", url, "dir", s.dir)
	if ready != nil {
		ready(url)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("coverage server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("coverage server shutting down", "url", url)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("coverage server shutdown failed: %w", err)
	}
	<-serveErr
	return nil
}

// displayAddr keeps the configured host name (localhost reads better than
// 127.0.0.1) but takes the port from the bound socket so ":0" works.
func displayAddr(requested string, bound net.Addr) string {
	host, _, err := net.SplitHostPort(requested)
	if err != nil || host == "" {
		return bound.String()
	}
	tcp, ok := bound.(*net.TCPAddr)
	if !ok {
		return bound.String()
	}
	return net.JoinHostPort(host, fmt.Sprintf("%d", tcp.Port))
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("coverage request", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
