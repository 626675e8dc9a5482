package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/naderabdullah/cardforge/svc"
)

const shutdownTimeout = 10 * time.Second

// Service runs an http.Server under the application core's service
// lifecycle.
type Service struct {
	Ctx    context.Context    // Service Context
	Cancel context.CancelFunc // Service Context CancelFunc
	state  int                // internal service state
	done   chan error         // Shutdown Error Channel
	Server *http.Server
}

// Ensure web.Service implements svc.Service interface
var _ svc.Service = (*Service)(nil)

func NewService(parentCtx context.Context, addr string, router http.Handler) *Service {
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	return &Service{
		Ctx:    svcCtx,
		Cancel: svcCancel,
		state:  svc.StateREADY,
		done:   make(chan error, 1),
		Server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
	}
}

func (s *Service) Name() string {
	return "WebService"
}

func (s *Service) Start() error {
	if s.state != svc.StateREADY {
		return errors.New("cannot start. not ready")
	}
	s.state = svc.StateRUNNING
	go func() {
		log.Printf("[INFO][Web] listening on %s ...", s.Server.Addr)
		if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.done <- err
			return
		}
		s.done <- nil
	}()
	return nil
}

func (s *Service) Stop() {
	if s.state != svc.StateRUNNING {
		log.Println("[ERROR][Web] cannot stop. not running")
		return
	}
	s.state = svc.StateSTOPPED
	s.Cancel()

	// In-flight requests get shutdownTimeout to finish
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Server.Shutdown(ctx); err != nil {
		log.Printf("[ERROR][Web] shutdown: %v", err)
	}
}

func (s *Service) Done() <-chan error {
	return s.done
}
