package catalog

import (
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/naderabdullah/cardforge/svc"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce batches the burst of events an editor save produces.
const reloadDebounce = 500 * time.Millisecond

// Watcher hot-reloads a DirStore when its design dir changes. Runs as
// a service under the application core.
type Watcher struct {
	Store *DirStore

	state   atomic.Int32 // svc.State*
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan error
}

// Ensure Watcher implements svc.Service interface
var _ svc.Service = (*Watcher)(nil)

func NewWatcher(store *DirStore) *Watcher {
	return &Watcher{
		Store:  store,
		stopCh: make(chan struct{}),
		doneCh: make(chan error, 1),
	}
}

func (w *Watcher) Name() string { return "catalog-watcher" }

func (w *Watcher) Start() error {
	if !w.state.CompareAndSwap(svc.StateREADY, svc.StateRUNNING) {
		return nil
	}
	var err error
	if w.watcher, err = fsnotify.NewWatcher(); err != nil {
		return err
	}
	if err = w.watcher.Add(w.Store.Dir); err != nil {
		return err
	}
	log.Printf("[INFO][catalog] watching %s", w.Store.Dir)
	go w.run()
	return nil
}

func (w *Watcher) Stop() {
	if !w.state.CompareAndSwap(svc.StateRUNNING, svc.StateSTOPPED) {
		return
	}
	close(w.stopCh)
}

func (w *Watcher) Done() <-chan error {
	return w.doneCh
}

func (w *Watcher) run() {
	defer func() {
		err := w.watcher.Close()
		w.doneCh <- err
	}()

	var pending bool
	debounce := time.NewTimer(reloadDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-w.stopCh:
			log.Println("[INFO][catalog] watcher stopping")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if pending {
				if !debounce.Stop() {
					<-debounce.C
				}
			}
			pending = true
			debounce.Reset(reloadDebounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ERROR][catalog] watcher: %v", err)

		case <-debounce.C:
			pending = false
			if err := w.Store.Load(); err != nil {
				// keep serving the previous snapshot
				log.Printf("[ERROR][catalog] reload failed: %v", err)
			}
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasSuffix(event.Name, DesignSuffix) ||
		strings.HasSuffix(event.Name, MarkupSuffix)
}
