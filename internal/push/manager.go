// Package push fans events out to registered observers, asynchronously
// through a worker pool. Delivery is fire-and-forget: a failed observer is
// logged and the event moves on; queued recipients reconcile via the
// read-side API on their next sync.
package push

import (
	"context"
	"log"
	"sync"

	"chatapp/internal/common"
)

type Manager struct {
	observers    map[string]common.Observer
	eventChannel chan common.PushEvent
	workerPool   int
	ctx          context.Context
	cancel       context.CancelFunc
	mu           sync.RWMutex
	wg           sync.WaitGroup
}

var _ common.Subject = (*Manager)(nil)

func NewManager(workerPoolSize, bufferSize int) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		observers:    make(map[string]common.Observer),
		eventChannel: make(chan common.PushEvent, bufferSize),
		workerPool:   workerPoolSize,
		ctx:          ctx,
		cancel:       cancel,
	}

	for i := 0; i < workerPoolSize; i++ {
		m.wg.Add(1)
		go m.processEvents()
	}

	return m
}

func (m *Manager) Subscribe(observer common.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers[observer.Name()] = observer
	log.Printf("Observer %s subscribed", observer.Name())
}

func (m *Manager) Unsubscribe(observer common.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.observers, observer.Name())
	log.Printf("Observer %s unsubscribed", observer.Name())
}

func (m *Manager) Notify(event common.PushEvent) {
	m.mu.RLock()
	observers := make([]common.Observer, 0, len(m.observers))
	for _, obs := range m.observers {
		observers = append(observers, obs)
	}
	m.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(event); err != nil {
			log.Printf("Observer %s update failed: %v", observer.Name(), err)
		}
	}
}

func (m *Manager) NotifyAsync(event common.PushEvent) {
	select {
	case m.eventChannel <- event:

	case <-m.ctx.Done():
		return
	default:
		log.Printf("Push channel full, dropping event: %s", event.Type)
	}
}

func (m *Manager) processEvents() {
	defer m.wg.Done()

	for {
		select {
		case event := <-m.eventChannel:
			m.Notify(event)
		case <-m.ctx.Done():
			return
		}
	}
}

func (m *Manager) Shutdown() {
	m.cancel()
	m.wg.Wait()
	log.Println("Push manager shutdown complete")
}
