// Package sse streams peak log changes to browsers as Server-Sent Events.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/starford/peaklog/internal/models"
)

// Event types emitted by the broker.
const (
	TypeClimbAdded      = "climb.added"
	TypeClimbRemoved    = "climb.removed"
	TypeLogReloaded     = "log.reloaded"
	TypeProgressUpdated = "progress.updated"
)

const (
	clientBuffer      = 64
	defaultThrottle   = 2 * time.Second
	heartbeatInterval = 25 * time.Second
)

// Event is one message on the stream.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type published struct {
	ev Event
	// followProgress asks the loop for a throttled progress.updated hint.
	followProgress bool
}

// Broker fans events out to subscribed clients.
//
// A single goroutine owns the client set, the event sequence and the
// progress throttle; every public method talks to it over channels.
type Broker struct {
	throttle time.Duration

	join  chan chan []byte
	leave chan chan []byte
	in    chan published
	count chan chan int

	quit   chan struct{}
	done   chan struct{}
	closed atomic.Bool
}

// NewBroker starts a broker. Log changes are followed by a progress.updated
// hint at most once per progressThrottle (2s when zero or negative).
func NewBroker(progressThrottle time.Duration) *Broker {
	if progressThrottle <= 0 {
		progressThrottle = defaultThrottle
	}
	b := &Broker{
		throttle: progressThrottle,
		join:     make(chan chan []byte),
		leave:    make(chan chan []byte),
		in:       make(chan published, 256),
		count:    make(chan chan int),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go b.loop()
	return b
}

// frame renders ev in text/event-stream format.
func frame(id uint64, ev Event) ([]byte, error) {
	payload, err := json.Marshal(ev.Data)
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "id: %d\nevent: %s\ndata: %s\n\n", id, ev.Type, payload), nil
}

func (b *Broker) loop() {
	defer close(b.done)

	clients := make(map[chan []byte]struct{})
	var seq uint64
	var lastProgress time.Time

	send := func(ev Event) {
		seq++
		msg, err := frame(seq, ev)
		if err != nil {
			return
		}
		for ch := range clients {
			select {
			case ch <- msg:
			default:
				// Slow client; drop rather than stall everyone else.
			}
		}
	}

	for {
		select {
		case <-b.quit:
			for ch := range clients {
				close(ch)
			}
			return

		case ch := <-b.join:
			clients[ch] = struct{}{}

		case ch := <-b.leave:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case p := <-b.in:
			send(p.ev)
			if p.followProgress {
				if now := time.Now(); now.Sub(lastProgress) >= b.throttle {
					lastProgress = now
					send(Event{Type: TypeProgressUpdated, Data: struct{}{}})
				}
			}

		case resp := <-b.count:
			resp <- len(clients)
		}
	}
}

// Close stops the loop and closes every client channel. It is idempotent.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.quit)
	}
	<-b.done
}

// Subscribe registers a client. The returned channel is closed when the
// client unsubscribes or the broker shuts down.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, clientBuffer)
	if b.closed.Load() {
		close(ch)
		return ch
	}
	select {
	case b.join <- ch:
	case <-b.done:
		close(ch)
	}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.leave <- ch:
	case <-b.done:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}
	resp := make(chan int, 1)
	select {
	case b.count <- resp:
	case <-b.done:
		return 0
	}
	select {
	case n := <-resp:
		return n
	case <-b.done:
		return 0
	}
}

// Publish sends ev to all clients as is.
func (b *Broker) Publish(ev Event) {
	b.submit(published{ev: ev})
}

// ClimbAdded announces a newly logged climb.
func (b *Broker) ClimbAdded(e models.LogEntry) {
	b.submit(published{followProgress: true, ev: Event{Type: TypeClimbAdded, Data: map[string]any{
		"peak_name":    e.PeakName,
		"date_climbed": e.DateClimbed.String(),
	}}})
}

// ClimbRemoved announces that n entries for name on date were removed.
func (b *Broker) ClimbRemoved(name string, date models.Date, n int) {
	b.submit(published{followProgress: true, ev: Event{Type: TypeClimbRemoved, Data: map[string]any{
		"peak_name":    name,
		"date_climbed": date.String(),
		"removed":      n,
	}}})
}

// LogReloaded announces that the log was re-read from storage.
func (b *Broker) LogReloaded(entries int) {
	b.submit(published{followProgress: true, ev: Event{Type: TypeLogReloaded, Data: map[string]any{
		"entries": entries,
	}}})
}

func (b *Broker) submit(p published) {
	if b.closed.Load() {
		return
	}
	select {
	case b.in <- p:
	case <-b.done:
	}
}

// ServeHTTP streams events to one client (GET /api/events). A comment line
// is written periodically so idle proxies keep the connection open.
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("retry: 3000\n\n"))
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	ping := time.NewTicker(heartbeatInterval)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ping.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
