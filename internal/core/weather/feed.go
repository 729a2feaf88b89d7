package weather

import (
	"sync"

	"weatherhome.app/internal/ports"
)

// EventKind identifies which sequence changed
type EventKind string

const (
	EventList    EventKind = "list"
	EventCurrent EventKind = "current"
)

// Event notifies subscribers that a sequence was replaced
type Event struct {
	Kind    EventKind
	Version uint64
}

// Feed holds the latest weather sequences pushed by the weather service.
// Every publish replaces the previous sequence; nothing is merged.
type Feed struct {
	mu          sync.RWMutex
	list        []ListItem
	current     []CurrentSnapshot
	version     uint64
	ready       chan struct{}
	readyClosed bool
	nextID      int
	subscribers map[int]chan Event
}

// NewFeed creates an empty feed
func NewFeed() *Feed {
	return &Feed{
		ready:       make(chan struct{}),
		subscribers: make(map[int]chan Event),
	}
}

// PublishCityList implements ports.WeatherSink
func (f *Feed) PublishCityList(items []ports.CityWeather) {
	list := make([]ListItem, 0, len(items))
	for _, item := range items {
		list = append(list, ListItemFromPorts(item))
	}

	f.mu.Lock()
	f.list = list
	f.version++
	f.broadcastLocked(Event{Kind: EventList, Version: f.version})
	f.mu.Unlock()
}

// PublishCurrentWeather implements ports.WeatherSink
func (f *Feed) PublishCurrentWeather(items []ports.CityWeather) {
	current := make([]CurrentSnapshot, 0, len(items))
	for _, item := range items {
		current = append(current, SnapshotFromPorts(item))
	}

	f.mu.Lock()
	f.current = current
	f.version++
	if len(current) > 0 && !f.readyClosed {
		close(f.ready)
		f.readyClosed = true
	}
	f.broadcastLocked(Event{Kind: EventCurrent, Version: f.version})
	f.mu.Unlock()
}

// List returns a copy of the latest city list
func (f *Feed) List() []ListItem {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]ListItem, len(f.list))
	copy(out, f.list)
	return out
}

// Current returns a copy of the latest current-location sequence
func (f *Feed) Current() []CurrentSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]CurrentSnapshot, len(f.current))
	copy(out, f.current)
	return out
}

// HasList reports whether a city list has been published
func (f *Feed) HasList() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.list != nil
}

// CurrentReady is closed once a non-empty current-location sequence has arrived
func (f *Feed) CurrentReady() <-chan struct{} {
	return f.ready
}

// Find returns the list item with the given id
func (f *Feed) Find(id int64) (ListItem, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, item := range f.list {
		if item.ID == id {
			return item, true
		}
	}
	return ListItem{}, false
}

// Subscribe registers for change events. The returned function unsubscribes.
func (f *Feed) Subscribe() (<-chan Event, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	ch := make(chan Event, 1)
	f.subscribers[id] = ch

	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subscribers[id]; ok {
			close(sub)
			delete(f.subscribers, id)
		}
	}
}

// broadcastLocked delivers the newest event; slow subscribers only see the latest one.
// Must be called while holding the mutex.
func (f *Feed) broadcastLocked(ev Event) {
	for _, ch := range f.subscribers {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
