package dom

type watcher struct {
	match func(*Element) bool
	fn    func(*Element)
}

// WatchOnce calls fn for the first element satisfying match, then unsubscribes.
// If such an element already exists, fn runs immediately and nothing is
// subscribed. The returned cancel func is safe to call more than once.
func (d *Document) WatchOnce(match func(*Element) bool, fn func(*Element)) (cancel func()) {
	var existing *Element
	d.Root().walk(func(e *Element) bool {
		if match(e) {
			existing = e
			return false
		}
		return true
	})
	if existing != nil {
		fn(existing)
		return func() {}
	}

	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.watchers[id] = &watcher{match: match, fn: fn}
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.watchers, id)
		d.mu.Unlock()
	}
}

// Watching returns the number of live watchers.
func (d *Document) Watching() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.watchers)
}

func (d *Document) notify(e *Element) {
	d.mu.Lock()
	var fire []*watcher
	for id, w := range d.watchers {
		if w.match(e) {
			fire = append(fire, w)
			delete(d.watchers, id)
		}
	}
	d.mu.Unlock()

	for _, w := range fire {
		w.fn(e)
	}
}

// HasClassMatcher returns a matcher for WatchOnce.
func HasClassMatcher(class string) func(*Element) bool {
	return func(e *Element) bool { return e.HasClass(class) }
}
