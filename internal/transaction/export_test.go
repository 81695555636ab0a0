package transaction

// Recomputes reports how many times Filtered rebuilt its result.
func (p *Page) Recomputes() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.recomputes
}
