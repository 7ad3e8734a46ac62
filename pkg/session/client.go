package session

import "sync"

// Client caches a decoded session for in-process consumers and notifies
// subscribers when the session changes. It is the process-local counterpart
// of the browser's session state: one holder per authenticated principal.
type Client struct {
	issuer *Issuer

	mu        sync.RWMutex
	claims    Claims
	token     string
	active    bool
	listeners map[int]func(Claims, bool)
	nextID    int
}

// NewClient creates a session consumer bound to an issuer.
func NewClient(issuer *Issuer) *Client {
	return &Client{
		issuer:    issuer,
		listeners: make(map[int]func(Claims, bool)),
	}
}

// Current returns the cached claims and whether a session is active. It
// never blocks on I/O.
func (c *Client) Current() (Claims, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.active {
		return Claims{}, false
	}
	return c.claims, true
}

// Token returns the raw token of the active session, or empty.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SignIn decodes and caches a session token, then notifies subscribers.
// An invalid token leaves the client unauthenticated and returns the
// issuer's error.
func (c *Client) SignIn(token string) error {
	claims, err := c.issuer.Decode(token)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.claims = claims
	c.token = token
	c.active = true
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(claims, true)
	}
	return nil
}

// SignOut discards the held session. Subsequent Current calls report
// unauthenticated. The operation is idempotent.
func (c *Client) SignOut() {
	c.mu.Lock()
	wasActive := c.active
	c.claims = Claims{}
	c.token = ""
	c.active = false
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	if !wasActive {
		return
	}
	for _, fn := range listeners {
		fn(Claims{}, false)
	}
}

// Subscribe registers a listener called on every sign-in and sign-out with
// the new claims and authentication state. The returned function removes
// the listener.
func (c *Client) Subscribe(fn func(claims Claims, authenticated bool)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// snapshotListeners must be called with c.mu held.
func (c *Client) snapshotListeners() []func(Claims, bool) {
	out := make([]func(Claims, bool), 0, len(c.listeners))
	for _, fn := range c.listeners {
		out = append(out, fn)
	}
	return out
}
