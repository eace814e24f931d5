package dbus

import (
	"context"
	"errors"
	"sync"

	"github.com/godbus/dbus/v5"
)

type call struct {
	method string
	args   []interface{}
}

// fakeObject answers Notify with increasing ids and records every call.
type fakeObject struct {
	dbus.BusObject

	mu        sync.Mutex
	calls     []call
	nextID    uint32
	notifyErr error
	closeErr  error
}

func (o *fakeObject) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.calls = append(o.calls, call{method: method, args: args})
	switch method {
	case methodNotify:
		if o.notifyErr != nil {
			return &dbus.Call{Err: o.notifyErr}
		}
		o.nextID++
		return &dbus.Call{Body: []interface{}{o.nextID}}
	case methodClose:
		return &dbus.Call{Err: o.closeErr}
	default:
		return &dbus.Call{Err: errors.New("unexpected method " + method)}
	}
}

func (o *fakeObject) callsTo(method string) []call {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []call
	for _, c := range o.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

// fakeConn hands out a single fakeObject and lets tests emit signals.
type fakeConn struct {
	obj *fakeObject

	mu      sync.Mutex
	matches int
	removed int
	signals chan<- *dbus.Signal
}

func newFakeConn() *fakeConn {
	return &fakeConn{obj: &fakeObject{}}
}

func (c *fakeConn) Object(string, dbus.ObjectPath) dbus.BusObject {
	return c.obj
}

func (c *fakeConn) AddMatchSignal(...dbus.MatchOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matches++
	return nil
}

func (c *fakeConn) RemoveMatchSignal(...dbus.MatchOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removed++
	return nil
}

func (c *fakeConn) Signal(ch chan<- *dbus.Signal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signals = ch
}

func (c *fakeConn) RemoveSignal(chan<- *dbus.Signal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signals = nil
}

func (c *fakeConn) emit(name string, body ...interface{}) {
	c.mu.Lock()
	ch := c.signals
	c.mu.Unlock()
	ch <- &dbus.Signal{
		Path: DBusPath,
		Name: name,
		Body: body,
	}
}
