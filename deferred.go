// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yargs

import "sync"

// Deferred is a single-settlement completion cell. A builder or handler that
// cannot finish synchronously returns one; the orchestrator suspends on Wait
// until Resolve or Reject is called. Settling more than once is a no-op.
//
// Internally every builder outcome is normalized to a Deferred: a synchronous
// return is an already-settled Deferred, and a callback-style builder is
// adapted into one that settles when the callback fires.
type Deferred struct {
	done chan struct{}
	once sync.Once
	err  error
}

// NewDeferred returns an unsettled Deferred.
func NewDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// Resolve settles the Deferred successfully.
func (d *Deferred) Resolve() {
	d.settle(nil)
}

// Reject settles the Deferred with err.
func (d *Deferred) Reject(err error) {
	d.settle(err)
}

func (d *Deferred) settle(err error) {
	d.once.Do(func() {
		d.err = err
		close(d.done)
	})
}

// Wait blocks until the Deferred settles and returns its error, if any.
func (d *Deferred) Wait() error {
	<-d.done
	return d.err
}

// settled returns a Deferred that has already completed with err.
func settled(err error) *Deferred {
	d := NewDeferred()
	d.settle(err)
	return d
}
