// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

import (
	"sync"
)

// the shutdown and completed channels for a background
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle to a running set of processes
type T struct {
	s    []shutdown
	once sync.Once
}

// Process - a long running task
//
// Run must return soon after shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// ProcessFunc - allow an ordinary function to be a Process
type ProcessFunc func(args interface{}, shutdown <-chan struct{})

// Run - see Process
func (f ProcessFunc) Run(args interface{}, shutdown <-chan struct{}) {
	f(args, shutdown)
}

// Processes - list of processes to start
type Processes []Process

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := &T{
		s: make([]shutdown, len(processes)),
	}

	// start each background
	for i, p := range processes {
		shutdown := make(chan struct{})
		finished := make(chan struct{})
		register.s[i].shutdown = shutdown
		register.s[i].finished = finished
		go func(p Process) {
			defer close(finished)
			p.Run(args, shutdown)
		}(p)
	}
	return register
}

// Stop - stop a set of background processes and wait for them
//
// calling Stop more than once is harmless
func (t *T) Stop() {
	if nil == t {
		return
	}
	t.once.Do(func() {

		// shutdown all background tasks
		for _, shutdown := range t.s {
			close(shutdown.shutdown)
		}

		// wait for finished
		for _, shutdown := range t.s {
			<-shutdown.finished
		}
	})
}
