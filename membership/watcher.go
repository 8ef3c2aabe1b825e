// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package membership

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Run - background process reloading the file when it changes
//
// the directory is watched rather than the file so that editors that
// replace the file are followed
func (r *Registry) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.log

	filePath, err := filepath.Abs(filepath.Clean(r.fileName))
	if nil != err {
		log.Errorf("file: %q  error: %s", r.fileName, err)
		<-shutdown
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher error: %s", err)
		<-shutdown
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(filePath)); nil != err {
		log.Errorf("watcher add error: %s", err)
		<-shutdown
		return
	}

	log.Infof("watching: %q", filePath)
loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != filePath {
				continue loop
			}
			log.Debugf("file event: %v", event)

			if fileRemoved(event) {
				log.Warnf("file: %q removed, keeping current members", filePath)
				continue loop
			}
			if fileChanged(event) {
				_ = r.Reload() // error already logged
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}
	log.Info("watcher stopped")
}

func fileRemoved(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func fileChanged(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Chmod == fsnotify.Chmod
}
