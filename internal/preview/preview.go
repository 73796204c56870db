/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package preview runs raster generation off the UI loop. A single worker
// goroutine renders read-only configuration snapshots; a newer request simply
// supersedes a queued one, and a newer result supersedes an unconsumed one.
// In-flight renders are not cancelled.
package preview

import (
	"context"
	"image"
	"log/slog"
	"time"

	"argobooks/internal/ledger"
	applog "argobooks/internal/log"
	"argobooks/internal/model"
	"argobooks/internal/render"
)

type request struct {
	seq  int64
	cfg  *model.ReportConfiguration // snapshot owned by the worker
	ov   render.Overlay
	data ledger.Provider
}

// Result is a completed document raster. Seq increases per request, so a
// consumer can discard frames older than the last one shown.
type Result struct {
	Seq     int64
	Image   *image.RGBA
	Elapsed time.Duration
}

// Service owns the render worker.
type Service struct {
	reqs    chan request
	results chan Result
	done    chan struct{}
	seq     int64
	log     *slog.Logger

	// Translate is passed through to the renderer; set before first Request.
	Translate func(string) string
}

func NewService() *Service {
	s := &Service{
		reqs:    make(chan request, 1),
		results: make(chan Result, 1),
		done:    make(chan struct{}),
		log:     applog.WithComponent("preview"),
	}
	go s.run()
	return s
}

// Request schedules a render of cfg. The snapshot is taken synchronously on
// the caller's thread, so the caller may keep mutating cfg immediately after.
// A request still waiting in the queue is replaced.
func (s *Service) Request(cfg *model.ReportConfiguration, data ledger.Provider, ov render.Overlay) {
	s.seq++
	req := request{seq: s.seq, cfg: cfg.Clone(), ov: ov, data: data}
	for {
		select {
		case s.reqs <- req:
			return
		default:
			// drop the superseded queued request
			select {
			case <-s.reqs:
			default:
			}
		}
	}
}

// Results delivers completed rasters; only the newest unconsumed frame is kept.
func (s *Service) Results() <-chan Result { return s.results }

// Close stops the worker after the in-flight render, if any, completes.
func (s *Service) Close() { close(s.done) }

func (s *Service) run() {
	for {
		select {
		case <-s.done:
			return
		case req := <-s.reqs:
			start := time.Now()
			r := render.New(req.cfg)
			r.Data = req.data
			r.Translate = s.Translate
			img := r.RenderDocument(context.Background(), req.ov)
			res := Result{Seq: req.seq, Image: img, Elapsed: time.Since(start)}
			s.log.Debug("preview rendered",
				slog.Int64("seq", req.seq),
				slog.Duration("elapsed", res.Elapsed))
			s.deliver(res)
		}
	}
}

// deliver replaces a stale undelivered frame instead of blocking the worker.
func (s *Service) deliver(res Result) {
	for {
		select {
		case s.results <- res:
			return
		default:
			select {
			case <-s.results:
			default:
			}
		}
	}
}
