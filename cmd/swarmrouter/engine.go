package main

import (
	"fmt"

	"github.com/hiveworks/swarmrouter/internal/catalog"
	"github.com/hiveworks/swarmrouter/internal/config"
	"github.com/hiveworks/swarmrouter/internal/delegate"
	"github.com/hiveworks/swarmrouter/pkg/models"
)

// eventBufferSize bounds the lifecycle event queue between the
// delegator and the log consumer.
const eventBufferSize = 64

// engine bundles a delegator with the resources it owns.
type engine struct {
	delegator  *delegate.Delegator
	logger     *delegate.DebugLogger
	watcher    *catalog.Watcher
	emitter    *delegate.EventEmitter
	eventsDone chan struct{}
}

// Close releases the engine's file handles and watches. The event
// stream is drained into the log before the log file closes.
func (e *engine) Close() {
	if e.watcher != nil {
		e.watcher.Close()
	}
	if e.emitter != nil {
		e.emitter.Close()
		<-e.eventsDone
	}
	if e.logger != nil {
		e.logger.Close()
	}
}

// consumeEvents trails lifecycle events into the debug log until the
// emitter closes.
func (e *engine) consumeEvents() {
	defer close(e.eventsDone)
	for ev := range e.emitter.Events() {
		line := fmt.Sprintf("event %s task=%s", ev.Type, ev.TaskID)
		if ev.BeeID != "" {
			line += " bee=" + ev.BeeID
		}
		if ev.Tokens > 0 {
			line += fmt.Sprintf(" tokens=%d", ev.Tokens)
		}
		if ev.Err != nil {
			line += fmt.Sprintf(" error=%v", ev.Err)
		} else if ev.Message != "" {
			line += " " + ev.Message
		}
		e.logger.Log("%s", line)
	}
}

// buildEngine assembles a delegator from configuration: debug logger,
// dance catalog (with optional file override and hot reload), ledger
// capacity, request defaults, and the lifecycle event stream.
func buildEngine(cfg *config.Config) (*engine, error) {
	logger := delegate.NopLogger()
	if cfg.Log.Path != "" {
		var err error
		logger, err = delegate.NewDebugLogger(cfg.Log.Path)
		if err != nil {
			return nil, fmt.Errorf("open debug log: %w", err)
		}
	}

	cat := catalog.Default()
	var watcher *catalog.Watcher
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.FromFile(cfg.Catalog.Path)
		if err != nil {
			logger.Close()
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		cat = loaded

		if cfg.Catalog.Watch {
			watcher, err = catalog.Watch(cat, cfg.Catalog.Path, func(path string, err error) {
				if err != nil {
					logger.Log("catalog reload failed for %s: %v", path, err)
					return
				}
				logger.Log("catalog reloaded from %s", path)
			})
			if err != nil {
				logger.Close()
				return nil, fmt.Errorf("watch catalog: %w", err)
			}
		}
	}

	emitter := delegate.NewEventEmitter(eventBufferSize)
	d := delegate.New(
		delegate.WithCatalog(cat),
		delegate.WithCapacity(cfg.Ledger.Capacity),
		delegate.WithDefaultMaxTokens(cfg.Defaults.MaxTokens),
		delegate.WithDefaultPriority(models.TaskPriority(cfg.Defaults.Priority)),
		delegate.WithLogger(logger),
		delegate.WithEmitter(emitter),
	)

	eng := &engine{
		delegator:  d,
		logger:     logger,
		watcher:    watcher,
		emitter:    emitter,
		eventsDone: make(chan struct{}),
	}
	go eng.consumeEvents()
	return eng, nil
}
