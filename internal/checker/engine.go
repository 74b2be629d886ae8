package checker

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Engine sequences one check run: jitter, fetch, classify, record,
// notify. Every sub-step failure is caught at its boundary, logged,
// and folded into the Outcome; the engine itself never returns an
// error and never panics on component failure.
type Engine struct {
	cfg        Config
	fetcher    Fetcher
	classifier Classifier
	sink       StatusSink
	notifier   Notifier
	jitter     JitterPolicy
	shots      ScreenshotStore
	history    HistoryStore
	events     EventPublisher
	clock      Clock
	ids        IDGenerator
	logger     *zap.Logger
}

// NewEngine wires the pipeline components together.
func NewEngine(
	cfg Config,
	fetcher Fetcher,
	classifier Classifier,
	sink StatusSink,
	notifier Notifier,
	jitter JitterPolicy,
	shots ScreenshotStore,
	history HistoryStore,
	events EventPublisher,
	clock Clock,
	ids IDGenerator,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:        cfg,
		fetcher:    fetcher,
		classifier: classifier,
		sink:       sink,
		notifier:   notifier,
		jitter:     jitter,
		shots:      shots,
		history:    history,
		events:     events,
		clock:      clock,
		ids:        ids,
		logger:     logger,
	}
}

// Run executes one complete check and reports the outcome. The status
// sink is written at most once per run; verdict notifications go out
// only for an available product, failure notifications whenever the
// fetch breaks.
func (e *Engine) Run(ctx context.Context) Outcome {
	TotalChecks.Inc()

	runID, err := e.ids.NewID()
	if err != nil {
		e.logger.Warn("Run ID generation failed", zap.Error(err))
	}
	out := Outcome{RunID: runID, Verdict: VerdictUnknown}
	log := e.logger.With(zap.String("run_id", runID), zap.String("product", e.cfg.ProductName))

	delay := e.jitter.Delay()
	log.Info("Starting stock check",
		zap.String("url", e.cfg.URL),
		zap.Duration("jitter", delay),
	)
	pause(ctx, delay)

	snap, err := e.fetcher.Fetch(ctx, e.cfg.URL)
	if err != nil {
		return e.failRun(ctx, out, log, err)
	}
	snap.RunID = runID
	log.Info("Page fetched",
		zap.Duration("duration", snap.Duration),
		zap.Int("text_bytes", len(snap.Text)),
	)

	verdict := e.classifier.Classify(snap)
	out.Verdict = verdict
	TotalVerdicts.WithLabelValues(string(verdict)).Inc()
	log.Info("Verdict produced", zap.String("verdict", string(verdict)))

	if verdict == VerdictAvailable && len(snap.Screenshot) > 0 {
		name := screenshotObjectName(e.cfg.ProductName, snap.FetchedAt)
		uri, saveErr := e.shots.Save(ctx, name, snap.Screenshot)
		if saveErr != nil {
			log.Error("Screenshot persist failed", zap.Error(saveErr))
			out.StepErrs = append(out.StepErrs, saveErr)
		} else {
			snap.ScreenshotURI = uri
			log.Info("Screenshot saved", zap.String("uri", uri))
		}
	}

	if writeErr := e.sink.Write(ctx, verdict); writeErr != nil {
		TotalStatusWriteErrors.Inc()
		log.Error("Status sink write failed", zap.Error(writeErr))
		out.StepErrs = append(out.StepErrs, writeErr)
	}

	notified := false
	if verdict == VerdictAvailable {
		if notifyErr := e.notifier.Notify(ctx, e.verdictNotification(snap)); notifyErr != nil {
			TotalNotificationErrors.Inc()
			log.Error("Verdict notification failed", zap.Error(notifyErr))
			out.StepErrs = append(out.StepErrs, notifyErr)
		} else {
			TotalNotifications.Inc()
			notified = true
		}
	}

	e.recordHistory(ctx, &out, log, CheckRecord{
		RunID:         runID,
		URL:           e.cfg.URL,
		Product:       e.cfg.ProductName,
		Verdict:       verdict,
		Token:         verdict.SinkToken(),
		ScreenshotURI: snap.ScreenshotURI,
		Notified:      notified,
		CheckedAt:     snap.FetchedAt,
		DurationMs:    snap.Duration.Milliseconds(),
	})
	e.publishEvent(ctx, &out, log, VerdictEvent{
		RunID:     runID,
		URL:       e.cfg.URL,
		Product:   e.cfg.ProductName,
		Verdict:   verdict,
		CheckedAt: snap.FetchedAt,
	})

	log.Info("Check finished", zap.Int("exit_code", out.ExitCode()))
	return out
}

// failRun handles a fetch failure: best-effort UNKNOWN status write
// and an elevated-priority failure notification, so operators learn
// the monitor itself is unhealthy, not just the product.
func (e *Engine) failRun(ctx context.Context, out Outcome, log *zap.Logger, fetchErr error) Outcome {
	TotalFetchErrors.Inc()
	out.FetchErr = fetchErr
	log.Error("Page fetch failed", zap.Error(fetchErr))

	if writeErr := e.sink.Write(ctx, VerdictUnknown); writeErr != nil {
		TotalStatusWriteErrors.Inc()
		log.Error("Status sink write failed", zap.Error(writeErr))
		out.StepErrs = append(out.StepErrs, writeErr)
	}

	failure := Notification{
		Title:    "Stock Check Error",
		Body:     fmt.Sprintf("Error checking %s: %v", e.cfg.ProductName, fetchErr),
		Priority: PriorityElevated,
	}
	if notifyErr := e.notifier.Notify(ctx, failure); notifyErr != nil {
		TotalNotificationErrors.Inc()
		log.Error("Failure notification failed", zap.Error(notifyErr))
		out.StepErrs = append(out.StepErrs, notifyErr)
	} else {
		TotalNotifications.Inc()
	}

	e.recordHistory(ctx, &out, log, CheckRecord{
		RunID:      out.RunID,
		URL:        e.cfg.URL,
		Product:    e.cfg.ProductName,
		Verdict:    VerdictUnknown,
		Token:      VerdictUnknown.SinkToken(),
		ErrorText:  fetchErr.Error(),
		CheckedAt:  e.clock.Now(),
		DurationMs: 0,
	})

	log.Info("Check finished", zap.Int("exit_code", out.ExitCode()))
	return out
}

func (e *Engine) verdictNotification(snap Snapshot) Notification {
	body := fmt.Sprintf("%s is IN STOCK! \U0001F389 as of %s\n%s",
		e.cfg.ProductName,
		snap.FetchedAt.Format("2006-01-02 15:04:05"),
		e.cfg.URL,
	)
	return Notification{
		Title:    "Stock Check",
		Body:     body,
		Priority: PriorityNormal,
	}
}

func (e *Engine) recordHistory(ctx context.Context, out *Outcome, log *zap.Logger, rec CheckRecord) {
	if err := e.history.RecordCheck(ctx, rec); err != nil {
		log.Error("History record failed", zap.Error(err))
		out.StepErrs = append(out.StepErrs, err)
	}
}

func (e *Engine) publishEvent(ctx context.Context, out *Outcome, log *zap.Logger, ev VerdictEvent) {
	if err := e.events.PublishVerdict(ctx, ev); err != nil {
		log.Error("Verdict event publish failed", zap.Error(err))
		out.StepErrs = append(out.StepErrs, err)
	}
}
