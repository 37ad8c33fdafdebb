// Package worker runs resume analysis requests received over AMQP.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
)

// RoutingKeyPrefix prefixes the request ID in the routing key of every response.
const RoutingKeyPrefix = "analysis."

// Config configures the consumer pool.
type Config struct {
	URL      string
	Queue    string
	Exchange string
	Workers  int
	Prefetch int
	Timeout  time.Duration // per request extraction timeout; 0 means none

	// ResumeRoot confines local resume paths to one directory; relative paths are
	// resolved against it. Empty means the queue is trusted and any local path
	// the process can read is analyzed. Remote locations go to the analyzer's
	// fetchers, which are enabled only by configuration.
	ResumeRoot string
}

// Worker consumes AnalysisRequests and publishes AnalysisResponses.
type Worker struct {
	cfg      Config
	analyzer *pipeline.Analyzer
	validate *validator.Validate
	now      func() time.Time
}

// New returns a worker; call Run to start consuming.
func New(cfg Config, analyzer *pipeline.Analyzer) *Worker {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Worker{
		cfg:      cfg,
		analyzer: analyzer,
		validate: validator.New(),
		now:      time.Now,
	}
}

// errMalformed marks a message that can never be processed.
var errMalformed = errors.New("malformed analysis request")

// Handle analyzes one message body and returns the response to publish with its
// routing key. An error means the body is malformed and must not be redelivered.
func (w *Worker) Handle(ctx context.Context, body []byte) (string, []byte, error) {
	var req AnalysisRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return "", nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if err := w.validate.Struct(req); err != nil {
		return "", nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	ctx = logging.WithRequestID(ctx, req.RequestID)
	if w.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.cfg.Timeout)
		defer cancel()
	}

	resp := AnalysisResponse{RequestID: req.RequestID}
	location, err := w.resolve(req.Resume)
	if err != nil {
		logging.FromContext(ctx).Warn("refusing resume location",
			slog.String("resume", req.Resume), slog.Any("error", err))
		resp.Error = err.Error()
	} else {
		resp.Result = w.analyzer.AnalyzeContext(ctx, location, req.CandidateProfile)
		logging.FromContext(ctx).Info("resume analyzed",
			slog.String("resume", location),
			slog.Int("ats_score", resp.Result.ATS.Score))
	}
	resp.CompletedAt = w.now().UTC()

	out, err := json.Marshal(resp)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return RoutingKeyPrefix + req.RequestID, out, nil
}

// resolve applies ResumeRoot to a local resume path.
func (w *Worker) resolve(location string) (string, error) {
	if w.cfg.ResumeRoot == "" || w.analyzer.IsRemote(location) {
		return location, nil
	}
	root, err := filepath.Abs(w.cfg.ResumeRoot)
	if err != nil {
		return "", fmt.Errorf("invalid resume root: %w", err)
	}
	path := location
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	rel, err := filepath.Rel(root, filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("resume %q is outside the upload directory", location)
	}
	return filepath.Join(root, rel), nil
}

type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// process handles a delivery end to end and settles it.
func (w *Worker) process(ctx context.Context, d amqp.Delivery, pub publisher) {
	key, resp, err := w.Handle(ctx, d.Body)
	if err != nil {
		slog.Warn("rejecting message", slog.String("message_id", d.MessageId), slog.Any("error", err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			slog.Error("failed to nack message", slog.Any("error", nackErr))
		}
		return
	}

	err = pub.Publish(w.cfg.Exchange, key, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: d.CorrelationId,
		Timestamp:     w.now(),
		Body:          resp,
	})
	if err != nil {
		slog.Error("failed to publish response", slog.String("routing_key", key), slog.Any("error", err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			slog.Error("failed to nack message", slog.Any("error", nackErr))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		slog.Error("failed to ack message", slog.Any("error", err))
	}
}

// Run starts the consumer pool and blocks until ctx ends or a consumer fails.
func (w *Worker) Run(ctx context.Context) error {
	conn, err := amqp.Dial(w.cfg.URL)
	if err != nil {
		return fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	defer conn.Close()

	if err := w.declare(conn); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	for i := range w.cfg.Workers {
		g.Go(func() error {
			return w.consume(gCtx, conn, i+1)
		})
	}
	slog.Info("worker pool started",
		slog.Int("workers", w.cfg.Workers),
		slog.String("queue", w.cfg.Queue),
		slog.String("exchange", w.cfg.Exchange))

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (w *Worker) declare(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		w.cfg.Queue, // queue name
		true,        // durable (survives broker restarts)
		false,       // auto-delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.ExchangeDeclare(
		w.cfg.Exchange, // name
		"topic",        // kind
		true,           // durable
		false,          // auto-delete
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	return nil
}

func (w *Worker) consume(ctx context.Context, conn *amqp.Connection, id int) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("worker %d: error opening rabbitmq channel: %w", id, err)
	}
	defer ch.Close()

	if w.cfg.Prefetch > 0 {
		if err := ch.Qos(w.cfg.Prefetch, 0, false); err != nil {
			return fmt.Errorf("worker %d: failed to set qos: %w", id, err)
		}
	}

	tag := fmt.Sprintf("analyzer-%d", id)
	msgs, err := ch.Consume(
		w.cfg.Queue, // queue name
		tag,         // consumer tag
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("worker %d: error consuming rabbitmq messages: %w", id, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("worker %d: delivery channel closed", id)
			}
			w.process(ctx, d, ch)
		}
	}
}
