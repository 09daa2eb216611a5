// Package worker runs CV text extraction jobs pulled from the asynq queue.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/artem13815/cvdesk/pkg/cv"
	"github.com/artem13815/cvdesk/pkg/extract"
	"github.com/artem13815/cvdesk/pkg/queue"
)

// ProfileBuilder turns extracted text into the stored extraction.
type ProfileBuilder interface {
	Build(ctx context.Context, text string) cv.Extraction
}

// Processor is plugged into the asynq worker loop.
type Processor struct {
	repo     cv.ProcessingRepository
	store    cv.ObjectStorage
	builder  ProfileBuilder
	notifier cv.StatusNotifier
	now      func() time.Time
}

func NewProcessor(repo cv.ProcessingRepository, store cv.ObjectStorage, builder ProfileBuilder, notifier cv.StatusNotifier) *Processor {
	return &Processor{repo: repo, store: store, builder: builder, notifier: notifier, now: time.Now}
}

// Handler registers the extract job handler.
func (p *Processor) Handler() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.ExtractCVTask, p.handleExtract)
	return mux
}

func (p *Processor) handleExtract(ctx context.Context, task *asynq.Task) error {
	job, err := queue.DecodeExtract(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return p.Process(ctx, job)
}

// Process moves one CV through processing to completed or failed.
func (p *Processor) Process(ctx context.Context, job cv.ExtractJob) error {
	if err := p.repo.MarkProcessing(ctx, job.CVID); err != nil {
		if errors.Is(err, cv.ErrNotFound) || errors.Is(err, cv.ErrInvalidTransition) {
			// Deleted meanwhile, or already done by an earlier delivery.
			log.Printf("skip cv %s: %v", job.CVID, err)
			return nil
		}
		return err
	}
	p.notify(ctx, job, cv.StatusProcessing, "")

	failure := func(err error) error {
		log.Printf("extract failed for %s: %v", job.CVID, err)
		if mErr := p.repo.MarkFailed(ctx, job.CVID, err.Error()); mErr != nil {
			log.Printf("mark failed %s: %v", job.CVID, mErr)
		}
		p.notify(ctx, job, cv.StatusFailed, err.Error())
		if errors.Is(err, extract.ErrUnsupportedFormat) || errors.Is(err, extract.ErrEmptyText) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	data, err := p.store.Get(ctx, job.StorageKey)
	if err != nil {
		return failure(err)
	}
	text, err := extract.Text(job.ContentType, job.FileName, data)
	if err != nil {
		return failure(err)
	}
	ex := p.builder.Build(ctx, text)
	if err := p.repo.MarkCompleted(ctx, job.CVID, ex); err != nil {
		return failure(err)
	}
	p.notify(ctx, job, cv.StatusCompleted, "")
	log.Printf("cv %s processed (%d chars, %d skills)", job.CVID, len(text), len(ex.Skills))
	return nil
}

func (p *Processor) notify(ctx context.Context, job cv.ExtractJob, status cv.Status, reason string) {
	if p.notifier == nil {
		return
	}
	ev := cv.StatusEvent{CVID: job.CVID, OwnerID: job.OwnerID, Status: status, Reason: reason, At: p.now().UTC()}
	if err := p.notifier.Notify(ctx, ev); err != nil {
		log.Printf("notify %s: %v", job.CVID, err)
	}
}
