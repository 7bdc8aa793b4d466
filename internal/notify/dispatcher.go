package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"lakesideBack/internal/models"
)

// Pusher sends a best-effort push notification about a new pending review.
type Pusher interface {
	NotifyNewReview(ctx context.Context, rev models.Review)
}

// Broadcaster fans a new-review event out to connected admin dashboards.
type Broadcaster interface {
	BroadcastNewReview(rev models.Review)
}

type job struct {
	kind    string
	to      string
	subject string
	body    string
}

// Dispatcher owns a buffered queue and one worker goroutine. Enqueueing
// never blocks the request path: when the queue is full the message is
// dropped and logged. Delivery failures are logged and never reach the
// caller of submit or moderate, which has already committed by the time the
// worker runs.
type Dispatcher struct {
	mailer      Mailer
	site        Site
	sendTimeout time.Duration

	// Optional extra channels for admin_new_review events.
	Push Pusher
	Hub  Broadcaster

	infoLog  *log.Logger
	errorLog *log.Logger

	queue chan job
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(mailer Mailer, site Site, infoLog, errorLog *log.Logger) *Dispatcher {
	return &Dispatcher{
		mailer:      mailer,
		site:        site,
		sendTimeout: 15 * time.Second,
		infoLog:     infoLog,
		errorLog:    errorLog,
		queue:       make(chan job, 64),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for j := range d.queue {
			d.deliver(j)
		}
	}()
}

// Stop drains the queue and waits for the worker to finish.
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) deliver(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.mailer.Send(ctx, j.to, j.subject, j.body); err != nil {
		d.errorLog.Printf("notify: error sending %s email to %s: %v", j.kind, j.to, err)
		return
	}
	d.infoLog.Printf("notify: %s email sent to %s", j.kind, j.to)
}

func (d *Dispatcher) enqueue(j job) {
	if d.mailer == nil || j.to == "" {
		return
	}
	select {
	case d.queue <- j:
	default:
		d.errorLog.Printf("notify: queue full, dropping %s email to %s", j.kind, j.to)
	}
}

func (d *Dispatcher) enqueueEvent(kind string, rev models.Review) {
	subject, body, err := Compose(kind, d.site, rev)
	if err != nil {
		d.errorLog.Printf("notify: %v", err)
		return
	}
	d.enqueue(job{kind: kind, to: recipient(kind, d.site, rev), subject: subject, body: body})
}

// ReviewSubmitted notifies the guest and the admin about a fresh submission.
func (d *Dispatcher) ReviewSubmitted(rev models.Review) {
	d.enqueueEvent(EventGuestConfirmation, rev)
	d.enqueueEvent(EventAdminNewReview, rev)

	if d.Hub != nil {
		d.Hub.BroadcastNewReview(rev)
	}
	if d.Push != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
			defer cancel()
			d.Push.NotifyNewReview(ctx, rev)
		}()
	}
}

// ReviewApproved tells the guest their review went live.
func (d *Dispatcher) ReviewApproved(rev models.Review) {
	d.enqueueEvent(EventReviewApproved, rev)
}

// Deliver queues an arbitrary message, used by the contact form and the
// pending-review reminder.
func (d *Dispatcher) Deliver(to, subject, body string) {
	d.enqueue(job{kind: "direct", to: to, subject: subject, body: body})
}

// AdminEmail exposes the configured moderation inbox.
func (d *Dispatcher) AdminEmail() string {
	return d.site.AdminEmail
}
