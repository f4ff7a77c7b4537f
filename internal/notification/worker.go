package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"heavyrent-backend/internal/model"
	"heavyrent-backend/internal/store"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// queuePerWorker bounds how many pending rentals each worker may lag behind.
const queuePerWorker = 64

// WorkerPool alerts machine owners about new rental requests.
type WorkerPool struct {
	size    int
	jobs    chan uint
	rentals store.RentalStore
	subs    store.SubscriptionStore
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, rentals store.RentalStore, subs store.SubscriptionStore, webpushOptions *webpush.Options) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan uint, size*queuePerWorker),
		rentals: rentals,
		subs:    subs,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case rentalID := <-wp.jobs:
			wp.notifyOwner(ctx, rentalID)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a rental for owner notification. It never blocks; when the
// queue is full the job is dropped.
func (wp *WorkerPool) Dispatch(rentalID uint) {
	select {
	case wp.jobs <- rentalID:
	default:
		log.Printf("Notification queue full; dropping rental %d", rentalID)
	}
}

// notifyOwner pushes a message to every subscription of the rented machine's owner.
func (wp *WorkerPool) notifyOwner(ctx context.Context, rentalID uint) {
	rental, err := wp.rentals.FindRentalByID(ctx, rentalID)
	if err != nil {
		log.Printf("Error fetching rental %d: %v", rentalID, err)
		return
	}
	if rental.Machine == nil {
		log.Printf("Rental %d has no machine loaded; skipping", rentalID)
		return
	}

	subscriptions, err := wp.subs.ListSubscriptionsByUser(ctx, rental.Machine.CreatedByID)
	if err != nil {
		log.Printf("Error fetching subscriptions for user %d: %v", rental.Machine.CreatedByID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d notifications for rental %d", len(subscriptions), rentalID)
	message := fmt.Sprintf("New rental request for %s: %s to %s",
		rental.Machine.Name,
		rental.StartDate.Format("2006-01-02"),
		rental.EndDate.Format("2006-01-02"))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.subs.DeleteSubscription(ctx, sub.Endpoint, 0); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
