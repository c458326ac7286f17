package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/tablemate/waiterd/events"
	"github.com/tablemate/waiterd/models"
)

// EventMonitor tails the order event feed and pushes new entries to the
// websocket hub. Events written before the monitor started are skipped.
type EventMonitor struct {
	DB       *gorm.DB
	Hub      *events.Hub
	StopChan chan struct{}
	Interval time.Duration

	lastEventID uint
}

func NewEventMonitor(db *gorm.DB, hub *events.Hub, interval time.Duration) *EventMonitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &EventMonitor{
		DB:       db,
		Hub:      hub,
		StopChan: make(chan struct{}),
		Interval: interval,
	}
}

func (em *EventMonitor) Start() {
	var latest models.OrderEvent
	err := em.DB.Order("id desc").First(&latest).Error
	if err == nil {
		em.lastEventID = latest.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error reading last order event: %v", err)
	}

	go func() {
		ticker := time.NewTicker(em.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				em.poll()
			case <-em.StopChan:
				return
			}
		}
	}()
}

func (em *EventMonitor) Stop() {
	close(em.StopChan)
}

func (em *EventMonitor) poll() {
	var batch []models.OrderEvent
	if err := em.DB.
		Where("id > ?", em.lastEventID).
		Order("id asc").
		Limit(100).
		Find(&batch).Error; err != nil {
		log.Printf("Error polling order events: %v", err)
		return
	}

	for _, event := range batch {
		em.Hub.Broadcast(event.Event, event)
		em.lastEventID = event.ID
	}
}
