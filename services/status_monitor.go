package services

import (
	"log"
	"time"
)

// StatusMonitor periodically runs the order status refresh so items keep
// moving through the kitchen even when nobody asks for a receipt.
type StatusMonitor struct {
	Orders   *OrderService
	StopChan chan struct{}
	Interval time.Duration
}

func NewStatusMonitor(orders *OrderService, interval time.Duration) *StatusMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StatusMonitor{
		Orders:   orders,
		StopChan: make(chan struct{}),
		Interval: interval,
	}
}

func (sm *StatusMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.refresh()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *StatusMonitor) Stop() {
	close(sm.StopChan)
}

func (sm *StatusMonitor) refresh() {
	advanced, err := sm.Orders.RefreshOrderStatuses(nil)
	if err != nil {
		log.Printf("Error refreshing order statuses: %v", err)
		return
	}
	if advanced > 0 {
		log.Printf("Advanced %d order item(s)", advanced)
	}
}
