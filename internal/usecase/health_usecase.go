package usecase

import (
	"context"
	"time"
)

// HealthStatus is the body served by the health endpoints
type HealthStatus struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

type healthUsecase struct {
	now func() time.Time
}

func NewHealthUsecase(now func() time.Time) HealthUsecase {
	if now == nil {
		now = time.Now
	}
	return &healthUsecase{now: now}
}

func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Message:   "Portfolio Backend Server is running!",
		Status:    "healthy",
		Timestamp: u.now().UTC().Format(time.RFC3339Nano),
	}
}
