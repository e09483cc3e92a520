package controllers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// HealthController serves the liveness and store-health endpoints (§6, §7).
// The health endpoint always returns 200: an unreachable store is reported
// in the body, not the status code, so orchestration probes don't flap a
// healthy process during a transient store blip.
type HealthController struct {
	client *mongo.Client
}

func NewHealthController(client *mongo.Client) *HealthController {
	return &HealthController{client: client}
}

type healthBody struct {
	Status string `json:"status"`
}

func (c *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, map[string]string{"message": "survivor-pool is running"})
}

func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx, nil); err != nil {
		WriteOK(w, healthBody{Status: "unhealthy"})
		return
	}
	WriteOK(w, healthBody{Status: "healthy"})
}
