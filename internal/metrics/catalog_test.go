package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegister_Idempotent(t *testing.T) {
	Register()
	Register()

	CatalogRequestsTotal.WithLabelValues("search_movie", "200").Inc()

	n, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "cinefind_catalog_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n == 0 {
		t.Error("expected catalog requests to be exported on the default registry")
	}
}
