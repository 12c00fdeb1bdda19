package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "carrental"

// Handler serves the default registry, which every metric in this package registers with.
func Handler() http.Handler {
	return promhttp.Handler()
}
