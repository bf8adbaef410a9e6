package monitoring

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"epic_notifier/internal/domain/entity"
	"epic_notifier/internal/domain/service/pipeline"
)

const namespace = "epic_notifier"

type Metrics struct {
	runs           *prometheus.CounterVec
	offersFound    *prometheus.CounterVec
	runErrors      *prometheus.CounterVec
	offersNotified prometheus.Counter
	emailsSent     prometheus.Counter
	emailsFailed   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished pipeline runs by kind and status.",
		}, []string{"kind", "status"}),
		offersFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_found_total",
			Help:      "Offers reported as found by kind.",
		}, []string{"kind"}),
		runErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_errors_total",
			Help:      "Error events by kind.",
		}, []string{"kind"}),
		offersNotified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offers_notified_total",
			Help:      "Offers included in successfully sent digests.",
		}),
		emailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Digest emails delivered.",
		}),
		emailsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_failed_total",
			Help:      "Digest emails that could not be delivered.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.runs, m.offersFound, m.runErrors, m.offersNotified, m.emailsSent, m.emailsFailed,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("reg.Register: %w", err)
		}
	}

	return m, nil
}

// ForRun returns an observer counting the events of one run of kind.
func (m *Metrics) ForRun(kind pipeline.Kind) pipeline.Observer {
	return pipeline.ObserverFunc(func(_ context.Context, ev entity.Event) {
		switch ev.Type {
		case entity.EventFound:
			m.offersFound.WithLabelValues(string(kind)).Inc()
		case entity.EventError:
			m.runErrors.WithLabelValues(string(kind)).Inc()
		case entity.EventStatus:
			m.runs.WithLabelValues(string(kind), string(ev.Status)).Inc()
		case entity.EventLog, entity.EventProgress, entity.EventComplete:
		}
	})
}

// InstrumentDispatcher counts the outcome of every digest sent through d.
func (m *Metrics) InstrumentDispatcher(d pipeline.Dispatcher) pipeline.Dispatcher {
	return &instrumentedDispatcher{next: d, metrics: m}
}

type instrumentedDispatcher struct {
	next    pipeline.Dispatcher
	metrics *Metrics
}

func (d *instrumentedDispatcher) Send(ctx context.Context, recipients []string, offers []entity.GameOffer) bool {
	ok := d.next.Send(ctx, recipients, offers)

	if ok {
		d.metrics.emailsSent.Add(float64(len(recipients)))
		d.metrics.offersNotified.Add(float64(len(offers)))
	} else if len(recipients) > 0 && len(offers) > 0 {
		d.metrics.emailsFailed.Add(float64(len(recipients)))
	}

	return ok
}
