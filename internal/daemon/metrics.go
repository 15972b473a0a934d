package daemon

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	reg *prometheus.Registry

	totalExpenses prometheus.Gauge
	totalMeals    prometheus.Gauge
	mealRate      prometheus.Gauge
	perMeal       prometheus.Gauge
	members       prometheus.Gauge
	budget        prometheus.Gauge
	openTasks     prometheus.Gauge

	polls      prometheus.Counter
	pollErrors prometheus.Counter
}

func newMetrics() *metrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "messbook", Name: name, Help: help})
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: "messbook", Name: name, Help: help})
	}

	m := &metrics{
		reg:           prometheus.NewRegistry(),
		totalExpenses: gauge("total_expenses", "Sum of all recorded expenses."),
		totalMeals:    gauge("total_meals", "Sum of all recorded meals."),
		mealRate:      gauge("meal_rate", "Cost of one meal."),
		perMeal:       gauge("per_meal_budget", "Projected budget per remaining meal this month."),
		members:       gauge("members", "Members on the roster."),
		budget:        gauge("budget", "Monthly meal budget."),
		openTasks:     gauge("open_tasks", "Tasks not yet completed."),
		polls:         counter("polls_total", "Ledger polls performed."),
		pollErrors:    counter("poll_errors_total", "Ledger polls that failed."),
	}
	m.reg.MustRegister(
		m.totalExpenses, m.totalMeals, m.mealRate, m.perMeal,
		m.members, m.budget, m.openTasks,
		m.polls, m.pollErrors,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *metrics) observe(s Snapshot) {
	m.totalExpenses.Set(s.TotalExpenses)
	m.totalMeals.Set(float64(s.TotalMeals))
	m.mealRate.Set(s.MealRate)
	m.perMeal.Set(s.PerMeal)
	m.members.Set(float64(s.Members))
	m.budget.Set(s.Budget)
	m.openTasks.Set(float64(s.OpenTasks))
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
