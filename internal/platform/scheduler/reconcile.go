// Package scheduler runs periodic reconciliation jobs on a cron schedule;
// what a pass does is supplied by the caller as a ReconcileFunc.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/nielsbergsma/blimpco/internal/platform/logging"
)

// ReconcileFunc performs one reconciliation pass.
type ReconcileFunc func(ctx context.Context) error

// Reconciler runs a ReconcileFunc on a cron schedule.
type Reconciler struct {
	cron   *cron.Cron
	logger *logging.Logger
}

func NewReconciler(logger *logging.Logger) *Reconciler {
	return &Reconciler{cron: cron.New(), logger: logger}
}

// Schedule registers fn to run on spec (standard 5-field cron syntax).
func (r *Reconciler) Schedule(spec string, fn ReconcileFunc) error {
	_, err := r.cron.AddFunc(spec, func() {
		if err := fn(context.Background()); err != nil {
			r.logger.WithError(err).Error("reconciliation pass failed")
		}
	})
	return err
}

func (r *Reconciler) Start() { r.cron.Start() }
func (r *Reconciler) Stop()  { r.cron.Stop() }
