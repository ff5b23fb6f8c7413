package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"factory/internal/core/ports"
)

// Job is one reconciliation pass.
type Job interface {
	Run(ctx context.Context)
}

// JobManager schedules all background jobs on one cron instance.
type JobManager struct {
	cron   *cron.Cron
	spec   string
	jobs   map[string]Job
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

// NewJobManager creates the manager with both reconciliation jobs. spec is a cron
// expression with a seconds field or a descriptor such as "@every 1m".
func NewJobManager(
	uowFactory ports.UnitOfWorkFactory,
	reconciler Reconciler,
	spec string,
	logger *zap.Logger,
) *JobManager {
	logger = logger.With(zap.String("component", "job_manager"))
	ctx, cancel := context.WithCancel(context.Background())
	return &JobManager{
		cron: newCron(logger),
		spec: spec,
		jobs: map[string]Job{
			"control order reconciliation":    NewControlOrderReconciliationJob(uowFactory, reconciler, logger),
			"production order reconciliation": NewProductionOrderReconciliationJob(uowFactory, reconciler, logger),
		},
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// StartAll registers every job and starts the scheduler. Nothing runs when a job
// cannot be registered.
func (jm *JobManager) StartAll() error {
	for name, job := range jm.jobs {
		if _, err := jm.cron.AddFunc(jm.spec, func() { job.Run(jm.ctx) }); err != nil {
			return fmt.Errorf("failed to schedule %s job: %w", name, err)
		}
	}

	jm.cron.Start()
	jm.logger.Info("jobs started", zap.String("spec", jm.spec), zap.Int("jobs", len(jm.jobs)))
	return nil
}

// RunAll runs every job once, synchronously.
func (jm *JobManager) RunAll(ctx context.Context) {
	for _, job := range jm.jobs {
		job.Run(ctx)
	}
}

// StopAll cancels running jobs and waits for them to return.
func (jm *JobManager) StopAll() {
	jm.cancel()
	<-jm.cron.Stop().Done()
	jm.logger.Info("jobs stopped")
}
