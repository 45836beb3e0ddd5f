package tasks

import (
	"context"
	"runtime/debug"
	"time"

	"roamcms/internal/editor"
	"roamcms/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Idle sessions are abandoned drafts. They hold image bytes, so they
// get swept instead of living until restart.
const (
	sessionMaxIdle   = 2 * time.Hour
	sessionSweepSpec = "@every 30m"
)

// Scheduler runs the background jobs: keeping the cached provider
// profile fresh and sweeping abandoned editing sessions.
type Scheduler struct {
	cron           *cron.Cron
	profileService *services.ProfileService
	sessions       *editor.Store
	log            zerolog.Logger
}

func NewScheduler(profileService *services.ProfileService, sessions *editor.Store, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		profileService: profileService,
		sessions:       sessions,
		log:            log,
	}
}

// Start registers the jobs and launches the cron loop. refreshSpec is
// the cron expression for the profile refresh.
func (s *Scheduler) Start(refreshSpec string) {
	s.addTask(refreshSpec, "资料刷新", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.profileService.Refresh(ctx); err != nil {
			s.log.Warn().Err(err).Msg("刷新提供商资料失败")
		}
	})

	s.addTask(sessionSweepSpec, "会话清理", func() {
		if removed := s.sessions.Sweep(sessionMaxIdle); removed > 0 {
			s.log.Info().Int("removed", removed).Msg("已清理过期的编辑会话")
		}
	})

	s.cron.Start()
	s.log.Info().Msg("后台任务调度器已启动")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) addTask(spec, taskName string, job func()) {
	_, err := s.cron.AddFunc(spec, s.recoveryWrapper(taskName, job))
	if err != nil {
		s.log.Error().Err(err).Str("task", taskName).Msg("添加定时任务失败")
	}
}

func (s *Scheduler) recoveryWrapper(taskName string, job func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error().
					Str("task", taskName).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("定时任务执行时发生 panic")
			}
		}()
		job()
	}
}
