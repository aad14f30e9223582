package timesync

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	plerrors "github.com/kwgt/powerlog/pkg/common/errors"
)

// Resync runs periodic synchronization passes on a cron schedule. The
// one-shot boot synchronization stays the primary mechanism; use Resync on
// hosts that record for days at a time.
type Resync struct {
	cron *cron.Cron
	id   cron.EntryID
}

// ScheduleResync starts a cron-driven resync. The spec uses the standard
// five-field cron format plus descriptors ("@hourly", "@daily"). onError,
// when non-nil, receives failures of individual passes.
func (s *Synchronizer) ScheduleResync(spec string, onError func(error)) (*Resync, error) {
	c := cron.New()

	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(),
			s.config.JoinTimeout+s.config.QueryTimeout*2)
		defer cancel()

		if err := s.Initialize(ctx); err != nil && onError != nil {
			onError(err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: cron spec %q: %v", plerrors.ErrInvalidArgument, spec, err)
	}

	c.Start()
	return &Resync{cron: c, id: id}, nil
}

// Next returns the time of the next scheduled pass.
func (r *Resync) Next() time.Time {
	return r.cron.Entry(r.id).Next
}

// Stop cancels the schedule and waits for an in-flight pass to finish.
func (r *Resync) Stop() {
	<-r.cron.Stop().Done()
}
