// Package timesync sets the wall clock before a recording session starts.
//
// The power monitor timestamps every sample, so the clock has to be right
// before the first byte is recorded. A Synchronizer performs one pass: it
// joins the configured access point with credentials from a two-line file
// (SSID, password), queries the configured NTP servers in order until one
// answers, applies the time through a Clock, and leaves the access point
// again.
//
//	sync, err := timesync.New(timesync.Config{
//		CredentialsPath: "/etc/powerlog/ap_info.txt",
//		Clock: timesync.ClockFunc(func(t time.Time) error {
//			return applySystemTime(t)
//		}),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := sync.Initialize(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// On hosts with permanent connectivity leave Network at its NopNetwork
// default and omit CredentialsPath. For long recording hosts,
// ScheduleResync repeats the pass on a cron schedule.
package timesync
