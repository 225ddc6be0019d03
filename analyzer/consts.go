package analyzer

import "time"

const (
	// input rows use day-month-year, single digit day and month are accepted
	TimestampParseLayout = "2-1-2006 15:04"
	TimestampLayout      = "02-01-2006 15:04"

	FastWindowSize = 1000
	SlowWindowSize = 5000
	CalendarWindow = 5 * 24 * time.Hour

	ExtremaMinDistance = 10
	LowVoltageLimit    = 20.0

	// a jump above this between consecutive samples is a recharge
	RechargeJump = 10.0
	// cycles with this many usable rows or fewer are ignored
	MinCycleRows = 3
)
