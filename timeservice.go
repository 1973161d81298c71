package intervalreload

import (
	"time"
)

const (
	DefaultServer  = "time.google.com"
	DefaultTimeout = 5000 * time.Millisecond

	// DateFormat renders as yyyy-MM-dd HH:mm:ss.
	DateFormat = "2006-01-02 15:04:05"
)

// TimeResponse is a second precision instant and its DateFormat text.
type TimeResponse struct {
	Text string
	Time time.Time
}

func newTimeResponse(epochMillis int64, loc *time.Location) TimeResponse {
	if loc == nil {
		loc = time.Local
	}
	t := time.Unix(epochMillis/milliPerSec, 0).In(loc)
	return TimeResponse{Text: t.Format(DateFormat), Time: t}
}

// Source produces the value shown on each refresh.
type Source interface {
	Fetch() (TimeResponse, error)
}

// TimeService answers GetCurrentTime from an SNTP server.
type TimeService struct {
	Server   string
	Timeout  time.Duration
	Location *time.Location

	client *Client
	stats  *statistic
}

func NewTimeService(server string, timeout time.Duration, loc *time.Location) *TimeService {
	if server == "" {
		server = DefaultServer
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TimeService{
		Server:   server,
		Timeout:  timeout,
		Location: loc,
		client:   NewClient(),
	}
}

// GetCurrentTime asks DefaultServer for the time and formats it in loc.
// It blocks for up to DefaultTimeout and must not run on a UI loop.
func GetCurrentTime(loc *time.Location) (TimeResponse, error) {
	return NewTimeService(DefaultServer, DefaultTimeout, loc).GetCurrentTime(loc)
}

func (ts *TimeService) GetCurrentTime(loc *time.Location) (resp TimeResponse, err error) {
	r, err := ts.client.RequestTime(ts.Server, ts.Timeout)
	if ts.stats != nil {
		ts.stats.observe(r, err)
	}
	if err != nil {
		return
	}
	return newTimeResponse(r.CorrectedEpochMillis, loc), nil
}

func (ts *TimeService) Fetch() (TimeResponse, error) {
	return ts.GetCurrentTime(ts.Location)
}

// LocalSource formats the local clock without any network access.
type LocalSource struct {
	Location *time.Location
}

func (l LocalSource) Fetch() (TimeResponse, error) {
	return newTimeResponse(time.Now().UnixMilli(), l.Location), nil
}
